package app

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"civiclearn-quiz-service/internal/domain"
	"civiclearn-quiz-service/internal/questionbank"
	"civiclearn-quiz-service/internal/quiz"
)

// persistTimeout bounds the fire-and-forget saves triggered by quiz events.
const persistTimeout = 5 * time.Second

// ActivityResult is pushed to a watching connection when one of the user's
// quizzes reaches a terminal state.
type ActivityResult struct {
	ModuleID   string `json:"moduleId"`
	ActivityID string `json:"activityId"`
	Percent    int    `json:"percent"`
	Won        bool   `json:"won,omitempty"`
	Prize      string `json:"prize,omitempty"`
}

// SessionOption configures a SessionManager.
type SessionOption func(*SessionManager)

// WithRevealDelay overrides the tiered quiz's post-confirm pause (tests use
// zero).
func WithRevealDelay(d time.Duration) SessionOption {
	return func(m *SessionManager) { m.revealDelay = d }
}

// SessionManager owns the live quiz sessions, one per user and quiz kind,
// reconciling them against the snapshot mirror and the authoritative remote
// progress record.
type SessionManager struct {
	banks       BankRepository
	snapshots   SnapshotStore
	progress    *ProgressService
	revealDelay time.Duration

	mu         sync.Mutex
	flashcards map[string]*quiz.FlashcardSession
	tiered     map[string]*quiz.TieredSession
	watchers   map[string]func(ActivityResult)
}

func NewSessionManager(banks BankRepository, snapshots SnapshotStore, progress *ProgressService, opts ...SessionOption) *SessionManager {
	m := &SessionManager{
		banks:       banks,
		snapshots:   snapshots,
		progress:    progress,
		revealDelay: quiz.DefaultRevealDelay,
		flashcards:  make(map[string]*quiz.FlashcardSession),
		tiered:      make(map[string]*quiz.TieredSession),
		watchers:    make(map[string]func(ActivityResult)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Watch registers a terminal-result listener for a user. The returned cancel
// must be called on disconnect.
func (m *SessionManager) Watch(userID string, fn func(ActivityResult)) func() {
	m.mu.Lock()
	m.watchers[userID] = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.watchers, userID)
		m.mu.Unlock()
	}
}

func (m *SessionManager) notify(userID string, result ActivityResult) {
	m.mu.Lock()
	fn := m.watchers[userID]
	m.mu.Unlock()
	if fn != nil {
		fn(result)
	}
}

// StartFlashcard returns the user's live flashcard session, restoring from
// the snapshot mirror when possible. A prior attempt recorded in the remote
// progress record is authoritative: it invalidates the mirror and a fresh
// round is drawn. A corrupt mirror falls back to a fresh round too.
func (m *SessionManager) StartFlashcard(ctx context.Context, userID string) (*quiz.FlashcardSession, error) {
	m.mu.Lock()
	if session, ok := m.flashcards[userID]; ok {
		m.mu.Unlock()
		return session, nil
	}
	m.mu.Unlock()

	bank, err := m.banks.GetBank(ctx, questionbank.FlashcardBankID)
	if err != nil {
		return nil, err
	}
	if bank.Kind != domain.BankKindPool {
		return nil, domain.ErrInvalidBank
	}

	opts := []quiz.FlashcardOption{quiz.WithFlashcardCompletion(m.flashcardDone(userID))}

	var session *quiz.FlashcardSession
	if m.remoteAttempted(ctx, userID, domain.ActivityFlashcardQuiz) {
		m.dropSnapshot(ctx, userID, questionbank.FlashcardBankID)
	} else if raw, ok := m.loadSnapshot(ctx, userID, questionbank.FlashcardBankID); ok {
		var snap quiz.FlashcardSnapshot
		if err := json.Unmarshal(raw, &snap); err == nil {
			if restored, err := quiz.RestoreFlashcardSession(bank.Pool, snap, opts...); err == nil {
				session = restored
			}
		}
		if session == nil {
			log.Printf("discarding unusable flashcard snapshot for user %s", userID)
			m.dropSnapshot(ctx, userID, questionbank.FlashcardBankID)
		}
	}
	if session == nil {
		session, err = quiz.NewFlashcardSession(bank.Pool, opts...)
		if err != nil {
			return nil, err
		}
	}

	m.mu.Lock()
	if existing, ok := m.flashcards[userID]; ok {
		m.mu.Unlock()
		return existing, nil
	}
	m.flashcards[userID] = session
	m.mu.Unlock()
	return session, nil
}

// StartTiered mirrors StartFlashcard for the tiered quiz.
func (m *SessionManager) StartTiered(ctx context.Context, userID string) (*quiz.TieredSession, error) {
	m.mu.Lock()
	if session, ok := m.tiered[userID]; ok {
		m.mu.Unlock()
		return session, nil
	}
	m.mu.Unlock()

	bank, err := m.banks.GetBank(ctx, questionbank.LadderBankID)
	if err != nil {
		return nil, err
	}
	if bank.Kind != domain.BankKindLadder {
		return nil, domain.ErrInvalidBank
	}
	ladder := domain.DefaultPrizeLadder()

	opts := []quiz.TieredOption{
		quiz.WithRevealDelay(m.revealDelay),
		quiz.WithTieredCompletion(m.tieredDone(userID)),
	}

	var session *quiz.TieredSession
	if m.remoteAttempted(ctx, userID, domain.ActivityTieredQuiz) {
		m.dropSnapshot(ctx, userID, questionbank.LadderBankID)
	} else if raw, ok := m.loadSnapshot(ctx, userID, questionbank.LadderBankID); ok {
		var snap quiz.TieredSnapshot
		if err := json.Unmarshal(raw, &snap); err == nil {
			if restored, err := quiz.RestoreTieredSession(bank.Levels, ladder, snap, opts...); err == nil {
				session = restored
			}
		}
		if session == nil {
			log.Printf("discarding unusable tiered snapshot for user %s", userID)
			m.dropSnapshot(ctx, userID, questionbank.LadderBankID)
		}
	}
	if session == nil {
		session, err = quiz.NewTieredSession(bank.Levels, ladder, opts...)
		if err != nil {
			return nil, err
		}
	}

	m.mu.Lock()
	if existing, ok := m.tiered[userID]; ok {
		m.mu.Unlock()
		return existing, nil
	}
	m.tiered[userID] = session
	m.mu.Unlock()
	return session, nil
}

// Flashcard returns the user's live flashcard session, if any.
func (m *SessionManager) Flashcard(userID string) (*quiz.FlashcardSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.flashcards[userID]
	return session, ok
}

// Tiered returns the user's live tiered session, if any.
func (m *SessionManager) Tiered(userID string) (*quiz.TieredSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.tiered[userID]
	return session, ok
}

// MirrorFlashcard writes the session snapshot, best effort. Play never
// blocks on the mirror; a failed write is recovered by the next one.
func (m *SessionManager) MirrorFlashcard(ctx context.Context, userID string) {
	session, ok := m.Flashcard(userID)
	if !ok {
		return
	}
	data, err := json.Marshal(session.Snapshot())
	if err != nil {
		log.Printf("marshal flashcard snapshot for user %s: %v", userID, err)
		return
	}
	if err := m.snapshots.Save(ctx, userID, questionbank.FlashcardBankID, data); err != nil {
		log.Printf("mirror flashcard snapshot for user %s: %v", userID, err)
	}
}

// MirrorTiered writes the tiered session snapshot, best effort.
func (m *SessionManager) MirrorTiered(ctx context.Context, userID string) {
	session, ok := m.Tiered(userID)
	if !ok {
		return
	}
	data, err := json.Marshal(session.Snapshot())
	if err != nil {
		log.Printf("marshal tiered snapshot for user %s: %v", userID, err)
		return
	}
	if err := m.snapshots.Save(ctx, userID, questionbank.LadderBankID, data); err != nil {
		log.Printf("mirror tiered snapshot for user %s: %v", userID, err)
	}
}

// Release drops the user's in-memory sessions after mirroring them, so a
// reconnect resumes from the snapshot.
func (m *SessionManager) Release(ctx context.Context, userID string) {
	m.MirrorFlashcard(ctx, userID)
	m.MirrorTiered(ctx, userID)
	m.mu.Lock()
	delete(m.flashcards, userID)
	delete(m.tiered, userID)
	m.mu.Unlock()
}

func (m *SessionManager) remoteAttempted(ctx context.Context, userID, activityID string) bool {
	record, found, err := m.progress.store.Get(ctx, userID, domain.ModuleSpielerisch)
	if err != nil {
		log.Printf("read remote progress for user %s: %v", userID, err)
		return false
	}
	return found && record.Attempted(activityID)
}

func (m *SessionManager) loadSnapshot(ctx context.Context, userID, quizID string) ([]byte, bool) {
	raw, found, err := m.snapshots.Load(ctx, userID, quizID)
	if err != nil {
		log.Printf("load snapshot %s for user %s: %v", quizID, userID, err)
		return nil, false
	}
	return raw, found
}

func (m *SessionManager) dropSnapshot(ctx context.Context, userID, quizID string) {
	if err := m.snapshots.Delete(ctx, userID, quizID); err != nil {
		log.Printf("drop snapshot %s for user %s: %v", quizID, userID, err)
	}
}

func (m *SessionManager) flashcardDone(userID string) func(int) {
	return func(percent int) {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if _, err := m.progress.RecordResult(ctx, userID, domain.ModuleSpielerisch, domain.ActivityFlashcardQuiz, percent); err != nil {
			// Not retried: the next successful save carries the latest state.
			log.Printf("record flashcard result for user %s: %v", userID, err)
		}
		m.dropSnapshot(ctx, userID, questionbank.FlashcardBankID)
		m.notify(userID, ActivityResult{
			ModuleID:   domain.ModuleSpielerisch,
			ActivityID: domain.ActivityFlashcardQuiz,
			Percent:    percent,
		})
	}
}

func (m *SessionManager) tieredDone(userID string) func(int, bool, string) {
	return func(percent int, won bool, prize string) {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if _, err := m.progress.RecordResult(ctx, userID, domain.ModuleSpielerisch, domain.ActivityTieredQuiz, percent); err != nil {
			log.Printf("record tiered result for user %s: %v", userID, err)
		}
		m.dropSnapshot(ctx, userID, questionbank.LadderBankID)
		m.notify(userID, ActivityResult{
			ModuleID:   domain.ModuleSpielerisch,
			ActivityID: domain.ActivityTieredQuiz,
			Percent:    percent,
			Won:        won,
			Prize:      prize,
		})
	}
}
