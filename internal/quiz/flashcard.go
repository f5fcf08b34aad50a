package quiz

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"civiclearn-quiz-service/internal/domain"
)

// DefaultFlashcardDraw is how many questions one flashcard round draws from
// the pool.
const DefaultFlashcardDraw = 10

// FlashcardOption configures a flashcard session.
type FlashcardOption func(*FlashcardSession)

// WithFlashcardRand injects a seeded random source for deterministic draws in
// tests.
func WithFlashcardRand(rnd *rand.Rand) FlashcardOption {
	return func(s *FlashcardSession) { s.rnd = rnd }
}

// WithFlashcardDraw overrides the number of questions drawn per round.
func WithFlashcardDraw(n int) FlashcardOption {
	return func(s *FlashcardSession) { s.drawSize = n }
}

// WithFlashcardCompletion registers the terminal-score sink. It is invoked
// exactly once per round, when the last question is advanced past.
func WithFlashcardCompletion(fn func(percent int)) FlashcardOption {
	return func(s *FlashcardSession) { s.onComplete = fn }
}

// FlashcardSession runs one round of the flashcard quiz. An answer click
// reveals correctness and feedback immediately; navigation keeps earlier
// selections so revisiting a question shows its prior result. A session is
// owned by a single user connection; methods are safe for the handler
// goroutine and the snapshot writer.
type FlashcardSession struct {
	mu sync.Mutex

	pool     []domain.Question
	drawSize int
	rnd      *rand.Rand

	questions  []domain.Question
	position   int
	selections map[int]int
	revealed   map[int]bool

	terminal      bool
	scorePercent  int
	resultEmitted bool

	onComplete func(percent int)
}

// NewFlashcardSession draws a fresh shuffled round from pool.
func NewFlashcardSession(pool []domain.Question, opts ...FlashcardOption) (*FlashcardSession, error) {
	s := &FlashcardSession{
		pool:     pool,
		drawSize: DefaultFlashcardDraw,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(pool) < s.drawSize {
		return nil, domain.ErrInvalidBank
	}
	s.draw()
	return s, nil
}

func (s *FlashcardSession) draw() {
	drawn := ShuffleQuestionSet(s.rnd, s.pool)
	s.questions = drawn[:s.drawSize]
	s.position = 0
	s.selections = make(map[int]int)
	s.revealed = make(map[int]bool)
	s.terminal = false
	s.scorePercent = 0
	s.resultEmitted = false
}

// SelectAnswer records the selection for the current question and reveals it.
// Once revealed, further clicks on the question are ignored.
func (s *FlashcardSession) SelectAnswer(answerIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminal || s.revealed[s.position] {
		return
	}
	if answerIndex < 0 || answerIndex >= len(s.questions[s.position].Answers) {
		return
	}
	s.selections[s.position] = answerIndex
	s.revealed[s.position] = true
}

// Advance moves to the next question; on the last question it closes the
// round and emits the terminal score.
func (s *FlashcardSession) Advance() {
	s.mu.Lock()
	if s.terminal || !s.revealed[s.position] {
		s.mu.Unlock()
		return
	}
	if s.position < len(s.questions)-1 {
		s.position++
		s.mu.Unlock()
		return
	}

	correct := 0
	for i, q := range s.questions {
		sel, ok := s.selections[i]
		if ok && q.Answers[sel].Correct {
			correct++
		}
	}
	s.scorePercent = int(math.Round(100 * float64(correct) / float64(len(s.questions))))
	s.terminal = true

	emit := !s.resultEmitted
	s.resultEmitted = true
	percent := s.scorePercent
	fn := s.onComplete
	s.mu.Unlock()

	if emit && fn != nil {
		fn(percent)
	}
}

// Retreat moves back one question, keeping the recorded selection and reveal
// state of both questions.
func (s *FlashcardSession) Retreat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminal || s.position == 0 {
		return
	}
	s.position--
}

// Reset discards the round and draws a fresh one.
func (s *FlashcardSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draw()
}

// FlashcardSnapshot is the JSON mirror of a session, written after each
// mutation so a reload can resume mid-round.
type FlashcardSnapshot struct {
	Questions    []domain.Question `json:"questions"`
	Position     int               `json:"position"`
	Selections   map[int]int       `json:"selections"`
	Revealed     map[int]bool      `json:"revealed"`
	Terminal     bool              `json:"terminal"`
	ScorePercent int               `json:"scorePercent"`
}

// Snapshot captures the current round.
func (s *FlashcardSession) Snapshot() FlashcardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := FlashcardSnapshot{
		Questions:    s.questions,
		Position:     s.position,
		Selections:   make(map[int]int, len(s.selections)),
		Revealed:     make(map[int]bool, len(s.revealed)),
		Terminal:     s.terminal,
		ScorePercent: s.scorePercent,
	}
	for k, v := range s.selections {
		snap.Selections[k] = v
	}
	for k, v := range s.revealed {
		snap.Revealed[k] = v
	}
	return snap
}

// RestoreFlashcardSession rebuilds a session from a snapshot. A snapshot that
// fails validation is reported as ErrSnapshotInvalid; callers fall back to a
// fresh draw.
func RestoreFlashcardSession(pool []domain.Question, snap FlashcardSnapshot, opts ...FlashcardOption) (*FlashcardSession, error) {
	s := &FlashcardSession{
		pool:     pool,
		drawSize: DefaultFlashcardDraw,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := validateFlashcardSnapshot(snap, s.drawSize); err != nil {
		return nil, err
	}
	s.questions = snap.Questions
	s.position = snap.Position
	s.selections = make(map[int]int, len(snap.Selections))
	for k, v := range snap.Selections {
		s.selections[k] = v
	}
	s.revealed = make(map[int]bool, len(snap.Revealed))
	for k, v := range snap.Revealed {
		s.revealed[k] = v
	}
	s.terminal = snap.Terminal
	s.scorePercent = snap.ScorePercent
	// A restored terminal round has already been reported upstream.
	s.resultEmitted = snap.Terminal
	return s, nil
}

func validateFlashcardSnapshot(snap FlashcardSnapshot, drawSize int) error {
	if len(snap.Questions) != drawSize {
		return domain.ErrSnapshotInvalid
	}
	for _, q := range snap.Questions {
		if len(q.Answers) != domain.AnswersPerQuestion || q.CorrectIndex() < 0 {
			return domain.ErrSnapshotInvalid
		}
	}
	if snap.Position < 0 || snap.Position >= len(snap.Questions) {
		return domain.ErrSnapshotInvalid
	}
	for idx, sel := range snap.Selections {
		if idx < 0 || idx >= len(snap.Questions) || sel < 0 || sel >= domain.AnswersPerQuestion {
			return domain.ErrSnapshotInvalid
		}
	}
	if snap.ScorePercent < 0 || snap.ScorePercent > 100 {
		return domain.ErrSnapshotInvalid
	}
	return nil
}

// AnswerView is an answer as shown to the client. Correctness and feedback
// are withheld until the question is revealed.
type AnswerView struct {
	Text       string `json:"text"`
	Correct    *bool  `json:"correct,omitempty"`
	Feedback   string `json:"feedback,omitempty"`
	Eliminated bool   `json:"eliminated,omitempty"`
}

// FlashcardView is the client-facing state of a session.
type FlashcardView struct {
	Position     int          `json:"position"`
	Total        int          `json:"total"`
	Prompt       string       `json:"prompt"`
	Answers      []AnswerView `json:"answers"`
	Selected     *int         `json:"selected,omitempty"`
	Revealed     bool         `json:"revealed"`
	Terminal     bool         `json:"terminal"`
	ScorePercent int          `json:"scorePercent"`
}

// View renders the current question for the client.
func (s *FlashcardSession) View() FlashcardView {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.questions[s.position]
	revealed := s.revealed[s.position]
	view := FlashcardView{
		Position:     s.position,
		Total:        len(s.questions),
		Prompt:       q.Prompt,
		Answers:      make([]AnswerView, len(q.Answers)),
		Revealed:     revealed,
		Terminal:     s.terminal,
		ScorePercent: s.scorePercent,
	}
	for i, a := range q.Answers {
		view.Answers[i] = AnswerView{Text: a.Text}
		if revealed {
			correct := a.Correct
			view.Answers[i].Correct = &correct
			view.Answers[i].Feedback = a.Feedback
		}
	}
	if sel, ok := s.selections[s.position]; ok {
		selected := sel
		view.Selected = &selected
	}
	return view
}
