package quiz

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"civiclearn-quiz-service/internal/domain"
)

// JokerLevelFloor is the lowest (zero-indexed) level at which either joker
// may be used.
const JokerLevelFloor = 2

// DefaultRevealDelay is how long the revealed answer stays on screen before
// the session moves on. The pause is part of the game's contract, not a
// rendering detail.
const DefaultRevealDelay = 2 * time.Second

// TieredOption configures a tiered session.
type TieredOption func(*TieredSession)

// WithTieredRand injects a seeded random source.
func WithTieredRand(rnd *rand.Rand) TieredOption {
	return func(s *TieredSession) { s.rnd = rnd }
}

// WithRevealDelay overrides the post-confirm pause. Zero resolves
// synchronously; tests use that.
func WithRevealDelay(d time.Duration) TieredOption {
	return func(s *TieredSession) { s.revealDelay = d }
}

// WithTieredCompletion registers the terminal-score sink, invoked exactly
// once when the session ends (won or lost).
func WithTieredCompletion(fn func(percent int, won bool, prize string)) TieredOption {
	return func(s *TieredSession) { s.onTerminal = fn }
}

// TieredSession runs one "Millionenspiel" round: seven levels, one question
// drawn per level at session start, two one-shot jokers, safe-haven prize
// floors on a wrong answer.
type TieredSession struct {
	mu sync.Mutex

	levels      []domain.Level
	ladder      []domain.PrizeLevel
	rnd         *rand.Rand
	revealDelay time.Duration

	questions  []domain.Question
	level      int
	pending    int
	revealed   bool
	eliminated map[int]bool

	fiftyUsed    bool
	audienceUsed bool

	over         bool
	won          bool
	finalPrize   string
	scorePercent int

	resultEmitted bool
	onTerminal    func(percent int, won bool, prize string)

	// gen guards the reveal timer: a reset invalidates any timer scheduled
	// for the previous round so a stale fire cannot mutate the new one.
	gen   int
	timer *time.Timer
}

// NewTieredSession draws one question per level and fixes the draw for the
// session lifetime.
func NewTieredSession(levels []domain.Level, ladder []domain.PrizeLevel, opts ...TieredOption) (*TieredSession, error) {
	if len(levels) == 0 || len(levels) != len(ladder) {
		return nil, domain.ErrInvalidBank
	}
	s := &TieredSession{
		levels:      levels,
		ladder:      ladder,
		rnd:         rand.New(rand.NewSource(time.Now().UnixNano())),
		revealDelay: DefaultRevealDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, lvl := range levels {
		if len(lvl.Candidates) == 0 {
			return nil, domain.ErrInvalidBank
		}
	}
	s.draw()
	return s, nil
}

func (s *TieredSession) draw() {
	s.questions = make([]domain.Question, len(s.levels))
	for i, lvl := range s.levels {
		q := lvl.Candidates[s.rnd.Intn(len(lvl.Candidates))]
		q.Answers = shuffleAnswers(s.rnd, q.Answers)
		s.questions[i] = q
	}
	s.level = 0
	s.pending = -1
	s.revealed = false
	s.eliminated = make(map[int]bool)
	s.fiftyUsed = false
	s.audienceUsed = false
	s.over = false
	s.won = false
	s.finalPrize = ""
	s.scorePercent = 0
	s.resultEmitted = false
}

// SelectAnswer records a pending selection. It does not reveal correctness;
// eliminated answers cannot be selected. Re-selecting before confirmation
// replaces the pending choice.
func (s *TieredSession) SelectAnswer(answerIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.over || s.revealed {
		return
	}
	if answerIndex < 0 || answerIndex >= len(s.questions[s.level].Answers) {
		return
	}
	if s.eliminated[answerIndex] {
		return
	}
	s.pending = answerIndex
}

// ConfirmAnswer reveals the pending selection. The resulting transition
// (advance, win, or loss) is applied after the reveal delay.
func (s *TieredSession) ConfirmAnswer() {
	s.mu.Lock()
	if s.over || s.revealed || s.pending < 0 {
		s.mu.Unlock()
		return
	}
	s.revealed = true
	if s.revealDelay <= 0 {
		s.resolveAndEmit()
		return
	}
	gen := s.gen
	s.timer = time.AfterFunc(s.revealDelay, func() {
		s.mu.Lock()
		if s.gen != gen || !s.revealed || s.over {
			s.mu.Unlock()
			return
		}
		s.resolveAndEmit()
	})
	s.mu.Unlock()
}

// resolveAndEmit is entered holding the lock and releases it; the terminal
// callback must run unlocked so it can read the session back.
func (s *TieredSession) resolveAndEmit() {
	s.resolveLocked()
	emit := s.over && !s.resultEmitted
	if emit {
		s.resultEmitted = true
	}
	percent, won, prize := s.scorePercent, s.won, s.finalPrize
	fn := s.onTerminal
	s.mu.Unlock()
	if emit && fn != nil {
		fn(percent, won, prize)
	}
}

func (s *TieredSession) resolveLocked() {
	correct := s.questions[s.level].Answers[s.pending].Correct

	switch {
	case correct && s.level == len(s.ladder)-1:
		s.over = true
		s.won = true
		s.finalPrize = s.ladder[s.level].Label
		s.scorePercent = 100
	case correct:
		s.level++
		s.pending = -1
		s.revealed = false
		s.eliminated = make(map[int]bool)
	default:
		s.over = true
		s.won = false
		s.finalPrize = s.safeHavenFloorLocked(s.level)
		// The level reached feeds the score, not the prize retained.
		s.scorePercent = int(math.Round(100 * float64(s.level) / float64(len(s.ladder))))
	}
}

// safeHavenFloorLocked returns the prize kept after a wrong answer: the
// highest safe haven at or below the failing level. Failing on a safe-haven
// level keeps that haven's prize.
func (s *TieredSession) safeHavenFloorLocked(level int) string {
	for i := level; i >= 0; i-- {
		if s.ladder[i].SafeHaven {
			return s.ladder[i].Label
		}
	}
	return domain.ZeroPrizeLabel
}

// UseFiftyFifty eliminates two of the three wrong answers for the current
// level only. One shot per session, gated below JokerLevelFloor.
func (s *TieredSession) UseFiftyFifty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.over || s.revealed || s.fiftyUsed || s.level < JokerLevelFloor {
		return
	}
	wrong := make([]int, 0, domain.AnswersPerQuestion-1)
	for i, a := range s.questions[s.level].Answers {
		if !a.Correct {
			wrong = append(wrong, i)
		}
	}
	keep := s.rnd.Intn(len(wrong))
	for i, idx := range wrong {
		if i == keep {
			continue
		}
		s.eliminated[idx] = true
	}
	if s.pending >= 0 && s.eliminated[s.pending] {
		s.pending = -1
	}
	s.fiftyUsed = true
}

// UseAudience produces a synthetic audience poll: four non-negative integer
// percentages summing to 100, at least 50 on the correct answer. Advisory
// only, it does not eliminate anything. One shot per session, same level
// gate as the fifty-fifty joker. Returns nil when the joker is unavailable.
func (s *TieredSession) UseAudience() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.over || s.revealed || s.audienceUsed || s.level < JokerLevelFloor {
		return nil
	}
	q := s.questions[s.level]
	correctShare := 50 + s.rnd.Intn(25)
	rest := 100 - correctShare
	first := s.rnd.Intn(rest + 1)
	second := s.rnd.Intn(rest - first + 1)
	shares := []int{first, second, rest - first - second}

	dist := make([]int, len(q.Answers))
	wrongSeen := 0
	for i, a := range q.Answers {
		if a.Correct {
			dist[i] = correctShare
		} else {
			dist[i] = shares[wrongSeen]
			wrongSeen++
		}
	}
	s.audienceUsed = true
	return dist
}

// Reset abandons the round, cancels any pending reveal timer, and draws a
// fresh session. Joker flags reset with everything else.
func (s *TieredSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.draw()
}

// TieredSnapshot mirrors the stable state of a session. A confirm that is
// mid-delay is not captured; a reload during the pause replays the level.
type TieredSnapshot struct {
	Questions    []domain.Question `json:"questions"`
	Level        int               `json:"level"`
	Eliminated   []int             `json:"eliminated"`
	FiftyUsed    bool              `json:"fiftyUsed"`
	AudienceUsed bool              `json:"audienceUsed"`
	Over         bool              `json:"over"`
	Won          bool              `json:"won"`
	FinalPrize   string            `json:"finalPrize"`
	ScorePercent int               `json:"scorePercent"`
}

// Snapshot captures the current round.
func (s *TieredSession) Snapshot() TieredSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := TieredSnapshot{
		Questions:    s.questions,
		Level:        s.level,
		FiftyUsed:    s.fiftyUsed,
		AudienceUsed: s.audienceUsed,
		Over:         s.over,
		Won:          s.won,
		FinalPrize:   s.finalPrize,
		ScorePercent: s.scorePercent,
	}
	for idx := range s.eliminated {
		snap.Eliminated = append(snap.Eliminated, idx)
	}
	return snap
}

// RestoreTieredSession rebuilds a session from a snapshot, validating it
// against the ladder shape.
func RestoreTieredSession(levels []domain.Level, ladder []domain.PrizeLevel, snap TieredSnapshot, opts ...TieredOption) (*TieredSession, error) {
	s := &TieredSession{
		levels:      levels,
		ladder:      ladder,
		rnd:         rand.New(rand.NewSource(time.Now().UnixNano())),
		revealDelay: DefaultRevealDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := validateTieredSnapshot(snap, len(ladder)); err != nil {
		return nil, err
	}
	s.questions = snap.Questions
	s.level = snap.Level
	s.pending = -1
	s.eliminated = make(map[int]bool)
	for _, idx := range snap.Eliminated {
		s.eliminated[idx] = true
	}
	s.fiftyUsed = snap.FiftyUsed
	s.audienceUsed = snap.AudienceUsed
	s.over = snap.Over
	s.won = snap.Won
	s.finalPrize = snap.FinalPrize
	s.scorePercent = snap.ScorePercent
	s.resultEmitted = snap.Over
	return s, nil
}

func validateTieredSnapshot(snap TieredSnapshot, levelCount int) error {
	if len(snap.Questions) != levelCount {
		return domain.ErrSnapshotInvalid
	}
	for _, q := range snap.Questions {
		if len(q.Answers) != domain.AnswersPerQuestion || q.CorrectIndex() < 0 {
			return domain.ErrSnapshotInvalid
		}
	}
	if snap.Level < 0 || snap.Level >= levelCount {
		return domain.ErrSnapshotInvalid
	}
	for _, idx := range snap.Eliminated {
		if idx < 0 || idx >= domain.AnswersPerQuestion {
			return domain.ErrSnapshotInvalid
		}
	}
	if snap.ScorePercent < 0 || snap.ScorePercent > 100 {
		return domain.ErrSnapshotInvalid
	}
	return nil
}

// PrizeView is one ladder rung as shown to the client.
type PrizeView struct {
	Label     string `json:"label"`
	SafeHaven bool   `json:"safeHaven"`
	Current   bool   `json:"current"`
}

// TieredView is the client-facing state of a session.
type TieredView struct {
	Level         int          `json:"level"`
	Ladder        []PrizeView  `json:"ladder"`
	Prompt        string       `json:"prompt"`
	Answers       []AnswerView `json:"answers"`
	Pending       *int         `json:"pending,omitempty"`
	Revealed      bool         `json:"revealed"`
	FiftyAvail    bool         `json:"fiftyFiftyAvailable"`
	AudienceAvail bool         `json:"audienceAvailable"`
	Over          bool         `json:"over"`
	Won           bool         `json:"won"`
	FinalPrize    string       `json:"finalPrize,omitempty"`
	ScorePercent  int          `json:"scorePercent"`
}

// View renders the current level for the client.
func (s *TieredSession) View() TieredView {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.questions[s.level]
	view := TieredView{
		Level:         s.level,
		Ladder:        make([]PrizeView, len(s.ladder)),
		Prompt:        q.Prompt,
		Answers:       make([]AnswerView, len(q.Answers)),
		Revealed:      s.revealed,
		FiftyAvail:    !s.fiftyUsed && s.level >= JokerLevelFloor,
		AudienceAvail: !s.audienceUsed && s.level >= JokerLevelFloor,
		Over:          s.over,
		Won:           s.won,
		FinalPrize:    s.finalPrize,
		ScorePercent:  s.scorePercent,
	}
	for i, p := range s.ladder {
		view.Ladder[i] = PrizeView{Label: p.Label, SafeHaven: p.SafeHaven, Current: i == s.level}
	}
	for i, a := range q.Answers {
		view.Answers[i] = AnswerView{Text: a.Text, Eliminated: s.eliminated[i]}
		if s.revealed || s.over {
			correct := a.Correct
			view.Answers[i].Correct = &correct
			view.Answers[i].Feedback = a.Feedback
		}
	}
	if s.pending >= 0 {
		pending := s.pending
		view.Pending = &pending
	}
	return view
}
