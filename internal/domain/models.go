package domain

import "time"

// Answer is one of the four choices of a question. Correctness and feedback
// travel with the answer object so shuffling answer order never detaches them.
type Answer struct {
	Text     string `json:"text"`
	Correct  bool   `json:"correct"`
	Feedback string `json:"feedback"`
}

// Question models an MCQ question with exactly four answers, exactly one of
// them correct.
type Question struct {
	Prompt  string   `json:"prompt"`
	Answers []Answer `json:"answers"`
}

// AnswersPerQuestion is fixed for all content in this system.
const AnswersPerQuestion = 4

// CorrectIndex returns the index of the correct answer, or -1.
func (q Question) CorrectIndex() int {
	for i, a := range q.Answers {
		if a.Correct {
			return i
		}
	}
	return -1
}

// BankKind distinguishes the two question-bank shapes.
type BankKind string

const (
	// BankKindPool is a flat pool the flashcard quiz draws from.
	BankKindPool BankKind = "pool"
	// BankKindLadder holds one candidate set per difficulty level.
	BankKindLadder BankKind = "ladder"
)

// Level is one rung of a ladder bank: two or more candidate questions, one of
// which is drawn at session start.
type Level struct {
	Candidates []Question `json:"candidates"`
}

// Bank is immutable quiz content, loaded once and shared read-only by all
// sessions.
type Bank struct {
	ID     string     `json:"id"`
	Kind   BankKind   `json:"kind"`
	Pool   []Question `json:"pool,omitempty"`
	Levels []Level    `json:"levels,omitempty"`
}

// PrizeLevel is one rung of the tiered quiz's prize ladder. A safe haven
// marks a floor the player keeps after a later wrong answer.
type PrizeLevel struct {
	Label     string `json:"label"`
	SafeHaven bool   `json:"safeHaven"`
}

// ActivityKind identifies how a sub-activity's score is produced.
type ActivityKind string

const (
	ActivityFlashcard ActivityKind = "flashcard"
	ActivityTiered    ActivityKind = "tiered"
	ActivityH5P       ActivityKind = "h5p"
)

// Activity is one independently scored unit inside a module, with a fixed
// point weight.
type Activity struct {
	ID     string
	Kind   ActivityKind
	Weight int
}

// Module is a top-level learning unit composed of one or more activities.
type Module struct {
	ID         string
	Title      string
	Activities []Activity
}

// MaxPoints is the sum of the module's activity weights.
func (m Module) MaxPoints() int {
	total := 0
	for _, a := range m.Activities {
		total += a.Weight
	}
	return total
}

// Activity looks an activity up by ID.
func (m Module) Activity(id string) (Activity, bool) {
	for _, a := range m.Activities {
		if a.ID == id {
			return a, true
		}
	}
	return Activity{}, false
}

// Catalog is the fixed set of modules of the course.
type Catalog struct {
	Modules []Module
}

// Module looks a module up by ID.
func (c Catalog) Module(id string) (Module, bool) {
	for _, m := range c.Modules {
		if m.ID == id {
			return m, true
		}
	}
	return Module{}, false
}

// ModuleProgress is the persisted per-user, per-module progress record.
// Stores apply last-write-wins; the service is assumed to be the sole writer
// for a given user code.
type ModuleProgress struct {
	UserID    string         `json:"userId"`
	ModuleID  string         `json:"moduleId"`
	Completed bool           `json:"completed"`
	Points    int            `json:"points"`
	SubScores map[string]int `json:"subScores"` // activity ID -> percent, present iff attempted
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Attempted reports whether the given activity has at least one recorded
// attempt.
func (p ModuleProgress) Attempted(activityID string) bool {
	_, ok := p.SubScores[activityID]
	return ok
}

// UserAggregate is derived from all of a user's module records. It is
// recomputed from scratch on every save rather than maintained incrementally.
type UserAggregate struct {
	UserID          string    `json:"userId"`
	TotalPoints     int       `json:"totalPoints"`
	CompletedCount  int       `json:"completedCount"`
	OverallPercent  int       `json:"overallPercent"`
	ProgressPercent int       `json:"progressPercent"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// StatementVerb is the verb of an inbound embedded-content statement.
type StatementVerb string

const (
	VerbAnswered   StatementVerb = "answered"
	VerbCompleted  StatementVerb = "completed"
	VerbProgressed StatementVerb = "progressed"
)

// Statement is the scoring signal from embedded third-party content. Only
// answered/completed statements feed the aggregator.
type Statement struct {
	ModuleID   string        `json:"moduleId"`
	ActivityID string        `json:"activityId"`
	Verb       StatementVerb `json:"verb"`
	RawScore   float64       `json:"rawScore"`
	MaxScore   float64       `json:"maxScore"`
}

// Percent converts raw/max into a clamped 0..100 integer percent.
func (s Statement) Percent() int {
	if s.MaxScore <= 0 {
		return 0
	}
	p := int(s.RawScore/s.MaxScore*100 + 0.5)
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// BadgeInfo is the read-only badge view of one module for the presentation
// layer.
type BadgeInfo struct {
	ModuleID string    `json:"moduleId"`
	Percent  int       `json:"percent"`
	Tier     BadgeTier `json:"tier"`
	Unlocked bool      `json:"unlocked"`
}

// CertificateInfo is the read-only certificate view for the presentation
// layer.
type CertificateInfo struct {
	Unlocked       bool `json:"unlocked"`
	CompletedCount int  `json:"completedCount"`
	OverallPercent int  `json:"overallPercent"`
}
