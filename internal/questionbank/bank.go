// Package questionbank holds the authored quiz content and its validation
// rules. Content is static: loaded once, shared read-only by all sessions.
package questionbank

import (
	"fmt"

	"civiclearn-quiz-service/internal/domain"
)

// Bank IDs as stored and requested over the wire.
const (
	FlashcardBankID = "wissensquiz"
	LadderBankID    = "millionenspiel"
)

// LadderLevels is the fixed height of the tiered quiz.
const LadderLevels = 7

// MinCandidatesPerLevel is the smallest candidate set a ladder level may
// carry; one question per level is drawn at session start.
const MinCandidatesPerLevel = 2

// Validate checks bank content against the authoring rules: four answers per
// question with exactly one correct; pool banks need at least one flashcard
// round's worth of questions; ladder banks need seven levels of two or more
// candidates.
func Validate(bank domain.Bank) error {
	switch bank.Kind {
	case domain.BankKindPool:
		if len(bank.Pool) < 10 {
			return fmt.Errorf("%w: pool bank %q has %d questions, need at least 10", domain.ErrInvalidBank, bank.ID, len(bank.Pool))
		}
		for i, q := range bank.Pool {
			if err := validateQuestion(q); err != nil {
				return fmt.Errorf("%w: bank %q question %d: %v", domain.ErrInvalidBank, bank.ID, i, err)
			}
		}
	case domain.BankKindLadder:
		if len(bank.Levels) != LadderLevels {
			return fmt.Errorf("%w: ladder bank %q has %d levels, need %d", domain.ErrInvalidBank, bank.ID, len(bank.Levels), LadderLevels)
		}
		for li, lvl := range bank.Levels {
			if len(lvl.Candidates) < MinCandidatesPerLevel {
				return fmt.Errorf("%w: bank %q level %d has %d candidates, need at least %d", domain.ErrInvalidBank, bank.ID, li, len(lvl.Candidates), MinCandidatesPerLevel)
			}
			for qi, q := range lvl.Candidates {
				if err := validateQuestion(q); err != nil {
					return fmt.Errorf("%w: bank %q level %d question %d: %v", domain.ErrInvalidBank, bank.ID, li, qi, err)
				}
			}
		}
	default:
		return fmt.Errorf("%w: bank %q has unknown kind %q", domain.ErrInvalidBank, bank.ID, bank.Kind)
	}
	return nil
}

func validateQuestion(q domain.Question) error {
	if q.Prompt == "" {
		return fmt.Errorf("empty prompt")
	}
	if len(q.Answers) != domain.AnswersPerQuestion {
		return fmt.Errorf("has %d answers, need %d", len(q.Answers), domain.AnswersPerQuestion)
	}
	correct := 0
	for _, a := range q.Answers {
		if a.Text == "" {
			return fmt.Errorf("empty answer text")
		}
		if a.Correct {
			correct++
		}
	}
	if correct != 1 {
		return fmt.Errorf("has %d correct answers, need exactly 1", correct)
	}
	return nil
}

// Default returns the embedded banks keyed by ID. Production deployments
// override these with re-authored content from the database.
func Default() map[string]domain.Bank {
	return map[string]domain.Bank{
		FlashcardBankID: flashcardBank(),
		LadderBankID:    ladderBank(),
	}
}
