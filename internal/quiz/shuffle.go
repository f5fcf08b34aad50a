package quiz

import (
	"math/rand"

	"civiclearn-quiz-service/internal/domain"
)

// Shuffle returns a uniformly random permutation of qs using in-place
// Fisher-Yates on a copy. The caller's slice is never mutated; the bank is
// shared read-only content and must not be reordered under other sessions.
func Shuffle(rnd *rand.Rand, qs []domain.Question) []domain.Question {
	out := make([]domain.Question, len(qs))
	copy(out, qs)
	for i := len(out) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// shuffleAnswers permutes answer objects, so the correct flag and feedback
// stay bound to their text. Consumers must track correctness through the
// shuffled object, never through a pre-shuffle index.
func shuffleAnswers(rnd *rand.Rand, answers []domain.Answer) []domain.Answer {
	out := make([]domain.Answer, len(answers))
	copy(out, answers)
	for i := len(out) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// ShuffleQuestionSet shuffles question order and then, independently, the
// answer order within each question.
func ShuffleQuestionSet(rnd *rand.Rand, qs []domain.Question) []domain.Question {
	out := Shuffle(rnd, qs)
	for i := range out {
		out[i].Answers = shuffleAnswers(rnd, out[i].Answers)
	}
	return out
}
