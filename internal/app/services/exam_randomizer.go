package services

import (
	"math/rand"
	"sync"
	"time"

	"github.com/examplatform/backend/internal/app/models"
)

// ExamRandomizer draws the per-attempt question subset. Every attempt gets an
// independently shuffled view, so two students (or two attempts) rarely see
// the same ordering.
type ExamRandomizer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewExamRandomizer creates a randomizer seeded from the clock
func NewExamRandomizer() *ExamRandomizer {
	return NewExamRandomizerWithSeed(time.Now().UnixNano())
}

// NewExamRandomizerWithSeed creates a randomizer with a fixed seed
func NewExamRandomizerWithSeed(seed int64) *ExamRandomizer {
	return &ExamRandomizer{rng: rand.New(rand.NewSource(seed))}
}

// Randomize returns a shuffled copy of the question set truncated to the
// exam's subset size. The input slice is never mutated.
//
// The subset size is the exam's configured question count when positive.
// Otherwise it is derived as totalScore divided by the marks of the first
// shuffled question; a first question worth zero marks makes the division
// meaningless, in which case the whole shuffled set is returned.
func (r *ExamRandomizer) Randomize(exam *models.Exam, questions []models.Question) []models.Question {
	if len(questions) == 0 {
		return nil
	}

	shuffled := make([]models.Question, len(questions))
	copy(shuffled, questions)

	r.mu.Lock()
	r.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	r.mu.Unlock()

	k := exam.NumberOfQuestions
	if k <= 0 {
		marks := shuffled[0].Marks
		if marks <= 0 {
			return shuffled
		}
		k = exam.TotalScore / marks
	}
	if k <= 0 || k > len(shuffled) {
		return shuffled
	}
	return shuffled[:k]
}
