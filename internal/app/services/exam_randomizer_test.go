package services

import (
	"fmt"
	"testing"

	"github.com/examplatform/backend/internal/app/models"
)

func makeQuestions(n, marks int) []models.Question {
	questions := make([]models.Question, n)
	for i := range questions {
		questions[i] = models.Question{
			ID:    int64(i + 1),
			Text:  fmt.Sprintf("question %d", i+1),
			Marks: marks,
			Options: []models.Option{
				{Text: "a", IsCorrect: true},
				{Text: "b"},
			},
		}
	}
	return questions
}

func TestRandomizeSubsetSize(t *testing.T) {
	r := NewExamRandomizerWithSeed(1)
	exam := &models.Exam{NumberOfQuestions: 3}
	questions := makeQuestions(10, 5)

	got := r.Randomize(exam, questions)
	if len(got) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(got))
	}

	seen := map[int64]bool{}
	for _, q := range got {
		if seen[q.ID] {
			t.Fatalf("question %d returned twice", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestRandomizeDerivesCountFromMarks(t *testing.T) {
	r := NewExamRandomizerWithSeed(1)
	// 20 total / 5 marks each = 4 questions
	exam := &models.Exam{NumberOfQuestions: 0, TotalScore: 20}
	questions := makeQuestions(10, 5)

	got := r.Randomize(exam, questions)
	if len(got) != 4 {
		t.Fatalf("expected 4 questions, got %d", len(got))
	}
}

func TestRandomizeZeroMarksReturnsAll(t *testing.T) {
	r := NewExamRandomizerWithSeed(1)
	exam := &models.Exam{NumberOfQuestions: 0, TotalScore: 20}
	questions := makeQuestions(6, 0)

	got := r.Randomize(exam, questions)
	if len(got) != 6 {
		t.Fatalf("expected all 6 questions when marks are zero, got %d", len(got))
	}
}

func TestRandomizeCountExceedsPool(t *testing.T) {
	r := NewExamRandomizerWithSeed(1)
	exam := &models.Exam{NumberOfQuestions: 50}
	questions := makeQuestions(4, 5)

	got := r.Randomize(exam, questions)
	if len(got) != 4 {
		t.Fatalf("expected the whole pool of 4, got %d", len(got))
	}
}

func TestRandomizeDoesNotMutateInput(t *testing.T) {
	r := NewExamRandomizerWithSeed(7)
	exam := &models.Exam{NumberOfQuestions: 5}
	questions := makeQuestions(10, 5)

	for i := 0; i < 20; i++ {
		r.Randomize(exam, questions)
	}
	for i, q := range questions {
		if q.ID != int64(i+1) {
			t.Fatalf("input slice was reordered at index %d", i)
		}
	}
}

func TestRandomizeVariesAcrossCalls(t *testing.T) {
	r := NewExamRandomizerWithSeed(42)
	exam := &models.Exam{NumberOfQuestions: 10}
	questions := makeQuestions(10, 5)

	first := r.Randomize(exam, questions)
	for i := 0; i < 50; i++ {
		next := r.Randomize(exam, questions)
		for j := range next {
			if next[j].ID != first[j].ID {
				return
			}
		}
	}
	t.Fatal("50 shuffles produced identical orderings")
}

func TestRandomizeEmptyPool(t *testing.T) {
	r := NewExamRandomizerWithSeed(1)
	exam := &models.Exam{NumberOfQuestions: 3}

	if got := r.Randomize(exam, nil); got != nil {
		t.Fatalf("expected nil for empty pool, got %v", got)
	}
}
