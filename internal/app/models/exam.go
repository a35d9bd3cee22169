package models

import (
	"math"
	"time"
)

// DefaultPassingRatio is the fraction of the total score required to pass
// when no explicit passing score is given.
const DefaultPassingRatio = 0.3

// Exam represents an exam belonging to a course. An exam owns its questions;
// questions refer back to the exam by id only, never by pointer.
type Exam struct {
	ID                int64      `json:"id" db:"id"`
	CourseID          int64      `json:"courseId" db:"course_id"`
	Title             string     `json:"title" db:"title"`
	Duration          int        `json:"duration" db:"duration"` // minutes
	NumberOfQuestions int        `json:"numberOfQuestions" db:"number_of_questions"`
	TotalScore        int        `json:"totalScore" db:"total_score"`
	PassingScore      int        `json:"passingScore" db:"passing_score"`
	MaxAttempts       int        `json:"maxAttempts" db:"max_attempts"`
	Published         bool       `json:"published" db:"published"`
	CreatedAt         time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time  `json:"updatedAt" db:"updated_at"`
	Questions         []Question `json:"questions,omitempty"`
}

// DerivePassingScore returns the default passing score for a total score,
// ceil(total * 0.3).
func DerivePassingScore(totalScore int) int {
	return int(math.Ceil(float64(totalScore) * DefaultPassingRatio))
}

// SetTotalScore sets the total score and re-derives the passing score from it.
// An explicitly overridden positive passing score survives a later call to
// OverridePassingScore, but setting the total always resets the derived value
// first, keeping the invariant passingScore > 0 whenever totalScore > 0.
func (e *Exam) SetTotalScore(totalScore int) {
	e.TotalScore = totalScore
	e.PassingScore = DerivePassingScore(totalScore)
}

// OverridePassingScore replaces the derived passing score. Non-positive
// overrides are ignored so the derivation invariant cannot be broken.
func (e *Exam) OverridePassingScore(passingScore int) {
	if passingScore > 0 {
		e.PassingScore = passingScore
	}
}

// EnsureDefaults fills derived fields before the exam is persisted: question
// count falls back to the size of the question set and the passing score to
// the derived default.
func (e *Exam) EnsureDefaults() {
	if e.NumberOfQuestions <= 0 {
		e.NumberOfQuestions = len(e.Questions)
	}
	if e.MaxAttempts <= 0 {
		e.MaxAttempts = 1
	}
	if e.PassingScore <= 0 {
		e.PassingScore = DerivePassingScore(e.TotalScore)
	}
}
