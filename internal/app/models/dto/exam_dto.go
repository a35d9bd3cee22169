package dto

import "github.com/examplatform/backend/internal/app/models"

// CreateExamRequest represents an exam creation request
type CreateExamRequest struct {
	CourseID          int64  `json:"courseId" binding:"required"`
	Title             string `json:"title" binding:"required"`
	Duration          int    `json:"duration"`
	NumberOfQuestions int    `json:"numberOfQuestions"`
	TotalScore        int    `json:"totalScore"`
	PassingScore      int    `json:"passingScore"` // optional override; derived when 0
	MaxAttempts       int    `json:"maxAttempts"`
}

// UpdateExamRequest represents a partial exam update; zero values leave the
// stored field unchanged.
type UpdateExamRequest struct {
	Title             string `json:"title"`
	Duration          int    `json:"duration"`
	NumberOfQuestions int    `json:"numberOfQuestions"`
	TotalScore        int    `json:"totalScore"`
	PassingScore      int    `json:"passingScore"`
	MaxAttempts       int    `json:"maxAttempts"`
}

// AddQuestionRequest adds a question to an exam
type AddQuestionRequest struct {
	Text    string          `json:"text" binding:"required"`
	Options []models.Option `json:"options" binding:"required,min=2"`
	Marks   int             `json:"marks" binding:"required,min=1"`
}

// SubmitExamRequest carries a student's answers as parallel arrays: answers[i]
// responds to questionIds[i].
type SubmitExamRequest struct {
	Answers     []string `json:"answers" binding:"required"`
	QuestionIDs []int64  `json:"questionIds" binding:"required"`
}

// ExamView is the student-facing presentation of an exam: same metadata, but
// the question list is the shuffled, size-limited subset with correctness
// flags stripped.
type ExamView struct {
	ID                int64             `json:"id"`
	CourseID          int64             `json:"courseId"`
	Title             string            `json:"title"`
	Duration          int               `json:"duration"`
	NumberOfQuestions int               `json:"numberOfQuestions"`
	TotalScore        int               `json:"totalScore"`
	PassingScore      int               `json:"passingScore"`
	MaxAttempts       int               `json:"maxAttempts"`
	Published         bool              `json:"published"`
	Questions         []models.Question `json:"questions"`
}
