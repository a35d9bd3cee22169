package dto

// AIQuestionRequest asks the generation service for question candidates
type AIQuestionRequest struct {
	Topic            string `json:"topic" binding:"required"`
	NumQuestions     int    `json:"numQuestions" binding:"required,min=1,max=50"`
	MarksPerQuestion int    `json:"marksPerQuestion" binding:"required,min=1"`
}

// AIQuestionCandidate is one generated question as returned by the model.
// CorrectOption is a zero-based index into Options.
type AIQuestionCandidate struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption *int     `json:"correctOption"`
	Marks         *int     `json:"marks"`
}
