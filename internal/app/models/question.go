package models

// Option is a single answer choice of a question. The structured option list
// is the canonical representation; the legacy single correct-answer string is
// derived from it via CorrectAnswer.
type Option struct {
	Text      string `json:"optionText"`
	IsCorrect bool   `json:"isCorrect"`
}

// Question represents a question owned by an exam. The db row stores the
// option list as a JSONB column.
type Question struct {
	ID      int64    `json:"id" db:"id"`
	ExamID  int64    `json:"examId" db:"exam_id"`
	Text    string   `json:"text" db:"text"`
	Options []Option `json:"options" db:"options"`
	Marks   int      `json:"marks" db:"marks"`
}

// CorrectAnswer returns the text of the first option flagged correct, or ""
// when the question has none.
func (q *Question) CorrectAnswer() string {
	for _, opt := range q.Options {
		if opt.IsCorrect {
			return opt.Text
		}
	}
	return ""
}

// Sanitized returns a copy safe to show to a student: the correctness flags
// are stripped while the option order is preserved.
func (q *Question) Sanitized() Question {
	out := *q
	out.Options = make([]Option, len(q.Options))
	for i, opt := range q.Options {
		out.Options[i] = Option{Text: opt.Text}
	}
	return out
}
