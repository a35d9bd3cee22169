package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/examplatform/backend/internal/app/models"
	"github.com/examplatform/backend/internal/app/models/dto"
	"github.com/examplatform/backend/internal/pkg/logger"
)

// TextGenerator produces model output for a prompt. Satisfied by the Gemini
// client; tests use a canned fake.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// AIQuestionService drafts question candidates for instructors. Generated
// questions are suggestions only; nothing is persisted until the instructor
// adds them to an exam through the normal path.
type AIQuestionService struct {
	generator TextGenerator
}

// NewAIQuestionService creates a new AIQuestionService
func NewAIQuestionService(generator TextGenerator) *AIQuestionService {
	return &AIQuestionService{generator: generator}
}

const questionPrompt = `Generate %d multiple-choice questions about "%s".
Respond with ONLY a JSON array, no prose and no markdown fences.
Each element must have this shape:
{"question": "...", "options": ["...", "...", "...", "..."], "correctOption": 0, "marks": %d}
correctOption is the zero-based index of the right answer in options.`

// GenerateQuestions asks the model for candidates and returns them as
// questions ready to add to an exam. Model output that cannot be parsed
// degrades to an empty result rather than an error.
func (s *AIQuestionService) GenerateQuestions(ctx context.Context, req *dto.AIQuestionRequest) ([]models.Question, error) {
	prompt := fmt.Sprintf(questionPrompt, req.NumQuestions, req.Topic, req.MarksPerQuestion)

	raw, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	questions := ParseQuestionCandidates(raw, req.NumQuestions, req.MarksPerQuestion)
	if len(questions) == 0 {
		logger.Warn().Str("topic", req.Topic).Msg("Model output yielded no usable questions")
	}
	return questions, nil
}

// ParseQuestionCandidates extracts questions from raw model output. The
// output is expected to contain a JSON array of candidates, possibly wrapped
// in markdown fences or surrounding prose. Unparseable output or malformed
// candidates are dropped, never surfaced as errors, and the result is capped
// at maxQuestions.
func ParseQuestionCandidates(raw string, maxQuestions, defaultMarks int) []models.Question {
	payload := extractJSONArray(raw)
	if payload == "" {
		return nil
	}

	var candidates []dto.AIQuestionCandidate
	if err := json.Unmarshal([]byte(payload), &candidates); err != nil {
		return nil
	}

	questions := make([]models.Question, 0, len(candidates))
	for _, c := range candidates {
		if len(questions) >= maxQuestions {
			break
		}
		if c.Question == "" || len(c.Options) < 2 {
			continue
		}
		if c.CorrectOption == nil || *c.CorrectOption < 0 || *c.CorrectOption >= len(c.Options) {
			continue
		}

		marks := defaultMarks
		if c.Marks != nil && *c.Marks > 0 {
			marks = *c.Marks
		}

		options := make([]models.Option, len(c.Options))
		for i, text := range c.Options {
			options[i] = models.Option{Text: text, IsCorrect: i == *c.CorrectOption}
		}
		questions = append(questions, models.Question{
			Text:    c.Question,
			Options: options,
			Marks:   marks,
		})
	}
	return questions
}

// extractJSONArray returns the outermost JSON array in the text, or "" when
// there is none
func extractJSONArray(raw string) string {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return raw[start : end+1]
}
