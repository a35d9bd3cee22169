package services

import (
	"context"
	"testing"

	"github.com/examplatform/backend/internal/app/models/dto"
)

type cannedGenerator struct {
	output string
	err    error
}

func (g cannedGenerator) GenerateText(_ context.Context, _ string) (string, error) {
	return g.output, g.err
}

const sampleArray = `[
	{"question": "What is 2+2?", "options": ["3", "4", "5"], "correctOption": 1, "marks": 2},
	{"question": "Capital of France?", "options": ["Paris", "Rome"], "correctOption": 0}
]`

func TestParseQuestionCandidates(t *testing.T) {
	questions := ParseQuestionCandidates(sampleArray, 10, 5)
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}

	if questions[0].Marks != 2 {
		t.Fatalf("explicit marks should win, got %d", questions[0].Marks)
	}
	if questions[1].Marks != 5 {
		t.Fatalf("missing marks should default, got %d", questions[1].Marks)
	}
	if questions[0].CorrectAnswer() != "4" {
		t.Fatalf("expected correct answer 4, got %q", questions[0].CorrectAnswer())
	}
	if questions[1].CorrectAnswer() != "Paris" {
		t.Fatalf("expected correct answer Paris, got %q", questions[1].CorrectAnswer())
	}
}

func TestParseQuestionCandidatesMarkdownFences(t *testing.T) {
	wrapped := "Here you go:\n```json\n" + sampleArray + "\n```\nEnjoy!"
	questions := ParseQuestionCandidates(wrapped, 10, 1)
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions from fenced output, got %d", len(questions))
	}
}

func TestParseQuestionCandidatesCapsCount(t *testing.T) {
	questions := ParseQuestionCandidates(sampleArray, 1, 1)
	if len(questions) != 1 {
		t.Fatalf("expected cap at 1, got %d", len(questions))
	}
}

func TestParseQuestionCandidatesDegradesToEmpty(t *testing.T) {
	cases := []string{
		"",
		"no json here",
		"[not valid json]",
		`[{"question": "", "options": ["a", "b"], "correctOption": 0}]`,
		`[{"question": "q", "options": ["only one"], "correctOption": 0}]`,
		`[{"question": "q", "options": ["a", "b"], "correctOption": 5}]`,
		`[{"question": "q", "options": ["a", "b"]}]`,
	}
	for _, raw := range cases {
		if got := ParseQuestionCandidates(raw, 10, 1); len(got) != 0 {
			t.Fatalf("input %q should yield no questions, got %d", raw, len(got))
		}
	}
}

func TestGenerateQuestionsUsesGenerator(t *testing.T) {
	svc := NewAIQuestionService(cannedGenerator{output: sampleArray})

	questions, err := svc.GenerateQuestions(context.Background(), &dto.AIQuestionRequest{
		Topic:            "math",
		NumQuestions:     5,
		MarksPerQuestion: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
}

func TestGenerateQuestionsUnparseableOutput(t *testing.T) {
	svc := NewAIQuestionService(cannedGenerator{output: "I cannot help with that."})

	questions, err := svc.GenerateQuestions(context.Background(), &dto.AIQuestionRequest{
		Topic:            "math",
		NumQuestions:     5,
		MarksPerQuestion: 3,
	})
	if err != nil {
		t.Fatalf("parse failures must not error: %v", err)
	}
	if len(questions) != 0 {
		t.Fatalf("expected empty result, got %d", len(questions))
	}
}
