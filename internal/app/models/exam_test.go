package models

import "testing"

func TestDerivePassingScore(t *testing.T) {
	cases := []struct {
		total int
		want  int
	}{
		{0, 0},
		{10, 3},
		{100, 30},
		{7, 3},  // ceil(2.1)
		{1, 1},  // ceil(0.3)
		{33, 10},
	}
	for _, tc := range cases {
		if got := DerivePassingScore(tc.total); got != tc.want {
			t.Errorf("DerivePassingScore(%d) = %d, want %d", tc.total, got, tc.want)
		}
	}
}

func TestSetTotalScoreRederives(t *testing.T) {
	exam := &Exam{}
	exam.SetTotalScore(100)
	if exam.PassingScore != 30 {
		t.Fatalf("expected 30, got %d", exam.PassingScore)
	}

	exam.OverridePassingScore(50)
	if exam.PassingScore != 50 {
		t.Fatalf("override should stick, got %d", exam.PassingScore)
	}

	// Setting a new total resets the derivation
	exam.SetTotalScore(10)
	if exam.PassingScore != 3 {
		t.Fatalf("new total should re-derive, got %d", exam.PassingScore)
	}
}

func TestOverridePassingScoreIgnoresNonPositive(t *testing.T) {
	exam := &Exam{}
	exam.SetTotalScore(100)

	exam.OverridePassingScore(0)
	if exam.PassingScore != 30 {
		t.Fatalf("zero override must be ignored, got %d", exam.PassingScore)
	}
	exam.OverridePassingScore(-5)
	if exam.PassingScore != 30 {
		t.Fatalf("negative override must be ignored, got %d", exam.PassingScore)
	}
}

func TestEnsureDefaults(t *testing.T) {
	exam := &Exam{
		TotalScore: 20,
		Questions:  []Question{{}, {}, {}},
	}
	exam.EnsureDefaults()

	if exam.NumberOfQuestions != 3 {
		t.Fatalf("question count should fall back to len(questions), got %d", exam.NumberOfQuestions)
	}
	if exam.MaxAttempts != 1 {
		t.Fatalf("max attempts should default to 1, got %d", exam.MaxAttempts)
	}
	if exam.PassingScore != 6 {
		t.Fatalf("passing score should derive to 6, got %d", exam.PassingScore)
	}
}

func TestQuestionCorrectAnswer(t *testing.T) {
	q := Question{Options: []Option{
		{Text: "a"},
		{Text: "b", IsCorrect: true},
		{Text: "c", IsCorrect: true},
	}}
	if got := q.CorrectAnswer(); got != "b" {
		t.Fatalf("expected first correct option, got %q", got)
	}

	none := Question{Options: []Option{{Text: "a"}, {Text: "b"}}}
	if got := none.CorrectAnswer(); got != "" {
		t.Fatalf("expected empty answer, got %q", got)
	}
}

func TestQuestionSanitized(t *testing.T) {
	q := Question{
		ID:   7,
		Text: "pick one",
		Options: []Option{
			{Text: "a", IsCorrect: true},
			{Text: "b"},
		},
	}

	clean := q.Sanitized()
	if clean.ID != 7 || clean.Text != "pick one" {
		t.Fatalf("metadata must survive sanitization: %+v", clean)
	}
	for _, opt := range clean.Options {
		if opt.IsCorrect {
			t.Fatal("sanitized question leaked a correctness flag")
		}
	}
	// The original stays intact
	if !q.Options[0].IsCorrect {
		t.Fatal("sanitization mutated the original")
	}
}

func TestParseRoleType(t *testing.T) {
	for _, valid := range []string{"ADMIN", "INSTRUCTOR", "STUDENT"} {
		if _, ok := ParseRoleType(valid); !ok {
			t.Errorf("ParseRoleType(%q) should succeed", valid)
		}
	}
	for _, invalid := range []string{"", "admin", "SUPERUSER", "Student"} {
		if _, ok := ParseRoleType(invalid); ok {
			t.Errorf("ParseRoleType(%q) should fail", invalid)
		}
	}
}
