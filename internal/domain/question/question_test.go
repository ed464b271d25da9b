package question_test

import (
	"testing"

	"github.com/flashneiga/backend/internal/domain/question"
)

func TestNew_ValidQuestion(t *testing.T) {
	q, err := question.New(
		"What does a red octagonal sign mean?",
		"signs",
		"https://example.org/stop.png",
		"A red octagon always means stop.",
		[]question.OptionSpec{
			{Text: "Stop", IsCorrect: true},
			{Text: "Yield"},
			{Text: "No entry"},
		},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(q.Options) != 3 {
		t.Fatalf("expected 3 options, got %d", len(q.Options))
	}
	for _, o := range q.Options {
		if o.ID == "" {
			t.Error("expected every option to get an ID")
		}
	}

	correct, ok := q.CorrectOption()
	if !ok {
		t.Fatal("expected a correct option")
	}
	if correct.Text != "Stop" {
		t.Errorf("expected %q to be correct, got %q", "Stop", correct.Text)
	}
}

func TestNew_RejectsMalformedRecords(t *testing.T) {
	valid := []question.OptionSpec{
		{Text: "A", IsCorrect: true},
		{Text: "B"},
	}

	tests := []struct {
		name     string
		text     string
		category string
		options  []question.OptionSpec
	}{
		{"empty text", "", "signs", valid},
		{"empty category", "Q?", "", valid},
		{"single option", "Q?", "signs", []question.OptionSpec{{Text: "A", IsCorrect: true}}},
		{"no correct option", "Q?", "signs", []question.OptionSpec{{Text: "A"}, {Text: "B"}}},
		{"two correct options", "Q?", "signs", []question.OptionSpec{
			{Text: "A", IsCorrect: true},
			{Text: "B", IsCorrect: true},
		}},
		{"empty option text", "Q?", "signs", []question.OptionSpec{
			{Text: "", IsCorrect: true},
			{Text: "B"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := question.New(tt.text, tt.category, "", "why", tt.options)
			if err == nil {
				t.Fatal("expected a validation error, got nil")
			}
			if !question.IsValidation(err) {
				t.Errorf("expected ValidationError, got %T: %v", err, err)
			}
		})
	}
}
