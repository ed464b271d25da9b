package cert_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/flashneiga/backend/internal/cert"
)

func TestGeneratePDF(t *testing.T) {
	data := cert.Data{
		SessionID:   "sess-1",
		LearnerName: "Ada Lovelace",
		Correct:     27,
		Total:       30,
		Passed:      true,
		CompletedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		Categories: []cert.CategoryRow{
			{Category: "signs", Correct: 10, Answered: 10},
			{Category: "priorities", Correct: 8, Answered: 10},
			{Category: "speed", Correct: 9, Answered: 10},
		},
	}

	out, err := cert.GeneratePDF(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected non-empty PDF output")
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("expected PDF header, got %q", out[:min(8, len(out))])
	}
}

func TestGeneratePDF_NoCategories(t *testing.T) {
	data := cert.Data{
		SessionID:   "sess-2",
		LearnerName: "Grace Hopper",
		Correct:     20,
		Total:       30,
		Passed:      false,
		CompletedAt: time.Now(),
	}

	out, err := cert.GeneratePDF(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("expected PDF header")
	}
}
