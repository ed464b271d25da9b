package question

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/flashneiga/backend/internal/id"
)

// Option is a single answer choice. Exactly one option per question
// carries IsCorrect = true.
type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Question is a multiple-choice theory question.
type Question struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url,omitempty"`
	Options     []Option  `json:"options"`
	Explanation string    `json:"explanation"`
	CreatedAt   time.Time `json:"created_at"`
}

// ValidationError reports a malformed question record. Records that do
// not match the strict schema are rejected at the boundary instead of
// being probed for alternative field shapes.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid question: %s %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a question ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// New builds a validated question. Option IDs are generated here;
// callers supply only text and the correct flag.
func New(text, category, imageURL, explanation string, options []OptionSpec) (*Question, error) {
	q := &Question{
		ID:          uuid.NewString(),
		Text:        text,
		Category:    category,
		ImageURL:    imageURL,
		Explanation: explanation,
		CreatedAt:   time.Now().UTC(),
	}
	for _, o := range options {
		q.Options = append(q.Options, Option{
			ID:        id.GenerateID(),
			Text:      o.Text,
			IsCorrect: o.IsCorrect,
		})
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// OptionSpec is the inbound shape for an option before an ID is assigned.
type OptionSpec struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Validate enforces the strict schema: non-empty text and category,
// at least two options, each with an ID and text, exactly one correct.
func (q *Question) Validate() error {
	if q.Text == "" {
		return &ValidationError{Field: "text", Reason: "is required"}
	}
	if q.Category == "" {
		return &ValidationError{Field: "category", Reason: "is required"}
	}
	if len(q.Options) < 2 {
		return &ValidationError{Field: "options", Reason: "requires at least two entries"}
	}
	correct := 0
	for i, o := range q.Options {
		if o.ID == "" {
			return &ValidationError{Field: fmt.Sprintf("options[%d].id", i), Reason: "is required"}
		}
		if o.Text == "" {
			return &ValidationError{Field: fmt.Sprintf("options[%d].text", i), Reason: "is required"}
		}
		if o.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return &ValidationError{Field: "options", Reason: fmt.Sprintf("must mark exactly one correct option, found %d", correct)}
	}
	return nil
}

// CorrectOption returns the single option marked correct.
// Valid questions always have one.
func (q *Question) CorrectOption() (Option, bool) {
	for _, o := range q.Options {
		if o.IsCorrect {
			return o, true
		}
	}
	return Option{}, false
}
