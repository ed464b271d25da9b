// Package importer loads question batches from JSON documents, for
// bulk content management and database seeding.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/flashneiga/backend/internal/domain/question"
)

// Record is one inbound question in an import document.
type Record struct {
	Text        string                `json:"text"`
	Category    string                `json:"category"`
	ImageURL    string                `json:"image_url"`
	Explanation string                `json:"explanation"`
	Options     []question.OptionSpec `json:"options"`
}

// Document is the import file shape: a version marker plus records.
type Document struct {
	Version   string   `json:"version"`
	Questions []Record `json:"questions"`
}

// RecordError points at one rejected record.
type RecordError struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Report summarizes one import run. Malformed records are skipped and
// listed; well-formed records around them still land.
type Report struct {
	Imported int           `json:"imported"`
	Rejected int           `json:"rejected"`
	Errors   []RecordError `json:"errors,omitempty"`
}

// QuestionSaver is the slice of the store the importer needs.
type QuestionSaver interface {
	SaveQuestion(ctx context.Context, q *question.Question) error
}

// Importer validates and persists question batches.
type Importer struct {
	store QuestionSaver
}

func New(st QuestionSaver) *Importer {
	return &Importer{store: st}
}

// Import reads a JSON document from r and saves every valid record.
func (imp *Importer) Import(ctx context.Context, r io.Reader) (Report, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Report{}, fmt.Errorf("decoding import document: %w", err)
	}
	return imp.ImportRecords(ctx, doc.Questions)
}

// ImportRecords validates each record against the question schema and
// saves the ones that pass.
func (imp *Importer) ImportRecords(ctx context.Context, records []Record) (Report, error) {
	var report Report
	for i, rec := range records {
		q, err := question.New(rec.Text, rec.Category, rec.ImageURL, rec.Explanation, rec.Options)
		if err != nil {
			report.Rejected++
			report.Errors = append(report.Errors, RecordError{Index: i, Reason: err.Error()})
			continue
		}
		if err := imp.store.SaveQuestion(ctx, q); err != nil {
			return report, fmt.Errorf("saving question %d: %w", i, err)
		}
		report.Imported++
	}
	return report, nil
}
