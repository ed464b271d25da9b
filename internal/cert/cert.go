// Package cert renders a PDF result sheet for a completed theory exam.
package cert

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

type CategoryRow struct {
	Category string
	Correct  int
	Answered int
}

// Data carries everything printed on the result sheet.
type Data struct {
	SessionID   string
	LearnerName string
	Correct     int
	Total       int
	Passed      bool
	CompletedAt time.Time
	Categories  []CategoryRow
}

// GeneratePDF renders the result sheet and returns the raw PDF bytes.
func GeneratePDF(data Data) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 26)
	pdf.CellFormat(0, 16, "Driving Theory Exam Result", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 10, "Official practice examination record", "", 1, "C", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, data.LearnerName, "", 1, "C", false, 0, "")

	verdict := "NOT PASSED"
	if data.Passed {
		verdict = "PASSED"
	}
	pdf.SetFont("Helvetica", "", 13)
	pdf.CellFormat(0, 8,
		fmt.Sprintf("Result: %s | Score: %d/%d (%.1f%%) | Date: %s",
			verdict, data.Correct, data.Total,
			pct(data.Correct, data.Total),
			data.CompletedAt.Format("2006-01-02")),
		"", 1, "C", false, 0, "")

	if len(data.Categories) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Per-Category Breakdown", "", 1, "C", false, 0, "")

		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(90, 7, "Category", "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, "Correct", "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, "Answered", "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, "Percent", "1", 1, "C", false, 0, "")

		rows := make([]CategoryRow, len(data.Categories))
		copy(rows, data.Categories)
		sort.Slice(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })

		pdf.SetFont("Helvetica", "", 10)
		for _, row := range rows {
			pdf.CellFormat(90, 7, titleCase(row.Category), "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 7, fmt.Sprintf("%d", row.Correct), "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 7, fmt.Sprintf("%d", row.Answered), "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 7, fmt.Sprintf("%.0f%%", pct(row.Correct, row.Answered)), "1", 1, "C", false, 0, "")
		}
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 5,
		"This document records the outcome of a practice theory examination. "+
			"It is not a substitute for the official test administered by the licensing authority.",
		"", "C", false)

	pdf.Ln(2)
	pdf.CellFormat(0, 6, "Session ID: "+data.SessionID, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pct(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) * 100 / float64(b)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
