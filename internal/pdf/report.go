// Package pdf renders the single-page feedback report employees can download.
package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

// Record is one feedback item as printed in the report.
type Record struct {
	Date           time.Time
	Author         string
	Strengths      string
	AreasToImprove string
	Sentiment      string
	Acknowledged   bool
}

const (
	margin     = 15.0
	lineHeight = 5.0
	blockGap   = 4.0
	footerRoom = 10.0
)

// RenderFeedbackReport writes a one-page A4 report to w. Records are printed
// in the given order until the page is full; the remainder is summarised in a
// closing line.
func RenderFeedbackReport(w io.Writer, title string, records []Record) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(margin, margin, margin)
	doc.SetAutoPageBreak(false, margin)
	doc.AddPage()
	tr := doc.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := doc.GetPageSize()
	textW := pageW - 2*margin
	limit := pageH - margin - footerRoom

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(textW, 10, tr(title), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 9)
	doc.CellFormat(textW, lineHeight, tr(fmt.Sprintf("%d feedback item(s)", len(records))), "", 1, "L", false, 0, "")
	doc.Ln(blockGap)

	if len(records) == 0 {
		doc.SetFont("Helvetica", "I", 11)
		doc.CellFormat(textW, lineHeight, "No feedback yet.", "", 1, "L", false, 0, "")
		return output(doc, w)
	}

	printed := 0
	for _, r := range records {
		header := headerLine(r)
		strengths := "Strengths: " + r.Strengths
		areas := "Areas to improve: " + r.AreasToImprove

		doc.SetFont("Helvetica", "", 10)
		lines := 1 + len(doc.SplitText(tr(strengths), textW)) + len(doc.SplitText(tr(areas), textW))
		if doc.GetY()+float64(lines)*lineHeight > limit {
			break
		}

		doc.SetFont("Helvetica", "B", 11)
		doc.CellFormat(textW, lineHeight, tr(header), "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.MultiCell(textW, lineHeight, tr(strengths), "", "L", false)
		doc.MultiCell(textW, lineHeight, tr(areas), "", "L", false)
		doc.Ln(blockGap)
		printed++
	}

	if rest := len(records) - printed; rest > 0 {
		doc.SetFont("Helvetica", "I", 10)
		doc.CellFormat(textW, lineHeight, fmt.Sprintf("... and %d more feedback item(s) not shown.", rest), "", 1, "L", false, 0, "")
	}
	return output(doc, w)
}

func headerLine(r Record) string {
	ack := "not acknowledged"
	if r.Acknowledged {
		ack = "acknowledged"
	}
	s := fmt.Sprintf("%s  |  %s  |  %s", r.Date.UTC().Format("2006-01-02"), r.Sentiment, ack)
	if r.Author != "" {
		s += "  |  from " + r.Author
	}
	return s
}

func output(doc *fpdf.Fpdf, w io.Writer) error {
	if err := doc.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
