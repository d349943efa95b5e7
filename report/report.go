// Package report renders a summary result as a paginated PDF document.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"pmo-review-api/summary"
	"pmo-review-api/utils"

	"github.com/go-pdf/fpdf"
)

const (
	margin      = 15.0
	lineHeight  = 6.0
	headingLine = 8.0
	fontFamily  = "Helvetica"
)

// FileName is the download name of a report exported on now.
func FileName(scope summary.Scope, now time.Time) string {
	return fmt.Sprintf("pmo-report-%s-%s.pdf", scope, now.Format("2006-01-02"))
}

type renderer struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	width float64
	limit float64
}

// Render writes one PDF for r to w. A degraded result is rendered as the
// error message followed by the raw model text.
func Render(w io.Writer, r *summary.Result, now time.Time) error {
	if r == nil {
		return fmt.Errorf("report: nil result")
	}

	rd := newRenderer()
	pdf := rd.pdf
	pdf.SetTitle(fmt.Sprintf("PMO Report (%s)", r.Scope), true)
	pdf.SetCreator("pmo-review-api", true)

	rd.header(r.Scope, now)
	if r.Kind == summary.KindDegraded || r.Summary == nil {
		rd.degraded(r.Raw)
	} else {
		rd.summary(r.Summary)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return pdf.Output(w)
}

func newRenderer() *renderer {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	return &renderer{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		width: pageW - 2*margin,
		limit: pageH - margin,
	}
}

func (rd *renderer) header(scope summary.Scope, now time.Time) {
	rd.pdf.SetFont(fontFamily, "B", 18)
	rd.pdf.CellFormat(rd.width, 10, rd.tr("PMO Review Report"), "", 1, "L", false, 0, "")
	rd.pdf.SetFont(fontFamily, "", 10)
	label := "Zone"
	if scope == summary.ScopeDepartment {
		label = "Department"
	}
	rd.pdf.CellFormat(rd.width, lineHeight, rd.tr(fmt.Sprintf("Grouped by %s | Generated %s", label, utils.FormatReportDate(now))), "", 1, "L", false, 0, "")
	rd.pdf.Ln(4)
}

func (rd *renderer) summary(s *summary.Summary) {
	if len(s.Highlights) > 0 {
		rd.heading("Highlights", 14)
		rd.bullets(s.Highlights)
		rd.pdf.Ln(3)
	}

	for _, g := range s.Groups {
		// Keep a group title with its metrics line.
		rd.ensure(10 + lineHeight)
		rd.heading(g.Name, 13)
		rd.pdf.SetFont(fontFamily, "", 10)
		rd.pdf.CellFormat(rd.width, lineHeight, rd.tr(fmt.Sprintf(
			"Total reviews: %d   Completed: %d   Draft: %d",
			g.Metrics.TotalReviews, g.Metrics.Completed, g.Metrics.Draft,
		)), "", 1, "L", false, 0, "")

		rd.section("Key themes", g.KeyThemes)
		rd.section("Issues", g.Issues)
		rd.section("Action items", g.ActionItems)
		rd.pdf.Ln(3)
	}
}

func (rd *renderer) degraded(raw string) {
	rd.heading(summary.InvalidJSONMessage, 13)
	rd.pdf.SetFont("Courier", "", 9)
	for _, line := range strings.Split(raw, "\n") {
		rd.paragraph(line, 4.5)
	}
}

func (rd *renderer) section(title string, items []string) {
	if len(items) == 0 {
		return
	}
	rd.ensure(2 * lineHeight)
	rd.pdf.SetFont(fontFamily, "B", 11)
	rd.pdf.CellFormat(rd.width, lineHeight, rd.tr(title), "", 1, "L", false, 0, "")
	rd.bullets(items)
}

// heading wraps like paragraph so long zone or department names stay inside
// the margins.
func (rd *renderer) heading(text string, size float64) {
	rd.pdf.SetFont(fontFamily, "B", size)
	rd.paragraph(text, headingLine)
	rd.pdf.Ln(2)
}

func (rd *renderer) bullets(items []string) {
	rd.pdf.SetFont(fontFamily, "", 10)
	for _, it := range items {
		rd.paragraph("- "+it, lineHeight)
	}
}

// paragraph writes text wrapped to the page width, starting a new page
// first when the wrapped block does not fit in the remaining space.
func (rd *renderer) paragraph(text string, h float64) {
	lines := rd.pdf.SplitLines([]byte(rd.tr(text)), rd.width)
	if len(lines) == 0 {
		lines = [][]byte{{}}
	}
	rd.ensure(float64(len(lines)) * h)
	for _, l := range lines {
		rd.ensure(h)
		rd.pdf.CellFormat(rd.width, h, string(l), "", 1, "L", false, 0, "")
	}
}

// ensure adds a page when fewer than h millimetres remain. A block taller
// than a whole page is split line by line instead.
func (rd *renderer) ensure(h float64) {
	if rd.pdf.GetY()+h <= rd.limit {
		return
	}
	if h > rd.limit-margin && rd.pdf.GetY() <= margin {
		return
	}
	rd.pdf.AddPage()
}
