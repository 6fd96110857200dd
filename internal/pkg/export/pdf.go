package export

import (
	"bytes"
	"fmt"
	"math"

	"github.com/escuela-horarios/attendance-backend/internal/domain/report"
	"github.com/jung-kurt/gofpdf"
)

// Header band colour.
var headerColor = report.Color{R: 41, G: 128, B: 185}

// PDFExporter draws one A4 page per role page of a report.Document.
type PDFExporter struct{}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

func (e *PDFExporter) Extension() string   { return report.FormatPDF }
func (e *PDFExporter) ContentType() string { return "application/pdf" }

func (e *PDFExporter) Export(doc report.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Title, true)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, page := range doc.Pages {
		pdf.AddPage()
		drawHeader(pdf, tr, doc, page)

		if page.Empty {
			pdf.SetFont("Arial", "I", 12)
			pdf.SetTextColor(128, 128, 128)
			pdf.CellFormat(0, 20, tr(page.Placeholder), "", 1, "C", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
			continue
		}

		drawStatBoxes(pdf, page.Stats)
		if page.Chart != nil {
			drawPie(pdf, tr, *page.Chart, page.Stats.Total)
		}
		if page.Table != nil {
			drawTable(pdf, tr, *page.Table)
		}
	}

	if pdf.Err() {
		return nil, fmt.Errorf("build pdf: %w", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func setFill(pdf *gofpdf.Fpdf, c report.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func drawHeader(pdf *gofpdf.Fpdf, tr func(string) string, doc report.Document, page report.Page) {
	setFill(pdf, headerColor)
	pdf.Rect(0, 0, 210, 28, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 16)
	pdf.SetXY(15, 8)
	pdf.CellFormat(0, 8, tr(doc.Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.SetX(15)
	pdf.CellFormat(0, 6, tr(page.Title), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetY(34)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(25, 6, "Teacher:", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, tr(doc.TeacherName), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(25, 6, "Period:", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, doc.Period(), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func drawStatBoxes(pdf *gofpdf.Fpdf, stats report.Stats) {
	boxes := []struct {
		label string
		value int
		color report.Color
	}{
		{"Total", stats.Total, headerColor},
		{"Present", stats.Present, report.ColorPositive},
		{"Absent", stats.Absent, report.ColorNegative},
	}

	y := pdf.GetY()
	x := 15.0
	for _, b := range boxes {
		setFill(pdf, b.color)
		pdf.Rect(x, y, 56, 18, "F")
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Arial", "", 9)
		pdf.SetXY(x, y+2)
		pdf.CellFormat(56, 5, b.label, "", 0, "C", false, 0, "")
		pdf.SetFont("Arial", "B", 14)
		pdf.SetXY(x, y+8)
		pdf.CellFormat(56, 8, fmt.Sprintf("%d", b.value), "", 0, "C", false, 0, "")
		x += 62
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(y + 24)
}

// drawPie renders slices as filled polygons starting at twelve o'clock with a legend on the right.
func drawPie(pdf *gofpdf.Fpdf, tr func(string) string, chart report.Chart, total int) {
	const radius = 25.0
	top := pdf.GetY()
	cx, cy := 55.0, top+radius

	if total > 0 {
		angle := -90.0
		for _, s := range chart.Slices {
			if s.Count == 0 {
				continue
			}
			sweep := float64(s.Count) / float64(total) * 360
			setFill(pdf, s.Color)
			pdf.Polygon(wedge(cx, cy, radius, angle, angle+sweep), "F")
			angle += sweep
		}
	}

	pdf.SetFont("Arial", "", 10)
	ly := top + 12
	for _, s := range chart.Slices {
		setFill(pdf, s.Color)
		pdf.Rect(110, ly, 5, 5, "F")
		pdf.SetXY(118, ly)
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("%s: %d (%d%%)", s.Label, s.Count, s.Percentage)), "", 0, "L", false, 0, "")
		ly += 8
	}

	pdf.SetY(top + 2*radius + 8)
}

func wedge(cx, cy, r, from, to float64) []gofpdf.PointType {
	points := []gofpdf.PointType{{X: cx, Y: cy}}
	steps := int(math.Ceil((to-from)/3)) + 1
	for i := 0; i <= steps; i++ {
		a := (from + (to-from)*float64(i)/float64(steps)) * math.Pi / 180
		points = append(points, gofpdf.PointType{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)})
	}
	return points
}

var columnWidths = []float64{25, 18, 50, 62, 25}

func drawTable(pdf *gofpdf.Fpdf, tr func(string) string, table report.Table) {
	header := func() {
		pdf.SetFont("Arial", "B", 9)
		setFill(pdf, headerColor)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range table.Headers {
			pdf.CellFormat(columnWidths[i], 8, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	pdf.SetFont("Arial", "", 8)
	for _, row := range table.Rows {
		cells := make([][]string, len(columnWidths))
		lines := 1
		for i, width := range columnWidths {
			text := ""
			if i < len(row) {
				text = tr(row[i].Text)
			}
			cells[i] = cellLines(pdf, text, width)
			lines = max(lines, len(cells[i]))
		}
		height := max(7, float64(lines)*tableLineHeight+2)

		if pdf.GetY()+height > pageHeight-15 {
			pdf.AddPage()
			header()
			pdf.SetFont("Arial", "", 8)
		}

		left, top := pdf.GetX(), pdf.GetY()
		x := left
		for i, width := range columnWidths {
			style := "D"
			if i < len(row) && row[i].Color != nil {
				setFill(pdf, *row[i].Color)
				pdf.SetTextColor(255, 255, 255)
				style = "FD"
			}
			pdf.Rect(x, top, width, height, style)

			textTop := top + (height-float64(len(cells[i]))*tableLineHeight)/2
			for j, line := range cells[i] {
				pdf.SetXY(x, textTop+float64(j)*tableLineHeight)
				pdf.CellFormat(width, tableLineHeight, line, "", 0, "C", false, 0, "")
			}
			pdf.SetTextColor(0, 0, 0)
			x += width
		}
		pdf.SetXY(left, top+height)
	}
}

const tableLineHeight = 4.5

// cellLines wraps text to the column width using the current font.
func cellLines(pdf *gofpdf.Fpdf, text string, width float64) []string {
	split := pdf.SplitLines([]byte(text), width-2)
	if len(split) == 0 {
		return []string{""}
	}
	lines := make([]string, len(split))
	for i, l := range split {
		lines[i] = string(l)
	}
	return lines
}
