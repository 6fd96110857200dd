package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/escuela-horarios/attendance-backend/internal/domain/attendance"
	"github.com/escuela-horarios/attendance-backend/internal/domain/report"
	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDocument() report.Document {
	day := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	rows := []report.Row{
		{Date: day, Hour: "07:00", SubjectName: "Cálculo", GroupInfo: "3A (Aula 12 - Edificio B)", Status: attendance.StatusPresent},
		{Date: day.AddDate(0, 0, 2), Hour: "07:00", SubjectName: "Cálculo", GroupInfo: "3A (Aula 12 - Edificio B)", Status: attendance.StatusAbsent},
		{Date: day.AddDate(0, 0, 7), Hour: "07:00", SubjectName: "Cálculo", GroupInfo: "3A (Aula 12 - Edificio B)", Status: attendance.StatusPending},
	}

	return report.Document{
		Title:       "Attendance report",
		TeacherID:   4,
		TeacherName: "Ana López",
		Start:       day,
		End:         day.AddDate(0, 0, 13),
		GeneratedAt: day,
		Pages: []report.Page{
			report.BuildPage(attendance.RoleTeacher, rows),
			report.BuildPage(attendance.RoleGroupLeader, rows[:1]),
			report.BuildPage(attendance.RoleChecker, nil),
		},
	}
}

func TestPDFExporter_Export(t *testing.T) {
	e := NewPDFExporter()

	data, err := e.Export(sampleDocument())

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Equal(t, "pdf", e.Extension())
	assert.Equal(t, "application/pdf", e.ContentType())
}

func TestPDFExporter_ManyRowsSpillOntoNewPages(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]report.Row, 0, 120)
	for i := 0; i < 120; i++ {
		rows = append(rows, report.Row{Date: day.AddDate(0, 0, i), Hour: "08:00", SubjectName: "Física", GroupInfo: "3A", Status: attendance.StatusPresent})
	}
	doc := report.Document{Title: "Attendance report", TeacherName: "Juan", Start: day, End: day.AddDate(0, 0, 119),
		Pages: []report.Page{report.BuildPage(attendance.RoleTeacher, rows)}}

	data, err := NewPDFExporter().Export(doc)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestCellLines_WrapsToColumnWidth(t *testing.T) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 8)
	long := "Ingeniería en Sistemas 3A (Laboratorio de Cómputo Avanzado 4 - Edificio de Posgrado Norte)"

	lines := cellLines(pdf, long, 62)

	require.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, pdf.GetStringWidth(line), 62.0)
	}
	assert.Equal(t, strings.Fields(long), strings.Fields(strings.Join(lines, " ")))

	assert.Equal(t, []string{"07:00"}, cellLines(pdf, "07:00", 18))
	assert.Len(t, cellLines(pdf, "", 18), 1)
}

func TestPDFExporter_LongGroupDescriptors(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	long := "Ingeniería en Sistemas 3A (Laboratorio de Cómputo Avanzado 4 - Edificio de Posgrado Norte)"
	rows := make([]report.Row, 0, 60)
	for i := 0; i < 60; i++ {
		rows = append(rows, report.Row{Date: day.AddDate(0, 0, i), Hour: "08:00", SubjectName: "Métodos Numéricos Aplicados a la Ingeniería", GroupInfo: long, Status: attendance.StatusAbsent})
	}
	doc := report.Document{Title: "Attendance report", TeacherName: "Juan", Start: day, End: day.AddDate(0, 0, 59),
		Pages: []report.Page{report.BuildPage(attendance.RoleTeacher, rows)}}

	data, err := NewPDFExporter().Export(doc)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestXLSXExporter_Export(t *testing.T) {
	data, err := NewXLSXExporter().Export(sampleDocument())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Teacher", "Group leader", "Checker"}, f.GetSheetList())

	total, err := f.GetCellValue("Teacher", "B4")
	require.NoError(t, err)
	assert.Equal(t, "3", total)

	header, err := f.GetCellValue("Teacher", "A9")
	require.NoError(t, err)
	assert.Equal(t, "Date", header)

	status, err := f.GetCellValue("Teacher", "E10")
	require.NoError(t, err)
	assert.Equal(t, "present", status)

	placeholder, err := f.GetCellValue("Checker", "A9")
	require.NoError(t, err)
	assert.Equal(t, report.EmptyPlaceholder, placeholder)
}
