package report

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/escuela-horarios/attendance-backend/internal/domain/attendance"
	"github.com/escuela-horarios/attendance-backend/internal/pkg/validator"
)

// EmptyPlaceholder is shown on a page whose role log has no events.
const EmptyPlaceholder = "No records for this period"

type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

var (
	ColorPositive = Color{R: 46, G: 125, B: 50}
	ColorNegative = Color{R: 244, G: 67, B: 54}
	ColorNeutral  = Color{R: 128, G: 128, B: 128}
)

// StatusColor is shared by charts and tables so both always agree.
func StatusColor(status attendance.Status) Color {
	switch status {
	case attendance.StatusPresent:
		return ColorPositive
	case attendance.StatusAbsent:
		return ColorNegative
	default:
		return ColorNeutral
	}
}

type Document struct {
	Title       string    `json:"title"`
	TeacherID   int64     `json:"teacher_id"`
	TeacherName string    `json:"teacher_name"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	GeneratedAt time.Time `json:"generated_at"`
	Pages       []Page    `json:"pages"`
}

// Period renders the covered range as dd/MM/yyyy - dd/MM/yyyy.
func (d Document) Period() string {
	return d.Start.Format("02/01/2006") + " - " + d.End.Format("02/01/2006")
}

type Page struct {
	Role        attendance.Role `json:"role"`
	Title       string          `json:"title"`
	Stats       Stats           `json:"stats"`
	Chart       *Chart          `json:"chart,omitempty"`
	Table       *Table          `json:"table,omitempty"`
	Empty       bool            `json:"empty"`
	Placeholder string          `json:"placeholder,omitempty"`
}

type Chart struct {
	Slices []Slice `json:"slices"`
}

type Slice struct {
	Label      string `json:"label"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
	Color      Color  `json:"color"`
}

type Table struct {
	Headers []string `json:"headers"`
	Rows    [][]Cell `json:"rows"`
}

type Cell struct {
	Text  string `json:"text"`
	Color *Color `json:"color,omitempty"`
}

var TableHeaders = []string{"Date", "Hour", "Subject", "Group", "Status"}

// BuildPage lays out one role's rows. rows are expected in display order.
func BuildPage(role attendance.Role, rows []Row) Page {
	page := Page{
		Role:  role,
		Title: fmt.Sprintf("%s attendance", role.Label()),
		Stats: Summarize(rows),
	}

	if len(rows) == 0 {
		page.Empty = true
		page.Placeholder = EmptyPlaceholder
		return page
	}

	other := page.Stats.Total - page.Stats.Present - page.Stats.Absent
	chart := &Chart{Slices: []Slice{
		{Label: "Present", Count: page.Stats.Present, Percentage: page.Stats.Percentage, Color: StatusColor(attendance.StatusPresent)},
		{Label: "Absent", Count: page.Stats.Absent, Percentage: Percent(page.Stats.Absent, page.Stats.Total), Color: StatusColor(attendance.StatusAbsent)},
	}}
	if other > 0 {
		chart.Slices = append(chart.Slices, Slice{
			Label: "Other", Count: other, Percentage: Percent(other, page.Stats.Total), Color: ColorNeutral,
		})
	}
	page.Chart = chart

	table := &Table{Headers: TableHeaders, Rows: make([][]Cell, 0, len(rows))}
	for _, r := range rows {
		color := StatusColor(r.Status)
		table.Rows = append(table.Rows, []Cell{
			{Text: r.Date.Format("02/01/2006")},
			{Text: r.Hour},
			{Text: r.SubjectName},
			{Text: r.GroupInfo},
			{Text: statusLabel(r.Status), Color: &color},
		})
	}
	page.Table = table

	return page
}

func statusLabel(s attendance.Status) string {
	if s == "" {
		return string(attendance.StatusPending)
	}
	return string(s)
}

var unsafeFileChars = regexp.MustCompile(`[^\p{L}\p{N}_-]+`)

// FileName returns Report_<teacher>_<dd-MM-yyyy_HH-mm>.<ext>.
func FileName(teacherName string, at time.Time, ext string) string {
	name := unsafeFileChars.ReplaceAllString(strings.TrimSpace(teacherName), "_")
	name = strings.Trim(name, "_")
	if name == "" {
		name = "teacher"
	}
	return fmt.Sprintf("Report_%s_%s.%s", name, at.Format("02-01-2006_15-04"), ext)
}

// SortKey orders rows by date then hour.
func (r Row) SortKey() string {
	return r.Date.Format(validator.DateLayout) + " " + r.Hour
}
