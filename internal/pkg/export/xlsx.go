package export

import (
	"fmt"

	"github.com/escuela-horarios/attendance-backend/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

// XLSXExporter writes one worksheet per role page.
type XLSXExporter struct{}

func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

func (e *XLSXExporter) Extension() string { return report.FormatXLSX }
func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func hexColor(c report.Color) string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

func (e *XLSXExporter) Export(doc report.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hexColor(headerColor)}},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	statusStyles := map[report.Color]int{}
	statusStyle := func(c report.Color) (int, error) {
		if id, ok := statusStyles[c]; ok {
			return id, nil
		}
		id, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Color: "FFFFFF"},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hexColor(c)}},
		})
		statusStyles[c] = id
		return id, err
	}

	for i, page := range doc.Pages {
		sheet := page.Role.Label()
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", sheet, err)
		}

		summary := [][]any{
			{doc.Title},
			{"Teacher", doc.TeacherName},
			{"Period", doc.Period()},
			{"Total", page.Stats.Total},
			{"Present", page.Stats.Present},
			{"Absent", page.Stats.Absent},
			{"Percentage", fmt.Sprintf("%d%%", page.Stats.Percentage)},
		}
		for r, values := range summary {
			if err := setRow(f, sheet, r+1, values); err != nil {
				return nil, err
			}
		}

		const tableRow = 9
		if page.Empty || page.Table == nil {
			if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", tableRow), page.Placeholder); err != nil {
				return nil, err
			}
			continue
		}

		headers := make([]any, len(page.Table.Headers))
		for c, h := range page.Table.Headers {
			headers[c] = h
		}
		if err := setRow(f, sheet, tableRow, headers); err != nil {
			return nil, err
		}
		last, _ := excelize.CoordinatesToCellName(len(headers), tableRow)
		if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", tableRow), last, headerStyle); err != nil {
			return nil, err
		}

		for r, row := range page.Table.Rows {
			rowNum := tableRow + 1 + r
			for c, cell := range row {
				name, _ := excelize.CoordinatesToCellName(c+1, rowNum)
				if err := f.SetCellValue(sheet, name, cell.Text); err != nil {
					return nil, err
				}
				if cell.Color == nil {
					continue
				}
				style, err := statusStyle(*cell.Color)
				if err != nil {
					return nil, fmt.Errorf("create status style: %w", err)
				}
				if err := f.SetCellStyle(sheet, name, name, style); err != nil {
					return nil, err
				}
			}
		}

		_ = f.SetColWidth(sheet, "A", "B", 12)
		_ = f.SetColWidth(sheet, "C", "D", 32)
		_ = f.SetColWidth(sheet, "E", "E", 12)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	for c, v := range values {
		name, err := excelize.CoordinatesToCellName(c+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, name, v); err != nil {
			return fmt.Errorf("set %s!%s: %w", sheet, name, err)
		}
	}
	return nil
}
