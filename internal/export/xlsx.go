package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"judgebrief/internal/domain"
	"judgebrief/internal/report"
	"judgebrief/internal/trace"
)

// Sheet names in the exported workbook.
const (
	BriefsSheet = "Briefs"
	TracesSheet = "Traces"
)

var traceColumns = []string{"Analysis ID", "Source Name", "Category", "Ref ID", "Sentence"}

// BuildWorkbook builds a workbook with one row per analysis on the Briefs
// sheet and one row per verbatim citation on the Traces sheet.
func BuildWorkbook(analyses []domain.Analysis) (*excelize.File, error) {
	f := excelize.NewFile()

	// NewFile starts with "Sheet1"; rename it rather than leave it empty.
	if err := f.SetSheetName(f.GetSheetName(0), BriefsSheet); err != nil {
		return nil, fmt.Errorf("renaming default sheet: %w", err)
	}
	if _, err := f.NewSheet(TracesSheet); err != nil {
		return nil, fmt.Errorf("creating %s sheet: %w", TracesSheet, err)
	}

	if err := writeRow(f, BriefsSheet, 1, columns); err != nil {
		return nil, err
	}
	if err := writeRow(f, TracesSheet, 1, traceColumns); err != nil {
		return nil, err
	}

	briefRow, traceRow := 2, 2
	for i := range analyses {
		a := &analyses[i]
		if err := writeRow(f, BriefsSheet, briefRow, analysisToRow(a)); err != nil {
			return nil, err
		}
		briefRow++

		b, err := a.DecodeBrief()
		if err != nil {
			continue
		}
		for _, category := range report.TraceOrder {
			for _, entry := range b.SourceLog[category] {
				c, ok := trace.Parse(entry)
				if !ok {
					continue
				}
				write := func(col int, v any) error {
					cell, _ := excelize.CoordinatesToCellName(col, traceRow)
					return f.SetCellValue(TracesSheet, cell, v)
				}
				for col, v := range []any{a.ID.String(), a.SourceName, string(category), c.Offset, c.Sentence} {
					if err := write(col+1, v); err != nil {
						return nil, err
					}
				}
				traceRow++
			}
		}
	}

	// Widen a few columns
	_ = f.SetColWidth(BriefsSheet, "B", "B", 28)
	_ = f.SetColWidth(BriefsSheet, "D", "E", 30)
	_ = f.SetColWidth(BriefsSheet, "I", "M", 60)
	_ = f.SetColWidth(TracesSheet, "C", "C", 26)
	_ = f.SetColWidth(TracesSheet, "E", "E", 100)

	f.SetActiveSheet(0)
	return f, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("writing %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

// WriteXLSX builds the workbook and writes it to out.
func WriteXLSX(out io.Writer, analyses []domain.Analysis) error {
	f, err := BuildWorkbook(analyses)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
