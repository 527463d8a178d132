package export

import (
	"fmt"

	"github.com/newthinker/recruitdash/internal/app"
	"github.com/newthinker/recruitdash/internal/core"
	"github.com/xuri/excelize/v2"
)

// maxSheetName is the Excel limit on sheet name length, in characters.
const maxSheetName = 31

// Workbook writes one sheet per panel with Label and Value columns. Dated
// panels get a third column with the full date.
func Workbook(panels []app.Panel) ([]byte, error) {
	if len(panels) == 0 {
		return nil, core.WrapError(core.ErrNoData, fmt.Errorf("no panels to export"))
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, p := range panels {
		name := sheetName(p)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, core.WrapError(core.ErrExportFailed, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, core.WrapError(core.ErrExportFailed, err)
		}

		if err := writePanel(f, name, p); err != nil {
			return nil, core.WrapError(core.ErrExportFailed, fmt.Errorf("sheet %s: %w", name, err))
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, core.WrapError(core.ErrExportFailed, err)
	}
	return buf.Bytes(), nil
}

func writePanel(f *excelize.File, sheet string, p app.Panel) error {
	header := []any{"Label", "Value"}
	dated := len(p.Chart.TooltipDates) > 0
	if dated {
		header = append(header, "Date")
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	labels := p.Chart.Categories()
	for i, v := range p.Chart.Values() {
		row := []any{labelAt(labels, i), v}
		if dated {
			row = append(row, labelAt(p.Chart.TooltipDates, i))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "C", 20)
}

func sheetName(p app.Panel) string {
	name := p.Heading
	if name == "" {
		name = string(p.Kind)
	}
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	return name
}
