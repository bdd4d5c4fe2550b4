package display

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes grid as a single-sheet workbook. Cells that parse as
// integers are stored as numbers; empty cells are left unset.
func WriteXLSX(w io.Writer, sheet string, grid [][]string) error {
	f := excelize.NewFile()
	defer f.Close()
	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	for r, row := range grid {
		for c, cell := range row {
			if cell == "" {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			var v any = cell
			if n, err := strconv.Atoi(cell); err == nil {
				v = n
			}
			if err := f.SetCellValue(sheet, ref, v); err != nil {
				return fmt.Errorf("cell %s: %w", ref, err)
			}
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
