package sheet

import (
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"

	"codeberg.org/snonux/sheettrans/internal/table"
)

func loadXLSX(path string) (*table.Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, formatError(path, fmt.Errorf("failed to open Excel file: %w", err))
	}
	defer f.Close()

	wb := table.NewWorkbook()
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, formatError(path, fmt.Errorf("failed to read sheet %s: %w", name, err))
		}

		ds, err := fromRows(rows)
		if err != nil {
			return nil, formatError(path, fmt.Errorf("sheet %s: %w", name, err))
		}
		log.Printf("[sheet] Sheet %s read (%d columns, %d rows)", name, len(ds.Columns()), ds.Rows())
		wb.Add(name, ds)
	}

	if wb.Len() == 0 {
		return nil, formatError(path, fmt.Errorf("workbook has no sheets"))
	}
	return wb, nil
}

func saveXLSX(path string, wb *table.Workbook) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range wb.Names() {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return fmt.Errorf("failed to name sheet %s: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}

		ds, _ := wb.Sheet(name)
		if err := writeXLSXSheet(f, name, ds); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}

func writeXLSXSheet(f *excelize.File, sheet string, ds *table.Dataset) error {
	for col, name := range ds.Columns() {
		if err := setCell(f, sheet, col, 0, name); err != nil {
			return err
		}
	}

	for r, rec := range ds.Records() {
		for col, cell := range rec {
			if !cell.Valid {
				continue
			}
			if err := setCell(f, sheet, col, r+1, cell.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value string) error {
	ref, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return err
	}
	if err := f.SetCellStr(sheet, ref, value); err != nil {
		return fmt.Errorf("failed to write %s!%s: %w", sheet, ref, err)
	}
	return nil
}
