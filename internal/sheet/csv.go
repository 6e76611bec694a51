package sheet

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/sheettrans/internal/table"
)

const utf8BOM = "\ufeff"

func loadDelimited(path string, comma rune) (*table.Workbook, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	br := bufio.NewReader(file)
	if head, err := br.Peek(len(utf8BOM)); err == nil && string(head) == utf8BOM {
		br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, formatError(path, fmt.Errorf("failed to read delimited file: %w", err))
	}
	if len(rows) == 0 {
		return nil, formatError(path, fmt.Errorf("no columns to parse from file"))
	}

	ds, err := fromRows(rows)
	if err != nil {
		return nil, formatError(path, err)
	}

	wb := table.NewWorkbook()
	wb.Add(SheetName(path), ds)
	return wb, nil
}

// SheetName returns the single sheet name used for delimited files
func SheetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func saveDelimited(path string, comma rune, ds *table.Dataset) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	// Spreadsheet applications need the BOM to detect UTF-8
	if _, err := file.WriteString(utf8BOM); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	writer := csv.NewWriter(file)
	writer.Comma = comma

	if err := writer.Write(ds.Columns()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, rec := range ds.Records() {
		row := make([]string, len(rec))
		for i, cell := range rec {
			row[i] = cell.Value
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
