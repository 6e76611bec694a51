package sheet

import (
	"fmt"
	"log"
	"os"
	"strings"

	"codeberg.org/snonux/sheettrans/internal/table"
)

// Load reads a file into a workbook. Spreadsheets and SQLite databases
// yield one sheet per worksheet or table, delimited files a single sheet
// named after the file. Failures caused by the file are *FormatError.
func Load(path string) (*table.Workbook, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, formatError(path, err)
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	log.Printf("[sheet] Loading %s file: %s", format, path)

	var wb *table.Workbook
	switch format {
	case FormatXLSX:
		wb, err = loadXLSX(path)
	case FormatCSV:
		wb, err = loadDelimited(path, ',')
	case FormatTSV:
		wb, err = loadDelimited(path, '\t')
	case FormatSQLite:
		wb, err = loadSQLite(path)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("[sheet] Loaded %s with sheets: %v", path, wb.Names())
	return wb, nil
}

// fromRows turns raw string rows (header first) into a dataset. Empty
// strings are absent cells. The header is widened to the longest row so
// data under a blank header cell becomes an "Unnamed: <index>" column.
func fromRows(rows [][]string) (*table.Dataset, error) {
	if len(rows) == 0 {
		return table.NewDataset(0), nil
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	raw := make([]string, width)
	copy(raw, rows[0])

	header := NormalizeHeader(raw)
	records := make([][]table.Cell, len(rows)-1)
	for i, row := range rows[1:] {
		rec := make([]table.Cell, len(row))
		for j, v := range row {
			if v != "" {
				rec[j] = table.Text(v)
			}
		}
		records[i] = rec
	}

	return table.FromRecords(header, records)
}

// NormalizeHeader names blank headers "Unnamed: <index>" and disambiguates
// duplicates with ".1", ".2", ... suffixes
func NormalizeHeader(raw []string) []string {
	out := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	taken := make(map[string]bool, len(raw))
	for i, h := range raw {
		if strings.TrimSpace(h) == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		taken[h] = true
		out[i] = h
	}

	for i, h := range out {
		n := seen[h]
		seen[h] = n + 1
		if n == 0 {
			continue
		}
		candidate := fmt.Sprintf("%s.%d", h, n)
		for taken[candidate] {
			n++
			candidate = fmt.Sprintf("%s.%d", h, n)
		}
		seen[h] = n + 1
		taken[candidate] = true
		out[i] = candidate
	}
	return out
}
