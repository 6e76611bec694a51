package sheet

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/sheettrans/internal/table"
)

// Save writes the workbook to path in the format implied by its extension.
// Delimited formats hold a single sheet.
func Save(path string, wb *table.Workbook) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}

	switch format {
	case FormatXLSX:
		err = saveXLSX(path, wb)
	case FormatCSV, FormatTSV:
		names := wb.Names()
		if len(names) != 1 {
			return fmt.Errorf("%s output holds exactly one sheet, got %d", format, len(names))
		}
		comma := ','
		if format == FormatTSV {
			comma = '\t'
		}
		ds, _ := wb.Sheet(names[0])
		err = saveDelimited(path, comma, ds)
	case FormatSQLite:
		err = saveSQLite(path, wb)
	}
	if err != nil {
		return err
	}

	log.Printf("[sheet] Translated file saved as %s", path)
	return nil
}

// OutputPath derives a free output path from the input path:
// name_translated.ext, then name_translated_1.ext, name_translated_2.ext, ...
func OutputPath(input string) string {
	dir := filepath.Dir(input)
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	candidate := filepath.Join(dir, fmt.Sprintf("%s%s%s", stem, table.TranslatedSuffix, ext))
	for counter := 1; exists(candidate); counter++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s%s_%d%s", stem, table.TranslatedSuffix, counter, ext))
	}
	return candidate
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
