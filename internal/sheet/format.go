package sheet

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a supported file format
type Format int

const (
	FormatUnknown Format = iota
	FormatXLSX
	FormatCSV
	FormatTSV
	FormatSQLite
)

func (f Format) String() string {
	switch f {
	case FormatXLSX:
		return "xlsx"
	case FormatCSV:
		return "csv"
	case FormatTSV:
		return "tsv"
	case FormatSQLite:
		return "sqlite"
	default:
		return "unknown"
	}
}

// Extensions lists the file extensions accepted by Load
var Extensions = []string{".xlsx", ".xlsm", ".csv", ".tsv", ".db", ".sqlite", ".sqlite3"}

// DetectFormat returns the format for a path based on its extension
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	case ".tsv":
		return FormatTSV, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return FormatUnknown, fmt.Errorf("unsupported file extension %q", filepath.Ext(path))
	}
}

// IsMultiSheet reports whether the format can hold more than one sheet
func (f Format) IsMultiSheet() bool {
	return f == FormatXLSX || f == FormatSQLite
}
