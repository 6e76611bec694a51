package table

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownColumn is returned when a requested column does not exist
	ErrUnknownColumn = errors.New("unknown column")
	// ErrRaggedColumn is returned when a column would break the equal length invariant
	ErrRaggedColumn = errors.New("column length does not match dataset row count")
)

// Cell is a single table value. Valid is false for absent cells.
type Cell struct {
	Value string
	Valid bool
}

// Text returns a present cell holding s
func Text(s string) Cell {
	return Cell{Value: s, Valid: true}
}

// Null returns an absent cell
func Null() Cell {
	return Cell{}
}

// Dataset is an ordered set of named columns sharing one row count
type Dataset struct {
	order []string
	cols  map[string][]Cell
	rows  int
}

// NewDataset creates an empty dataset with the given row count
func NewDataset(rows int) *Dataset {
	return &Dataset{
		cols: make(map[string][]Cell),
		rows: rows,
	}
}

// FromRecords builds a dataset from a header and row-major records.
// Short records are padded with null cells, surplus values are dropped.
func FromRecords(header []string, records [][]Cell) (*Dataset, error) {
	ds := NewDataset(len(records))
	for i, name := range header {
		col := make([]Cell, len(records))
		for r, rec := range records {
			if i < len(rec) {
				col[r] = rec[i]
			}
		}
		if err := ds.Insert(name, col); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// Rows returns the shared row count
func (d *Dataset) Rows() int {
	return d.rows
}

// Columns returns the column names in order
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Has reports whether the dataset contains the named column
func (d *Dataset) Has(name string) bool {
	_, ok := d.cols[name]
	return ok
}

// Column returns a copy of the named column's cells
func (d *Dataset) Column(name string) ([]Cell, error) {
	col, ok := d.cols[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	out := make([]Cell, len(col))
	copy(out, col)
	return out, nil
}

// Set replaces an existing column in place, keeping its position
func (d *Dataset) Set(name string, cells []Cell) error {
	if !d.Has(name) {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	if len(cells) != d.rows {
		return fmt.Errorf("%w: %q has %d cells, want %d", ErrRaggedColumn, name, len(cells), d.rows)
	}
	d.cols[name] = cells
	return nil
}

// Insert appends a new column, or replaces it in place if it already exists
func (d *Dataset) Insert(name string, cells []Cell) error {
	if d.Has(name) {
		return d.Set(name, cells)
	}
	if len(cells) != d.rows {
		return fmt.Errorf("%w: %q has %d cells, want %d", ErrRaggedColumn, name, len(cells), d.rows)
	}
	d.order = append(d.order, name)
	d.cols[name] = cells
	return nil
}

// Cell returns the value at row r of the named column
func (d *Dataset) Cell(name string, r int) (Cell, bool) {
	col, ok := d.cols[name]
	if !ok || r < 0 || r >= len(col) {
		return Cell{}, false
	}
	return col[r], true
}

// Records returns the dataset in row-major order, aligned with Columns
func (d *Dataset) Records() [][]Cell {
	out := make([][]Cell, d.rows)
	for r := 0; r < d.rows; r++ {
		rec := make([]Cell, len(d.order))
		for i, name := range d.order {
			rec[i] = d.cols[name][r]
		}
		out[r] = rec
	}
	return out
}

// Clone returns a deep copy of the dataset
func (d *Dataset) Clone() *Dataset {
	c := NewDataset(d.rows)
	for _, name := range d.order {
		col := make([]Cell, len(d.cols[name]))
		copy(col, d.cols[name])
		c.order = append(c.order, name)
		c.cols[name] = col
	}
	return c
}

// Workbook is an ordered collection of named sheets
type Workbook struct {
	names  []string
	sheets map[string]*Dataset
}

// NewWorkbook creates an empty workbook
func NewWorkbook() *Workbook {
	return &Workbook{sheets: make(map[string]*Dataset)}
}

// Add appends a sheet, replacing any sheet with the same name
func (w *Workbook) Add(name string, ds *Dataset) {
	if _, ok := w.sheets[name]; !ok {
		w.names = append(w.names, name)
	}
	w.sheets[name] = ds
}

// Sheet returns the named sheet
func (w *Workbook) Sheet(name string) (*Dataset, bool) {
	ds, ok := w.sheets[name]
	return ds, ok
}

// Names returns the sheet names in order
func (w *Workbook) Names() []string {
	out := make([]string, len(w.names))
	copy(out, w.names)
	return out
}

// Len returns the number of sheets
func (w *Workbook) Len() int {
	return len(w.names)
}
