package table

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPlacement is returned for an unrecognised placement mode
var ErrInvalidPlacement = errors.New("invalid placement mode")

// TranslatedSuffix is appended to a column name in new-column mode
const TranslatedSuffix = "_translated"

// Placement selects where translated text is written
type Placement int

const (
	// Overwrite replaces the source column in place
	Overwrite Placement = iota
	// NewColumn writes to <name>_translated and leaves the source untouched
	NewColumn
)

func (p Placement) String() string {
	switch p {
	case Overwrite:
		return "overwrite"
	case NewColumn:
		return "new-column"
	default:
		return fmt.Sprintf("Placement(%d)", int(p))
	}
}

// ParsePlacement parses "overwrite" or "new-column"
func ParsePlacement(s string) (Placement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "overwrite", "":
		return Overwrite, nil
	case "new-column", "new_column", "new":
		return NewColumn, nil
	default:
		return Overwrite, fmt.Errorf("%w: %q", ErrInvalidPlacement, s)
	}
}

// TargetColumn returns the column a translation of name is written to
func (p Placement) TargetColumn(name string) string {
	if p == NewColumn {
		return name + TranslatedSuffix
	}
	return name
}

// Request describes one translation run. Build it with NewRequest; the
// accessor methods return copies so a Request can be shared freely.
type Request struct {
	columns    []string
	sourceLang string
	targetLang string
	placement  Placement
}

// NewRequest creates a request for the given columns and languages
func NewRequest(columns []string, sourceLang, targetLang string, placement Placement) Request {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return Request{
		columns:    cols,
		sourceLang: sourceLang,
		targetLang: targetLang,
		placement:  placement,
	}
}

// Columns returns the requested column names
func (r Request) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// SourceLang returns the source language label
func (r Request) SourceLang() string { return r.sourceLang }

// TargetLang returns the target language label
func (r Request) TargetLang() string { return r.targetLang }

// Placement returns the placement mode
func (r Request) Placement() Placement { return r.placement }

// Validate checks the request against a dataset before any provider call
func (r Request) Validate(ds *Dataset) error {
	if r.placement != Overwrite && r.placement != NewColumn {
		return fmt.Errorf("%w: %s", ErrInvalidPlacement, r.placement)
	}
	for _, name := range r.columns {
		if !ds.Has(name) {
			return fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
	}
	return nil
}
