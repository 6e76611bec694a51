package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"codeberg.org/snonux/sheettrans/internal/sheet"
	"codeberg.org/snonux/sheettrans/internal/table"
)

var (
	// ErrNoFileLoaded is returned when an action needs a loaded file
	ErrNoFileLoaded = errors.New("please select a file first")
	// ErrNoColumns is returned when no column was selected
	ErrNoColumns = errors.New("please select at least one column to translate")
	// ErrUnknownSheet is returned when selecting a sheet that does not exist
	ErrUnknownSheet = errors.New("unknown sheet")
)

// State tells whether a file is loaded
type State int

const (
	NoFileLoaded State = iota
	Loaded
)

func (s State) String() string {
	if s == Loaded {
		return "Loaded"
	}
	return "NoFileLoaded"
}

// Result describes a finished translation run
type Result struct {
	RunID      string
	Sheet      string
	OutputPath string
	Report     *table.Report
}

// Session is the controller state. It is safe for concurrent use.
type Session struct {
	mu       sync.RWMutex
	path     string
	format   sheet.Format
	workbook *table.Workbook
	selected string
}

// New creates a session with no file loaded
func New() *Session {
	return &Session{}
}

// State returns the current state
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.workbook == nil {
		return NoFileLoaded
	}
	return Loaded
}

// Load reads path and selects its first sheet. On failure the previous
// state is kept.
func (s *Session) Load(path string) error {
	format, err := sheet.DetectFormat(path)
	if err != nil {
		return &sheet.FormatError{Path: path, Err: err}
	}

	wb, err := sheet.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = path
	s.format = format
	s.workbook = wb
	s.selected = wb.Names()[0]

	log.Printf("[session] Selected file: %s", path)
	return nil
}

// Path returns the loaded file path
func (s *Session) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// MultiSheet reports whether the loaded file can hold several sheets
func (s *Session) MultiSheet() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.workbook != nil && s.format.IsMultiSheet()
}

// Sheets returns the sheet names of the loaded file
func (s *Session) Sheets() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.workbook == nil {
		return nil
	}
	return s.workbook.Names()
}

// SelectedSheet returns the selected sheet name
func (s *Session) SelectedSheet() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// SelectSheet selects the sheet to translate
func (s *Session) SelectSheet(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.workbook == nil {
		return ErrNoFileLoaded
	}
	if _, ok := s.workbook.Sheet(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSheet, name)
	}
	s.selected = name
	log.Printf("[session] Updated columns for sheet: %s", name)
	return nil
}

// Columns returns the column names of the selected sheet
func (s *Session) Columns() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.workbook == nil {
		return nil
	}
	ds, _ := s.workbook.Sheet(s.selected)
	return ds.Columns()
}

// Translate runs req against the selected sheet and saves the workbook to
// a fresh output path next to the input. Cell failures are reported in the
// result; load, save and validation failures are returned as errors. A
// cancelled run is not saved.
func (s *Session) Translate(ctx context.Context, req table.Request, provider table.Provider, opts table.Options) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.workbook == nil {
		return nil, ErrNoFileLoaded
	}
	if len(req.Columns()) == 0 {
		return nil, ErrNoColumns
	}

	runID := uuid.NewString()
	log.Printf("[session] Run %s: translating sheet %s from %s to %s (%s)",
		runID, s.selected, req.SourceLang(), req.TargetLang(), req.Placement())

	// Work on a copy so a failed or cancelled run leaves the loaded data intact
	ds, _ := s.workbook.Sheet(s.selected)
	work := ds.Clone()

	report, err := table.Run(ctx, work, req, provider, opts)
	if err != nil {
		return nil, err
	}

	out := table.NewWorkbook()
	for _, name := range s.workbook.Names() {
		if name == s.selected {
			out.Add(name, work)
			continue
		}
		other, _ := s.workbook.Sheet(name)
		out.Add(name, other)
	}

	outputPath := sheet.OutputPath(s.path)
	if err := sheet.Save(outputPath, out); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", outputPath, err)
	}

	log.Printf("[session] Run %s: %d translated, %d failed, saved to %s",
		runID, report.Translated(), report.Failed(), outputPath)

	return &Result{
		RunID:      runID,
		Sheet:      s.selected,
		OutputPath: outputPath,
		Report:     report,
	}, nil
}
