package gui

import (
	"fmt"
	"sync"
	"time"
)

// RunStatus represents the current state of a translation run
type RunStatus int

const (
	StatusRunning RunStatus = iota
	StatusCompleted
	StatusFailed
	StatusCancelled
)

func (s RunStatus) String() string {
	switch s {
	case StatusRunning:
		return "Running"
	case StatusCompleted:
		return "Completed"
	case StatusFailed:
		return "Failed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// RunRecord is one translation run started from the GUI
type RunRecord struct {
	ID          int
	File        string
	Sheet       string
	Columns     []string
	OutputPath  string
	FailedCells int
	Status      RunStatus
	Error       error
	StartedAt   time.Time
	CompletedAt time.Time
}

// RunHistory tracks the runs of a GUI session. At most one run is active.
type RunHistory struct {
	mu     sync.RWMutex
	runs   []*RunRecord
	active *RunRecord
	nextID int

	// Called with a copy of the record after every status change
	onUpdate func(RunRecord)
}

// NewRunHistory creates an empty history
func NewRunHistory() *RunHistory {
	return &RunHistory{nextID: 1}
}

// SetCallback sets the function called on status changes
func (h *RunHistory) SetCallback(onUpdate func(RunRecord)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onUpdate = onUpdate
}

// Start records a new running run. It fails while another run is active.
func (h *RunHistory) Start(file, sheet string, columns []string) (*RunRecord, error) {
	h.mu.Lock()
	if h.active != nil {
		h.mu.Unlock()
		return nil, fmt.Errorf("run %d is still in progress", h.active.ID)
	}
	run := &RunRecord{
		ID:        h.nextID,
		File:      file,
		Sheet:     sheet,
		Columns:   append([]string(nil), columns...),
		Status:    StatusRunning,
		StartedAt: time.Now(),
	}
	h.nextID++
	h.runs = append(h.runs, run)
	h.active = run
	h.mu.Unlock()

	h.notify(run)
	return run, nil
}

// Complete marks the run as completed
func (h *RunHistory) Complete(id int, outputPath string, failedCells int) {
	h.finish(id, StatusCompleted, nil, func(r *RunRecord) {
		r.OutputPath = outputPath
		r.FailedCells = failedCells
	})
}

// Fail marks the run as failed with err
func (h *RunHistory) Fail(id int, err error) {
	h.finish(id, StatusFailed, err, nil)
}

// Cancel marks the run as cancelled
func (h *RunHistory) Cancel(id int) {
	h.finish(id, StatusCancelled, nil, nil)
}

func (h *RunHistory) finish(id int, status RunStatus, err error, update func(*RunRecord)) {
	h.mu.Lock()
	run := h.find(id)
	if run == nil || run.Status != StatusRunning {
		h.mu.Unlock()
		return
	}
	run.Status = status
	run.Error = err
	run.CompletedAt = time.Now()
	if update != nil {
		update(run)
	}
	if h.active == run {
		h.active = nil
	}
	h.mu.Unlock()

	h.notify(run)
}

func (h *RunHistory) find(id int) *RunRecord {
	for _, r := range h.runs {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (h *RunHistory) notify(run *RunRecord) {
	h.mu.RLock()
	callback := h.onUpdate
	record := *run
	h.mu.RUnlock()

	if callback != nil {
		callback(record)
	}
}

// Active returns a copy of the running run, if any
func (h *RunHistory) Active() (RunRecord, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.active == nil {
		return RunRecord{}, false
	}
	return *h.active, true
}

// Counts returns the number of runs per final status
func (h *RunHistory) Counts() (completed, failed, cancelled int) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, r := range h.runs {
		switch r.Status {
		case StatusCompleted:
			completed++
		case StatusFailed:
			failed++
		case StatusCancelled:
			cancelled++
		}
	}
	return
}
