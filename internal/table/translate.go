package table

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"codeberg.org/snonux/sheettrans/internal/translation"
)

// Sentinel values written in place of a failed translation
const (
	TranslationError = "Translation error"
	ResponseError    = "API response error"
)

// Provider is the translation call the loop depends on
type Provider interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// CellStatus is the final state of one cell
type CellStatus int

const (
	StatusPending CellStatus = iota
	StatusSuccess
	StatusEmpty
	StatusError
)

func (s CellStatus) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusSuccess:
		return "Success"
	case StatusEmpty:
		return "Empty"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Outcome is the result of translating one cell
type Outcome struct {
	Text   string
	Status CellStatus
}

// Progress is reported after every finished cell
type Progress struct {
	Column  string
	Row     int
	Done    int // Cells finished across all requested columns
	Total   int // Cells in all requested columns
	Outcome Outcome
}

// Options tunes a translation run
type Options struct {
	// Workers bounds concurrent provider calls. Values below 2 keep the
	// loop strictly sequential.
	Workers int
	// CallTimeout bounds every provider call when positive
	CallTimeout time.Duration
	// Progress is called after every cell. It may be called from several
	// goroutines but never concurrently.
	Progress func(Progress)
}

// ColumnStats counts cell outcomes for one column
type ColumnStats struct {
	Column     string
	Target     string
	Translated int
	Empty      int
	Failed     int
}

// Report is the result of Run
type Report struct {
	Dataset *Dataset
	Columns []ColumnStats
}

// Failed returns the number of failed cells over all columns
func (r *Report) Failed() int {
	n := 0
	for _, c := range r.Columns {
		n += c.Failed
	}
	return n
}

// Translated returns the number of translated cells over all columns
func (r *Report) Translated() int {
	n := 0
	for _, c := range r.Columns {
		n += c.Translated
	}
	return n
}

// TranslateColumns translates the requested columns of ds in place and
// returns it. See Run.
func TranslateColumns(ctx context.Context, ds *Dataset, req Request, provider Provider, opts Options) (*Dataset, error) {
	report, err := Run(ctx, ds, req, provider, opts)
	if report == nil {
		return nil, err
	}
	return report.Dataset, err
}

// Run translates every requested column of ds and writes the results back
// according to the request's placement. Cell failures become sentinel
// values and never stop the run. If ctx is cancelled, columns completed so
// far stay written, the interrupted column is left untouched and the
// context error is returned with the report.
func Run(ctx context.Context, ds *Dataset, req Request, provider Provider, opts Options) (*Report, error) {
	if err := req.Validate(ds); err != nil {
		return nil, err
	}

	columns := req.Columns()
	report := &Report{Dataset: ds}
	tracker := &progressTracker{
		total: len(columns) * ds.Rows(),
		fn:    opts.Progress,
	}

	for _, name := range columns {
		log.Printf("[translate] Translating column: %s", name)

		cells, err := ds.Column(name)
		if err != nil {
			return report, err
		}

		var outcomes []Outcome
		if opts.Workers > 1 {
			outcomes = translateConcurrent(ctx, provider, name, cells, req, opts, tracker)
		} else {
			outcomes = translateSequential(ctx, provider, name, cells, req, opts, tracker)
		}

		if err := ctx.Err(); err != nil {
			log.Printf("[translate] Cancelled while translating column %s, leaving it unchanged", name)
			return report, err
		}

		outcomes = padOutcomes(name, outcomes, len(cells))

		target := req.Placement().TargetColumn(name)
		stats := ColumnStats{Column: name, Target: target}
		result := make([]Cell, len(outcomes))
		for i, o := range outcomes {
			result[i] = Text(o.Text)
			switch o.Status {
			case StatusSuccess:
				stats.Translated++
			case StatusEmpty:
				stats.Empty++
			default:
				stats.Failed++
			}
		}

		if req.Placement() == NewColumn {
			err = ds.Insert(target, result)
			log.Printf("[translate] Created new column: %s", target)
		} else {
			err = ds.Set(target, result)
			log.Printf("[translate] Updated original column: %s", target)
		}
		if err != nil {
			return report, err
		}

		report.Columns = append(report.Columns, stats)
	}

	return report, nil
}

func translateSequential(ctx context.Context, provider Provider, column string, cells []Cell, req Request, opts Options, tracker *progressTracker) []Outcome {
	outcomes := make([]Outcome, 0, len(cells))
	for row, cell := range cells {
		if ctx.Err() != nil {
			break
		}
		o := translateCell(ctx, provider, column, row, len(cells), cell, req, opts.CallTimeout)
		outcomes = append(outcomes, o)
		tracker.report(column, row, o)
	}
	return outcomes
}

func translateConcurrent(ctx context.Context, provider Provider, column string, cells []Cell, req Request, opts Options, tracker *progressTracker) []Outcome {
	outcomes := make([]Outcome, len(cells))

	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for row, cell := range cells {
		if ctx.Err() != nil {
			break
		}
		row, cell := row, cell
		g.Go(func() error {
			o := translateCell(ctx, provider, column, row, len(cells), cell, req, opts.CallTimeout)
			outcomes[row] = o
			tracker.report(column, row, o)
			return nil
		})
	}
	g.Wait()

	return outcomes
}

func translateCell(ctx context.Context, provider Provider, column string, row, rows int, cell Cell, req Request, timeout time.Duration) Outcome {
	if !cell.Valid {
		return Outcome{Text: "", Status: StatusEmpty}
	}

	callCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	text, err := provider.Translate(callCtx, cell.Value, req.SourceLang(), req.TargetLang())
	if err != nil {
		if translation.IsResponseError(err) {
			log.Printf("[translate] Unexpected API response for text %d in column %s: %v", row+1, column, err)
			return Outcome{Text: ResponseError, Status: StatusError}
		}
		log.Printf("[translate] Translation error for text %d in column %s: %v", row+1, column, err)
		return Outcome{Text: TranslationError, Status: StatusError}
	}

	log.Printf("[translate] Translated text %d/%d in column %s", row+1, rows, column)
	return Outcome{Text: strings.TrimSpace(text), Status: StatusSuccess}
}

// padOutcomes fills a shortfall with TranslationError so the column keeps
// the dataset's row count
func padOutcomes(column string, outcomes []Outcome, rows int) []Outcome {
	if len(outcomes) >= rows {
		return outcomes[:rows]
	}
	log.Printf("[translate] Mismatch in lengths for column %s (%d/%d). Filling missing values with %q",
		column, len(outcomes), rows, TranslationError)
	for len(outcomes) < rows {
		outcomes = append(outcomes, Outcome{Text: TranslationError, Status: StatusError})
	}
	return outcomes
}

type progressTracker struct {
	mu    sync.Mutex
	done  int
	total int
	fn    func(Progress)
}

func (t *progressTracker) report(column string, row int, o Outcome) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.done++
	if t.fn != nil {
		t.fn(Progress{Column: column, Row: row, Done: t.done, Total: t.total, Outcome: o})
	}
}
