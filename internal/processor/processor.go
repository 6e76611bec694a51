package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"

	"codeberg.org/snonux/sheettrans/internal/batch"
	"codeberg.org/snonux/sheettrans/internal/cli"
	"codeberg.org/snonux/sheettrans/internal/gui"
	"codeberg.org/snonux/sheettrans/internal/models"
	"codeberg.org/snonux/sheettrans/internal/session"
	"codeberg.org/snonux/sheettrans/internal/table"
	"codeberg.org/snonux/sheettrans/internal/translation"
)

// ErrBatchFailed is returned when at least one file of a batch failed
var ErrBatchFailed = errors.New("batch finished with errors")

// Processor handles the headless translation workflow
type Processor struct {
	flags *cli.Flags
	out   io.Writer

	// newProvider builds the provider stack; replaced in tests
	newProvider func(ctx context.Context) (translation.Provider, error)
}

// NewProcessor creates a new processor for flags
func NewProcessor(flags *cli.Flags) *Processor {
	p := &Processor{
		flags: flags,
		out:   os.Stdout,
	}
	p.newProvider = func(ctx context.Context) (translation.Provider, error) {
		return translation.NewStack(ctx, p.ProviderConfig(), p.StackOptions())
	}
	return p
}

// ProviderConfig returns the provider configuration selected by flags
func (p *Processor) ProviderConfig() *translation.Config {
	config := translation.DefaultConfig()
	config.Provider = strings.ToLower(p.flags.Provider)
	config.Model = p.flags.Model
	config.APIKey = cli.GetAPIKey(config.Provider)
	config.Region = p.flags.Region
	config.BaseURL = p.flags.BaseURL
	if config.Provider == "deeplx" && p.flags.DeepLXURL != "" {
		config.BaseURL = p.flags.DeepLXURL
	}
	if p.flags.Timeout > 0 {
		config.Timeout = p.flags.Timeout
	}
	return config
}

// StackOptions returns the provider decorators selected by flags
func (p *Processor) StackOptions() translation.StackOptions {
	return translation.StackOptions{
		Dedupe:  p.flags.Dedupe,
		Breaker: p.flags.Breaker,
		BreakerSettings: translation.BreakerSettings{
			MaxFailures: uint32(max(p.flags.BreakerFailures, 0)),
		},
	}
}

// placement maps --new-columns to a table placement
func (p *Processor) placement() table.Placement {
	if p.flags.NewColumns {
		return table.NewColumn
	}
	return table.Overwrite
}

// ListModels prints the chat models available for the OpenAI key
func (p *Processor) ListModels(ctx context.Context) error {
	lister := models.NewLister(cli.GetOpenAIKey(), p.flags.BaseURL)
	return lister.ListAvailableModels(ctx)
}

// ListColumns prints the sheets and columns of a file
func (p *Processor) ListColumns(path string) error {
	sess := session.New()
	if err := sess.Load(path); err != nil {
		return err
	}

	fmt.Fprintf(p.out, "File: %s\n", sess.Path())
	for _, name := range sess.Sheets() {
		if err := sess.SelectSheet(name); err != nil {
			return err
		}
		fmt.Fprintf(p.out, "\nSheet: %s\n", name)
		for _, column := range sess.Columns() {
			fmt.Fprintf(p.out, "  %s\n", column)
		}
	}
	return nil
}

// ProcessFile translates the selected columns of one file
func (p *Processor) ProcessFile(ctx context.Context, path, sheetName string) (*session.Result, error) {
	provider, err := p.newProvider(ctx)
	if err != nil {
		return nil, err
	}
	return p.processFile(ctx, provider, path, sheetName)
}

func (p *Processor) processFile(ctx context.Context, provider table.Provider, path, sheetName string) (*session.Result, error) {
	sess := session.New()
	if err := sess.Load(path); err != nil {
		return nil, err
	}

	if sheetName != "" {
		if err := sess.SelectSheet(sheetName); err != nil {
			return nil, err
		}
	}

	columns := p.flags.Columns
	if p.flags.AllColumns {
		columns = sess.Columns()
	}

	req := table.NewRequest(columns, p.flags.SourceLang, p.flags.TargetLang, p.placement())

	fmt.Fprintf(p.out, "\nProcessing: %s (sheet %s)\n", path, sess.SelectedSheet())
	fmt.Fprintf(p.out, "  Translating %s from %s to %s\n",
		strings.Join(req.Columns(), ", "), req.SourceLang(), req.TargetLang())

	bar := newProgress(p.out)
	opts := table.Options{
		Workers:     p.flags.Workers,
		CallTimeout: p.flags.Timeout,
		Progress:    bar.update,
	}

	result, err := sess.Translate(ctx, req, provider, opts)
	bar.finish()
	if err != nil {
		return result, err
	}

	p.printSummary(result)
	return result, nil
}

func (p *Processor) printSummary(result *session.Result) {
	fmt.Fprintf(p.out, "\n=== Translation Summary ===\n")
	fmt.Fprintf(p.out, "Run: %s\n", result.RunID)
	for _, c := range result.Report.Columns {
		fmt.Fprintf(p.out, "%s -> %s: %d translated, %d empty", c.Column, c.Target, c.Translated, c.Empty)
		if c.Failed > 0 {
			fmt.Fprintf(p.out, ", %d failed", c.Failed)
		}
		fmt.Fprintln(p.out)
	}
	fmt.Fprintf(p.out, "Saved: %s\n", result.OutputPath)
	fmt.Fprintf(p.out, "===========================\n")
}

// ProcessBatch translates every file listed in the batch file. A failing
// file does not stop the batch.
func (p *Processor) ProcessBatch(ctx context.Context) error {
	entries, err := batch.ReadBatchFile(p.flags.BatchFile)
	if err != nil {
		return err
	}

	provider, err := p.newProvider(ctx)
	if err != nil {
		return err
	}

	processedCount := 0
	errorCount := 0

	for i, entry := range entries {
		if ctx.Err() != nil {
			break
		}

		fmt.Fprintf(p.out, "\nFile %d/%d: %s\n", i+1, len(entries), entry.Path)
		if _, err := p.processFile(ctx, provider, entry.Path, entry.Sheet); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing '%s': %v\n", entry.Path, err)
			errorCount++
			// Continue with next file
			continue
		}
		processedCount++
	}

	// Print summary
	fmt.Fprintf(p.out, "\n=== Batch Processing Summary ===\n")
	fmt.Fprintf(p.out, "Total files: %d\n", len(entries))
	fmt.Fprintf(p.out, "Processed: %d\n", processedCount)
	if errorCount > 0 {
		fmt.Fprintf(p.out, "Errors: %d\n", errorCount)
	}
	fmt.Fprintf(p.out, "================================\n")

	if err := ctx.Err(); err != nil {
		return err
	}
	if errorCount > 0 {
		return fmt.Errorf("%w: %d of %d files failed", ErrBatchFailed, errorCount, len(entries))
	}
	return nil
}

// RunGUIMode launches the GUI with the configured defaults
func (p *Processor) RunGUIMode() error {
	guiConfig := &gui.Config{
		Provider:   p.ProviderConfig(),
		Stack:      p.StackOptions(),
		SourceLang: p.flags.SourceLang,
		TargetLang: p.flags.TargetLang,
		NewColumns: p.flags.NewColumns,
		Workers:    p.flags.Workers,
		UILanguage: p.flags.UILanguage,
	}

	app := gui.New(guiConfig)
	app.Run()

	return nil
}

// progress renders table progress on a progress bar created on the
// first update, once the cell total is known
type progress struct {
	out    io.Writer
	bar    *progressbar.ProgressBar
	column string
}

func newProgress(out io.Writer) *progress {
	return &progress{out: out}
}

func (pr *progress) update(update table.Progress) {
	if pr.bar == nil {
		pr.bar = progressbar.NewOptions(update.Total,
			progressbar.OptionSetWriter(pr.out),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}
	if update.Column != pr.column {
		pr.column = update.Column
		pr.bar.Describe(update.Column)
	}
	_ = pr.bar.Set(update.Done)
}

func (pr *progress) finish() {
	if pr.bar != nil {
		_ = pr.bar.Finish()
		fmt.Fprintln(pr.out)
	}
}
