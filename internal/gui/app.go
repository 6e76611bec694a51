package gui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/sheettrans/internal"
	"codeberg.org/snonux/sheettrans/internal/session"
	"codeberg.org/snonux/sheettrans/internal/sheet"
	"codeberg.org/snonux/sheettrans/internal/table"
	"codeberg.org/snonux/sheettrans/internal/translation"
)

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	sourceSelect    *widget.SelectEntry
	targetSelect    *widget.SelectEntry
	fileButton      *ttwidget.Button
	fileLabel       *widget.Label
	sheetRow        *fyne.Container
	sheetSelect     *widget.Select
	columnChecks    *widget.CheckGroup
	newColumnsCheck *widget.Check
	translateButton *ttwidget.Button
	cancelButton    *ttwidget.Button
	progressBar     *widget.ProgressBar
	statusLabel     *widget.Label
	runsLabel       *widget.Label
	logViewer       *LogViewer

	// State management
	session *session.Session
	runs    *RunHistory
	i18n    *Localizer

	// Configuration
	config *Config

	// newProvider builds the provider stack for one run
	newProvider func(ctx context.Context) (translation.Provider, error)

	// Background processing
	ctx       context.Context
	cancel    context.CancelFunc
	runCancel context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
}

// Config holds GUI application configuration
type Config struct {
	Provider   *translation.Config
	Stack      translation.StackOptions
	SourceLang string
	TargetLang string
	NewColumns bool
	Workers    int
	UILanguage string // "en", "zh" or empty for the system locale
}

// DefaultConfig returns default GUI configuration
func DefaultConfig() *Config {
	return &Config{
		Provider:   translation.DefaultConfig(),
		SourceLang: translation.Languages[0],
		TargetLang: translation.Languages[1],
		Workers:    1,
	}
}

// New creates a new GUI application
func New(config *Config) *Application {
	if config == nil {
		config = DefaultConfig()
	} else {
		// Fill in missing fields with defaults
		defaults := DefaultConfig()
		if config.Provider == nil {
			config.Provider = defaults.Provider
		}
		if config.SourceLang == "" {
			config.SourceLang = defaults.SourceLang
		}
		if config.TargetLang == "" {
			config.TargetLang = defaults.TargetLang
		}
		if config.Workers < 1 {
			config.Workers = defaults.Workers
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	myApp := app.NewWithID("org.codeberg.snonux.sheettrans")
	myApp.SetIcon(GetAppIcon())

	a := &Application{
		app:     myApp,
		config:  config,
		ctx:     ctx,
		cancel:  cancel,
		session: session.New(),
		runs:    NewRunHistory(),
		i18n:    NewLocalizer(config.UILanguage),
	}
	a.newProvider = func(ctx context.Context) (translation.Provider, error) {
		// New fills in the default model, so hand it a copy
		providerConfig := *a.config.Provider
		return translation.NewStack(ctx, &providerConfig, a.config.Stack)
	}

	a.runs.SetCallback(func(RunRecord) {
		fyne.Do(a.updateRunsStatus)
	})

	a.setupUI()

	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	t := a.i18n.T

	a.window = a.app.NewWindow(fmt.Sprintf("sheettrans v%s - %s", internal.Version, t("WindowTitle")))
	a.window.SetIcon(GetAppIcon())
	a.window.Resize(fyne.NewSize(720, 640))

	// Language selection, editable for languages beyond the presets
	a.sourceSelect = widget.NewSelectEntry(translation.Languages)
	a.sourceSelect.SetText(a.config.SourceLang)
	a.targetSelect = widget.NewSelectEntry(translation.Languages)
	a.targetSelect.SetText(a.config.TargetLang)

	languageForm := container.New(layout.NewFormLayout(),
		widget.NewLabel(t("SourceLanguage")), a.sourceSelect,
		widget.NewLabel(t("TargetLanguage")), a.targetSelect,
	)

	// File selection (tooltips will be set after tooltip layer is created)
	a.fileButton = ttwidget.NewButtonWithIcon(t("SelectFile"), theme.FolderOpenIcon(), a.onSelectFile)
	a.fileLabel = widget.NewLabel(t("NoFileSelected"))
	a.fileLabel.Truncation = fyne.TextTruncateEllipsis
	fileRow := container.NewBorder(nil, nil, a.fileButton, nil, a.fileLabel)

	// Sheet selection, only shown for multi-sheet inputs
	a.sheetSelect = widget.NewSelect(nil, a.onSheetChanged)
	a.sheetRow = container.NewBorder(nil, nil, widget.NewLabel(t("Sheet")), nil, a.sheetSelect)
	a.sheetRow.Hide()

	// Column selection
	a.columnChecks = widget.NewCheckGroup(nil, nil)
	columnScroll := container.NewVScroll(a.columnChecks)
	columnScroll.SetMinSize(fyne.NewSize(0, 160))
	columnSection := container.NewBorder(widget.NewLabel(t("Columns")), nil, nil, nil, columnScroll)

	// Actions
	a.newColumnsCheck = widget.NewCheck(t("UseNewColumns"), nil)
	a.newColumnsCheck.SetChecked(a.config.NewColumns)

	a.translateButton = ttwidget.NewButtonWithIcon(t("Translate"), theme.ConfirmIcon(), a.onTranslate)
	a.translateButton.Importance = widget.HighImportance

	a.cancelButton = ttwidget.NewButtonWithIcon(t("Cancel"), theme.CancelIcon(), a.onCancel)
	a.cancelButton.Disable()

	actions := container.NewHBox(a.newColumnsCheck, layout.NewSpacer(), a.cancelButton, a.translateButton)

	// Status section
	a.progressBar = widget.NewProgressBar()
	a.statusLabel = widget.NewLabel(t("Ready"))
	a.runsLabel = widget.NewLabel("")
	a.runsLabel.TextStyle = fyne.TextStyle{Italic: true}
	a.updateRunsStatus()

	statusSection := container.NewVBox(
		actions,
		a.progressBar,
		a.statusLabel,
		widget.NewSeparator(),
		a.runsLabel,
	)

	form := container.NewBorder(
		container.NewVBox(
			fileRow,
			languageForm,
			a.sheetRow,
			widget.NewSeparator(),
		),
		statusSection,
		nil, nil,
		columnSection,
	)

	// Log viewer below the form
	a.logViewer = NewLogViewer(t("Log"))
	a.logViewer.StartCapture()

	content := container.NewVSplit(form, a.logViewer)
	content.SetOffset(0.7)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))

	// Now that tooltip layer is created, set all tooltips
	a.setupTooltips()

	a.window.SetOnClosed(func() {
		a.cancel()
		a.wg.Wait()
		a.logViewer.StopCapture()
	})

	// Set up keyboard shortcuts
	a.setupKeyboardShortcuts()
}

// Run starts the GUI application
func (a *Application) Run() {
	a.window.ShowAndRun()
}

// setupTooltips sets up all tooltips after the tooltip layer has been created
func (a *Application) setupTooltips() {
	a.fileButton.SetToolTip(a.i18n.T("SelectFileTooltip"))
	a.translateButton.SetToolTip(a.i18n.T("TranslateTooltip"))
	a.cancelButton.SetToolTip(a.i18n.T("CancelTooltip"))
}

func (a *Application) setupKeyboardShortcuts() {
	a.window.Canvas().AddShortcut(
		&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) {
			if !a.fileButton.Disabled() {
				a.onSelectFile()
			}
		})
	a.window.Canvas().AddShortcut(
		&desktop.CustomShortcut{KeyName: fyne.KeyT, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) {
			if !a.translateButton.Disabled() {
				a.onTranslate()
			}
		})
}

// onSelectFile shows the file dialog for spreadsheet inputs
func (a *Application) onSelectFile() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			a.showError(err)
			return
		}
		if reader == nil {
			return // Dialog was cancelled
		}
		path := reader.URI().Path()
		reader.Close()

		a.loadFile(path)
	}, a.window)
	fd.SetFilter(storage.NewExtensionFileFilter(sheet.Extensions))
	fd.Resize(fyne.NewSize(800, 600))
	fd.Show()
}

// loadFile loads path into the session and refreshes the form. A failed
// load keeps the previous file.
func (a *Application) loadFile(path string) {
	if err := a.session.Load(path); err != nil {
		a.showError(err)
		return
	}

	a.fileLabel.SetText(path)
	a.updateStatus(a.i18n.T("Loaded", map[string]any{"Path": path}))

	a.sheetSelect.Options = a.session.Sheets()
	a.sheetSelect.SetSelected(a.session.SelectedSheet())
	if a.session.MultiSheet() {
		a.sheetRow.Show()
	} else {
		a.sheetRow.Hide()
	}

	a.refreshColumns()
}

func (a *Application) onSheetChanged(name string) {
	if name == "" || name == a.session.SelectedSheet() {
		a.refreshColumns()
		return
	}
	if err := a.session.SelectSheet(name); err != nil {
		a.showError(err)
		return
	}
	a.refreshColumns()
}

func (a *Application) refreshColumns() {
	a.columnChecks.Options = a.session.Columns()
	a.columnChecks.Selected = nil
	a.columnChecks.Refresh()
}

// onTranslate validates the form and starts a background run
func (a *Application) onTranslate() {
	if a.session.State() == session.NoFileLoaded {
		a.showError(session.ErrNoFileLoaded)
		return
	}

	columns := orderedSelection(a.session.Columns(), a.columnChecks.Selected)
	if len(columns) == 0 {
		a.showError(session.ErrNoColumns)
		return
	}

	req := table.NewRequest(columns,
		languageLabel(a.sourceSelect.Text, a.config.SourceLang),
		languageLabel(a.targetSelect.Text, a.config.TargetLang),
		placementFor(a.newColumnsCheck.Checked),
	)

	run, err := a.runs.Start(a.session.Path(), a.session.SelectedSheet(), columns)
	if err != nil {
		a.showError(err)
		return
	}

	ctx, cancel := context.WithCancel(a.ctx)
	a.mu.Lock()
	a.runCancel = cancel
	a.mu.Unlock()

	a.setRunning(true)
	a.progressBar.SetValue(0)

	a.wg.Add(1)
	go a.translate(ctx, cancel, run.ID, req)
}

// translate runs in the background; all UI updates go through fyne.Do
func (a *Application) translate(ctx context.Context, cancel context.CancelFunc, runID int, req table.Request) {
	defer a.wg.Done()
	defer cancel()

	provider, err := a.newProvider(ctx)
	if err != nil {
		a.runs.Fail(runID, err)
		fyne.Do(func() {
			a.setRunning(false)
			a.showError(err)
		})
		return
	}

	opts := table.Options{
		Workers:     a.config.Workers,
		CallTimeout: a.config.Provider.Timeout,
		Progress: func(p table.Progress) {
			fyne.Do(func() {
				a.progressBar.SetValue(progressFraction(p))
				a.statusLabel.SetText(a.i18n.T("Translating", map[string]any{
					"Column": p.Column,
					"Done":   p.Done,
					"Total":  p.Total,
				}))
			})
		},
	}

	result, err := a.session.Translate(ctx, req, provider, opts)
	switch {
	case errors.Is(err, context.Canceled):
		a.runs.Cancel(runID)
		fyne.Do(func() {
			a.setRunning(false)
			a.updateStatus(a.i18n.T("CancelledMessage"))
			dialog.ShowInformation(a.i18n.T("CancelledTitle"), a.i18n.T("CancelledMessage"), a.window)
		})
	case err != nil:
		a.runs.Fail(runID, err)
		fyne.Do(func() {
			a.setRunning(false)
			a.showError(err)
		})
	default:
		failed := result.Report.Failed()
		a.runs.Complete(runID, result.OutputPath, failed)

		message := a.i18n.T("SuccessMessage", map[string]any{"Path": result.OutputPath})
		if failed > 0 {
			message += "\n" + a.i18n.T("FailedCells", map[string]any{"Count": failed})
		}
		fyne.Do(func() {
			a.setRunning(false)
			a.progressBar.SetValue(1)
			a.updateStatus(message)
			dialog.ShowInformation(a.i18n.T("SuccessTitle"), message, a.window)
		})
	}
}

// onCancel stops the running translation
func (a *Application) onCancel() {
	a.mu.Lock()
	cancel := a.runCancel
	a.runCancel = nil
	a.mu.Unlock()

	if cancel != nil {
		cancel()
		a.cancelButton.Disable()
	}
}

// Helper methods
func (a *Application) setRunning(running bool) {
	inputs := []fyne.Disableable{
		a.fileButton,
		a.sheetSelect,
		a.columnChecks,
		a.newColumnsCheck,
		a.sourceSelect,
		a.targetSelect,
		a.translateButton,
	}
	for _, w := range inputs {
		if running {
			w.Disable()
		} else {
			w.Enable()
		}
	}

	if running {
		a.cancelButton.Enable()
	} else {
		a.cancelButton.Disable()
		a.mu.Lock()
		a.runCancel = nil
		a.mu.Unlock()
	}
}

func (a *Application) updateStatus(message string) {
	a.statusLabel.SetText(message)
}

func (a *Application) updateRunsStatus() {
	completed, failed, cancelled := a.runs.Counts()
	a.runsLabel.SetText(a.i18n.T("RunsStatus", map[string]any{
		"Completed": completed,
		"Failed":    failed,
		"Cancelled": cancelled,
	}))
}

func (a *Application) showError(err error) {
	dialog.ShowError(err, a.window)
	a.updateStatus(a.i18n.T("ErrorTitle") + ": " + err.Error())
}
