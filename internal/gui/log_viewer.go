package gui

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// LogWriter forwards log output to the original writer and a sink
type LogWriter struct {
	sink     func(string)
	original io.Writer
}

// Write implements io.Writer
func (w *LogWriter) Write(p []byte) (n int, err error) {
	if w.original != nil {
		w.original.Write(p)
	}

	if w.sink != nil {
		for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
			if line != "" {
				w.sink(line)
			}
		}
	}

	return len(p), nil
}

// logBuffer keeps the newest messages first, bounded to max entries
type logBuffer struct {
	mu       sync.Mutex
	messages []string
	max      int
}

func (b *logBuffer) add(message string, now time.Time) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.messages = append([]string{fmt.Sprintf("[%s] %s", now.Format("15:04:05"), message)}, b.messages...)
	if len(b.messages) > b.max {
		b.messages = b.messages[:b.max]
	}
	return strings.Join(b.messages, "\n")
}

func (b *logBuffer) clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = b.messages[:0]
}

// LogViewer is a widget that displays log messages
type LogViewer struct {
	widget.BaseWidget

	container  *fyne.Container
	logEntry   *widget.Entry
	scrollView *container.Scroll

	buffer *logBuffer
	writer *LogWriter
}

// NewLogViewer creates a new log viewer widget
func NewLogViewer(title string) *LogViewer {
	v := &LogViewer{
		buffer: &logBuffer{max: 1000}, // Keep last 1000 messages
	}

	// Create log entry (read-only multiline)
	v.logEntry = widget.NewMultiLineEntry()
	v.logEntry.Disable()
	v.logEntry.Wrapping = fyne.TextWrapWord

	v.scrollView = container.NewScroll(v.logEntry)
	v.scrollView.SetMinSize(fyne.NewSize(0, 160))
	v.scrollView.Direction = container.ScrollBoth

	v.container = container.NewBorder(
		widget.NewLabel(title),
		nil,
		nil,
		nil,
		v.scrollView,
	)

	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer implements fyne.Widget
func (v *LogViewer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.container)
}

// StartCapture redirects the log package into the viewer, keeping stderr
func (v *LogViewer) StartCapture() {
	v.writer = &LogWriter{sink: v.AddMessage, original: os.Stderr}
	log.SetOutput(v.writer)
}

// StopCapture restores log output to stderr
func (v *LogViewer) StopCapture() {
	if v.writer != nil {
		log.SetOutput(os.Stderr)
		v.writer = nil
	}
}

// AddMessage adds a message to the log
func (v *LogViewer) AddMessage(message string) {
	text := v.buffer.add(message, time.Now())

	// Update UI on main thread
	fyne.Do(func() {
		v.logEntry.SetText(text)

		// Keep scroll at top to show newest messages
		v.scrollView.Offset = fyne.NewPos(0, 0)
		v.scrollView.Refresh()
	})
}

// Clear clears all log messages
func (v *LogViewer) Clear() {
	v.buffer.clear()

	fyne.Do(func() {
		v.logEntry.SetText("")
		v.scrollView.Offset = fyne.NewPos(0, 0)
		v.scrollView.Refresh()
	})
}
