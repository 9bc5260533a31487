package logger

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Console prints the human-facing lines of a run. Every method renders one
// line through the slog RichHandler, so output stays ordered even when a
// spinner or progress bar shares the writer.
type Console struct {
	Logger *slog.Logger
	Out    io.Writer
	// Colorized wraps messages in ANSI sequences.
	Colorized bool
	// Interactive enables redrawn widgets (spinner frames, progress bar).
	Interactive bool
}

func NewConsole(opts *RichLoggerOptions) *Console {
	if opts == nil {
		opts = DefaultOptions()
	}

	handler := NewRichHandler(opts)

	return &Console{
		Logger:    slog.New(handler),
		Out:       handler.opts.Output,
		Colorized: opts.EnableColors,
	}
}

func (c *Console) StartTimer(name string) *Timer {
	return &Timer{
		Name:      name,
		StartTime: time.Now(),
		Console:   c,
	}
}

func (c *Console) Success(format string, args ...interface{}) {
	c.Logger.Info(c.colorize(Green+Bold, "✓ "+fmt.Sprintf(format, args...)))
}

func (c *Console) Info(format string, args ...interface{}) {
	c.Logger.Info(c.colorize(Blue+Bold, fmt.Sprintf(format, args...)))
}

func (c *Console) Log(format string, args ...interface{}) {
	c.Logger.Info(fmt.Sprintf(format, args...))
}

func (c *Console) Warn(format string, args ...interface{}) {
	c.Logger.Warn(c.colorize(Yellow+Bold, "⚠ "+fmt.Sprintf(format, args...)))
}

func (c *Console) Error(format string, args ...interface{}) {
	c.Logger.Error(c.colorize(Red+Bold, "× "+fmt.Sprintf(format, args...)))
}

func (c *Console) colorize(color, msg string) string {
	if !c.Colorized {
		return msg
	}
	return color + msg + Reset
}

// StartSpinner animates message until Stop is called. Non-interactive
// consoles only see the line printed by Stop.
func (c *Console) StartSpinner(message string) *Spinner {
	s := &Spinner{
		Message: message,
		Frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		Console: c,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}

	s.Start()
	return s
}

func (c *Console) NewProgressBar(total int64, label string) *ProgressBar {
	return NewProgressBar(total, label, c.Out)
}

func (c *Console) NewTable(headers []string) *Table {
	return NewTable(headers, c.Out)
}
