package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
)

type RichLoggerOptions struct {
	Output       io.Writer
	TimeFormat   string
	Level        slog.Level
	EnableColors bool
	ShowTime     bool
	ShowLevel    bool
}

// DefaultOptions writes bare messages to stdout; conversion progress reads
// better without timestamps interleaved with the encoder's own output.
func DefaultOptions() *RichLoggerOptions {
	return &RichLoggerOptions{
		Output:       os.Stdout,
		TimeFormat:   "15:04:05",
		Level:        slog.LevelInfo,
		EnableColors: true,
	}
}

type RichHandler struct {
	opts   *RichLoggerOptions
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
}

func NewRichHandler(opts *RichLoggerOptions) *RichHandler {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &RichHandler{
		opts: opts,
		mu:   &sync.Mutex{},
	}
}

func (h *RichHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level
}

func (h *RichHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := h.clone()
	h2.attrs = append(h2.attrs, attrs...)
	return h2
}

func (h *RichHandler) WithGroup(name string) slog.Handler {
	h2 := h.clone()
	h2.groups = append(h2.groups, name)
	return h2
}

// clone shares the mutex so derived handlers never interleave writes.
func (h *RichHandler) clone() *RichHandler {
	h2 := &RichHandler{
		opts:   h.opts,
		mu:     h.mu,
		attrs:  make([]slog.Attr, len(h.attrs)),
		groups: make([]string, len(h.groups)),
	}
	copy(h2.attrs, h.attrs)
	copy(h2.groups, h.groups)
	return h2
}

func (h *RichHandler) Handle(_ context.Context, record slog.Record) error {
	var builder strings.Builder

	levelColors := map[slog.Level]string{
		slog.LevelDebug: Cyan,
		slog.LevelInfo:  Green,
		slog.LevelWarn:  Yellow,
		slog.LevelError: Red,
	}

	if h.opts.ShowTime {
		h.paint(&builder, Blue, record.Time.Format(h.opts.TimeFormat))
		builder.WriteString(" ")
	}

	if h.opts.ShowLevel {
		levelStr := fmt.Sprintf("%-5s", strings.ToUpper(record.Level.String()))
		h.paint(&builder, levelColors[record.Level]+Bold, levelStr)
		builder.WriteString(" ")
	}

	builder.WriteString(record.Message)

	prefix := strings.Join(h.groups, ".")
	writeAttr := func(a slog.Attr) bool {
		key := a.Key
		if prefix != "" {
			key = prefix + "." + key
		}
		builder.WriteString(" ")
		h.paint(&builder, Cyan, key+"=")
		builder.WriteString(a.Value.String())
		return true
	}
	for _, a := range h.attrs {
		writeAttr(a)
	}
	record.Attrs(writeAttr)

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := fmt.Fprintln(h.opts.Output, builder.String())
	return err
}

func (h *RichHandler) paint(b *strings.Builder, color, text string) {
	if !h.opts.EnableColors {
		b.WriteString(text)
		return
	}
	b.WriteString(color)
	b.WriteString(text)
	b.WriteString(Reset)
}
