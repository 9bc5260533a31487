package logger

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// IsTerminal reports whether f is attached to a TTY, including Cygwin/MSYS ptys.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ResolveColor decides whether ANSI colors are used for mode.
// Auto honors NO_COLOR (https://no-color.org) and TERM=dumb.
func ResolveColor(mode string, tty bool) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return tty &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// StdoutConsole builds the console used by the CLI. On Windows the writer
// translates ANSI sequences for legacy terminals. timestamps prefixes each
// line with the time and level.
func StdoutConsole(colorMode string, timestamps bool) *Console {
	tty := IsTerminal(os.Stdout)

	var out io.Writer = os.Stdout
	if tty {
		out = colorable.NewColorable(os.Stdout)
	}

	opts := DefaultOptions()
	opts.Output = out
	opts.EnableColors = ResolveColor(colorMode, tty)
	opts.ShowTime = timestamps
	opts.ShowLevel = timestamps

	c := NewConsole(opts)
	c.Interactive = tty
	return c
}
