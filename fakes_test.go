package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"

	"webpconv/logger"
)

type runCall struct {
	Dir  string
	Name string
	Args []string
}

// fakeRunner records every invocation. Conversions whose input is listed in
// fail exit non-zero; others write output when set.
type fakeRunner struct {
	calls  []runCall
	fail   map[string]bool
	output []byte
	onRun  func(name string, args []string)
	runErr error
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) error {
	f.calls = append(f.calls, runCall{Dir: dir, Name: name, Args: append([]string(nil), args...)})

	if f.onRun != nil {
		f.onRun(name, args)
	}
	if f.runErr != nil {
		return f.runErr
	}

	if len(args) >= 3 && args[len(args)-2] == "-o" {
		input, output := args[len(args)-3], args[len(args)-1]
		if f.fail[input] {
			return errors.New("exit status 1")
		}
		if f.output != nil {
			if err := os.WriteFile(filepath.Join(dir, output), f.output, 0o644); err != nil {
				return err
			}
		}
	}
	return nil
}

// inputs returns the input path of every conversion call, in order.
func (f *fakeRunner) inputs() []string {
	var out []string
	for _, c := range f.calls {
		if n := len(c.Args); n >= 3 && c.Args[n-2] == "-o" {
			out = append(out, c.Args[n-3])
		}
	}
	return out
}

type fakePath map[string]bool

func (p fakePath) LookPath(name string) (string, error) {
	if p[name] {
		return "/usr/bin/" + name, nil
	}
	return "", exec.ErrNotFound
}

func testConsole() (*logger.Console, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	opts := logger.DefaultOptions()
	opts.Output = buf
	opts.EnableColors = false
	return logger.NewConsole(opts), buf
}

func writeFiles(root string, paths ...string) error {
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(full, []byte("data"), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// tinyWebP is a lossless WebP header describing a 2x3 image.
var tinyWebP = []byte{
	'R', 'I', 'F', 'F', 0x12, 0x00, 0x00, 0x00,
	'W', 'E', 'B', 'P',
	'V', 'P', '8', 'L', 0x05, 0x00, 0x00, 0x00,
	0x2f, 0x01, 0x80, 0x00, 0x00, 0x00,
}
