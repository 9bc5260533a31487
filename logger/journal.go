package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"
)

// Journal is the machine-readable record of a run: one JSON object per line,
// each tagged with the run id so appended runs can be told apart.
type Journal struct {
	zerolog.Logger
	RunID string
	file  *os.File
}

// NopJournal discards every event.
func NopJournal() *Journal {
	return &Journal{Logger: zerolog.Nop()}
}

// OpenJournal appends to path, creating parent directories as needed.
// An empty path yields a NopJournal.
func OpenJournal(path string, debug bool) (*Journal, error) {
	if path == "" {
		return NopJournal(), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("error creating journal directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("error opening journal: %w", err)
	}

	j, err := NewJournal(f, debug)
	if err != nil {
		f.Close()
		return nil, err
	}
	j.file = f

	return j, nil
}

// NewJournal writes events to w.
func NewJournal(w io.Writer, debug bool) (*Journal, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("error generating run id: %w", err)
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return &Journal{
		Logger: zerolog.New(w).Level(level).With().Timestamp().Str("run_id", id.String()).Logger(),
		RunID:  id.String(),
	}, nil
}

func (j *Journal) Close() error {
	if j.file == nil {
		return nil
	}
	err := j.file.Close()
	j.file = nil
	return err
}
