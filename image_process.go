package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"webpconv/logger"

	"golang.org/x/image/webp"
)

// Matching is case-sensitive: photo.JPG is not picked up.
var imageFormats = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".tiff": true,
	".tif":  true,
	".bmp":  true,
}

const (
	gifFormat    = ".gif"
	outputFormat = ".webp"
)

// FileSet holds discovered paths relative to the scanned root, in walk order.
type FileSet struct {
	Images []string
	GIFs   []string
}

type Processor struct {
	Dir        string
	Tool       string
	Parameters []string
	Display    string
	Summary    bool
	Runner     Runner
	Console    *logger.Console
	Journal    *logger.Journal

	bar *logger.ProgressBar
}

type ProcessStats struct {
	TotalFiles          int
	SuccessfulFiles     int
	FailedFiles         int
	TotalOriginalSize   int64
	TotalCompressedSize int64
	Elapsed             time.Duration
}

func NewProcessor(cfg *Config, runner Runner, console *logger.Console, journal *logger.Journal) *Processor {
	return &Processor{
		Dir:        cfg.Dir,
		Tool:       cfg.Tool,
		Parameters: cfg.Parameters,
		Display:    cfg.Display,
		Summary:    cfg.Summary,
		Runner:     runner,
		Console:    console,
		Journal:    journal,
	}
}

// OutputPath swaps the extension of path for .webp, keeping its directory.
func OutputPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + outputFormat
}

// CollectFiles walks root recursively. Like shell globbing, entries whose
// name starts with a dot are skipped, hidden directories included.
// Unreadable subdirectories are reported and skipped; an unreadable root is
// an error.
func (p *Processor) CollectFiles(root string) (FileSet, error) {
	var files FileSet

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			p.Console.Warn("Skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		ext := filepath.Ext(path)
		switch {
		case imageFormats[ext]:
			files.Images = append(files.Images, rel)
		case ext == gifFormat:
			files.GIFs = append(files.GIFs, rel)
		}

		return nil
	})

	if err != nil {
		return FileSet{}, fmt.Errorf("error while exploring directory: %w", err)
	}

	return files, nil
}

// Run converts every still image, then every GIF, one process at a time.
// A failed file is reported and counted; it never stops the run. Only a
// failed scan or a cancelled ctx returns an error.
func (p *Processor) Run(ctx context.Context) (*ProcessStats, error) {
	timer := p.Console.StartTimer("Conversion")

	spinner := p.Console.StartSpinner(fmt.Sprintf("Scanning %s...", p.Dir))
	files, err := p.CollectFiles(p.Dir)
	spinner.Stop(err == nil, "")
	if err != nil {
		return nil, err
	}

	p.Journal.Info().
		Str("dir", p.Dir).
		Str("tool", p.Tool).
		Strs("parameters", p.Parameters).
		Int("images", len(files.Images)).
		Int("gifs", len(files.GIFs)).
		Msg("run started")

	p.Console.Log("Found %d image files and %d GIF files", len(files.Images), len(files.GIFs))

	stats := &ProcessStats{TotalFiles: len(files.Images) + len(files.GIFs)}

	// The bar redraws in place, which only works on a terminal; elsewhere the
	// per-file lines are printed instead.
	p.bar = nil
	if p.Display == DisplayBar && p.Console.Interactive && stats.TotalFiles > 0 {
		p.bar = p.Console.NewProgressBar(int64(stats.TotalFiles), "Converting")
	}

	for i, path := range files.Images {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		ok := p.convert(ctx, path, "image", stats)

		if p.bar != nil {
			p.bar.Increment(ok)
			continue
		}
		p.Console.Log("%d out of %d images converted", i+1, len(files.Images))
		p.Console.Log("0 out of %d GIFs converted", len(files.GIFs))
	}

	for i, path := range files.GIFs {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		ok := p.convert(ctx, path, "gif", stats)

		if p.bar != nil {
			p.bar.Increment(ok)
			continue
		}
		p.Console.Log("%d out of %d GIFs converted", i+1, len(files.GIFs))
	}

	if p.bar != nil {
		p.bar.Complete()
		p.bar = nil
	}

	stats.Elapsed = timer.Elapsed()

	p.Journal.Info().
		Int("total", stats.TotalFiles).
		Int("succeeded", stats.SuccessfulFiles).
		Int("failed", stats.FailedFiles).
		Dur("elapsed", stats.Elapsed).
		Msg("run finished")

	if p.Summary {
		p.displayResults(stats)
		timer.End()
	}

	return stats, nil
}

// convert runs the tool once for path and records the outcome in stats.
func (p *Processor) convert(ctx context.Context, path, phase string, stats *ProcessStats) bool {
	output := OutputPath(path)

	event := p.Journal.Info().Str("phase", phase).Str("input", path).Str("output", output)

	if err := os.MkdirAll(filepath.Join(p.Dir, filepath.Dir(output)), 0o755); err != nil {
		stats.FailedFiles++
		p.reportFailure(path, err)
		event.Err(err).Msg("conversion failed")
		return false
	}

	args := make([]string, 0, len(p.Parameters)+3)
	args = append(args, p.Parameters...)
	args = append(args, path, "-o", output)

	start := time.Now()
	err := p.Runner.Run(ctx, p.Dir, p.Tool, args...)
	event = event.Dur("duration", time.Since(start))

	if err != nil {
		stats.FailedFiles++
		p.reportFailure(path, err)
		event.Err(err).Msg("conversion failed")
		return false
	}

	stats.SuccessfulFiles++
	if p.bar == nil {
		p.Console.Success("Converted %s to %s", path, output)
	}

	// Sizes are only counted in pairs so the compression ratio stays honest.
	inputSize, inErr := fileSize(filepath.Join(p.Dir, path))
	width, height, outputSize, outErr := inspectOutput(filepath.Join(p.Dir, output))
	if inErr == nil && outErr == nil {
		stats.TotalOriginalSize += inputSize
		stats.TotalCompressedSize += outputSize
		event = event.Int64("input_bytes", inputSize).
			Int64("output_bytes", outputSize).
			Int("width", width).
			Int("height", height)
	} else {
		p.Journal.Debug().AnErr("input_error", inErr).AnErr("output_error", outErr).
			Str("output", output).Msg("could not measure conversion")
	}

	event.Msg("converted")
	return true
}

// reportFailure prints a failure line, moving the progress bar out of the way first.
func (p *Processor) reportFailure(path string, err error) {
	if p.bar != nil {
		p.bar.Clear()
	}
	p.Console.Error("Error converting %s: %v", path, err)
}

func fileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// inspectOutput reads only the WebP header of path.
func inspectOutput(path string) (width, height int, size int64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, 0, 0, err
	}

	cfg, err := webp.DecodeConfig(f)
	if err != nil {
		return 0, 0, info.Size(), fmt.Errorf("error decoding webp header: %w", err)
	}

	return cfg.Width, cfg.Height, info.Size(), nil
}

func (p *Processor) displayResults(stats *ProcessStats) {
	var ratio float64
	if stats.TotalOriginalSize > 0 {
		ratio = float64(stats.TotalCompressedSize) / float64(stats.TotalOriginalSize) * 100
	}

	table := p.Console.NewTable([]string{"Metric", "Value"})
	table.AddRow("Converted files", fmt.Sprintf("%d/%d", stats.SuccessfulFiles, stats.TotalFiles))
	table.AddRow("Failed files", fmt.Sprintf("%d", stats.FailedFiles))
	table.AddRow("Original size", fmt.Sprintf("%.2f MB", float64(stats.TotalOriginalSize)/1024/1024))
	table.AddRow("WebP size", fmt.Sprintf("%.2f MB", float64(stats.TotalCompressedSize)/1024/1024))
	table.AddRow("Compression ratio", fmt.Sprintf("%.1f%%", ratio))

	p.Console.Info("Processing Summary:")
	table.Print()
}
