package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"webpconv/logger"

	"github.com/spf13/cobra"
)

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], HostPlatform(), logger.StdoutConsole))
}

// execute returns the process exit code: 1 when configuration fails or the
// encoder cannot be made available, 0 otherwise, even if some files failed.
func execute(ctx context.Context, args []string, platform Platform, newConsole func(colorMode string, timestamps bool) *logger.Console) int {
	root := NewRootCommand(NewViper(), func(cmd *cobra.Command, cfg *Config) error {
		console := newConsole(cfg.Color, cfg.Timestamps)

		journal, err := logger.OpenJournal(cfg.LogFile, cfg.Debug)
		if err != nil {
			return err
		}
		defer journal.Close()

		return run(cmd.Context(), cfg, platform, console, journal)
	})

	if err := ExecuteRoot(ctx, root, args); err != nil {
		fmt.Fprintf(os.Stderr, "webpconv: %v\n", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg *Config, platform Platform, console *logger.Console, journal *logger.Journal) error {
	bootstrapper := &Bootstrapper{
		Tool:     cfg.Tool,
		Platform: platform,
		Console:  console,
		Journal:  journal,
	}
	if err := bootstrapper.EnsureTool(ctx); err != nil {
		return fmt.Errorf("%s is required but unavailable: %w", cfg.Tool, err)
	}

	// The tool runs with the scan root as its working directory, so a
	// relative path must be pinned to where it was found.
	tool, err := resolveTool(platform, cfg.Tool)
	if err != nil {
		return fmt.Errorf("%s is required but unavailable: %w", cfg.Tool, err)
	}

	processor := NewProcessor(cfg, platform.Runner, console, journal)
	processor.Tool = tool
	if _, err := processor.Run(ctx); err != nil {
		return fmt.Errorf("processing error: %w", err)
	}

	return nil
}

func resolveTool(platform Platform, name string) (string, error) {
	path, err := platform.LookPath(name)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	return filepath.Abs(path)
}
