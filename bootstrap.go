package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"webpconv/logger"
)

// Sentinel errors returned by EnsureTool when the encoder cannot be provided.
var (
	ErrUnsupportedOS    = errors.New("unsupported operating system")
	ErrNoPackageManager = errors.New("no supported package manager found")
	ErrManualInstall    = errors.New("automatic installation is not supported on this platform")
	ErrInstallFailed    = errors.New("package manager command failed")
	ErrToolStillMissing = errors.New("tool not found on PATH after installation")
)

const (
	homebrewURL    = "https://brew.sh/"
	webpReleaseURL = "https://developers.google.com/speed/webp/download"
)

type Bootstrapper struct {
	Tool     string
	Platform Platform
	Console  *logger.Console
	Journal  *logger.Journal
}

// EnsureTool makes sure the conversion tool resolves on PATH, installing it
// through the host package manager when it does not. It is a no-op when the
// tool is already present. Every failure is printed before it is returned.
func (b *Bootstrapper) EnsureTool(ctx context.Context) error {
	b.Console.Log("Checking dependencies...")

	if b.Platform.has(b.Tool) {
		b.Console.Success("%s is already installed.", b.Tool)
		return nil
	}

	b.Console.Warn("%s is not installed. Attempting to install...", b.Tool)

	if err := b.install(ctx); err != nil {
		b.Journal.Error().Err(err).Str("os", b.Platform.OS).Msg("install failed")
		return err
	}

	if !b.Platform.has(b.Tool) {
		b.Console.Error("Failed to install %s. Please install it manually.", b.Tool)
		return fmt.Errorf("%s: %w", b.Tool, ErrToolStillMissing)
	}

	b.Console.Success("%s has been successfully installed.", b.Tool)
	return nil
}

func (b *Bootstrapper) install(ctx context.Context) error {
	switch b.Platform.OS {
	case "linux":
		pm, ok := b.Platform.DetectPackageManager()
		if !ok {
			b.Console.Error("Unable to detect package manager. Please install %s manually.", b.Tool)
			return ErrNoPackageManager
		}
		b.Console.Info("Detected %s package manager. Installing %s...", pm.Name, pm.Package)
		return b.runManager(ctx, pm)

	case "darwin":
		pm, ok := b.Platform.DetectPackageManager()
		if !ok {
			b.Console.Error("Homebrew not found. Please install it first: %s", homebrewURL)
			return ErrNoPackageManager
		}
		b.Console.Info("Detected Homebrew. Installing %s...", pm.Package)
		return b.runManager(ctx, pm)

	case "windows":
		b.Console.Error("Automatic installation on Windows is not supported.")
		b.Console.Log("Please download and install from: %s", webpReleaseURL)
		return ErrManualInstall

	default:
		b.Console.Error("Unsupported operating system: %s", b.Platform.OS)
		return fmt.Errorf("%w: %s", ErrUnsupportedOS, b.Platform.OS)
	}
}

// runManager runs the manager's commands in order and stops at the first non-zero exit.
func (b *Bootstrapper) runManager(ctx context.Context, pm PackageManager) error {
	for _, command := range pm.Commands {
		start := time.Now()
		err := b.Platform.Runner.Run(ctx, "", command[0], command[1:]...)

		b.Journal.Info().
			Str("manager", pm.Name).
			Strs("command", command).
			Dur("duration", time.Since(start)).
			AnErr("error", err).
			Msg("package manager command")

		if err != nil {
			b.Console.Error("Error during installation: %s: %v", strings.Join(command, " "), err)
			return fmt.Errorf("%w: %s: %w", ErrInstallFailed, pm.Name, err)
		}
	}
	return nil
}
