package main

import (
	"context"
	"io"
	"os"
	"os/exec"
	"runtime"
)

// Runner starts a command in dir and waits for it. A nil error means exit status 0.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}

// ExecRunner runs commands with os/exec, streaming their output to Stdout and Stderr.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (r ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd.Run()
}

// Platform describes the host: its OS family, how executables are resolved
// and how commands are run.
type Platform struct {
	OS       string
	LookPath func(name string) (string, error)
	Runner   Runner
}

// HostPlatform returns the Platform of the running process.
func HostPlatform() Platform {
	return Platform{
		OS:       runtime.GOOS,
		LookPath: exec.LookPath,
		Runner:   ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr},
	}
}

func (p Platform) has(name string) bool {
	_, err := p.LookPath(name)
	return err == nil
}

// PackageManager is one row of the install table: the binary whose presence
// selects it, the package that provides the encoder, and the commands to run in order.
type PackageManager struct {
	Name     string
	Package  string
	Commands [][]string
}

// PackageManagers lists managers per OS family in probe order.
var PackageManagers = map[string][]PackageManager{
	"linux": {
		{
			Name:    "apt-get",
			Package: "webp",
			Commands: [][]string{
				{"sudo", "apt-get", "update"},
				{"sudo", "apt-get", "install", "-y", "webp"},
			},
		},
		{
			Name:     "dnf",
			Package:  "libwebp-tools",
			Commands: [][]string{{"sudo", "dnf", "install", "-y", "libwebp-tools"}},
		},
		{
			Name:     "yum",
			Package:  "libwebp-tools",
			Commands: [][]string{{"sudo", "yum", "install", "-y", "libwebp-tools"}},
		},
		{
			Name:     "pacman",
			Package:  "libwebp",
			Commands: [][]string{{"sudo", "pacman", "-S", "--noconfirm", "libwebp"}},
		},
		{
			Name:     "zypper",
			Package:  "libwebp-tools",
			Commands: [][]string{{"sudo", "zypper", "install", "-y", "libwebp-tools"}},
		},
	},
	"darwin": {
		{
			Name:     "brew",
			Package:  "webp",
			Commands: [][]string{{"brew", "install", "webp"}},
		},
	},
}

// DetectPackageManager returns the first manager for p.OS whose binary resolves.
func (p Platform) DetectPackageManager() (PackageManager, bool) {
	for _, pm := range PackageManagers[p.OS] {
		if p.has(pm.Name) {
			return pm, true
		}
	}
	return PackageManager{}, false
}
