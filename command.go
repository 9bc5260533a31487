package main

import (
	"context"
	"errors"
	"fmt"

	"webpconv/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	DisplayLines = "lines"
	DisplayBar   = "bar"
)

// DefaultParameters are forwarded to the conversion tool when no arguments are given.
var DefaultParameters = []string{"-m", "6", "-q", "70", "-mt", "-af", "-progress"}

type Config struct {
	Dir     string
	Tool    string
	Color   string
	Display string
	Summary bool
	LogFile string
	Debug   bool
	// Timestamps prefixes console lines with the time and level.
	Timestamps bool

	Parameters []string
}

// Parameters returns args verbatim when any were given, otherwise a copy of
// DefaultParameters. The two are never merged.
func Parameters(args []string) []string {
	if len(args) > 0 {
		return append([]string(nil), args...)
	}
	return append([]string(nil), DefaultParameters...)
}

// NewViper returns a viper instance reading WEBPCONV_* variables and an
// optional webpconv.{toml,yaml,json} in the working directory.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("dir", ".")
	v.SetDefault("tool", "cwebp")
	v.SetDefault("color", logger.ColorAuto)
	v.SetDefault("display", DisplayLines)
	v.SetDefault("summary", false)
	v.SetDefault("log_file", "")
	v.SetDefault("debug", false)
	v.SetDefault("timestamps", false)

	v.SetEnvPrefix("webpconv")
	v.AutomaticEnv()

	v.SetConfigName("webpconv")
	v.AddConfigPath(".")

	return v
}

// LoadConfig reads v into a Config. A missing config file is not an error.
func LoadConfig(v *viper.Viper, args []string) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Dir:        v.GetString("dir"),
		Tool:       v.GetString("tool"),
		Color:      v.GetString("color"),
		Display:    v.GetString("display"),
		Summary:    v.GetBool("summary"),
		LogFile:    v.GetString("log_file"),
		Debug:      v.GetBool("debug"),
		Timestamps: v.GetBool("timestamps"),
		Parameters: Parameters(args),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) validate() error {
	switch cfg.Color {
	case logger.ColorAuto, logger.ColorAlways, logger.ColorNever:
	default:
		return fmt.Errorf("error: color must be one of auto, always, never (got %q)", cfg.Color)
	}
	switch cfg.Display {
	case DisplayLines, DisplayBar:
	default:
		return fmt.Errorf("error: display must be lines or bar (got %q)", cfg.Display)
	}
	if cfg.Tool == "" {
		return errors.New("error: tool must not be empty")
	}
	if cfg.Dir == "" {
		return errors.New("error: dir must not be empty")
	}
	return nil
}

// NewRootCommand builds the CLI. Flag parsing is disabled: every argument
// belongs to the conversion tool, including ones like -h.
func NewRootCommand(v *viper.Viper, run func(cmd *cobra.Command, cfg *Config) error) *cobra.Command {
	return &cobra.Command{
		Use:   "webpconv [tool parameters...]",
		Short: "Convert every image under the working directory to WebP",
		Long: `webpconv walks the working directory, converts JPEG, PNG, TIFF and BMP
files to WebP with cwebp, then converts GIF files. Any arguments replace the
default encoder parameters (-m 6 -q 70 -mt -af -progress).

Settings are read from WEBPCONV_* environment variables or webpconv.toml:
  dir, tool, color (auto|always|never), display (lines|bar), summary, log_file, debug, timestamps`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(v, args)
			if err != nil {
				return err
			}
			return run(cmd, cfg)
		},
	}
}

// ExecuteRoot runs root with args. cobra answers its hidden shell-completion
// requests before dispatching to RunE, so those names are routed to RunE
// directly and reach the conversion tool like any other argument.
func ExecuteRoot(ctx context.Context, root *cobra.Command, args []string) error {
	if len(args) > 0 && (args[0] == cobra.ShellCompRequestCmd || args[0] == cobra.ShellCompNoDescRequestCmd) {
		root.SetContext(ctx)
		return root.RunE(root, args)
	}

	// A nil slice makes cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
