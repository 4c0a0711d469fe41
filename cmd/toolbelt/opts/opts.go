package opts

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/toolbelt/pkg/config"
	"github.com/walteh/toolbelt/pkg/log"
	"github.com/walteh/toolbelt/pkg/operation"
)

// SkipLoad is a command annotation; annotated commands run without loading
// the config or building the logger.
const SkipLoad = "toolbelt/skip-load"

// RootOpts contains shared options used by all commands
type RootOpts struct {
	// Flags
	ConfigPath string
	Verbose    bool

	// Set by Load
	Stdout io.Writer
	Config *config.Config
	Logger *log.Logger
}

// Load resolves the config and builds the invocation logger. --verbose wins
// over the configured level.
func (o *RootOpts) Load(ctx context.Context, stdout io.Writer) error {
	if stdout == nil {
		stdout = os.Stdout
	}
	o.Stdout = stdout

	cfg, err := config.Resolve(ctx, o.ConfigPath)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	o.Config = cfg

	level := cfg.Level()
	if o.Verbose {
		level = zerolog.DebugLevel
	}
	o.Logger = log.New(stdout, level)
	if loc := cfg.Location(); loc != "" {
		o.Logger.Debug().Str("path", loc).Msg("using config file")
	}
	return nil
}

// Options hands the loaded config and logger to an operation.
func (o *RootOpts) Options() operation.Options {
	return operation.Options{Config: o.Config, Logger: o.Logger}
}

// Run executes op through a timing runner.
func (o *RootOpts) Run(ctx context.Context, op operation.Operation) error {
	return operation.NewRunner(o.Logger).Run(ctx, op)
}

// BoolFlag returns the flag value when it was set on the command line and
// fallback otherwise, so config values only fill in unset flags.
func BoolFlag(cmd *cobra.Command, name string, fallback bool) bool {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return fallback
	}
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return fallback
	}
	return v
}
