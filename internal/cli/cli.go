// Package cli provides the command-line interface for eodhd
package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dyike/eodhd-cli/internal/config"
	"github.com/dyike/eodhd-cli/internal/dataflows"
	"github.com/dyike/eodhd-cli/internal/display"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitTransport = 1
	ExitUsage     = 2
)

// Execute runs the CLI against the real environment and returns the exit code.
func Execute() int {
	cfg := config.DefaultConfig()

	app := &App{
		Out:    os.Stdout,
		Err:    os.Stderr,
		Config: cfg,
		Tokens: config.NewEnvToken(cfg.TokenEnv),
	}
	return Run(context.Background(), app, os.Args[1:])
}

// Run executes the root command with args, prints any diagnostic to app.Err
// and returns the exit code.
func Run(ctx context.Context, app *App, args []string) int {
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}

	rootCmd := NewRootCmd(app)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(app.Out)
	rootCmd.SetErr(app.Err)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		display.NewResultsDisplay(app.Out, app.Err).ShowError(err)
	}
	return ExitCode(err)
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var ce *dataflows.ConfigError
	var ue *dataflows.UsageError
	if errors.As(err, &ce) || errors.As(err, &ue) {
		return ExitUsage
	}
	// Transport failures and anything unexpected, such as a failed write.
	return ExitTransport
}
