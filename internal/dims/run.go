package dims

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.followtheprocess.codes/dims/internal/checker"
	"go.followtheprocess.codes/dims/internal/env"
	"go.followtheprocess.codes/dims/internal/interpreter"
	"go.followtheprocess.codes/dims/internal/syntax"
)

// RunOptions are the options passed to the run subcommand.
type RunOptions struct {
	// Timeout, if set, stops the program after this long.
	Timeout time.Duration

	// Debug enables debug logging.
	Debug bool
}

// Validate reports whether the RunOptions is valid, returning an error
// if it's not.
func (r RunOptions) Validate() error {
	if r.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative, got %s", r.Timeout)
	}

	return nil
}

// Run implements the run subcommand, it checks the file and runs it if and only
// if it passes.
func (a App) Run(ctx context.Context, file string, handler syntax.ErrorHandler, options RunOptions) error {
	logger := a.logger.Prefixed("run").With(slog.String("file", file))
	logger.Debug("Run configuration", slog.String("options", fmt.Sprintf("%+v", options)))

	if err := options.Validate(); err != nil {
		return err
	}

	if options.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	stmt, err := a.parseFile(logger, file, handler)
	if err != nil {
		return err
	}

	start := time.Now()

	result, err := checker.Check(stmt, env.New[*checker.Fact]())
	logger.Debug("Checked file", slog.Int("diagnostics", len(result.Diagnostics)), slog.Duration("took", time.Since(start)))

	if err != nil {
		a.report(file, result.Diagnostics, 0)
		return fmt.Errorf("%s: %w", file, err)
	}

	start = time.Now()

	err = interpreter.New(a.stdout).Run(ctx, stmt, env.New[*interpreter.Val]())
	logger.Debug("Ran file", slog.Duration("took", time.Since(start)))

	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	return nil
}
