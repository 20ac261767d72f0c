package dims

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"go.followtheprocess.codes/dims/internal/checker"
	"go.followtheprocess.codes/dims/internal/env"
	"go.followtheprocess.codes/dims/internal/syntax"
	"go.followtheprocess.codes/log"
	"go.followtheprocess.codes/msg"
	"golang.org/x/sync/errgroup"
)

// CheckOptions are the options passed to the check subcommand.
type CheckOptions struct {
	// Path is the path (file or directory) to check.
	Path string

	// MaxDiagnostics is the maximum number of diagnostics to show per file,
	// 0 means show them all.
	MaxDiagnostics int

	// Debug enables debug logging.
	Debug bool
}

// Validate reports whether the CheckOptions is valid, returning an error
// if it's not.
func (c CheckOptions) Validate() error {
	if c.MaxDiagnostics < 0 {
		return fmt.Errorf("max-diagnostics cannot be negative, got %d", c.MaxDiagnostics)
	}

	return nil
}

// checked is the outcome of checking a single file.
type checked struct {
	err      error          // Non-nil if the file failed to parse or check
	problems *syntax.Buffer // Syntax errors, held until all files are done
	result   checker.Result // The checker result, empty if the file did not parse
	path     string         // Path to the file
}

// Check implements the check subcommand.
func (a App) Check(ctx context.Context, handler syntax.ErrorHandler, options CheckOptions) error {
	logger := a.logger.Prefixed("check").With(slog.String("path", options.Path))
	logger.Debug("Checking path")

	if err := options.Validate(); err != nil {
		return err
	}

	paths, err := collect(options.Path, Extension)
	if err != nil {
		return err
	}

	logger.Debug("Checking dims files given by path", slog.Int("number", len(paths)))

	results := make([]checked, len(paths))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			results[i] = a.checkFile(logger, path)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	// Report in path order regardless of which finished first
	var failed []error

	for _, file := range results {
		file.problems.Flush(handler)
		a.report(file.path, file.result.Diagnostics, options.MaxDiagnostics)

		if file.err != nil {
			failed = append(failed, file.err)
			continue
		}

		msg.Fsuccess(a.stdout, "%s is valid", file.path)
	}

	if len(failed) != 0 {
		logger.Debug("Check failed", slog.Int("failed", len(failed)))
		return fmt.Errorf("%d of %d file(s) failed: %w", len(failed), len(paths), errors.Join(failed...))
	}

	return nil
}

// checkFile parses and checks a single file.
func (a App) checkFile(logger *log.Logger, path string) checked {
	start := time.Now()
	file := checked{path: path, problems: &syntax.Buffer{}}

	stmt, err := a.parseFile(logger, path, file.problems.Handler())
	if err != nil {
		file.err = err
		return file
	}

	result, err := checker.Check(stmt, env.New[*checker.Fact]())
	if err != nil {
		file.err = fmt.Errorf("%s: %w", path, err)
	}

	file.result = result

	logger.Debug(
		"Checked file",
		slog.String("file", path),
		slog.Int("diagnostics", len(result.Diagnostics)),
		slog.Duration("took", time.Since(start)),
	)

	return file
}
