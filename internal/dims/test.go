package dims

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"go.followtheprocess.codes/dims/internal/checker"
	"go.followtheprocess.codes/dims/internal/env"
	"go.followtheprocess.codes/dims/internal/interpreter"
	"go.followtheprocess.codes/dims/internal/syntax"
	"go.followtheprocess.codes/dims/internal/syntax/parser"
	"go.followtheprocess.codes/msg"
	"go.followtheprocess.codes/txtar"
	"golang.org/x/sync/errgroup"
)

// DefaultTestTimeout is the default amount of time a single program test may run for.
const DefaultTestTimeout = 10 * time.Second

// Files inside a program test archive.
const (
	srcFile         = "src.dims"
	stdoutFile      = "stdout.txt"
	diagnosticsFile = "diagnostics.txt"
)

// TestOptions are the options passed to the test subcommand.
type TestOptions struct {
	// Path is the path (file or directory) of .txtar archives to run.
	Path string

	// Timeout is the per-program timeout.
	Timeout time.Duration

	// Debug enables debug logging.
	Debug bool

	// Verbose shows the output of passing programs as well as failing ones.
	Verbose bool
}

// Validate reports whether the TestOptions is valid, returning an error
// if it's not.
//
// nil means the options are valid.
func (t TestOptions) Validate() error {
	if t.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", t.Timeout)
	}

	return nil
}

// outcome is the result of a single program test.
type outcome struct {
	path    string // Path to the archive
	failure string // Why the test failed, empty if it passed
	stdout  string // What the program printed, if it ran
}

// Test implements the test subcommand.
func (a App) Test(ctx context.Context, options TestOptions) error {
	logger := a.logger.Prefixed("test").With(slog.String("path", options.Path))
	logger.Debug("Collecting tests in path")

	if err := options.Validate(); err != nil {
		return err
	}

	paths, err := collect(options.Path, ".txtar")
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		return fmt.Errorf("no .txtar archives found in %s", options.Path)
	}

	logger.Debug("Running program tests", slog.Int("number", len(paths)))

	outcomes := make([]outcome, len(paths))

	group := errgroup.Group{}
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		group.Go(func() error {
			result, err := testArchive(ctx, path, options.Timeout)
			if err != nil {
				return err
			}

			outcomes[i] = result

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	failed := 0

	for _, result := range outcomes {
		if result.failure != "" {
			failed++

			msg.Ferror(a.stderr, "%s\n%s", result.path, result.failure)

			continue
		}

		msg.Fsuccess(a.stdout, "%s", result.path)

		if options.Verbose && result.stdout != "" {
			fmt.Fprint(a.stdout, dimmed.Text(result.stdout))
		}
	}

	logger.Debug("Finished program tests", slog.Int("passed", len(paths)-failed), slog.Int("failed", failed))

	if failed != 0 {
		return fmt.Errorf("%d of %d test(s) failed", failed, len(paths))
	}

	return nil
}

// testArchive runs the program test in a single archive.
//
// A non-nil error means the test could not be run at all, a failing test is
// reported through the failure in the returned outcome.
func testArchive(ctx context.Context, path string, timeout time.Duration) (outcome, error) {
	result := outcome{path: path}

	archive, err := txtar.ParseFile(path)
	if err != nil {
		return outcome{}, fmt.Errorf("could not read %s: %w", path, err)
	}

	src, ok := archive.Read(srcFile)
	if !ok {
		result.failure = "missing " + srcFile
		return result, nil
	}

	wantStdout, hasStdout := archive.Read(stdoutFile)
	wantDiagnostics, hasDiagnostics := archive.Read(diagnosticsFile)

	if hasStdout == hasDiagnostics {
		result.failure = fmt.Sprintf("must contain exactly one of %s or %s", stdoutFile, diagnosticsFile)
		return result, nil
	}

	buffer := &syntax.Buffer{}

	p, err := parser.New(path, strings.NewReader(src), buffer.Handler())
	if err != nil {
		return outcome{}, fmt.Errorf("could not initialise the parser: %w", err)
	}

	stmt, err := p.Parse()
	if err != nil {
		errs := &strings.Builder{}
		buffer.Flush(syntax.PlainHandler(errs))

		result.failure = "syntax errors:\n" + errs.String()

		return result, nil
	}

	checked, err := checker.Check(stmt, env.New[*checker.Fact]())
	got := renderDiagnostics(checked.Diagnostics)

	if hasDiagnostics {
		if got != wantDiagnostics {
			result.failure = mismatch("diagnostics", wantDiagnostics, got)
		}

		return result, nil
	}

	if err != nil {
		result.failure = "program was rejected:\n" + got
		return result, nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stdout := &bytes.Buffer{}

	err = interpreter.New(stdout).Run(ctx, stmt, env.New[*interpreter.Val]())
	result.stdout = stdout.String()

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		result.failure = fmt.Sprintf("timed out after %s", timeout)
	case err != nil:
		result.failure = fmt.Sprintf("runtime error: %v", err)
	case result.stdout != wantStdout:
		result.failure = mismatch("stdout", wantStdout, result.stdout)
	}

	return result, nil
}

// renderDiagnostics renders diagnostics one per line, the format of diagnostics.txt.
func renderDiagnostics(diagnostics []checker.Diagnostic) string {
	s := &strings.Builder{}
	for _, diag := range diagnostics {
		s.WriteString(diag.String())
		s.WriteByte('\n')
	}

	return s.String()
}

// mismatch describes the difference between want and got.
func mismatch(what, want, got string) string {
	return fmt.Sprintf("%s mismatch\n--- want\n%s--- got\n%s", what, want, got)
}
