// Package dims implements the functionality of the program, the CLI in package cmd is simply the
// entrypoint to exported functions and methods in this package.
package dims

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.followtheprocess.codes/dims/internal/checker"
	"go.followtheprocess.codes/dims/internal/syntax"
	"go.followtheprocess.codes/dims/internal/syntax/ast"
	"go.followtheprocess.codes/dims/internal/syntax/parser"
	"go.followtheprocess.codes/hue"
	"go.followtheprocess.codes/log"
)

// Styles.
const (
	// pathStyle is the style used to render file paths in front of diagnostics.
	pathStyle = hue.Bold

	// dimmed is the style used for informational content like program output
	// in verbose test mode.
	dimmed = hue.BrightBlack | hue.Italic
)

// Extension is the file extension of .dims programs.
const Extension = ".dims"

// App represents the dims program.
type App struct {
	stdin   io.Reader   // Input, used by interactive commands
	stdout  io.Writer   // Normal program output is written here
	stderr  io.Writer   // Logs and errors are written here
	logger  *log.Logger // The logger for the application
	version string      // The app version
}

// New returns a new [App].
func New(debug bool, version string, stdin io.Reader, stdout, stderr io.Writer) App {
	level := log.LevelInfo
	if debug {
		level = log.LevelDebug
	}

	logger := log.New(stderr, log.WithLevel(level), log.Prefix("dims"))

	return App{
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
		logger:  logger,
		version: version,
	}
}

// parseFile opens and parses a single .dims file.
//
// Syntax errors are reported to handler in source order once the whole file
// has been parsed.
func (a App) parseFile(logger *log.Logger, path string, handler syntax.ErrorHandler) (ast.Stmt, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer f.Close()

	buffer := &syntax.Buffer{}

	p, err := parser.New(path, f, buffer.Handler())
	if err != nil {
		return nil, fmt.Errorf("could not initialise the parser: %w", err)
	}

	stmt, err := p.Parse()

	logger.Debug(
		"Parsed file",
		slog.String("file", path),
		slog.Int("errors", buffer.Len()),
		slog.Duration("took", time.Since(start)),
	)

	buffer.Flush(handler)

	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return stmt, nil
}

// report writes checker diagnostics for path to stderr.
//
// If limit is > 0, at most limit diagnostics are shown followed by a count of
// the ones that were left out.
func (a App) report(path string, diagnostics []checker.Diagnostic, limit int) {
	shown := diagnostics
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	for _, diag := range shown {
		fmt.Fprintf(a.stderr, "%s: %s\n", pathStyle.Text(path), diag)
	}

	if hidden := len(diagnostics) - len(shown); hidden > 0 {
		fmt.Fprintf(a.stderr, "%s: %s\n", pathStyle.Text(path), dimmed.Text(fmt.Sprintf("... and %d more", hidden)))
	}
}

// collect returns every file under root with the given extension in lexical order.
//
// If root is itself a file it is returned as is, regardless of extension.
func collect(root, ext string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("could not get path info: %w", err)
	}

	if !info.IsDir() {
		return []string{root}, nil
	}

	var paths []string

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.Type().IsRegular() && filepath.Ext(path) == ext {
			paths = append(paths, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not walk %s: %w", root, err)
	}

	return paths, nil
}
