package dims

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.followtheprocess.codes/dims/internal/syntax"
	"go.followtheprocess.codes/dims/internal/syntax/printer"
	"go.followtheprocess.codes/msg"
)

// ErrNotFormatted is returned from [App.Fmt] in check mode when the file is not
// in canonical form.
var ErrNotFormatted = errors.New("not formatted")

// FmtOptions are the options passed to the fmt subcommand.
type FmtOptions struct {
	// Write rewrites the file in place rather than printing the result.
	Write bool

	// Check reports whether the file is formatted without changing anything.
	Check bool

	// Debug enables debug logging.
	Debug bool
}

// Validate reports whether the FmtOptions is valid, returning an error
// if it's not.
func (f FmtOptions) Validate() error {
	if f.Write && f.Check {
		return errors.New("--write and --check are mutually exclusive")
	}

	return nil
}

// Fmt implements the fmt subcommand, printing the canonical form of a file.
func (a App) Fmt(ctx context.Context, file string, handler syntax.ErrorHandler, options FmtOptions) error {
	logger := a.logger.Prefixed("fmt").With(slog.String("file", file))
	logger.Debug("Fmt configuration", slog.String("options", fmt.Sprintf("%+v", options)))

	if err := options.Validate(); err != nil {
		return err
	}

	stmt, err := a.parseFile(logger, file, handler)
	if err != nil {
		return err
	}

	formatted := printer.Stmt(stmt)

	switch {
	case options.Check, options.Write:
		original, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("could not read file: %w", err)
		}

		if string(original) == formatted {
			logger.Debug("File already formatted")
			return nil
		}

		if options.Check {
			return fmt.Errorf("%s: %w", file, ErrNotFormatted)
		}

		info, err := os.Stat(file)
		if err != nil {
			return fmt.Errorf("could not get file info: %w", err)
		}

		if err := os.WriteFile(file, []byte(formatted), info.Mode().Perm()); err != nil {
			return fmt.Errorf("could not write formatted file: %w", err)
		}

		msg.Fsuccess(a.stdout, "Formatted %s", file)
	default:
		if _, err := io.WriteString(a.stdout, formatted); err != nil {
			return fmt.Errorf("could not write output: %w", err)
		}
	}

	return nil
}
