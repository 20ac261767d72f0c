package dims

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/huh"
	"go.followtheprocess.codes/dims/internal/syntax"
)

// ErrNoPrograms is returned from [App.Pick] when there is nothing to pick from.
var ErrNoPrograms = errors.New("no .dims files found")

// PickOptions are the options for the interactive picker, shown when dims
// is run without a subcommand.
type PickOptions struct {
	// Dir is the directory searched (recursively) for programs.
	Dir string

	// Debug enables debug logging.
	Debug bool
}

// Pick lets the user choose a program interactively and then runs it.
func (a App) Pick(ctx context.Context, handler syntax.ErrorHandler, options PickOptions) error {
	logger := a.logger.Prefixed("pick").With(slog.String("dir", options.Dir))

	paths, err := collect(options.Dir, Extension)
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		return fmt.Errorf("%w in %s", ErrNoPrograms, options.Dir)
	}

	logger.Debug("Found programs", slog.Int("number", len(paths)))

	var choice string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Pick a program to run").
				Options(huh.NewOptions(paths...)...).
				Value(&choice),
		),
	).WithInput(a.stdin).WithOutput(a.stdout)

	err = form.RunWithContext(ctx)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}

		return fmt.Errorf("could not pick a program: %w", err)
	}

	logger.Debug("Picked program", slog.String("file", choice))

	return a.Run(ctx, choice, handler, RunOptions{Debug: options.Debug})
}
