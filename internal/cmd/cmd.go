// Package cmd implements the dims CLI.
package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/cli/flag"
	"go.followtheprocess.codes/dims/internal/dims"
	"go.followtheprocess.codes/dims/internal/syntax"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// Build builds and returns the dims CLI.
func Build() (*cli.Command, error) {
	var options dims.PickOptions

	return cli.New(
		"dims",
		cli.Short("Check, run and format programs in a tiny imperative language"),
		cli.Version(version),
		cli.Commit(commit),
		cli.BuildDate(date),
		cli.Example("Pick a program in the current directory interactively and run it", "dims"),
		cli.Example("Check every program under a directory (recursively)", "dims check ./examples"),
		cli.Example("Run a program, giving up after 5 seconds", "dims run ./countdown.dims --timeout 5s"),
		cli.Example("Rewrite a program in canonical form", "dims fmt --write ./countdown.dims"),
		cli.Example("Export a program's syntax tree as YAML", "dims export ./countdown.dims --format yaml"),
		cli.Example("Run the golden program tests in a directory", "dims test ./testdata"),
		cli.Flag(&options.Dir, "dir", flag.NoShortHand, "Directory to pick programs from", cli.FlagDefault(".")),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.SubCommands(check, run, format, export, buildImport, test, repl),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := dims.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			return app.Pick(ctx, syntax.PrettyConsoleHandler(cmd.Stderr()), options)
		}),
	)
}
