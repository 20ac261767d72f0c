package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/cli/flag"
	"go.followtheprocess.codes/dims/internal/dims"
	"go.followtheprocess.codes/dims/internal/syntax"
)

const checkLong = `
The path argument may be a directory or a file.

If it is the name of a .dims file, then this file alone is checked.

If it is a directory, this directory is scanned recursively for all
files with the '.dims' extension and every one of them is checked.

A file is valid when it parses and every variable is declared before use,
assigned before it is read and only ever holds values of its declared type.
`

// check returns the check subcommand.
func check() (*cli.Command, error) {
	var options dims.CheckOptions

	return cli.New(
		"check",
		cli.Short("Check .dims files for syntax and type errors"),
		cli.Long(checkLong),
		cli.Arg(&options.Path, "path", "Path to check, may be directory or file", cli.ArgDefault(".")),
		cli.Flag(
			&options.MaxDiagnostics,
			"max-diagnostics",
			flag.NoShortHand,
			"Maximum number of diagnostics to show per file, 0 shows them all",
		),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := dims.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			return app.Check(ctx, syntax.PrettyConsoleHandler(cmd.Stderr()), options)
		}),
	)
}
