package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/cli/flag"
	"go.followtheprocess.codes/dims/internal/dims"
	"go.followtheprocess.codes/dims/internal/syntax"
)

const runLong = `
The program is checked first and only run if it is valid, so a program
that runs never reads an undeclared or unassigned variable or mixes up
its types.

Output from print statements is written to stdout, one value per line.

Programs that loop forever can be stopped with Ctrl-C, or bounded up
front with '--timeout'.
`

// run returns the run subcommand.
func run() (*cli.Command, error) {
	var (
		file    string
		options dims.RunOptions
	)

	return cli.New(
		"run",
		cli.Short("Check and run a .dims program"),
		cli.Long(runLong),
		cli.Arg(&file, "file", "Path to the .dims file"),
		cli.Flag(&options.Timeout, "timeout", flag.NoShortHand, "Stop the program after this long, 0 means never"),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := dims.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			return app.Run(ctx, file, syntax.PrettyConsoleHandler(cmd.Stderr()), options)
		}),
	)
}
