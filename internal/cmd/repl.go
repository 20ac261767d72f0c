package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/cli/flag"
	"go.followtheprocess.codes/dims/internal/dims"
	"go.followtheprocess.codes/dims/internal/syntax"
)

const replLong = `
Statements are read line by line, a statement that is not finished yet
continues onto the next line.

Each input is checked against everything entered so far and only run if it
is valid, so variables declared and assigned earlier in the session stay
available. Rejected input changes nothing.

Type ':help' inside the session for the available commands.
`

// repl returns the repl subcommand.
func repl() (*cli.Command, error) {
	var options dims.ReplOptions

	return cli.New(
		"repl",
		cli.Short("Start an interactive session"),
		cli.Long(replLong),
		cli.Flag(&options.History, "history", flag.NoShortHand, "File to keep input history in"),
		cli.Flag(&options.NoHistory, "no-history", flag.NoShortHand, "Do not load or save input history"),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := dims.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			return app.Repl(ctx, syntax.PrettyConsoleHandler(cmd.Stderr()), options)
		}),
	)
}
