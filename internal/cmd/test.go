package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/cli/flag"
	"go.followtheprocess.codes/dims/internal/dims"
)

const testLong = `
The test command runs a collection of golden program tests.

Each test is a txtar archive containing the program in 'src.dims' and
exactly one expectation:

  stdout.txt        the program must be valid and print exactly this
  diagnostics.txt   the program must be rejected with exactly these
                    diagnostics, one 'Line <n>: <message>' per line

Path is a .txtar file or a directory containing them, in the latter case the
directory is recursed and every archive collected.

The output of passing programs is hidden unless '--verbose' is given.
`

// test returns the test subcommand.
func test() (*cli.Command, error) {
	var options dims.TestOptions

	return cli.New(
		"test",
		cli.Short("Run golden program tests"),
		cli.Long(testLong),
		cli.Arg(&options.Path, "path", "Path to test, may be directory or file", cli.ArgDefault(".")),
		cli.Flag(
			&options.Timeout,
			"timeout",
			flag.NoShortHand,
			"Timeout for each program",
			cli.FlagDefault(dims.DefaultTestTimeout),
		),
		cli.Flag(&options.Verbose, "verbose", 'v', "Show the output of passing programs"),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := dims.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			return app.Test(ctx, options)
		}),
	)
}
