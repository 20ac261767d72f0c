package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/cli/flag"
	"go.followtheprocess.codes/dims/internal/dims"
	"go.followtheprocess.codes/dims/internal/syntax"
)

const fmtLong = `
By default the canonical form of the program is written to stdout.

With '--write' the file is rewritten in place instead, and with '--check'
nothing is written but the command fails if the file is not already in
canonical form, which is useful in CI.

Comments are not preserved.
`

// format returns the fmt subcommand.
func format() (*cli.Command, error) {
	var (
		file    string
		options dims.FmtOptions
	)

	return cli.New(
		"fmt",
		cli.Short("Print a .dims program in canonical form"),
		cli.Long(fmtLong),
		cli.Arg(&file, "file", "Path to the .dims file"),
		cli.Flag(&options.Write, "write", 'w', "Rewrite the file in place"),
		cli.Flag(&options.Check, "check", flag.NoShortHand, "Fail if the file is not formatted"),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := dims.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			return app.Fmt(ctx, file, syntax.PrettyConsoleHandler(cmd.Stderr()), options)
		}),
	)
}
