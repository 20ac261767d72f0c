package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/dims/internal/dims"
	"go.followtheprocess.codes/dims/internal/syntax"
)

// export returns the export subcommand.
func export() (*cli.Command, error) {
	var (
		file    string
		options dims.ExportOptions
	)

	return cli.New(
		"export",
		cli.Short("Export the syntax tree of a .dims file to an alternative format"),
		cli.Arg(&file, "file", "Path to the .dims file"),
		cli.Flag(
			&options.Format,
			"format",
			'f',
			"Export format, one of (json|yaml|toml)",
			cli.FlagDefault("json"),
		),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := dims.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			return app.Export(ctx, file, syntax.PrettyConsoleHandler(cmd.Stderr()), options)
		}),
	)
}
