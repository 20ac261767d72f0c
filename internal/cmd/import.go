package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/dims/internal/dims"
)

// buildImport returns the import subcommand.
func buildImport() (*cli.Command, error) {
	var (
		file    string
		options dims.ImportOptions
	)

	return cli.New(
		"import",
		cli.Short("Turn an exported syntax tree back into .dims source"),
		cli.Arg(&file, "file", "Path to a file containing the exported tree"),
		cli.Flag(
			&options.Format,
			"format",
			'f',
			"Format of the data to import, inferred from the extension if not set",
		),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := dims.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			return app.Import(ctx, file, options)
		}),
	)
}
