package dims

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.followtheprocess.codes/dims/internal/format"
	"go.followtheprocess.codes/dims/internal/syntax"
	"go.followtheprocess.codes/dims/internal/syntax/printer"
)

// ExportOptions are the flags passed to the export subcommand.
type ExportOptions struct {
	// Format is the format of the export e.g. json, yaml etc.
	Format string

	// Debug controls debug logging.
	Debug bool
}

// Validate reports whether the ExportOptions is valid, returning a non-nil
// error if it's not.
func (e ExportOptions) Validate() error {
	switch format := e.Format; format {
	case "json", "yaml", "toml":
		return nil
	default:
		return fmt.Errorf("invalid option for --format %q, allowed values are 'json', 'yaml', 'toml'", format)
	}
}

// Export handles the export subcommand.
func (a App) Export(ctx context.Context, file string, handler syntax.ErrorHandler, options ExportOptions) error {
	logger := a.logger.Prefixed("export").With(slog.String("file", file))
	logger.Debug("Export configuration", slog.String("options", fmt.Sprintf("%+v", options)))

	if err := options.Validate(); err != nil {
		return err
	}

	stmt, err := a.parseFile(logger, file, handler)
	if err != nil {
		return err
	}

	start := time.Now()

	if err := exporter(options.Format).Export(a.stdout, format.FromAST(file, stmt)); err != nil {
		return fmt.Errorf("could not export %s as %s: %w", file, options.Format, err)
	}

	logger.Debug("Exported file", slog.String("format", options.Format), slog.Duration("took", time.Since(start)))

	return nil
}

// exporter returns the [format.Exporter] for a validated format name.
func exporter(name string) format.Exporter {
	switch name {
	case "yaml":
		return format.YAMLExporter{}
	case "toml":
		return format.TOMLExporter{}
	default:
		return format.JSONExporter{}
	}
}

// ImportOptions are the flags passed to the import subcommand.
type ImportOptions struct {
	// Format is the format of the document, if empty it is taken from the
	// file extension.
	Format string

	// Debug controls debug logging.
	Debug bool
}

// Validate reports whether the ImportOptions is valid, returning a non-nil
// error if it's not.
func (i ImportOptions) Validate() error {
	switch format := i.Format; format {
	case "", "json", "yaml", "toml":
		return nil
	default:
		return fmt.Errorf("invalid option for --format %q, allowed values are 'json', 'yaml', 'toml'", format)
	}
}

// Import handles the import subcommand, turning a document written by export
// back into .dims source.
func (a App) Import(ctx context.Context, file string, options ImportOptions) error {
	logger := a.logger.Prefixed("import").With(slog.String("file", file))
	logger.Debug("Import configuration", slog.String("options", fmt.Sprintf("%+v", options)))

	if err := options.Validate(); err != nil {
		return err
	}

	name := options.Format
	if name == "" {
		switch ext := filepath.Ext(file); ext {
		case ".json":
			name = "json"
		case ".yaml", ".yml":
			name = "yaml"
		case ".toml":
			name = "toml"
		default:
			return fmt.Errorf("cannot infer the format of %s from extension %q, pass --format", file, ext)
		}

		logger.Debug("Inferred format from extension", slog.String("format", name))
	}

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("could not open file: %w", err)
	}
	defer f.Close()

	program, err := importer(name).Import(f)
	if err != nil {
		return fmt.Errorf("could not import %s: %w", file, err)
	}

	stmt, err := program.AST()
	if err != nil {
		return fmt.Errorf("could not import %s: %w", file, err)
	}

	if _, err := io.WriteString(a.stdout, printer.Stmt(stmt)); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}

	return nil
}

// importer returns the [format.Importer] for a validated format name.
func importer(name string) format.Importer {
	switch name {
	case "yaml":
		return format.YAMLImporter{}
	case "toml":
		return format.TOMLImporter{}
	default:
		return format.JSONImporter{}
	}
}
