package format

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// TOMLExporter is an [Exporter] that transforms .dims programs into TOML documents.
type TOMLExporter struct{}

// Export implements [Exporter] for [TOMLExporter] and exports the given program
// as a complete TOML document.
func (t TOMLExporter) Export(w io.Writer, program Program) error {
	encoder := toml.NewEncoder(w)
	encoder.Indent = ""

	return encoder.Encode(program)
}

// TOMLImporter is an [Importer] that reads the TOML documents written by
// [TOMLExporter].
type TOMLImporter struct{}

// Import implements [Importer] for [TOMLImporter].
func (t TOMLImporter) Import(r io.Reader) (Program, error) {
	var program Program

	meta, err := toml.NewDecoder(r).Decode(&program)
	if err != nil {
		return Program{}, fmt.Errorf("could not decode TOML: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) != 0 {
		return Program{}, fmt.Errorf("could not decode TOML: unknown keys %v", undecoded)
	}

	return program, nil
}
