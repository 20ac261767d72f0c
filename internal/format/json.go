package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONExporter is an [Exporter] that transforms .dims programs into JSON documents.
type JSONExporter struct{}

// Export implements [Exporter] for [JSONExporter] and exports the given program
// as a complete JSON document.
func (j JSONExporter) Export(w io.Writer, program Program) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(program)
}

// JSONImporter is an [Importer] that reads the JSON documents written by
// [JSONExporter].
type JSONImporter struct{}

// Import implements [Importer] for [JSONImporter] and imports the given
// JSON document into a [Program].
func (j JSONImporter) Import(r io.Reader) (Program, error) {
	var program Program

	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&program); err != nil {
		return Program{}, fmt.Errorf("could not decode JSON: %w", err)
	}

	return program, nil
}
