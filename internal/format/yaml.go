package format

import (
	"fmt"
	"io"

	"go.yaml.in/yaml/v4"
)

const yamlIndent = 2

// YAMLExporter is an [Exporter] that transforms .dims programs into YAML documents.
type YAMLExporter struct{}

// Export implements [Exporter] for [YAMLExporter] and exports the given program as
// a complete YAML document.
func (y YAMLExporter) Export(w io.Writer, program Program) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(yamlIndent)

	if err := encoder.Encode(program); err != nil {
		return err
	}

	return encoder.Close()
}

// YAMLImporter is an [Importer] that reads the YAML documents written by
// [YAMLExporter].
type YAMLImporter struct{}

// Import implements [Importer] for [YAMLImporter].
func (y YAMLImporter) Import(r io.Reader) (Program, error) {
	var program Program

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	if err := decoder.Decode(&program); err != nil {
		return Program{}, fmt.Errorf("could not decode YAML: %w", err)
	}

	return program, nil
}
