package parity

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"
)

// ErrWriteOutput indicates an I/O error while writing the rendered matrix.
var ErrWriteOutput = errors.New("write output")

// matrixDoc is the YAML document shape: a top-level options sequence.
type matrixDoc struct {
	Options []OptionRecord `yaml:"options"`
}

// RenderJSON writes the matrix as a JSON array of row objects, preserving
// record order.
func RenderJSON(w io.Writer, records []OptionRecord) error {
	if records == nil {
		records = []OptionRecord{}
	}

	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	out = append(out, '\n')

	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

// RenderYAML writes the matrix as a top-level options: sequence, each item
// carrying the six row fields in fixed order. Empty notes render as an
// explicit "" rather than being omitted.
func RenderYAML(w io.Writer, records []OptionRecord) error {
	if records == nil {
		records = []OptionRecord{}
	}

	out, err := yaml.Marshal(matrixDoc{Options: records})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

// Schema returns the JSON Schema describing the rendered matrix: an array of
// row objects with the six fixed fields. It documents the output contract
// for automation consumers.
func Schema() *jsonschema.Schema {
	stringProp := func(desc string) *jsonschema.Schema {
		return &jsonschema.Schema{Type: "string", Description: desc}
	}

	row := &jsonschema.Schema{
		Type:  "object",
		Title: "OptionRecord",
		Properties: map[string]*jsonschema.Schema{
			"option":           stringProp("stable option identifier"),
			"short":            stringProp("short flag character, empty when none"),
			"category":         stringProp("classification bucket"),
			"upstream_default": stringProp("human-readable upstream compile-time default"),
			"status":           stringProp("implemented or missing"),
			"notes":            stringProp("free-text annotations, possibly empty"),
		},
		Required: []string{"option", "short", "category", "upstream_default", "status", "notes"},
	}

	return &jsonschema.Schema{
		Schema: "http://json-schema.org/draft-07/schema#",
		Title:  "rsync option parity matrix",
		Type:   "array",
		Items:  row,
	}
}
