// Package yamlutil encodes values as YAML documents in the layout the CLI
// prints.
package yamlutil

import (
	"bytes"
	"fmt"

	"go.yaml.in/yaml/v3"
)

// DefaultIndent matches the two-space indentation of the JSON output.
const DefaultIndent = 2

func Marshal(v any) ([]byte, error) {
	return MarshalWithIndent(v, DefaultIndent)
}

func MarshalWithIndent(v any, indent int) ([]byte, error) {
	if indent <= 0 {
		return nil, fmt.Errorf("yaml indent must be positive, got %d", indent)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(indent)
	if err := encoder.Encode(v); err != nil {
		_ = encoder.Close()
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
