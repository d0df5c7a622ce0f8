package resource

import "encoding/json"

// Record is the untyped view of a stored resource. URI is always the
// resource directory, i.e. the base path joined with ID.
type Record struct {
	ID       string          `json:"id" yaml:"id"`
	URI      string          `json:"uri" yaml:"uri"`
	Metadata json.RawMessage `json:"metadata" yaml:"-"`
}

// Reconstructor converts a raw record into a kind-specific value.
type Reconstructor[T any] func(Record) (T, error)

// MetadataFields decodes the record metadata as a JSON object. A JSON null
// document decodes to an empty map.
func (r Record) MetadataFields() (map[string]json.RawMessage, error) {
	fields := map[string]json.RawMessage{}
	if len(r.Metadata) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(r.Metadata, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]json.RawMessage{}
	}
	return fields, nil
}
