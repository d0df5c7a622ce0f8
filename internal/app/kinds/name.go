package kinds

import (
	"bytes"
	"encoding/json"

	"github.com/crmarques/datashelf/resource"
)

const nameField = "name"

// metadataName returns the "name" member of the record metadata. Strings are
// returned as their value, any other JSON value as its compact text, and a
// missing member as "".
func metadataName(record resource.Record) (string, error) {
	fields, err := record.MetadataFields()
	if err != nil {
		return "", err
	}

	raw, ok := fields[nameField]
	if !ok {
		return "", nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, nil
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return "", err
	}
	return compact.String(), nil
}
