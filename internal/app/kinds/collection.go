package kinds

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/crmarques/datashelf/faults"
	"github.com/crmarques/datashelf/resource"
)

const (
	CollectionTemplate = "users/:user_id/datasets/:dataset_id/collections"

	DataFileName   = "data.csv"
	SchemaFileName = "schema.json"
)

// Collection carries the optional data and schema attachments stored next to
// its metadata. Both are passed through verbatim; nil means absent.
type Collection struct {
	ID     string  `json:"id" yaml:"id"`
	URI    string  `json:"uri" yaml:"uri"`
	Name   string  `json:"name" yaml:"name"`
	Data   *string `json:"data" yaml:"data"`
	Schema *string `json:"schema" yaml:"schema"`
}

type collectionParams struct {
	UserID    string `json:"user_id"`
	DatasetID string `json:"dataset_id"`
}

func ReconstructCollection(record resource.Record) (Collection, error) {
	name, err := metadataName(record)
	if err != nil {
		return Collection{}, err
	}

	data, err := readAttachment(record.URI, DataFileName)
	if err != nil {
		return Collection{}, err
	}
	schema, err := readAttachment(record.URI, SchemaFileName)
	if err != nil {
		return Collection{}, err
	}

	return Collection{
		ID:     record.ID,
		URI:    record.URI,
		Name:   name,
		Data:   data,
		Schema: schema,
	}, nil
}

func readAttachment(dir string, fileName string) (*string, error) {
	data, err := os.ReadFile(filepath.Join(dir, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return nil, nil
		}
		return nil, faults.NewTypedError(faults.IOError, fmt.Sprintf("failed to read %s", fileName), err)
	}
	text := string(data)
	return &text, nil
}

var collectionKind = kind[Collection]{
	name:        "collection",
	template:    CollectionTemplate,
	reconstruct: ReconstructCollection,
}
