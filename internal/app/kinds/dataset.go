package kinds

import "github.com/crmarques/datashelf/resource"

const DatasetTemplate = "users/:user_id/datasets/"

type Dataset struct {
	ID   string `json:"id" yaml:"id"`
	URI  string `json:"uri" yaml:"uri"`
	Name string `json:"name" yaml:"name"`
}

type datasetParams struct {
	UserID string `json:"user_id"`
}

func ReconstructDataset(record resource.Record) (Dataset, error) {
	name, err := metadataName(record)
	if err != nil {
		return Dataset{}, err
	}
	return Dataset{ID: record.ID, URI: record.URI, Name: name}, nil
}

var datasetKind = kind[Dataset]{
	name:        "dataset",
	template:    DatasetTemplate,
	reconstruct: ReconstructDataset,
}
