package kinds

import "github.com/crmarques/datashelf/resource"

const UserTemplate = "users/"

type User struct {
	ID   string `json:"id" yaml:"id"`
	URI  string `json:"uri" yaml:"uri"`
	Name string `json:"name" yaml:"name"`
}

func ReconstructUser(record resource.Record) (User, error) {
	name, err := metadataName(record)
	if err != nil {
		return User{}, err
	}
	return User{ID: record.ID, URI: record.URI, Name: name}, nil
}

var userKind = kind[User]{
	name:        "user",
	template:    UserTemplate,
	reconstruct: ReconstructUser,
}
