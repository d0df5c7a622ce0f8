package identity

import (
	"strings"

	"github.com/crmarques/datashelf/faults"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	Length   = 21
)

// NewID returns a random resource identifier. Uniqueness is probabilistic;
// callers that need a hard guarantee must check storage themselves.
func NewID() (string, error) {
	id, err := gonanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", faults.NewTypedError(faults.InternalError, "failed to generate resource id", err)
	}
	return id, nil
}

// IsValid reports whether value has the shape NewID produces.
func IsValid(value string) bool {
	if len(value) != Length {
		return false
	}
	for _, r := range value {
		if !strings.ContainsRune(Alphabet, r) {
			return false
		}
	}
	return true
}
