package common

import (
	"github.com/crmarques/datashelf/faults"
	"github.com/crmarques/datashelf/resource"
)

func ValidationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}

// EnvelopeError turns a populated envelope error back into a typed error so
// the process exit code reflects it.
func EnvelopeError(envelopeErr *resource.IOResourceError) error {
	if envelopeErr == nil {
		return nil
	}

	category := faults.InternalError
	switch envelopeErr.Code {
	case resource.CodeBadRequest:
		category = faults.ValidationError
	case resource.CodeNotFound:
		category = faults.NotFoundError
	case resource.CodeConflict:
		category = faults.ConflictError
	case resource.CodeMalformedState:
		category = faults.MalformedStateError
	}
	return faults.NewTypedError(category, envelopeErr.Message, nil)
}
