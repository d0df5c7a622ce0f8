package resource

import (
	"errors"

	"github.com/crmarques/datashelf/faults"
)

const (
	CodeBadRequest     = "400"
	CodeNotFound       = "404"
	CodeConflict       = "409"
	CodeMalformedState = "422"
	CodeInternal       = "500"

	NotFoundMessage = "Resource not found"
)

type IOResourceError struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// IOResource is the result shape handed back to callers of the command
// layer. Exactly one of Data and Error is set.
type IOResource[T any] struct {
	Data  *T               `json:"data" yaml:"data"`
	Error *IOResourceError `json:"error" yaml:"error"`
}

func (r IOResource[T]) OK() bool {
	return r.Error == nil
}

// NewIOResource wraps an operation result. A nil err yields a data envelope;
// otherwise the error category selects the code.
func NewIOResource[T any](value T, err error) IOResource[T] {
	if err != nil {
		return IOResource[T]{Error: ErrorFor(err)}
	}
	return IOResource[T]{Data: &value}
}

func ErrorFor(err error) *IOResourceError {
	if err == nil {
		return nil
	}

	var typedErr *faults.TypedError
	if !errors.As(err, &typedErr) {
		return &IOResourceError{Code: CodeInternal, Message: err.Error()}
	}

	switch typedErr.Category {
	case faults.NotFoundError:
		return &IOResourceError{Code: CodeNotFound, Message: NotFoundMessage}
	case faults.ValidationError:
		return &IOResourceError{Code: CodeBadRequest, Message: err.Error()}
	case faults.ConflictError:
		return &IOResourceError{Code: CodeConflict, Message: err.Error()}
	case faults.MalformedStateError:
		return &IOResourceError{Code: CodeMalformedState, Message: err.Error()}
	default:
		return &IOResourceError{Code: CodeInternal, Message: err.Error()}
	}
}
