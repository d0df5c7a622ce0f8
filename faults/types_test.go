package faults

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestIsCategory(t *testing.T) {
	t.Parallel()

	err := NewTypedError(ValidationError, "invalid input", nil)
	if !IsCategory(err, ValidationError) {
		t.Fatalf("expected validation category match")
	}
	if IsCategory(err, NotFoundError) {
		t.Fatalf("expected not-found category mismatch")
	}

	wrapped := errors.New("wrap: " + err.Error())
	if IsCategory(wrapped, ValidationError) {
		t.Fatalf("plain wrapped string error must not match typed category")
	}

	joined := errors.Join(err, errors.New("other"))
	if !IsCategory(joined, ValidationError) {
		t.Fatalf("expected category match through errors.Join")
	}

	if IsCategory(nil, ValidationError) {
		t.Fatalf("nil error must not match any category")
	}
}

func TestCategoryOf(t *testing.T) {
	t.Parallel()

	malformed := NewTypedError(MalformedStateError, "invalid metadata document", errors.New("unexpected EOF"))
	if got := CategoryOf(fmt.Errorf("get: %w", malformed)); got != MalformedStateError {
		t.Fatalf("expected %q through fmt wrapping, got %q", MalformedStateError, got)
	}
	if got := CategoryOf(errors.New("plain")); got != InternalError {
		t.Fatalf("expected untyped errors to map to %q, got %q", InternalError, got)
	}
}

func TestTypedErrorMessageAndUnwrap(t *testing.T) {
	t.Parallel()

	cause := fs.ErrPermission
	err := NewTypedError(IOError, "failed to write metadata document", cause)
	if err.Error() != "failed to write metadata document: "+cause.Error() {
		t.Fatalf("unexpected error text %q", err.Error())
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Fatalf("expected cause to be reachable through Unwrap")
	}

	bare := NewTypedError(PatternError, "", nil)
	if bare.Error() != string(PatternError) {
		t.Fatalf("expected category fallback text, got %q", bare.Error())
	}

	var nilErr *TypedError
	if nilErr.Error() != "<nil>" || nilErr.Unwrap() != nil {
		t.Fatalf("expected nil receiver to be safe")
	}
}
