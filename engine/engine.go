// Package engine binds a URI template to a resolved base directory and
// exposes typed get, list and create operations over the resources stored
// there.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/crmarques/datashelf/faults"
	"github.com/crmarques/datashelf/internal/providers/repository/fsstore"
	"github.com/crmarques/datashelf/internal/providers/shared/fsutil"
	"github.com/crmarques/datashelf/repository"
	"github.com/crmarques/datashelf/resource"
	"github.com/go-logr/logr"
)

// Engine is stateless beyond its base path; every call is an independent
// filesystem round trip. It is safe for use by one goroutine at a time.
type Engine[T any] struct {
	basePath    string
	store       repository.ResourceStore
	reconstruct resource.Reconstructor[T]
	logger      logr.Logger
}

type options struct {
	store  repository.ResourceStore
	logger logr.Logger
}

type Option func(*options)

// WithStore replaces the default filesystem store. The store root must match
// the root passed to New.
func WithStore(store repository.ResourceStore) Option {
	return func(o *options) {
		o.store = store
	}
}

func WithLogger(logger logr.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func New[T any](
	root string,
	uri resource.URITemplate,
	reconstruct resource.Reconstructor[T],
	opts ...Option,
) (*Engine[T], error) {
	if strings.TrimSpace(root) == "" {
		return nil, faults.NewTypedError(faults.ValidationError, "root directory must not be empty", nil)
	}
	if reconstruct == nil {
		return nil, faults.NewTypedError(faults.ValidationError, "reconstruction function must not be nil", nil)
	}
	if err := resource.ValidateParams(uri.Params); err != nil {
		return nil, err
	}
	if missing := uri.Unresolved(); len(missing) > 0 {
		return nil, faults.NewTypedError(
			faults.PatternError,
			fmt.Sprintf("uri template %q has no value for placeholders: %s", uri.Template, strings.Join(missing, ", ")),
			nil,
		)
	}

	cleanRoot := filepath.Clean(root)
	resolved := options{logger: logr.Discard()}
	for _, opt := range opts {
		opt(&resolved)
	}
	if resolved.store == nil {
		resolved.store = fsstore.NewLocalResourceRepository(cleanRoot)
	} else if filepath.Clean(resolved.store.Root()) != cleanRoot {
		return nil, faults.NewTypedError(
			faults.ValidationError,
			fmt.Sprintf("store root %q does not match engine root %q", resolved.store.Root(), cleanRoot),
			nil,
		)
	}

	basePath := filepath.Join(cleanRoot, filepath.FromSlash(uri.Resolve()))
	if !fsutil.IsPathUnderRoot(cleanRoot, basePath) {
		return nil, faults.NewTypedError(faults.ValidationError, "uri template resolves outside the root directory", nil)
	}

	logger := resolved.logger.WithValues("basePath", basePath)
	logger.V(1).Info("resolved resource namespace", "template", uri.Template)

	return &Engine[T]{
		basePath:    basePath,
		store:       resolved.store,
		reconstruct: reconstruct,
		logger:      logger,
	}, nil
}

func (e *Engine[T]) BasePath() string {
	return e.basePath
}

func (e *Engine[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T

	record, err := e.store.Get(ctx, e.basePath, id)
	if err != nil {
		return zero, err
	}
	return e.convert(record)
}

// List returns every readable resource in the namespace. Entries that cannot
// be read or reconstructed are logged and left out.
func (e *Engine[T]) List(ctx context.Context) ([]T, error) {
	result, err := e.store.List(ctx, e.basePath)
	if err != nil {
		return nil, err
	}

	for _, failure := range result.Failures {
		e.logger.Error(failure.Err, "skipping unreadable resource", "id", failure.ID)
	}

	items := make([]T, 0, len(result.Records))
	for _, record := range result.Records {
		item, convertErr := e.convert(record)
		if convertErr != nil {
			e.logger.Error(convertErr, "skipping unreadable resource", "id", record.ID)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (e *Engine[T]) Create(ctx context.Context, metadata json.RawMessage) (T, error) {
	var zero T

	record, err := e.store.Create(ctx, e.basePath, metadata)
	if err != nil {
		return zero, err
	}
	e.logger.V(1).Info("created resource", "id", record.ID)
	return e.convert(record)
}

// convert keeps typed reconstruction errors and reports any other failure as
// malformed state.
func (e *Engine[T]) convert(record resource.Record) (T, error) {
	value, err := e.reconstruct(record)
	if err != nil {
		var zero T
		var typedErr *faults.TypedError
		if errors.As(err, &typedErr) {
			return zero, err
		}
		return zero, faults.NewTypedError(
			faults.MalformedStateError,
			fmt.Sprintf("failed to reconstruct resource %q", record.ID),
			err,
		)
	}
	return value, nil
}
