package fsstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/crmarques/datashelf/faults"
	"github.com/crmarques/datashelf/repository"
	"github.com/crmarques/datashelf/resource/identity"
)

var _ repository.ResourceStore = (*LocalResourceRepository)(nil)
var _ repository.RepositorySync = (*LocalResourceRepository)(nil)

const MetadataFileName = "metadata.json"

type LocalResourceRepository struct {
	baseDir string
	newID   func() (string, error)
}

type Option func(*LocalResourceRepository)

// WithIDGenerator replaces the identifier source used by Create.
func WithIDGenerator(generate func() (string, error)) Option {
	return func(r *LocalResourceRepository) {
		if generate != nil {
			r.newID = generate
		}
	}
}

func NewLocalResourceRepository(baseDir string, opts ...Option) *LocalResourceRepository {
	repo := &LocalResourceRepository{
		baseDir: filepath.Clean(baseDir),
		newID:   identity.NewID,
	}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

func (r *LocalResourceRepository) Root() string {
	return r.baseDir
}

func (r *LocalResourceRepository) Init(_ context.Context) error {
	if r.baseDir == "" || r.baseDir == "." {
		return validationError("repository base directory must not be empty", nil)
	}
	if err := os.MkdirAll(r.baseDir, 0o755); err != nil {
		return ioError("failed to initialize repository directory", err)
	}
	return nil
}

func (r *LocalResourceRepository) Check(_ context.Context) error {
	info, err := os.Stat(r.baseDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return notFoundError("repository base directory does not exist")
		}
		return ioError("failed to inspect repository base directory", err)
	}
	if !info.IsDir() {
		return validationError("repository base directory is not a directory", nil)
	}
	return nil
}

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}

func notFoundError(message string) error {
	return faults.NewTypedError(faults.NotFoundError, message, nil)
}

func conflictError(message string, cause error) error {
	return faults.NewTypedError(faults.ConflictError, message, cause)
}

func malformedStateError(message string, cause error) error {
	return faults.NewTypedError(faults.MalformedStateError, message, cause)
}

func ioError(message string, cause error) error {
	return faults.NewTypedError(faults.IOError, message, cause)
}
