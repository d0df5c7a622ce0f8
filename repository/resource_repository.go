package repository

import (
	"context"
	"encoding/json"

	"github.com/crmarques/datashelf/resource"
)

// MetadataStore reads and writes single resource metadata documents under a
// resolved base path.
type MetadataStore interface {
	Get(ctx context.Context, basePath string, id string) (resource.Record, error)
	Create(ctx context.Context, basePath string, metadata json.RawMessage) (resource.Record, error)
}

// ResourceLister enumerates the resources stored directly under a base path.
type ResourceLister interface {
	List(ctx context.Context, basePath string) (ListResult, error)
}

// ResourceStore is the storage contract the engine depends on.
type ResourceStore interface {
	MetadataStore
	ResourceLister
	// Root is the directory every base path must stay under.
	Root() string
}

// RepositorySync manages repository lifecycle operations.
type RepositorySync interface {
	Init(ctx context.Context) error
	Check(ctx context.Context) error
}

// RepositoryHistoryReader exposes the commit history of versioned stores.
type RepositoryHistoryReader interface {
	History(ctx context.Context, filter HistoryFilter) ([]HistoryEntry, error)
}
