// Package kinds defines the user, dataset and collection resources and the
// handlers that serve them as result envelopes.
package kinds

import (
	"context"
	"encoding/json"

	"github.com/crmarques/datashelf/engine"
	"github.com/crmarques/datashelf/repository"
	"github.com/crmarques/datashelf/resource"
	"github.com/go-logr/logr"
)

type kind[T any] struct {
	name        string
	template    string
	reconstruct resource.Reconstructor[T]
}

// Service builds a fresh engine per call, so handlers are safe to call from
// concurrent goroutines.
type Service struct {
	store  repository.ResourceStore
	logger logr.Logger
}

func NewService(store repository.ResourceStore, logger logr.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func (s *Service) GetUser(ctx context.Context, userID string) resource.IOResource[User] {
	return get(ctx, s, userKind, nil, userID)
}

func (s *Service) ListUsers(ctx context.Context) resource.IOResource[[]User] {
	return list(ctx, s, userKind, nil)
}

func (s *Service) CreateUser(ctx context.Context, metadata json.RawMessage) resource.IOResource[User] {
	return create(ctx, s, userKind, nil, metadata)
}

func (s *Service) GetDataset(ctx context.Context, userID string, datasetID string) resource.IOResource[Dataset] {
	return get(ctx, s, datasetKind, datasetParams{UserID: userID}, datasetID)
}

func (s *Service) ListDatasets(ctx context.Context, userID string) resource.IOResource[[]Dataset] {
	return list(ctx, s, datasetKind, datasetParams{UserID: userID})
}

func (s *Service) CreateDataset(ctx context.Context, userID string, metadata json.RawMessage) resource.IOResource[Dataset] {
	return create(ctx, s, datasetKind, datasetParams{UserID: userID}, metadata)
}

func (s *Service) GetCollection(
	ctx context.Context,
	userID string,
	datasetID string,
	collectionID string,
) resource.IOResource[Collection] {
	return get(ctx, s, collectionKind, collectionParams{UserID: userID, DatasetID: datasetID}, collectionID)
}

func (s *Service) ListCollections(ctx context.Context, userID string, datasetID string) resource.IOResource[[]Collection] {
	return list(ctx, s, collectionKind, collectionParams{UserID: userID, DatasetID: datasetID})
}

func (s *Service) CreateCollection(
	ctx context.Context,
	userID string,
	datasetID string,
	metadata json.RawMessage,
) resource.IOResource[Collection] {
	return create(ctx, s, collectionKind, collectionParams{UserID: userID, DatasetID: datasetID}, metadata)
}

func newEngine[T any](s *Service, k kind[T], params any) (*engine.Engine[T], error) {
	values, err := resource.ParamsFromStruct(params)
	if err != nil {
		return nil, err
	}
	return engine.New(
		s.store.Root(),
		resource.NewURITemplate(k.template, values),
		k.reconstruct,
		engine.WithStore(s.store),
		engine.WithLogger(s.logger.WithValues("kind", k.name)),
	)
}

func get[T any](ctx context.Context, s *Service, k kind[T], params any, id string) resource.IOResource[T] {
	var value T
	eng, err := newEngine(s, k, params)
	if err == nil {
		value, err = eng.Get(ctx, id)
	}
	return respond(s, k.name, "get", value, err)
}

func list[T any](ctx context.Context, s *Service, k kind[T], params any) resource.IOResource[[]T] {
	var values []T
	eng, err := newEngine(s, k, params)
	if err == nil {
		values, err = eng.List(ctx)
	}
	return respond(s, k.name, "list", values, err)
}

func create[T any](ctx context.Context, s *Service, k kind[T], params any, metadata json.RawMessage) resource.IOResource[T] {
	var value T
	eng, err := newEngine(s, k, params)
	if err == nil {
		value, err = eng.Create(ctx, metadata)
	}
	return respond(s, k.name, "create", value, err)
}

func respond[T any](s *Service, kindName string, operation string, value T, err error) resource.IOResource[T] {
	if err != nil {
		s.logger.V(1).Info("request failed", "kind", kindName, "operation", operation, "error", err.Error())
	}
	return resource.NewIOResource(value, err)
}
