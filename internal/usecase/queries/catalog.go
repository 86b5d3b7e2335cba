package queries

import (
	"context"
	"errors"

	"storent/internal/infra"

	"github.com/google/uuid"
)

var (
	ErrContainerNotFound = errors.New("container not found")
	ErrCellNotFound      = errors.New("cell not found")
)

type CatalogQueries interface {
	ListContainers(ctx context.Context) ([]*ContainerView, error)
	ListCells(ctx context.Context, containerID *uuid.UUID) ([]*CellView, error)
	GetCell(ctx context.Context, id uuid.UUID) (*CellView, error)
	ListRelays(ctx context.Context, cellID *uuid.UUID) ([]*RelayView, error)
}

type CatalogReadStore interface {
	FindContainers(ctx context.Context) ([]*ContainerView, error)
	FindCells(ctx context.Context, containerID *uuid.UUID) ([]*CellView, error)
	FindCellByID(ctx context.Context, id uuid.UUID) (*CellView, error)
	FindRelays(ctx context.Context, cellID *uuid.UUID) ([]*RelayView, error)
}

type catalogQueriesImpl struct {
	store CatalogReadStore
}

func NewCatalogQueries(store CatalogReadStore) CatalogQueries {
	return &catalogQueriesImpl{store: store}
}

func (q *catalogQueriesImpl) ListContainers(ctx context.Context) ([]*ContainerView, error) {
	return q.store.FindContainers(ctx)
}

func (q *catalogQueriesImpl) ListCells(ctx context.Context, containerID *uuid.UUID) ([]*CellView, error) {
	return q.store.FindCells(ctx, containerID)
}

func (q *catalogQueriesImpl) GetCell(ctx context.Context, id uuid.UUID) (*CellView, error) {
	view, err := q.store.FindCellByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.NotFound) {
			return nil, ErrCellNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *catalogQueriesImpl) ListRelays(ctx context.Context, cellID *uuid.UUID) ([]*RelayView, error) {
	return q.store.FindRelays(ctx, cellID)
}
