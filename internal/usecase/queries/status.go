package queries

import (
	"context"
	"errors"

	"storent/internal/infra"

	"github.com/google/uuid"
)

var ErrStatusNotFound = errors.New("status not found")

type StatusQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*StatusView, error)
	List(ctx context.Context) ([]*StatusView, error)
}

type StatusReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StatusView, error)
	FindAll(ctx context.Context) ([]*StatusView, error)
}

type statusQueriesImpl struct {
	store StatusReadStore
}

func NewStatusQueries(store StatusReadStore) StatusQueries {
	return &statusQueriesImpl{store: store}
}

func (q *statusQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*StatusView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.NotFound) {
			return nil, ErrStatusNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *statusQueriesImpl) List(ctx context.Context) ([]*StatusView, error) {
	return q.store.FindAll(ctx)
}
