package queries

import (
	"context"
	"errors"

	"storent/internal/infra"

	"github.com/google/uuid"
)

var ErrAdminNotFound = errors.New("admin not found")

// AdminCredentials is the auth-only projection; the password hash never
// leaves the command layer.
type AdminCredentials struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
}

type AdminQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*AdminView, error)
}

type AdminReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AdminView, error)
	FindCredentialsByEmail(ctx context.Context, email string) (*AdminCredentials, error)
}

type adminQueriesImpl struct {
	store AdminReadStore
}

func NewAdminQueries(store AdminReadStore) AdminQueries {
	return &adminQueriesImpl{store: store}
}

func (q *adminQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*AdminView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.NotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return view, nil
}
