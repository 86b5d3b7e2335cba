package queries

import (
	"context"
	"errors"

	"storent/internal/infra"

	"github.com/google/uuid"
)

var ErrPaymentNotFound = errors.New("payment not found")

var paymentSortColumns = []string{"created_at", "amount_cents"}

type PaymentQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*PaymentView, error)
	List(ctx context.Context, filter PaymentFilter, page Page) ([]*PaymentView, int64, error)
}

type PaymentReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentView, error)
	List(ctx context.Context, filter PaymentFilter, page Page) ([]*PaymentView, int64, error)
}

type paymentQueriesImpl struct {
	store PaymentReadStore
}

func NewPaymentQueries(store PaymentReadStore) PaymentQueries {
	return &paymentQueriesImpl{store: store}
}

func (q *paymentQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*PaymentView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.NotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *paymentQueriesImpl) List(ctx context.Context, filter PaymentFilter, page Page) ([]*PaymentView, int64, error) {
	return q.store.List(ctx, filter, page.Normalized(paymentSortColumns...))
}
