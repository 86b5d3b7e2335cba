package queries

import (
	"context"
	"errors"

	"storent/internal/infra"
	"storent/internal/pkg/clock"

	"github.com/google/uuid"
)

var ErrRentalNotFound = errors.New("rental not found")

var rentalSortColumns = []string{"created_at", "start_date", "end_date"}

type RentalQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*RentalView, error)
	List(ctx context.Context, filter RentalFilter, page Page) ([]*RentalListItem, int64, error)
}

type RentalReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RentalView, error)
	List(ctx context.Context, filter RentalFilter, page Page) ([]*RentalListItem, int64, error)
}

type rentalQueriesImpl struct {
	store RentalReadStore
	clock clock.Clock
}

func NewRentalQueries(store RentalReadStore, clk clock.Clock) RentalQueries {
	return &rentalQueriesImpl{store: store, clock: clk}
}

func (q *rentalQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RentalView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.NotFound) {
			return nil, ErrRentalNotFound
		}
		return nil, err
	}
	view.IsActive = q.isActive(view)
	return view, nil
}

func (q *rentalQueriesImpl) List(ctx context.Context, filter RentalFilter, page Page) ([]*RentalListItem, int64, error) {
	items, total, err := q.store.List(ctx, filter, page.Normalized(rentalSortColumns...))
	if err != nil {
		return nil, 0, err
	}
	now := q.clock.Now()
	for _, it := range items {
		it.IsActive = !it.Kind.IsTerminal() && !now.Before(it.StartDate) && now.Before(it.EndDate)
	}
	return items, total, nil
}

// isActive is computed at read time so a rental whose window lapsed minutes
// ago reads as inactive even before the expiry sweep has run.
func (q *rentalQueriesImpl) isActive(v *RentalView) bool {
	now := q.clock.Now()
	return !v.Status.Kind.IsTerminal() && !now.Before(v.StartDate) && now.Before(v.EndDate)
}
