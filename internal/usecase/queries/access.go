package queries

import (
	"context"

	"storent/internal/infra"
	"storent/internal/pkg/clock"
	"storent/internal/usecase/shared"

	"github.com/google/uuid"
)

type AccessQueries interface {
	// Check answers the relay controller's question: may this rental open
	// this relay right now. It must stay cheap; controllers poll it on
	// every keypad entry.
	Check(ctx context.Context, relayID, rentalID uuid.UUID) (bool, error)
	ListByRental(ctx context.Context, rentalID uuid.UUID) ([]*AccessGrantView, error)
	ListByRelay(ctx context.Context, relayID uuid.UUID) ([]*AccessGrantView, error)
}

type AccessReadStore interface {
	FindGrant(ctx context.Context, relayID, rentalID uuid.UUID) (*AccessGrantView, error)
	FindByRental(ctx context.Context, rentalID uuid.UUID) ([]*AccessGrantView, error)
	FindByRelay(ctx context.Context, relayID uuid.UUID) ([]*AccessGrantView, error)
}

type accessQueriesImpl struct {
	store AccessReadStore
	cache shared.AccessDecisionCache
	clock clock.Clock
}

func NewAccessQueries(store AccessReadStore, cache shared.AccessDecisionCache, clk clock.Clock) AccessQueries {
	return &accessQueriesImpl{store: store, cache: cache, clock: clk}
}

func (q *accessQueriesImpl) Check(ctx context.Context, relayID, rentalID uuid.UUID) (bool, error) {
	if allowed, ok := q.cache.Get(ctx, relayID, rentalID); ok {
		return allowed, nil
	}

	grant, err := q.store.FindGrant(ctx, relayID, rentalID)
	if err != nil {
		if infra.IsKind(err, infra.NotFound) {
			q.cache.Set(ctx, relayID, rentalID, false)
			return false, nil
		}
		return false, err
	}

	allowed := grant.Active && q.clock.Now().Before(grant.ValidUntil)
	q.cache.Set(ctx, relayID, rentalID, allowed)
	return allowed, nil
}

func (q *accessQueriesImpl) ListByRental(ctx context.Context, rentalID uuid.UUID) ([]*AccessGrantView, error) {
	return q.store.FindByRental(ctx, rentalID)
}

func (q *accessQueriesImpl) ListByRelay(ctx context.Context, relayID uuid.UUID) ([]*AccessGrantView, error) {
	return q.store.FindByRelay(ctx, relayID)
}
