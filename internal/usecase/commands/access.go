package commands

import (
	"context"

	"storent/internal/domain/status"
	"storent/internal/pkg/clock"
	"storent/internal/usecase/shared"

	"github.com/google/uuid"
)

type SweepResult struct {
	RentalsMarked int
	GrantsRevoked int64
}

type AccessCommands interface {
	// RecomputeForRental rebuilds the relay grants for one rental from its
	// current lifecycle state.
	RecomputeForRental(ctx context.Context, rentalID uuid.UUID) error
	// SweepExpired marks lapsed active rentals as expiring and revokes
	// grants past their validity. Stale cached decisions age out within
	// the cache TTL.
	SweepExpired(ctx context.Context) (*SweepResult, error)
}

type accessUseCaseImpl struct {
	uow   shared.UnitOfWork
	cache shared.AccessDecisionCache
	clock clock.Clock
}

func NewAccessUseCase(uow shared.UnitOfWork, cache shared.AccessDecisionCache, clk clock.Clock) AccessCommands {
	return &accessUseCaseImpl{uow: uow, cache: cache, clock: clk}
}

func (uc *accessUseCaseImpl) RecomputeForRental(ctx context.Context, rentalID uuid.UUID) error {
	var relayIDs []uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, derr := loadRental(ctx, tx, rentalID)
		if derr != nil {
			return derr
		}
		relayIDs, derr = recomputeAccessGrants(ctx, tx, r, uc.clock.Now())
		return derr
	})
	if err != nil {
		return err
	}

	uc.cache.Forget(ctx, rentalID, relayIDs)
	return nil
}

func (uc *accessUseCaseImpl) SweepExpired(ctx context.Context) (*SweepResult, error) {
	var result SweepResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		expiring, derr := tx.Reads().StatusByKind(ctx, status.KindExpiring)
		if derr != nil {
			return derr
		}

		marked, derr := tx.Rentals().MarkExpiring(ctx, expiring.ID, uc.clock.Now())
		if derr != nil {
			return derr
		}
		result.RentalsMarked = len(marked)

		revoked, derr := tx.AccessGrants().DeactivateExpired(ctx, uc.clock.Now())
		if derr != nil {
			return derr
		}
		result.GrantsRevoked = revoked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
