package commands

import (
	"context"
	"time"

	"storent/internal/domain/rental"
	"storent/internal/domain/status"
	"storent/internal/infra"
	"storent/internal/pkg/clock"
	"storent/internal/pkg/errs"
	"storent/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRentalNotFound   = errs.New("rental not found")
	ErrStatusNotFound   = errs.New("status not found")
	ErrCellNotFound     = errs.New("cell not found")
	ErrCellConflict     = errs.New("cell already rented for the period")
	ErrDomainValidation = errs.New("domain validation error")
)

type CreateRentalRequest struct {
	ClientID  uuid.UUID
	CellIDs   []uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	// StatusID selects the initial label; nil falls back to the waiting
	// kind's status.
	StatusID *uuid.UUID
}

type ExtendRentalRequest struct {
	Months int
	Days   int
}

type CreateRentalResult struct {
	RentalID uuid.UUID
}

type RentalCommands interface {
	CreateRental(ctx context.Context, req CreateRentalRequest) (*CreateRentalResult, error)
	ExtendRental(ctx context.Context, rentalID uuid.UUID, req ExtendRentalRequest) error
	UpdateRentalStatus(ctx context.Context, rentalID, statusID uuid.UUID) error
	CloseRental(ctx context.Context, rentalID uuid.UUID, comment string) error
}

type rentalUseCaseImpl struct {
	uow   shared.UnitOfWork
	cache shared.AccessDecisionCache
	clock clock.Clock
}

func NewRentalUseCase(uow shared.UnitOfWork, cache shared.AccessDecisionCache, clk clock.Clock) RentalCommands {
	return &rentalUseCaseImpl{uow: uow, cache: cache, clock: clk}
}

func (uc *rentalUseCaseImpl) CreateRental(ctx context.Context, req CreateRentalRequest) (*CreateRentalResult, error) {
	period, err := rental.NewPeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var (
		createdID uuid.UUID
		relayIDs  []uuid.UUID
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, derr := createRental(ctx, tx, req.ClientID, req.CellIDs, period, req.StatusID, uc.clock.Now())
		if derr != nil {
			return derr
		}
		createdID = r.ID()

		relayIDs, derr = recomputeAccessGrants(ctx, tx, r, uc.clock.Now())
		return derr
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Forget(ctx, createdID, relayIDs)
	return &CreateRentalResult{RentalID: createdID}, nil
}

func (uc *rentalUseCaseImpl) ExtendRental(ctx context.Context, rentalID uuid.UUID, req ExtendRentalRequest) error {
	amount, err := rental.NewExtensionAmount(req.Months, req.Days)
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}

	var relayIDs []uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, derr := extendRental(ctx, tx, rentalID, amount, uc.clock.Now())
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

func (uc *rentalUseCaseImpl) UpdateRentalStatus(ctx context.Context, rentalID, statusID uuid.UUID) error {
	var relayIDs []uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, derr := loadRental(ctx, tx, rentalID)
		if derr != nil {
			return derr
		}

		statusSnap, derr := tx.Reads().StatusByID(ctx, statusID)
		if derr != nil {
			if infra.IsKind(derr, infra.NotFound) {
				return ErrStatusNotFound
			}
			return derr
		}

		if derr = r.ChangeStatus(statusSnap.Kind, statusSnap.ID, uc.clock.Now()); derr != nil {
			return derr
		}
		if derr = tx.Rentals().Update(ctx, r); derr != nil {
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

func (uc *rentalUseCaseImpl) CloseRental(ctx context.Context, rentalID uuid.UUID, comment string) error {
	var relayIDs []uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().RentalByID(ctx, rentalID)
		if derr != nil {
			if infra.IsKind(derr, infra.NotFound) {
				return ErrRentalNotFound
			}
			return derr
		}
		// A closed rental is gone as far as the close operation is
		// concerned, so a repeated close reads as absent.
		if snap.Kind.IsTerminal() {
			return ErrRentalNotFound
		}

		r, derr := snap.ToDomain()
		if derr != nil {
			return derr
		}

		closedStatus, derr := tx.Reads().StatusByKind(ctx, status.KindClosed)
		if derr != nil {
			return derr
		}

		if derr = r.Close(comment, closedStatus.ID, uc.clock.Now()); derr != nil {
			return derr
		}
		if derr = tx.Rentals().Update(ctx, r); derr != nil {
			return derr
		}
		if derr = tx.AccessGrants().DeactivateByRental(ctx, rentalID); derr != nil {
			return derr
		}

		relays, derr := tx.Reads().RelaysByCells(ctx, r.CellIDs())
		if derr != nil {
			return derr
		}
		for _, rel := range relays {
			relayIDs = append(relayIDs, rel.ID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.cache.Forget(ctx, rentalID, relayIDs)
	return nil
}

// createRental holds the shared creation path used both by the admin
// endpoint and by a confirmed first payment.
func createRental(ctx context.Context, tx shared.Tx, clientID uuid.UUID, cellIDs []uuid.UUID, period rental.Period, statusID *uuid.UUID, now time.Time) (*rental.Rental, error) {
	missing, err := tx.Reads().MissingCells(ctx, cellIDs)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, ErrCellNotFound
	}

	statusSnap, err := resolveInitialStatus(ctx, tx, statusID)
	if err != nil {
		return nil, err
	}

	r, err := rental.NewRental(clientID, cellIDs, period, statusSnap.ID, statusSnap.Kind, now)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	conflicts, err := tx.Rentals().FindConflictingCells(ctx, r.CellIDs(), period, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, ErrCellConflict
	}

	if err := tx.Rentals().Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func extendRental(ctx context.Context, tx shared.Tx, rentalID uuid.UUID, amount rental.ExtensionAmount, now time.Time) (*rental.Rental, error) {
	r, err := loadRental(ctx, tx, rentalID)
	if err != nil {
		return nil, err
	}
	// A closed rental is gone as far as extension is concerned, same as the
	// close operation treats a repeated close.
	if r.Kind().IsTerminal() {
		return nil, ErrRentalNotFound
	}

	if err := r.Extend(amount, now); err != nil {
		return nil, err
	}

	// The extension widens the window, so the cells must be re-checked
	// against neighbours booked after the original end date.
	conflicts, err := tx.Rentals().FindConflictingCells(ctx, r.CellIDs(), r.Period(), r.ID())
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, ErrCellConflict
	}

	if err := tx.Rentals().Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func loadRental(ctx context.Context, tx shared.Tx, rentalID uuid.UUID) (*rental.Rental, error) {
	snap, err := tx.Reads().RentalByID(ctx, rentalID)
	if err != nil {
		if infra.IsKind(err, infra.NotFound) {
			return nil, ErrRentalNotFound
		}
		return nil, err
	}
	return snap.ToDomain()
}

func resolveInitialStatus(ctx context.Context, tx shared.Tx, statusID *uuid.UUID) (*shared.StatusSnapshot, error) {
	if statusID == nil {
		return tx.Reads().StatusByKind(ctx, status.KindWaiting)
	}

	snap, err := tx.Reads().StatusByID(ctx, *statusID)
	if err != nil {
		if infra.IsKind(err, infra.NotFound) {
			return nil, ErrStatusNotFound
		}
		return nil, err
	}
	if snap.Kind.IsTerminal() {
		return nil, errs.Mark(rental.ErrCloseViaTransition, ErrDomainValidation)
	}
	return snap, nil
}

// recomputeAccessGrants projects the rental's lifecycle onto relay access
// rows inside the same transaction as the mutation, and returns the relay
// IDs whose cached decisions must be dropped after commit.
func recomputeAccessGrants(ctx context.Context, tx shared.Tx, r *rental.Rental, now time.Time) ([]uuid.UUID, error) {
	relays, err := tx.Reads().RelaysByCells(ctx, r.CellIDs())
	if err != nil {
		return nil, err
	}

	relayIDs := make([]uuid.UUID, 0, len(relays))
	for _, rel := range relays {
		relayIDs = append(relayIDs, rel.ID)
	}

	// Waiting rentals before their start date hold no grants yet; closed
	// and lapsed ones lose theirs.
	if !r.IsActive(now) {
		return relayIDs, tx.AccessGrants().DeactivateByRental(ctx, r.ID())
	}

	for _, rel := range relays {
		if err := tx.AccessGrants().UpsertActive(ctx, rel.ID, r.ID(), r.Period().End()); err != nil {
			return nil, err
		}
	}
	return relayIDs, nil
}
