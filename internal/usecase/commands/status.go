package commands

import (
	"context"

	"storent/internal/domain/status"
	"storent/internal/infra"
	"storent/internal/pkg/clock"
	"storent/internal/pkg/errs"
	"storent/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrStatusInUse         = errs.New("status is referenced by rentals")
	ErrDuplicateStatusName = errs.New("status name already exists")
)

type CreateStatusRequest struct {
	Name  string
	Color string
	Kind  status.Kind
}

type UpdateStatusRequest struct {
	Name  string
	Color string
}

type CreateStatusResult struct {
	StatusID uuid.UUID
}

type StatusCommands interface {
	CreateStatus(ctx context.Context, req CreateStatusRequest) (*CreateStatusResult, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) error
	DeleteStatus(ctx context.Context, id uuid.UUID) error
}

type statusUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewStatusUseCase(uow shared.UnitOfWork, clk clock.Clock) StatusCommands {
	return &statusUseCaseImpl{uow: uow, clock: clk}
}

func (uc *statusUseCaseImpl) CreateStatus(ctx context.Context, req CreateStatusRequest) (*CreateStatusResult, error) {
	s, err := status.NewStatus(req.Name, req.Color, req.Kind, uc.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if derr := tx.Statuses().Create(ctx, s); derr != nil {
			if infra.IsKind(derr, infra.DuplicateKey) {
				return ErrDuplicateStatusName
			}
			return derr
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &CreateStatusResult{StatusID: s.ID()}, nil
}

func (uc *statusUseCaseImpl) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().StatusByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.NotFound) {
				return ErrStatusNotFound
			}
			return err
		}

		now := uc.clock.Now()
		s := status.ReconstructStatus(snap.ID, snap.Name, snap.Color, snap.Kind, now, now)
		if err := s.Relabel(req.Name, req.Color, now); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.Statuses().Update(ctx, s); err != nil {
			if infra.IsKind(err, infra.DuplicateKey) {
				return ErrDuplicateStatusName
			}
			return err
		}
		return nil
	})
}

func (uc *statusUseCaseImpl) DeleteStatus(ctx context.Context, id uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().StatusByID(ctx, id); err != nil {
			if infra.IsKind(err, infra.NotFound) {
				return ErrStatusNotFound
			}
			return err
		}

		referenced, err := tx.Reads().StatusReferenced(ctx, id)
		if err != nil {
			return err
		}
		if referenced {
			return ErrStatusInUse
		}

		if err := tx.Statuses().Delete(ctx, id); err != nil {
			// Concurrent rental creation can still hit the FK between
			// the check and the delete.
			if infra.IsKind(err, infra.ForeignKeyViolated) {
				return ErrStatusInUse
			}
			return err
		}
		return nil
	})
}
