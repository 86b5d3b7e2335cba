package commands

import (
	"context"
	"strings"

	"storent/internal/infra"
	"storent/internal/pkg/clock"
	"storent/internal/pkg/errs"
	"storent/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrContainerNotFound = errs.New("container not found")
	ErrCellInUse         = errs.New("cell is referenced by rentals")
	ErrDuplicateName     = errs.New("name already exists")
)

type CreateContainerRequest struct {
	Name    string
	Address string
}

type CreateCellRequest struct {
	ContainerID uuid.UUID
	Name        string
	AreaM2      float64
	PriceCents  int64
}

type UpdateCellRequest struct {
	Name       string
	AreaM2     float64
	PriceCents int64
}

type CreateRelayRequest struct {
	CellID  uuid.UUID
	Name    string
	Channel int
}

type CatalogCommands interface {
	CreateContainer(ctx context.Context, req CreateContainerRequest) (uuid.UUID, error)
	CreateCell(ctx context.Context, req CreateCellRequest) (uuid.UUID, error)
	UpdateCell(ctx context.Context, id uuid.UUID, req UpdateCellRequest) error
	DeleteCell(ctx context.Context, id uuid.UUID) error
	CreateRelay(ctx context.Context, req CreateRelayRequest) (uuid.UUID, error)
}

type catalogUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCatalogUseCase(uow shared.UnitOfWork, clk clock.Clock) CatalogCommands {
	return &catalogUseCaseImpl{uow: uow, clock: clk}
}

func (uc *catalogUseCaseImpl) CreateContainer(ctx context.Context, req CreateContainerRequest) (uuid.UUID, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return uuid.Nil, errs.Mark(errs.New("container name must not be empty"), ErrDomainValidation)
	}

	record := &shared.ContainerRecord{
		ID:        uuid.New(),
		Name:      name,
		Address:   strings.TrimSpace(req.Address),
		CreatedAt: uc.clock.Now(),
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if derr := tx.Catalog().CreateContainer(ctx, record); derr != nil {
			if infra.IsKind(derr, infra.DuplicateKey) {
				return ErrDuplicateName
			}
			return derr
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return record.ID, nil
}

func (uc *catalogUseCaseImpl) CreateCell(ctx context.Context, req CreateCellRequest) (uuid.UUID, error) {
	if err := validateCellAttrs(req.Name, req.AreaM2, req.PriceCents); err != nil {
		return uuid.Nil, err
	}

	now := uc.clock.Now()
	record := &shared.CellRecord{
		ID:          uuid.New(),
		ContainerID: req.ContainerID,
		Name:        strings.TrimSpace(req.Name),
		AreaM2:      req.AreaM2,
		PriceCents:  req.PriceCents,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if derr := tx.Catalog().CreateCell(ctx, record); derr != nil {
			switch {
			case infra.IsKind(derr, infra.ForeignKeyViolated):
				return ErrContainerNotFound
			case infra.IsKind(derr, infra.DuplicateKey):
				return ErrDuplicateName
			}
			return derr
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return record.ID, nil
}

func (uc *catalogUseCaseImpl) UpdateCell(ctx context.Context, id uuid.UUID, req UpdateCellRequest) error {
	if err := validateCellAttrs(req.Name, req.AreaM2, req.PriceCents); err != nil {
		return err
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		record := &shared.CellRecord{
			ID:         id,
			Name:       strings.TrimSpace(req.Name),
			AreaM2:     req.AreaM2,
			PriceCents: req.PriceCents,
			UpdatedAt:  uc.clock.Now(),
		}
		if derr := tx.Catalog().UpdateCell(ctx, record); derr != nil {
			switch {
			case infra.IsKind(derr, infra.NotFound):
				return ErrCellNotFound
			case infra.IsKind(derr, infra.DuplicateKey):
				return ErrDuplicateName
			}
			return derr
		}
		return nil
	})
}

func (uc *catalogUseCaseImpl) DeleteCell(ctx context.Context, id uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if derr := tx.Catalog().DeleteCell(ctx, id); derr != nil {
			switch {
			case infra.IsKind(derr, infra.NotFound):
				return ErrCellNotFound
			case infra.IsKind(derr, infra.ForeignKeyViolated):
				return ErrCellInUse
			}
			return derr
		}
		return nil
	})
}

func (uc *catalogUseCaseImpl) CreateRelay(ctx context.Context, req CreateRelayRequest) (uuid.UUID, error) {
	if req.Channel < 0 {
		return uuid.Nil, errs.Mark(errs.New("relay channel must not be negative"), ErrDomainValidation)
	}

	record := &shared.RelayRecord{
		ID:        uuid.New(),
		CellID:    req.CellID,
		Name:      strings.TrimSpace(req.Name),
		Channel:   req.Channel,
		CreatedAt: uc.clock.Now(),
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if derr := tx.Catalog().CreateRelay(ctx, record); derr != nil {
			switch {
			case infra.IsKind(derr, infra.ForeignKeyViolated):
				return ErrCellNotFound
			case infra.IsKind(derr, infra.DuplicateKey):
				return ErrDuplicateName
			}
			return derr
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return record.ID, nil
}

func validateCellAttrs(name string, areaM2 float64, priceCents int64) error {
	if strings.TrimSpace(name) == "" {
		return errs.Mark(errs.New("cell name must not be empty"), ErrDomainValidation)
	}
	if areaM2 <= 0 {
		return errs.Mark(errs.New("cell area must be positive"), ErrDomainValidation)
	}
	if priceCents < 0 {
		return errs.Mark(errs.New("cell price must not be negative"), ErrDomainValidation)
	}
	return nil
}
