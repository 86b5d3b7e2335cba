package repository

import (
	"context"

	"storent/internal/infra"
	"storent/internal/infra/db"
	"storent/internal/usecase/shared"

	"github.com/google/uuid"
)

type CatalogRepository struct {
	db db.DBTX
}

func NewCatalogRepository(dbtx db.DBTX) *CatalogRepository {
	return &CatalogRepository{db: dbtx}
}

func (r *CatalogRepository) CreateContainer(ctx context.Context, c *shared.ContainerRecord) error {
	const insertContainer = `
		INSERT INTO containers (id, name, address, created_at)
		VALUES ($1, $2, $3, $4)`

	if _, err := r.db.Exec(ctx, insertContainer, c.ID, c.Name, c.Address, c.CreatedAt); err != nil {
		return infra.WrapDBErr("failed to create container", err)
	}
	return nil
}

func (r *CatalogRepository) CreateCell(ctx context.Context, c *shared.CellRecord) error {
	const insertCell = `
		INSERT INTO cells (id, container_id, name, area_m2, price_cents, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, insertCell,
		c.ID, c.ContainerID, c.Name, c.AreaM2, c.PriceCents, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return infra.WrapDBErr("failed to create cell", err)
	}
	return nil
}

func (r *CatalogRepository) UpdateCell(ctx context.Context, c *shared.CellRecord) error {
	const updateCell = `
		UPDATE cells
		SET name = $2, area_m2 = $3, price_cents = $4, updated_at = $5
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, updateCell, c.ID, c.Name, c.AreaM2, c.PriceCents, c.UpdatedAt)
	if err != nil {
		return infra.WrapDBErr("failed to update cell", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.NotFound, "cell not found", nil)
	}
	return nil
}

func (r *CatalogRepository) DeleteCell(ctx context.Context, id uuid.UUID) error {
	const deleteCell = `DELETE FROM cells WHERE id = $1`

	tag, err := r.db.Exec(ctx, deleteCell, id)
	if err != nil {
		return infra.WrapDBErr("failed to delete cell", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.NotFound, "cell not found", nil)
	}
	return nil
}

func (r *CatalogRepository) CreateRelay(ctx context.Context, rel *shared.RelayRecord) error {
	const insertRelay = `
		INSERT INTO relays (id, cell_id, name, channel, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.db.Exec(ctx, insertRelay, rel.ID, rel.CellID, rel.Name, rel.Channel, rel.CreatedAt); err != nil {
		return infra.WrapDBErr("failed to create relay", err)
	}
	return nil
}
