package readstore

import (
	"context"

	"storent/internal/infra"
	"storent/internal/infra/db"
	"storent/internal/pkg/pgconv"
	"storent/internal/usecase/queries"

	"github.com/google/uuid"
)

type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(dbtx db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: dbtx}
}

func (r *CatalogReadStore) FindContainers(ctx context.Context) ([]*queries.ContainerView, error) {
	const allContainers = `
		SELECT c.id, c.name, c.address,
		       (SELECT COUNT(*) FROM cells WHERE container_id = c.id),
		       c.created_at
		FROM containers c
		ORDER BY c.name`

	rows, err := r.db.Query(ctx, allContainers)
	if err != nil {
		return nil, infra.WrapDBErr("failed to list containers", err)
	}
	defer rows.Close()

	var views []*queries.ContainerView
	for rows.Next() {
		var view queries.ContainerView
		if err := rows.Scan(&view.ID, &view.Name, &view.Address, &view.CellCount, &view.CreatedAt); err != nil {
			return nil, infra.WrapDBErr("failed to scan container", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapDBErr("failed to read containers", err)
	}
	return views, nil
}

const cellColumns = `
	c.id, c.container_id, c.name, c.area_m2, c.price_cents,
	EXISTS (
		SELECT 1
		FROM rental_cells rc
		JOIN rentals rr ON rr.id = rc.rental_id
		WHERE rc.cell_id = c.id
		  AND rr.status_kind <> 'closed'
		  AND rr.start_date <= NOW() AND NOW() < rr.end_date
	),
	c.created_at`

func (r *CatalogReadStore) FindCells(ctx context.Context, containerID *uuid.UUID) ([]*queries.CellView, error) {
	query := `SELECT` + cellColumns + ` FROM cells c`
	var args []any
	if containerID != nil {
		query += ` WHERE c.container_id = $1`
		args = append(args, *containerID)
	}
	query += ` ORDER BY c.name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapDBErr("failed to list cells", err)
	}
	defer rows.Close()

	var views []*queries.CellView
	for rows.Next() {
		var view queries.CellView
		err := rows.Scan(&view.ID, &view.ContainerID, &view.Name,
			&view.AreaM2, &view.PriceCents, &view.Occupied, &view.CreatedAt)
		if err != nil {
			return nil, infra.WrapDBErr("failed to scan cell", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapDBErr("failed to read cells", err)
	}
	return views, nil
}

func (r *CatalogReadStore) FindCellByID(ctx context.Context, id uuid.UUID) (*queries.CellView, error) {
	query := `SELECT` + cellColumns + ` FROM cells c WHERE c.id = $1`

	var view queries.CellView
	err := r.db.QueryRow(ctx, query, id).Scan(&view.ID, &view.ContainerID, &view.Name,
		&view.AreaM2, &view.PriceCents, &view.Occupied, &view.CreatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(infra.NotFound, "cell not found", err)
		}
		return nil, infra.WrapDBErr("failed to get cell", err)
	}
	return &view, nil
}

func (r *CatalogReadStore) FindRelays(ctx context.Context, cellID *uuid.UUID) ([]*queries.RelayView, error) {
	query := `SELECT id, cell_id, name, channel, created_at FROM relays`
	var args []any
	if cellID != nil {
		query += ` WHERE cell_id = $1`
		args = append(args, *cellID)
	}
	query += ` ORDER BY channel`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapDBErr("failed to list relays", err)
	}
	defer rows.Close()

	var views []*queries.RelayView
	for rows.Next() {
		var view queries.RelayView
		if err := rows.Scan(&view.ID, &view.CellID, &view.Name, &view.Channel, &view.CreatedAt); err != nil {
			return nil, infra.WrapDBErr("failed to scan relay", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapDBErr("failed to read relays", err)
	}
	return views, nil
}
