package readstore

import (
	"context"

	"storent/internal/domain/status"
	"storent/internal/infra"
	"storent/internal/infra/db"
	"storent/internal/pkg/pgconv"
	"storent/internal/usecase/queries"

	"github.com/google/uuid"
)

type StatusReadStore struct {
	db db.DBTX
}

func NewStatusReadStore(dbtx db.DBTX) *StatusReadStore {
	return &StatusReadStore{db: dbtx}
}

func (r *StatusReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.StatusView, error) {
	const statusViewByID = `
		SELECT id, name, color, kind, created_at, updated_at
		FROM statuses
		WHERE id = $1`

	var (
		view queries.StatusView
		kind string
	)
	err := r.db.QueryRow(ctx, statusViewByID, id).Scan(
		&view.ID, &view.Name, &view.Color, &kind, &view.CreatedAt, &view.UpdatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(infra.NotFound, "status not found", err)
		}
		return nil, infra.WrapDBErr("failed to get status view", err)
	}
	view.Kind = status.Kind(kind)
	return &view, nil
}

func (r *StatusReadStore) FindAll(ctx context.Context) ([]*queries.StatusView, error) {
	const allStatuses = `
		SELECT id, name, color, kind, created_at, updated_at
		FROM statuses
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, allStatuses)
	if err != nil {
		return nil, infra.WrapDBErr("failed to list statuses", err)
	}
	defer rows.Close()

	var views []*queries.StatusView
	for rows.Next() {
		var (
			view queries.StatusView
			kind string
		)
		if err := rows.Scan(&view.ID, &view.Name, &view.Color, &kind, &view.CreatedAt, &view.UpdatedAt); err != nil {
			return nil, infra.WrapDBErr("failed to scan status", err)
		}
		view.Kind = status.Kind(kind)
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapDBErr("failed to read statuses", err)
	}
	return views, nil
}
