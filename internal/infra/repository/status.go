package repository

import (
	"context"

	"storent/internal/domain/status"
	"storent/internal/infra"
	"storent/internal/infra/db"

	"github.com/google/uuid"
)

type StatusRepository struct {
	db db.DBTX
}

func NewStatusRepository(dbtx db.DBTX) *StatusRepository {
	return &StatusRepository{db: dbtx}
}

func (r *StatusRepository) Create(ctx context.Context, s *status.Status) error {
	const insertStatus = `
		INSERT INTO statuses (id, name, color, kind, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, insertStatus,
		s.ID(), s.Name(), s.Color(), s.Kind().String(), s.CreatedAt(), s.UpdatedAt())
	if err != nil {
		return infra.WrapDBErr("failed to create status", err)
	}
	return nil
}

func (r *StatusRepository) Update(ctx context.Context, s *status.Status) error {
	const updateStatus = `
		UPDATE statuses
		SET name = $2, color = $3, updated_at = $4
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, updateStatus, s.ID(), s.Name(), s.Color(), s.UpdatedAt())
	if err != nil {
		return infra.WrapDBErr("failed to update status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.NotFound, "status not found", nil)
	}
	return nil
}

func (r *StatusRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const deleteStatus = `DELETE FROM statuses WHERE id = $1`

	tag, err := r.db.Exec(ctx, deleteStatus, id)
	if err != nil {
		return infra.WrapDBErr("failed to delete status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.NotFound, "status not found", nil)
	}
	return nil
}
