package repository

import (
	"context"
	"time"

	"storent/internal/infra"
	"storent/internal/infra/db"

	"github.com/google/uuid"
)

type AdminRepository struct {
	db db.DBTX
}

func NewAdminRepository(dbtx db.DBTX) *AdminRepository {
	return &AdminRepository{db: dbtx}
}

func (r *AdminRepository) UpdateLastLogin(ctx context.Context, adminID uuid.UUID, now time.Time) error {
	const updateLastLogin = `
		UPDATE admins
		SET last_login_at = $2
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, updateLastLogin, adminID, now)
	if err != nil {
		return infra.WrapDBErr("failed to update last login", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.NotFound, "admin not found", nil)
	}
	return nil
}
