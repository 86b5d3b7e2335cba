package repository

import (
	"context"
	"time"

	"storent/internal/infra"
	"storent/internal/infra/db"

	"github.com/google/uuid"
)

type AccessGrantRepository struct {
	db db.DBTX
}

func NewAccessGrantRepository(dbtx db.DBTX) *AccessGrantRepository {
	return &AccessGrantRepository{db: dbtx}
}

// UpsertActive revives a revoked grant rather than inserting a second row;
// (relay_id, rental_id) is unique.
func (r *AccessGrantRepository) UpsertActive(ctx context.Context, relayID, rentalID uuid.UUID, validUntil time.Time) error {
	const upsertGrant = `
		INSERT INTO relay_accesses (id, relay_id, rental_id, active, valid_until, granted_at)
		VALUES ($1, $2, $3, TRUE, $4, NOW())
		ON CONFLICT (relay_id, rental_id)
		DO UPDATE SET active = TRUE, valid_until = $4, revoked_at = NULL`

	if _, err := r.db.Exec(ctx, upsertGrant, uuid.New(), relayID, rentalID, validUntil); err != nil {
		return infra.WrapDBErr("failed to upsert access grant", err)
	}
	return nil
}

func (r *AccessGrantRepository) DeactivateByRental(ctx context.Context, rentalID uuid.UUID) error {
	const deactivate = `
		UPDATE relay_accesses
		SET active = FALSE, revoked_at = NOW()
		WHERE rental_id = $1 AND active`

	if _, err := r.db.Exec(ctx, deactivate, rentalID); err != nil {
		return infra.WrapDBErr("failed to deactivate access grants", err)
	}
	return nil
}

func (r *AccessGrantRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	const deactivateExpired = `
		UPDATE relay_accesses
		SET active = FALSE, revoked_at = $1
		WHERE active AND valid_until <= $1`

	tag, err := r.db.Exec(ctx, deactivateExpired, now)
	if err != nil {
		return 0, infra.WrapDBErr("failed to deactivate expired grants", err)
	}
	return tag.RowsAffected(), nil
}
