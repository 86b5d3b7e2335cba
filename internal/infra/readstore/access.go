package readstore

import (
	"context"

	"storent/internal/infra"
	"storent/internal/infra/db"
	"storent/internal/pkg/pgconv"
	"storent/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type AccessReadStore struct {
	db db.DBTX
}

func NewAccessReadStore(dbtx db.DBTX) *AccessReadStore {
	return &AccessReadStore{db: dbtx}
}

const accessColumns = `
	id, relay_id, rental_id, active, valid_until, granted_at, revoked_at`

func (r *AccessReadStore) FindGrant(ctx context.Context, relayID, rentalID uuid.UUID) (*queries.AccessGrantView, error) {
	query := `SELECT` + accessColumns + ` FROM relay_accesses WHERE relay_id = $1 AND rental_id = $2`

	view, err := scanGrant(r.db.QueryRow(ctx, query, relayID, rentalID))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(infra.NotFound, "access grant not found", err)
		}
		return nil, infra.WrapDBErr("failed to get access grant", err)
	}
	return view, nil
}

func (r *AccessReadStore) FindByRental(ctx context.Context, rentalID uuid.UUID) ([]*queries.AccessGrantView, error) {
	query := `SELECT` + accessColumns + ` FROM relay_accesses WHERE rental_id = $1 ORDER BY granted_at`
	return r.findMany(ctx, query, rentalID)
}

func (r *AccessReadStore) FindByRelay(ctx context.Context, relayID uuid.UUID) ([]*queries.AccessGrantView, error) {
	query := `SELECT` + accessColumns + ` FROM relay_accesses WHERE relay_id = $1 ORDER BY granted_at`
	return r.findMany(ctx, query, relayID)
}

func (r *AccessReadStore) findMany(ctx context.Context, query string, arg any) ([]*queries.AccessGrantView, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, infra.WrapDBErr("failed to list access grants", err)
	}
	defer rows.Close()

	var views []*queries.AccessGrantView
	for rows.Next() {
		view, err := scanGrant(rows)
		if err != nil {
			return nil, infra.WrapDBErr("failed to scan access grant", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapDBErr("failed to read access grants", err)
	}
	return views, nil
}

func scanGrant(row interface{ Scan(dest ...any) error }) (*queries.AccessGrantView, error) {
	var (
		view      queries.AccessGrantView
		revokedAt pgtype.Timestamptz
	)
	err := row.Scan(&view.ID, &view.RelayID, &view.RentalID, &view.Active,
		&view.ValidUntil, &view.GrantedAt, &revokedAt)
	if err != nil {
		return nil, err
	}
	view.RevokedAt = pgconv.TimePtrFromPgtype(revokedAt)
	return &view, nil
}
