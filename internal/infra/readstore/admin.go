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

type AdminReadStore struct {
	db db.DBTX
}

func NewAdminReadStore(dbtx db.DBTX) *AdminReadStore {
	return &AdminReadStore{db: dbtx}
}

func (r *AdminReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AdminView, error) {
	const adminByID = `
		SELECT id, email, name, last_login_at, created_at
		FROM admins
		WHERE id = $1`

	var (
		view        queries.AdminView
		lastLoginAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, adminByID, id).Scan(
		&view.ID, &view.Email, &view.Name, &lastLoginAt, &view.CreatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(infra.NotFound, "admin not found", err)
		}
		return nil, infra.WrapDBErr("failed to get admin", err)
	}
	view.LastLoginAt = pgconv.TimePtrFromPgtype(lastLoginAt)
	return &view, nil
}

func (r *AdminReadStore) FindCredentialsByEmail(ctx context.Context, email string) (*queries.AdminCredentials, error) {
	const credentialsByEmail = `
		SELECT id, email, name, password_hash
		FROM admins
		WHERE email = $1`

	var creds queries.AdminCredentials
	err := r.db.QueryRow(ctx, credentialsByEmail, email).Scan(
		&creds.ID, &creds.Email, &creds.Name, &creds.PasswordHash)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(infra.NotFound, "admin not found", err)
		}
		return nil, infra.WrapDBErr("failed to get admin credentials", err)
	}
	return &creds, nil
}
