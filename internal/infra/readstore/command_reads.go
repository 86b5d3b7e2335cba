package readstore

import (
	"context"

	"storent/internal/domain/status"
	"storent/internal/infra"
	"storent/internal/infra/db"
	"storent/internal/pkg/pgconv"
	"storent/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// commandReads serves the write path's lookups over whichever DBTX it was
// built on, so inside a transaction it sees the transaction's own writes.
type commandReads struct {
	db db.DBTX
}

func NewCommandReads(dbtx db.DBTX) shared.CommandReads {
	return &commandReads{db: dbtx}
}

func (r *commandReads) RentalByID(ctx context.Context, id uuid.UUID) (*shared.RentalSnapshot, error) {
	const rentalByID = `
		SELECT r.id, r.client_id,
		       COALESCE(array_agg(rc.cell_id) FILTER (WHERE rc.cell_id IS NOT NULL), '{}'),
		       r.start_date, r.end_date, r.status_id, r.status_kind,
		       r.extension_count, r.last_extended_at, r.closed_at,
		       COALESCE(r.close_comment, ''), r.created_at, r.updated_at
		FROM rentals r
		LEFT JOIN rental_cells rc ON rc.rental_id = r.id
		WHERE r.id = $1
		GROUP BY r.id`

	var (
		snap           shared.RentalSnapshot
		kind           string
		lastExtendedAt pgtype.Timestamptz
		closedAt       pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, rentalByID, id).Scan(
		&snap.ID, &snap.ClientID, &snap.CellIDs,
		&snap.StartDate, &snap.EndDate, &snap.StatusID, &kind,
		&snap.ExtensionCount, &lastExtendedAt, &closedAt,
		&snap.CloseComment, &snap.CreatedAt, &snap.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapDBErr("failed to find rental", err)
	}

	snap.Kind = status.Kind(kind)
	snap.LastExtendedAt = pgconv.TimePtrFromPgtype(lastExtendedAt)
	snap.ClosedAt = pgconv.TimePtrFromPgtype(closedAt)
	return &snap, nil
}

func (r *commandReads) StatusByID(ctx context.Context, id uuid.UUID) (*shared.StatusSnapshot, error) {
	const statusByID = `
		SELECT id, name, color, kind
		FROM statuses
		WHERE id = $1`

	return r.scanStatus(r.db.QueryRow(ctx, statusByID, id))
}

func (r *commandReads) StatusByKind(ctx context.Context, kind status.Kind) (*shared.StatusSnapshot, error) {
	const statusByKind = `
		SELECT id, name, color, kind
		FROM statuses
		WHERE kind = $1
		ORDER BY created_at
		LIMIT 1`

	return r.scanStatus(r.db.QueryRow(ctx, statusByKind, kind.String()))
}

func (r *commandReads) PaymentByID(ctx context.Context, id uuid.UUID) (*shared.PaymentSnapshot, error) {
	const paymentByID = `
		SELECT id, client_id, cell_id, rental_id, rental_days,
		       amount_cents, COALESCE(description, ''), status,
		       gateway_payment_id, payment_url, paid_at
		FROM payments
		WHERE id = $1`

	var (
		snap             shared.PaymentSnapshot
		clientID         pgtype.UUID
		cellID           pgtype.UUID
		rentalID         pgtype.UUID
		rentalDays       pgtype.Int4
		gatewayPaymentID pgtype.Text
		paymentURL       pgtype.Text
		paidAt           pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, paymentByID, id).Scan(
		&snap.ID, &clientID, &cellID, &rentalID, &rentalDays,
		&snap.AmountCents, &snap.Description, &snap.Status,
		&gatewayPaymentID, &paymentURL, &paidAt,
	)
	if err != nil {
		return nil, infra.WrapDBErr("failed to find payment", err)
	}

	snap.ClientID = pgconv.UUIDPtrFromPgtype(clientID)
	snap.CellID = pgconv.UUIDPtrFromPgtype(cellID)
	snap.RentalID = pgconv.UUIDPtrFromPgtype(rentalID)
	snap.RentalDays = pgconv.IntPtrFromPgtype(rentalDays)
	snap.GatewayPaymentID = pgconv.StringPtrFromPgtype(gatewayPaymentID)
	snap.PaymentURL = pgconv.StringPtrFromPgtype(paymentURL)
	snap.PaidAt = pgconv.TimePtrFromPgtype(paidAt)
	return &snap, nil
}

func (r *commandReads) MissingCells(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	const missingCells = `
		SELECT wanted.id
		FROM unnest($1::uuid[]) AS wanted(id)
		LEFT JOIN cells c ON c.id = wanted.id
		WHERE c.id IS NULL`

	rows, err := r.db.Query(ctx, missingCells, ids)
	if err != nil {
		return nil, infra.WrapDBErr("failed to check cells", err)
	}
	defer rows.Close()

	var missing []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapDBErr("failed to scan missing cell", err)
		}
		missing = append(missing, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapDBErr("failed to read missing cells", err)
	}
	return missing, nil
}

func (r *commandReads) RelaysByCells(ctx context.Context, cellIDs []uuid.UUID) ([]shared.RelayRef, error) {
	const relaysByCells = `
		SELECT id, cell_id, channel
		FROM relays
		WHERE cell_id = ANY($1)
		ORDER BY channel`

	rows, err := r.db.Query(ctx, relaysByCells, cellIDs)
	if err != nil {
		return nil, infra.WrapDBErr("failed to find relays", err)
	}
	defer rows.Close()

	var relays []shared.RelayRef
	for rows.Next() {
		var ref shared.RelayRef
		if err := rows.Scan(&ref.ID, &ref.CellID, &ref.Channel); err != nil {
			return nil, infra.WrapDBErr("failed to scan relay", err)
		}
		relays = append(relays, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapDBErr("failed to read relays", err)
	}
	return relays, nil
}

func (r *commandReads) StatusReferenced(ctx context.Context, statusID uuid.UUID) (bool, error) {
	const statusReferenced = `
		SELECT EXISTS (SELECT 1 FROM rentals WHERE status_id = $1)`

	var referenced bool
	if err := r.db.QueryRow(ctx, statusReferenced, statusID).Scan(&referenced); err != nil {
		return false, infra.WrapDBErr("failed to check status references", err)
	}
	return referenced, nil
}

func (r *commandReads) scanStatus(row interface{ Scan(dest ...any) error }) (*shared.StatusSnapshot, error) {
	var (
		snap shared.StatusSnapshot
		kind string
	)
	if err := row.Scan(&snap.ID, &snap.Name, &snap.Color, &kind); err != nil {
		return nil, infra.WrapDBErr("failed to find status", err)
	}
	snap.Kind = status.Kind(kind)
	return &snap, nil
}
