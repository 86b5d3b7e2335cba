package repository

import (
	"context"
	"time"

	"storent/internal/infra"
	"storent/internal/infra/db"
	"storent/internal/pkg/pgconv"
	"storent/internal/usecase/shared"

	"github.com/google/uuid"
)

type PaymentRepository struct {
	db db.DBTX
}

func NewPaymentRepository(dbtx db.DBTX) *PaymentRepository {
	return &PaymentRepository{db: dbtx}
}

func (r *PaymentRepository) Create(ctx context.Context, p *shared.PaymentRecord) error {
	const insertPayment = `
		INSERT INTO payments (
			id, client_id, cell_id, rental_id, rental_days,
			amount_cents, description, status, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, insertPayment,
		p.ID,
		pgconv.UUIDPtrToPgtype(p.ClientID),
		pgconv.UUIDPtrToPgtype(p.CellID),
		pgconv.UUIDPtrToPgtype(p.RentalID),
		pgconv.IntPtrToPgtype(p.RentalDays),
		p.AmountCents,
		p.Description,
		p.Status,
		p.CreatedAt,
	)
	if err != nil {
		return infra.WrapDBErr("failed to create payment", err)
	}
	return nil
}

func (r *PaymentRepository) SetGatewayDetails(ctx context.Context, id uuid.UUID, gatewayPaymentID, paymentURL, paymentStatus string) error {
	const setDetails = `
		UPDATE payments
		SET gateway_payment_id = $2, payment_url = $3, status = $4
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, setDetails, id, gatewayPaymentID, paymentURL, paymentStatus)
	if err != nil {
		return infra.WrapDBErr("failed to set gateway details", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.NotFound, "payment not found", nil)
	}
	return nil
}

// MarkPaid only moves a payment to paid once; a second call reports false so
// replayed gateway callbacks cannot double-apply.
func (r *PaymentRepository) MarkPaid(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	const markPaid = `
		UPDATE payments
		SET status = 'paid', paid_at = $2
		WHERE id = $1 AND status <> 'paid'`

	tag, err := r.db.Exec(ctx, markPaid, id, now)
	if err != nil {
		return false, infra.WrapDBErr("failed to mark payment paid", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PaymentRepository) MarkFailed(ctx context.Context, id uuid.UUID) error {
	const markFailed = `
		UPDATE payments
		SET status = 'failed'
		WHERE id = $1 AND status <> 'paid'`

	if _, err := r.db.Exec(ctx, markFailed, id); err != nil {
		return infra.WrapDBErr("failed to mark payment failed", err)
	}
	return nil
}

func (r *PaymentRepository) AttachRental(ctx context.Context, id, rentalID uuid.UUID) error {
	const attachRental = `
		UPDATE payments
		SET rental_id = $2
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, attachRental, id, rentalID)
	if err != nil {
		return infra.WrapDBErr("failed to attach rental to payment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.NotFound, "payment not found", nil)
	}
	return nil
}
