package readstore

import (
	"context"
	"fmt"
	"strings"

	"storent/internal/infra"
	"storent/internal/infra/db"
	"storent/internal/pkg/pgconv"
	"storent/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type PaymentReadStore struct {
	db db.DBTX
}

func NewPaymentReadStore(dbtx db.DBTX) *PaymentReadStore {
	return &PaymentReadStore{db: dbtx}
}

const paymentColumns = `
	id, client_id, cell_id, rental_id, rental_days,
	amount_cents, COALESCE(description, ''), status,
	gateway_payment_id, payment_url, paid_at, created_at`

func (r *PaymentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PaymentView, error) {
	query := `SELECT` + paymentColumns + ` FROM payments WHERE id = $1`

	view, err := scanPayment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(infra.NotFound, "payment not found", err)
		}
		return nil, infra.WrapDBErr("failed to get payment view", err)
	}
	return view, nil
}

func (r *PaymentReadStore) List(ctx context.Context, filter queries.PaymentFilter, page queries.Page) ([]*queries.PaymentView, int64, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.ClientID != nil {
		add("client_id = $%d", *filter.ClientID)
	}
	if filter.RentalID != nil {
		add("rental_id = $%d", *filter.RentalID)
	}
	if filter.Status != nil {
		add("status = $%d", *filter.Status)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM payments`+where, args...).Scan(&total); err != nil {
		return nil, 0, infra.WrapDBErr("failed to count payments", err)
	}

	listQuery := fmt.Sprintf(`SELECT%s FROM payments%s ORDER BY %s %s, id LIMIT $%d OFFSET $%d`,
		paymentColumns, where, page.SortBy, strings.ToUpper(page.SortDirection), len(args)+1, len(args)+2)
	args = append(args, page.Limit, page.Offset())

	rows, err := r.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, infra.WrapDBErr("failed to list payments", err)
	}
	defer rows.Close()

	var views []*queries.PaymentView
	for rows.Next() {
		view, err := scanPayment(rows)
		if err != nil {
			return nil, 0, infra.WrapDBErr("failed to scan payment", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapDBErr("failed to read payments", err)
	}
	return views, total, nil
}

func scanPayment(row interface{ Scan(dest ...any) error }) (*queries.PaymentView, error) {
	var (
		view             queries.PaymentView
		clientID         pgtype.UUID
		cellID           pgtype.UUID
		rentalID         pgtype.UUID
		rentalDays       pgtype.Int4
		gatewayPaymentID pgtype.Text
		paymentURL       pgtype.Text
		paidAt           pgtype.Timestamptz
	)
	err := row.Scan(
		&view.ID, &clientID, &cellID, &rentalID, &rentalDays,
		&view.AmountCents, &view.Description, &view.Status,
		&gatewayPaymentID, &paymentURL, &paidAt, &view.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.ClientID = pgconv.UUIDPtrFromPgtype(clientID)
	view.CellID = pgconv.UUIDPtrFromPgtype(cellID)
	view.RentalID = pgconv.UUIDPtrFromPgtype(rentalID)
	view.RentalDays = pgconv.IntPtrFromPgtype(rentalDays)
	view.GatewayPaymentID = pgconv.StringPtrFromPgtype(gatewayPaymentID)
	view.PaymentURL = pgconv.StringPtrFromPgtype(paymentURL)
	view.PaidAt = pgconv.TimePtrFromPgtype(paidAt)
	return &view, nil
}
