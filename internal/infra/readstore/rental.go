package readstore

import (
	"context"
	"fmt"
	"strings"

	"storent/internal/domain/status"
	"storent/internal/infra"
	"storent/internal/infra/db"
	"storent/internal/pkg/pgconv"
	"storent/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RentalReadStore struct {
	db db.DBTX
}

func NewRentalReadStore(dbtx db.DBTX) *RentalReadStore {
	return &RentalReadStore{db: dbtx}
}

func (r *RentalReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RentalView, error) {
	const rentalViewByID = `
		SELECT r.id, r.client_id, r.start_date, r.end_date,
		       r.extension_count, r.last_extended_at, r.closed_at,
		       COALESCE(r.close_comment, ''), r.created_at, r.updated_at,
		       s.id, s.name, s.color, s.kind, s.created_at, s.updated_at
		FROM rentals r
		JOIN statuses s ON s.id = r.status_id
		WHERE r.id = $1`

	var (
		view           queries.RentalView
		lastExtendedAt pgtype.Timestamptz
		closedAt       pgtype.Timestamptz
		kind           string
	)
	err := r.db.QueryRow(ctx, rentalViewByID, id).Scan(
		&view.ID, &view.ClientID, &view.StartDate, &view.EndDate,
		&view.ExtensionCount, &lastExtendedAt, &closedAt,
		&view.CloseComment, &view.CreatedAt, &view.UpdatedAt,
		&view.Status.ID, &view.Status.Name, &view.Status.Color, &kind,
		&view.Status.CreatedAt, &view.Status.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(infra.NotFound, "rental not found", err)
		}
		return nil, infra.WrapDBErr("failed to get rental view", err)
	}

	view.Status.Kind = status.Kind(kind)
	view.LastExtendedAt = pgconv.TimePtrFromPgtype(lastExtendedAt)
	view.ClosedAt = pgconv.TimePtrFromPgtype(closedAt)

	cells, err := r.findCells(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Cells = cells
	return &view, nil
}

func (r *RentalReadStore) List(ctx context.Context, filter queries.RentalFilter, page queries.Page) ([]*queries.RentalListItem, int64, error) {
	where, args := buildRentalFilter(filter)

	countQuery := `SELECT COUNT(*) FROM rentals r` + where
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, infra.WrapDBErr("failed to count rentals", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT r.id, r.client_id,
		       COALESCE((SELECT array_agg(rc.cell_id) FROM rental_cells rc WHERE rc.rental_id = r.id), '{}'),
		       r.start_date, r.end_date, r.status_id, s.name, s.color, r.status_kind,
		       r.extension_count, r.created_at
		FROM rentals r
		JOIN statuses s ON s.id = r.status_id
		%s
		ORDER BY r.%s %s, r.id
		LIMIT $%d OFFSET $%d`,
		where, page.SortBy, strings.ToUpper(page.SortDirection), len(args)+1, len(args)+2)

	args = append(args, page.Limit, page.Offset())

	rows, err := r.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, infra.WrapDBErr("failed to list rentals", err)
	}
	defer rows.Close()

	var items []*queries.RentalListItem
	for rows.Next() {
		var (
			item queries.RentalListItem
			kind string
		)
		err := rows.Scan(
			&item.ID, &item.ClientID, &item.CellIDs,
			&item.StartDate, &item.EndDate, &item.StatusID,
			&item.StatusName, &item.StatusColor, &kind,
			&item.ExtensionCount, &item.CreatedAt,
		)
		if err != nil {
			return nil, 0, infra.WrapDBErr("failed to scan rental row", err)
		}
		item.Kind = status.Kind(kind)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapDBErr("failed to read rental rows", err)
	}
	return items, total, nil
}

func (r *RentalReadStore) findCells(ctx context.Context, rentalID uuid.UUID) ([]queries.RentalCellView, error) {
	const cellsByRental = `
		SELECT c.id, c.container_id, c.name
		FROM rental_cells rc
		JOIN cells c ON c.id = rc.cell_id
		WHERE rc.rental_id = $1
		ORDER BY c.name`

	rows, err := r.db.Query(ctx, cellsByRental, rentalID)
	if err != nil {
		return nil, infra.WrapDBErr("failed to get rental cells", err)
	}
	defer rows.Close()

	var cells []queries.RentalCellView
	for rows.Next() {
		var cell queries.RentalCellView
		if err := rows.Scan(&cell.ID, &cell.ContainerID, &cell.Name); err != nil {
			return nil, infra.WrapDBErr("failed to scan rental cell", err)
		}
		cells = append(cells, cell)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapDBErr("failed to read rental cells", err)
	}
	return cells, nil
}

// buildRentalFilter renders the WHERE clause; the sort column is whitelisted
// upstream, so only values travel as placeholders.
func buildRentalFilter(filter queries.RentalFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.ClientID != nil {
		add("r.client_id = $%d", *filter.ClientID)
	}
	if filter.CellID != nil {
		add("EXISTS (SELECT 1 FROM rental_cells rc WHERE rc.rental_id = r.id AND rc.cell_id = $%d)", *filter.CellID)
	}
	if filter.StatusID != nil {
		add("r.status_id = $%d", *filter.StatusID)
	}
	if filter.Kind != nil {
		add("r.status_kind = $%d", filter.Kind.String())
	}
	if filter.From != nil {
		add("r.end_date > $%d", *filter.From)
	}
	if filter.To != nil {
		add("r.start_date < $%d", *filter.To)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
