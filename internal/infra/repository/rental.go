package repository

import (
	"context"
	"time"

	"storent/internal/domain/rental"
	"storent/internal/infra"
	"storent/internal/infra/db"
	"storent/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type RentalRepository struct {
	db db.DBTX
}

func NewRentalRepository(dbtx db.DBTX) *RentalRepository {
	return &RentalRepository{db: dbtx}
}

func (r *RentalRepository) Create(ctx context.Context, rent *rental.Rental) error {
	const insertRental = `
		INSERT INTO rentals (
			id, client_id, start_date, end_date, status_id, status_kind,
			extension_count, last_extended_at, closed_at, close_comment,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.Exec(ctx, insertRental,
		rent.ID(),
		rent.ClientID(),
		rent.Period().Start(),
		rent.Period().End(),
		rent.StatusID(),
		rent.Kind().String(),
		rent.ExtensionCount(),
		pgconv.TimePtrToPgtype(rent.LastExtendedAt()),
		pgconv.TimePtrToPgtype(rent.ClosedAt()),
		nullableComment(rent.CloseComment()),
		rent.CreatedAt(),
		rent.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapDBErr("failed to create rental", err)
	}

	return r.insertCells(ctx, rent.ID(), rent.CellIDs())
}

func (r *RentalRepository) Update(ctx context.Context, rent *rental.Rental) error {
	const updateRental = `
		UPDATE rentals
		SET end_date = $2,
		    status_id = $3,
		    status_kind = $4,
		    extension_count = $5,
		    last_extended_at = $6,
		    closed_at = $7,
		    close_comment = $8,
		    updated_at = $9
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, updateRental,
		rent.ID(),
		rent.Period().End(),
		rent.StatusID(),
		rent.Kind().String(),
		rent.ExtensionCount(),
		pgconv.TimePtrToPgtype(rent.LastExtendedAt()),
		pgconv.TimePtrToPgtype(rent.ClosedAt()),
		nullableComment(rent.CloseComment()),
		rent.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapDBErr("failed to update rental", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.NotFound, "rental not found", nil)
	}
	return nil
}

// FindConflictingCells returns cells whose open rentals overlap [start, end).
// It first takes per-cell transaction-scoped advisory locks: under read
// committed a plain scan cannot see a competing uncommitted insert, so two
// concurrent creates for the same cell would both pass. The locks serialize
// them; the second writer scans only after the first has committed.
func (r *RentalRepository) FindConflictingCells(ctx context.Context, cellIDs []uuid.UUID, p rental.Period, excludeRentalID uuid.UUID) ([]uuid.UUID, error) {
	// Ordered acquisition keeps two multi-cell rentals from deadlocking.
	const lockCells = `
		SELECT pg_advisory_xact_lock(hashtextextended(c.cell_id::text, 0))
		FROM (SELECT unnest($1::uuid[]) AS cell_id ORDER BY 1) c`

	if _, err := r.db.Exec(ctx, lockCells, cellIDs); err != nil {
		return nil, infra.WrapDBErr("failed to lock cells", err)
	}

	const findConflicts = `
		SELECT DISTINCT rc.cell_id
		FROM rental_cells rc
		JOIN rentals r ON r.id = rc.rental_id
		WHERE rc.cell_id = ANY($1)
		  AND r.status_kind <> 'closed'
		  AND r.id <> $2
		  AND r.start_date < $4
		  AND $3 < r.end_date
		FOR UPDATE OF rc`

	rows, err := r.db.Query(ctx, findConflicts, cellIDs, excludeRentalID, p.Start(), p.End())
	if err != nil {
		return nil, infra.WrapDBErr("failed to check rental conflicts", err)
	}
	defer rows.Close()

	var conflicts []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapDBErr("failed to scan conflicting cell", err)
		}
		conflicts = append(conflicts, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapDBErr("failed to read conflicting cells", err)
	}
	return conflicts, nil
}

func (r *RentalRepository) MarkExpiring(ctx context.Context, expiringStatusID uuid.UUID, now time.Time) ([]uuid.UUID, error) {
	const markExpiring = `
		UPDATE rentals
		SET status_id = $1,
		    status_kind = 'expiring',
		    updated_at = $2
		WHERE status_kind = 'active'
		  AND end_date <= $2
		RETURNING id`

	rows, err := r.db.Query(ctx, markExpiring, expiringStatusID, now)
	if err != nil {
		return nil, infra.WrapDBErr("failed to mark expiring rentals", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapDBErr("failed to scan expiring rental", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapDBErr("failed to read expiring rentals", err)
	}
	return ids, nil
}

func (r *RentalRepository) insertCells(ctx context.Context, rentalID uuid.UUID, cellIDs []uuid.UUID) error {
	const insertCell = `
		INSERT INTO rental_cells (rental_id, cell_id)
		VALUES ($1, $2)`

	for _, cellID := range cellIDs {
		if _, err := r.db.Exec(ctx, insertCell, rentalID, cellID); err != nil {
			return infra.WrapDBErr("failed to attach cell to rental", err)
		}
	}
	return nil
}

func nullableComment(comment string) *string {
	if comment == "" {
		return nil
	}
	return &comment
}
