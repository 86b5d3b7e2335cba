package shared

import (
	"context"
	"time"

	"storent/internal/domain/rental"
	"storent/internal/domain/status"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: direct access to command-side reads outside a transaction.
	CommandReads() CommandReads
}

type Tx interface {
	Rentals() RentalRepository
	Statuses() StatusRepository
	Payments() PaymentRepository
	AccessGrants() AccessGrantRepository
	Catalog() CatalogRepository
	Admins() AdminRepository
	Reads() CommandReads
}

type RentalRepository interface {
	Create(ctx context.Context, r *rental.Rental) error
	Update(ctx context.Context, r *rental.Rental) error
	// FindConflictingCells locks competing open rentals on the given cells
	// (FOR UPDATE) and returns the cell IDs whose open rentals overlap the
	// period. The lock is what makes concurrent double-booking impossible.
	FindConflictingCells(ctx context.Context, cellIDs []uuid.UUID, p rental.Period, excludeRentalID uuid.UUID) ([]uuid.UUID, error)
	// MarkExpiring flips active rentals whose end date has passed to the
	// expiring kind and returns the affected rental IDs.
	MarkExpiring(ctx context.Context, expiringStatusID uuid.UUID, now time.Time) ([]uuid.UUID, error)
}

type StatusRepository interface {
	Create(ctx context.Context, s *status.Status) error
	Update(ctx context.Context, s *status.Status) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PaymentRepository interface {
	Create(ctx context.Context, p *PaymentRecord) error
	SetGatewayDetails(ctx context.Context, id uuid.UUID, gatewayPaymentID, paymentURL, paymentStatus string) error
	// MarkPaid is idempotent: it reports false when the payment was already
	// paid and leaves the row untouched in that case.
	MarkPaid(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)
	MarkFailed(ctx context.Context, id uuid.UUID) error
	AttachRental(ctx context.Context, id, rentalID uuid.UUID) error
}

type AccessGrantRepository interface {
	UpsertActive(ctx context.Context, relayID, rentalID uuid.UUID, validUntil time.Time) error
	DeactivateByRental(ctx context.Context, rentalID uuid.UUID) error
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

type CatalogRepository interface {
	CreateContainer(ctx context.Context, c *ContainerRecord) error
	CreateCell(ctx context.Context, c *CellRecord) error
	UpdateCell(ctx context.Context, c *CellRecord) error
	DeleteCell(ctx context.Context, id uuid.UUID) error
	CreateRelay(ctx context.Context, r *RelayRecord) error
}

type AdminRepository interface {
	UpdateLastLogin(ctx context.Context, adminID uuid.UUID, now time.Time) error
}

// CommandReads are the minimal write-path reads; list/detail views live on
// the query side.
type CommandReads interface {
	RentalByID(ctx context.Context, id uuid.UUID) (*RentalSnapshot, error)
	StatusByID(ctx context.Context, id uuid.UUID) (*StatusSnapshot, error)
	StatusByKind(ctx context.Context, kind status.Kind) (*StatusSnapshot, error)
	PaymentByID(ctx context.Context, id uuid.UUID) (*PaymentSnapshot, error)
	// MissingCells returns the subset of ids with no cell row.
	MissingCells(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
	RelaysByCells(ctx context.Context, cellIDs []uuid.UUID) ([]RelayRef, error)
	StatusReferenced(ctx context.Context, statusID uuid.UUID) (bool, error)
}

// AccessDecisionCache is the short-TTL cache in front of relay access
// checks. Forget is called after lifecycle mutations so a closed rental
// stops opening doors within one cache miss.
type AccessDecisionCache interface {
	Get(ctx context.Context, relayID, rentalID uuid.UUID) (allowed bool, ok bool)
	Set(ctx context.Context, relayID, rentalID uuid.UUID, allowed bool)
	Forget(ctx context.Context, rentalID uuid.UUID, relayIDs []uuid.UUID)
}
