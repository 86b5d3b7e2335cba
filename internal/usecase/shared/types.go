package shared

import (
	"time"

	"storent/internal/domain/rental"
	"storent/internal/domain/status"

	"github.com/google/uuid"
)

// Payment statuses mirror the gateway lifecycle we care about; everything
// beyond paid/failed is opaque gateway state kept in GatewayStatus.
const (
	PaymentStatusNew     = "new"
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

type RentalSnapshot struct {
	ID             uuid.UUID
	ClientID       uuid.UUID
	CellIDs        []uuid.UUID
	StartDate      time.Time
	EndDate        time.Time
	StatusID       uuid.UUID
	Kind           status.Kind
	ExtensionCount int
	LastExtendedAt *time.Time
	ClosedAt       *time.Time
	CloseComment   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ToDomain rehydrates the aggregate. Rows persisted through the aggregate
// always hold a valid period, so a period error here means corrupted data.
func (s *RentalSnapshot) ToDomain() (*rental.Rental, error) {
	period, err := rental.NewPeriod(s.StartDate, s.EndDate)
	if err != nil {
		return nil, err
	}
	return rental.ReconstructRental(
		s.ID, s.ClientID, s.CellIDs, period, s.StatusID, s.Kind,
		s.ExtensionCount, s.LastExtendedAt, s.ClosedAt, s.CloseComment,
		s.CreatedAt, s.UpdatedAt,
	), nil
}

type StatusSnapshot struct {
	ID    uuid.UUID
	Name  string
	Color string
	Kind  status.Kind
}

type PaymentSnapshot struct {
	ID               uuid.UUID
	ClientID         *uuid.UUID
	CellID           *uuid.UUID
	RentalID         *uuid.UUID
	RentalDays       *int
	AmountCents      int64
	Description      string
	Status           string
	GatewayPaymentID *string
	PaymentURL       *string
	PaidAt           *time.Time
}

// PaymentRecord is the insert shape; payments carry no domain invariants
// beyond a positive amount, which the command layer checks.
type PaymentRecord struct {
	ID          uuid.UUID
	ClientID    *uuid.UUID
	CellID      *uuid.UUID
	RentalID    *uuid.UUID
	RentalDays  *int
	AmountCents int64
	Description string
	Status      string
	CreatedAt   time.Time
}

type RelayRef struct {
	ID      uuid.UUID
	CellID  uuid.UUID
	Channel int
}

type ContainerRecord struct {
	ID        uuid.UUID
	Name      string
	Address   string
	CreatedAt time.Time
}

type CellRecord struct {
	ID          uuid.UUID
	ContainerID uuid.UUID
	Name        string
	AreaM2      float64
	PriceCents  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type RelayRecord struct {
	ID        uuid.UUID
	CellID    uuid.UUID
	Name      string
	Channel   int
	CreatedAt time.Time
}
