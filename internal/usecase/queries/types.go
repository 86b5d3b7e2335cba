package queries

import (
	"errors"
	"time"

	"storent/internal/domain/status"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("resource not found")
)

type StatusView struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Color     string      `json:"color"`
	Kind      status.Kind `json:"kind"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type RentalCellView struct {
	ID          uuid.UUID `json:"id"`
	ContainerID uuid.UUID `json:"container_id"`
	Name        string    `json:"name"`
}

type RentalView struct {
	ID             uuid.UUID        `json:"id"`
	ClientID       uuid.UUID        `json:"client_id"`
	Cells          []RentalCellView `json:"cells"`
	StartDate      time.Time        `json:"start_date"`
	EndDate        time.Time        `json:"end_date"`
	Status         StatusView       `json:"status"`
	IsActive       bool             `json:"is_active"`
	ExtensionCount int              `json:"extension_count"`
	LastExtendedAt *time.Time       `json:"last_extended_at,omitempty"`
	ClosedAt       *time.Time       `json:"closed_at,omitempty"`
	CloseComment   string           `json:"close_comment,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

type RentalListItem struct {
	ID             uuid.UUID   `json:"id"`
	ClientID       uuid.UUID   `json:"client_id"`
	CellIDs        []uuid.UUID `json:"cell_ids"`
	StartDate      time.Time   `json:"start_date"`
	EndDate        time.Time   `json:"end_date"`
	StatusID       uuid.UUID   `json:"status_id"`
	StatusName     string      `json:"status_name"`
	StatusColor    string      `json:"status_color"`
	Kind           status.Kind `json:"kind"`
	IsActive       bool        `json:"is_active"`
	ExtensionCount int         `json:"extension_count"`
	CreatedAt      time.Time   `json:"created_at"`
}

type RentalFilter struct {
	ClientID *uuid.UUID
	CellID   *uuid.UUID
	StatusID *uuid.UUID
	Kind     *status.Kind
	// From/To select rentals whose period overlaps [From, To).
	From *time.Time
	To   *time.Time
}

type PaymentView struct {
	ID               uuid.UUID  `json:"id"`
	ClientID         *uuid.UUID `json:"client_id,omitempty"`
	CellID           *uuid.UUID `json:"cell_id,omitempty"`
	RentalID         *uuid.UUID `json:"rental_id,omitempty"`
	RentalDays       *int       `json:"rental_days,omitempty"`
	AmountCents      int64      `json:"amount_cents"`
	Description      string     `json:"description,omitempty"`
	Status           string     `json:"status"`
	GatewayPaymentID *string    `json:"gateway_payment_id,omitempty"`
	PaymentURL       *string    `json:"payment_url,omitempty"`
	PaidAt           *time.Time `json:"paid_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

type PaymentFilter struct {
	ClientID *uuid.UUID
	RentalID *uuid.UUID
	Status   *string
}

type AccessGrantView struct {
	ID         uuid.UUID  `json:"id"`
	RelayID    uuid.UUID  `json:"relay_id"`
	RentalID   uuid.UUID  `json:"rental_id"`
	Active     bool       `json:"active"`
	ValidUntil time.Time  `json:"valid_until"`
	GrantedAt  time.Time  `json:"granted_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
}

type ContainerView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CellCount int       `json:"cell_count"`
	CreatedAt time.Time `json:"created_at"`
}

type CellView struct {
	ID          uuid.UUID `json:"id"`
	ContainerID uuid.UUID `json:"container_id"`
	Name        string    `json:"name"`
	AreaM2      float64   `json:"area_m2"`
	PriceCents  int64     `json:"price_cents"`
	Occupied    bool      `json:"occupied"`
	CreatedAt   time.Time `json:"created_at"`
}

type RelayView struct {
	ID        uuid.UUID `json:"id"`
	CellID    uuid.UUID `json:"cell_id"`
	Name      string    `json:"name"`
	Channel   int       `json:"channel"`
	CreatedAt time.Time `json:"created_at"`
}

type AdminView struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
