package request

import (
	"github.com/google/uuid"
)

type InitPaymentRequest struct {
	RentalID    *uuid.UUID `json:"rental_id,omitempty"`
	ClientID    *uuid.UUID `json:"client_id,omitempty"`
	CellID      *uuid.UUID `json:"cell_id,omitempty"`
	RentalDays  *int       `json:"rental_days,omitempty"`
	AmountCents int64      `json:"amount_cents" binding:"required,gt=0"`
	Description string     `json:"description,omitempty"`
}

// GatewayCallback mirrors the flat notification body. Extra fields land in
// no struct member but still participate in the signature via the raw map.
type GatewayCallback struct {
	TerminalKey string `json:"TerminalKey"`
	OrderID     string `json:"OrderId"`
	Success     bool   `json:"Success"`
	Status      string `json:"Status"`
	PaymentID   any    `json:"PaymentId"`
	Token       string `json:"Token"`
}
