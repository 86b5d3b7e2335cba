package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateRentalRequest struct {
	ClientID  uuid.UUID   `json:"client_id" binding:"required"`
	CellIDs   []uuid.UUID `json:"cell_ids" binding:"required,min=1"`
	StartDate time.Time   `json:"start_date" binding:"required"`
	EndDate   time.Time   `json:"end_date" binding:"required"`
	StatusID  *uuid.UUID  `json:"status_id,omitempty"`
}

// ExtendRentalRequest takes the amount in exactly one unit; sending both is
// rejected downstream as ambiguous.
type ExtendRentalRequest struct {
	Months int `json:"months,omitempty" binding:"omitempty,min=0"`
	Days   int `json:"days,omitempty" binding:"omitempty,min=0"`
}

type UpdateRentalStatusRequest struct {
	StatusID uuid.UUID `json:"status_id" binding:"required"`
}

type CloseRentalRequest struct {
	Comment string `json:"comment" binding:"required"`
}
