package response

import (
	"time"

	"storent/internal/usecase/queries"

	"github.com/google/uuid"
)

type PaymentResponse struct {
	ID          uuid.UUID  `json:"id"`
	ClientID    *uuid.UUID `json:"clientId,omitempty"`
	CellID      *uuid.UUID `json:"cellId,omitempty"`
	RentalID    *uuid.UUID `json:"rentalId,omitempty"`
	RentalDays  *int       `json:"rentalDays,omitempty"`
	AmountCents int64      `json:"amountCents"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	PaymentURL  *string    `json:"paymentUrl,omitempty"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type InitPaymentResponse struct {
	PaymentID  uuid.UUID `json:"paymentId"`
	PaymentURL string    `json:"paymentUrl"`
}

type PaymentListResponse struct {
	Payments []*PaymentResponse `json:"payments"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	Limit    int                `json:"limit"`
}

func FromPaymentView(v *queries.PaymentView) *PaymentResponse {
	return &PaymentResponse{
		ID:          v.ID,
		ClientID:    v.ClientID,
		CellID:      v.CellID,
		RentalID:    v.RentalID,
		RentalDays:  v.RentalDays,
		AmountCents: v.AmountCents,
		Description: v.Description,
		Status:      v.Status,
		PaymentURL:  v.PaymentURL,
		PaidAt:      v.PaidAt,
		CreatedAt:   v.CreatedAt,
	}
}

func FromPaymentList(views []*queries.PaymentView, total int64, page queries.Page) *PaymentListResponse {
	out := make([]*PaymentResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromPaymentView(v))
	}
	return &PaymentListResponse{Payments: out, Total: total, Page: page.Page, Limit: page.Limit}
}
