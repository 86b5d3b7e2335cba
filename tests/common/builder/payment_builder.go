//go:build unit || e2e

package builder

import (
	"time"

	reqdto "storent/internal/handler/dto/request"
	"storent/internal/usecase/queries"
	"storent/internal/usecase/shared"

	"github.com/google/uuid"
)

type PaymentBuilder struct {
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

func NewPaymentBuilder() *PaymentBuilder {
	clientID := uuid.New()
	cellID := uuid.New()
	days := 30
	return &PaymentBuilder{
		ID:          uuid.New(),
		ClientID:    &clientID,
		CellID:      &cellID,
		RentalDays:  &days,
		AmountCents: 150000,
		Description: "Cell rental, 30 days",
		Status:      shared.PaymentStatusNew,
		CreatedAt:   time.Now().Truncate(time.Second),
	}
}

func (b *PaymentBuilder) With(mutate func(*PaymentBuilder)) *PaymentBuilder {
	mutate(b)
	return b
}

func (b *PaymentBuilder) BuildSnapshot() *shared.PaymentSnapshot {
	return &shared.PaymentSnapshot{
		ID:          b.ID,
		ClientID:    b.ClientID,
		CellID:      b.CellID,
		RentalID:    b.RentalID,
		RentalDays:  b.RentalDays,
		AmountCents: b.AmountCents,
		Description: b.Description,
		Status:      b.Status,
	}
}

func (b *PaymentBuilder) BuildInitRequestDTO() reqdto.InitPaymentRequest {
	return reqdto.InitPaymentRequest{
		RentalID:    b.RentalID,
		ClientID:    b.ClientID,
		CellID:      b.CellID,
		RentalDays:  b.RentalDays,
		AmountCents: b.AmountCents,
		Description: b.Description,
	}
}

func (b *PaymentBuilder) BuildView() *queries.PaymentView {
	return &queries.PaymentView{
		ID:          b.ID,
		ClientID:    b.ClientID,
		CellID:      b.CellID,
		RentalID:    b.RentalID,
		RentalDays:  b.RentalDays,
		AmountCents: b.AmountCents,
		Description: b.Description,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
	}
}

// Fluent builder methods
func (b *PaymentBuilder) AsExtension(rentalID uuid.UUID, days int) *PaymentBuilder {
	b.RentalID = &rentalID
	b.ClientID = nil
	b.CellID = nil
	b.RentalDays = &days
	return b
}

func (b *PaymentBuilder) WithStatus(status string) *PaymentBuilder {
	b.Status = status
	return b
}

func (b *PaymentBuilder) WithAmount(cents int64) *PaymentBuilder {
	b.AmountCents = cents
	return b
}
