//go:build unit || e2e

package builder

import (
	"time"

	domrental "storent/internal/domain/rental"
	"storent/internal/domain/status"
	reqdto "storent/internal/handler/dto/request"
	"storent/internal/usecase/queries"
	"storent/internal/usecase/shared"

	"github.com/google/uuid"
)

type RentalBuilder struct {
	ID        uuid.UUID
	ClientID  uuid.UUID
	CellIDs   []uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	StatusID  uuid.UUID
	Kind      status.Kind
	CreatedAt time.Time
}

func NewRentalBuilder() *RentalBuilder {
	now := time.Now().Truncate(time.Second)
	return &RentalBuilder{
		ID:        uuid.New(),
		ClientID:  uuid.New(),
		CellIDs:   []uuid.UUID{uuid.New()},
		StartDate: now,
		EndDate:   now.AddDate(0, 1, 0),
		StatusID:  uuid.New(),
		Kind:      status.KindActive,
		CreatedAt: now,
	}
}

func (b *RentalBuilder) With(mutate func(*RentalBuilder)) *RentalBuilder {
	mutate(b)
	return b
}

func (b *RentalBuilder) BuildDomain() (*domrental.Rental, error) {
	period, err := domrental.NewPeriod(b.StartDate, b.EndDate)
	if err != nil {
		return nil, err
	}
	return domrental.NewRental(b.ClientID, b.CellIDs, period, b.StatusID, b.Kind, b.CreatedAt)
}

func (b *RentalBuilder) BuildSnapshot() *shared.RentalSnapshot {
	return &shared.RentalSnapshot{
		ID:        b.ID,
		ClientID:  b.ClientID,
		CellIDs:   b.CellIDs,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		StatusID:  b.StatusID,
		Kind:      b.Kind,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.CreatedAt,
	}
}

func (b *RentalBuilder) BuildCreateRequestDTO() reqdto.CreateRentalRequest {
	return reqdto.CreateRentalRequest{
		ClientID:  b.ClientID,
		CellIDs:   b.CellIDs,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
	}
}

func (b *RentalBuilder) BuildView() *queries.RentalView {
	cells := make([]queries.RentalCellView, 0, len(b.CellIDs))
	for _, id := range b.CellIDs {
		cells = append(cells, queries.RentalCellView{
			ID:          id,
			ContainerID: uuid.New(),
			Name:        "A-01",
		})
	}
	return &queries.RentalView{
		ID:        b.ID,
		ClientID:  b.ClientID,
		Cells:     cells,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		Status: queries.StatusView{
			ID:    b.StatusID,
			Name:  "Active",
			Color: "#4caf50",
			Kind:  b.Kind,
		},
		IsActive:  b.Kind == status.KindActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.CreatedAt,
	}
}

func (b *RentalBuilder) BuildListItem() *queries.RentalListItem {
	return &queries.RentalListItem{
		ID:          b.ID,
		ClientID:    b.ClientID,
		CellIDs:     b.CellIDs,
		StartDate:   b.StartDate,
		EndDate:     b.EndDate,
		StatusID:    b.StatusID,
		StatusName:  "Active",
		StatusColor: "#4caf50",
		Kind:        b.Kind,
		IsActive:    b.Kind == status.KindActive,
		CreatedAt:   b.CreatedAt,
	}
}

// Fluent builder methods
func (b *RentalBuilder) WithClientID(id uuid.UUID) *RentalBuilder {
	b.ClientID = id
	return b
}

func (b *RentalBuilder) WithCellIDs(ids ...uuid.UUID) *RentalBuilder {
	b.CellIDs = ids
	return b
}

func (b *RentalBuilder) WithPeriod(start, end time.Time) *RentalBuilder {
	b.StartDate = start
	b.EndDate = end
	return b
}

func (b *RentalBuilder) WithKind(kind status.Kind) *RentalBuilder {
	b.Kind = kind
	return b
}

func (b *RentalBuilder) AsClosed() *RentalBuilder {
	b.Kind = status.KindClosed
	return b
}

func (b *RentalBuilder) AsWaiting() *RentalBuilder {
	b.Kind = status.KindWaiting
	return b
}
