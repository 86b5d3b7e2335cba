//go:build unit || e2e

package builder

import (
	"time"

	domstatus "storent/internal/domain/status"
	"storent/internal/usecase/queries"
	"storent/internal/usecase/shared"

	"github.com/google/uuid"
)

type StatusBuilder struct {
	ID        uuid.UUID
	Name      string
	Color     string
	Kind      domstatus.Kind
	CreatedAt time.Time
}

func NewStatusBuilder() *StatusBuilder {
	return &StatusBuilder{
		ID:        uuid.New(),
		Name:      "Active",
		Color:     "#4caf50",
		Kind:      domstatus.KindActive,
		CreatedAt: time.Now().Truncate(time.Second),
	}
}

func (b *StatusBuilder) With(mutate func(*StatusBuilder)) *StatusBuilder {
	mutate(b)
	return b
}

func (b *StatusBuilder) BuildDomain() (*domstatus.Status, error) {
	return domstatus.NewStatus(b.Name, b.Color, b.Kind, b.CreatedAt)
}

func (b *StatusBuilder) BuildSnapshot() *shared.StatusSnapshot {
	return &shared.StatusSnapshot{
		ID:    b.ID,
		Name:  b.Name,
		Color: b.Color,
		Kind:  b.Kind,
	}
}

func (b *StatusBuilder) BuildView() *queries.StatusView {
	return &queries.StatusView{
		ID:        b.ID,
		Name:      b.Name,
		Color:     b.Color,
		Kind:      b.Kind,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.CreatedAt,
	}
}

// Fluent builder methods
func (b *StatusBuilder) WithName(name string) *StatusBuilder {
	b.Name = name
	return b
}

func (b *StatusBuilder) WithColor(color string) *StatusBuilder {
	b.Color = color
	return b
}

func (b *StatusBuilder) WithKind(kind domstatus.Kind) *StatusBuilder {
	b.Kind = kind
	return b
}

func (b *StatusBuilder) AsWaiting() *StatusBuilder {
	b.Name = "Waiting"
	b.Color = "#ff9800"
	b.Kind = domstatus.KindWaiting
	return b
}

func (b *StatusBuilder) AsClosed() *StatusBuilder {
	b.Name = "Closed"
	b.Color = "#9e9e9e"
	b.Kind = domstatus.KindClosed
	return b
}
