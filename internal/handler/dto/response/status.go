package response

import (
	"time"

	"storent/internal/usecase/queries"

	"github.com/google/uuid"
)

type StatusResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromStatusView(v *queries.StatusView) *StatusResponse {
	return &StatusResponse{
		ID:        v.ID,
		Name:      v.Name,
		Color:     v.Color,
		Kind:      v.Kind.String(),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func FromStatusList(views []*queries.StatusView) []*StatusResponse {
	out := make([]*StatusResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromStatusView(v))
	}
	return out
}
