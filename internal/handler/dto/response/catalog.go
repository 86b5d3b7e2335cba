package response

import (
	"time"

	"storent/internal/usecase/queries"

	"github.com/google/uuid"
)

type ContainerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CellCount int       `json:"cellCount"`
	CreatedAt time.Time `json:"createdAt"`
}

type CellResponse struct {
	ID          uuid.UUID `json:"id"`
	ContainerID uuid.UUID `json:"containerId"`
	Name        string    `json:"name"`
	AreaM2      float64   `json:"areaM2"`
	PriceCents  int64     `json:"priceCents"`
	Occupied    bool      `json:"occupied"`
	CreatedAt   time.Time `json:"createdAt"`
}

type RelayResponse struct {
	ID        uuid.UUID `json:"id"`
	CellID    uuid.UUID `json:"cellId"`
	Name      string    `json:"name"`
	Channel   int       `json:"channel"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromContainerList(views []*queries.ContainerView) []*ContainerResponse {
	out := make([]*ContainerResponse, 0, len(views))
	for _, v := range views {
		out = append(out, &ContainerResponse{
			ID:        v.ID,
			Name:      v.Name,
			Address:   v.Address,
			CellCount: v.CellCount,
			CreatedAt: v.CreatedAt,
		})
	}
	return out
}

func FromCellView(v *queries.CellView) *CellResponse {
	return &CellResponse{
		ID:          v.ID,
		ContainerID: v.ContainerID,
		Name:        v.Name,
		AreaM2:      v.AreaM2,
		PriceCents:  v.PriceCents,
		Occupied:    v.Occupied,
		CreatedAt:   v.CreatedAt,
	}
}

func FromCellList(views []*queries.CellView) []*CellResponse {
	out := make([]*CellResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromCellView(v))
	}
	return out
}

func FromRelayList(views []*queries.RelayView) []*RelayResponse {
	out := make([]*RelayResponse, 0, len(views))
	for _, v := range views {
		out = append(out, &RelayResponse{
			ID:        v.ID,
			CellID:    v.CellID,
			Name:      v.Name,
			Channel:   v.Channel,
			CreatedAt: v.CreatedAt,
		})
	}
	return out
}
