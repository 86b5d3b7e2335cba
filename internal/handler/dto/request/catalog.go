package request

import (
	"github.com/google/uuid"
)

type CreateContainerRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address,omitempty"`
}

type CreateCellRequest struct {
	ContainerID uuid.UUID `json:"container_id" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	AreaM2      float64   `json:"area_m2" binding:"required,gt=0"`
	PriceCents  int64     `json:"price_cents" binding:"omitempty,min=0"`
}

type UpdateCellRequest struct {
	Name       string  `json:"name" binding:"required"`
	AreaM2     float64 `json:"area_m2" binding:"required,gt=0"`
	PriceCents int64   `json:"price_cents" binding:"omitempty,min=0"`
}

type CreateRelayRequest struct {
	CellID  uuid.UUID `json:"cell_id" binding:"required"`
	Name    string    `json:"name,omitempty"`
	Channel int       `json:"channel" binding:"omitempty,min=0"`
}
