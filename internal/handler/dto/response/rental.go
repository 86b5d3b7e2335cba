package response

import (
	"time"

	"storent/internal/usecase/queries"

	"github.com/google/uuid"
)

type RentalCellResponse struct {
	ID          uuid.UUID `json:"id"`
	ContainerID uuid.UUID `json:"containerId"`
	Name        string    `json:"name"`
}

type RentalResponse struct {
	ID             uuid.UUID            `json:"id"`
	ClientID       uuid.UUID            `json:"clientId"`
	Cells          []RentalCellResponse `json:"cells"`
	StartDate      time.Time            `json:"startDate"`
	EndDate        time.Time            `json:"endDate"`
	Status         StatusResponse       `json:"status"`
	IsActive       bool                 `json:"isActive"`
	ExtensionCount int                  `json:"extensionCount"`
	LastExtendedAt *time.Time           `json:"lastExtendedAt,omitempty"`
	ClosedAt       *time.Time           `json:"closedAt,omitempty"`
	CloseComment   string               `json:"closeComment,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

type RentalListItemResponse struct {
	ID             uuid.UUID   `json:"id"`
	ClientID       uuid.UUID   `json:"clientId"`
	CellIDs        []uuid.UUID `json:"cellIds"`
	StartDate      time.Time   `json:"startDate"`
	EndDate        time.Time   `json:"endDate"`
	StatusID       uuid.UUID   `json:"statusId"`
	StatusName     string      `json:"statusName"`
	StatusColor    string      `json:"statusColor"`
	IsActive       bool        `json:"isActive"`
	ExtensionCount int         `json:"extensionCount"`
	CreatedAt      time.Time   `json:"createdAt"`
}

type RentalListResponse struct {
	Rentals []*RentalListItemResponse `json:"rentals"`
	Total   int64                     `json:"total"`
	Page    int                       `json:"page"`
	Limit   int                       `json:"limit"`
}

func FromRentalView(v *queries.RentalView) *RentalResponse {
	cells := make([]RentalCellResponse, 0, len(v.Cells))
	for _, cell := range v.Cells {
		cells = append(cells, RentalCellResponse{
			ID:          cell.ID,
			ContainerID: cell.ContainerID,
			Name:        cell.Name,
		})
	}

	return &RentalResponse{
		ID:             v.ID,
		ClientID:       v.ClientID,
		Cells:          cells,
		StartDate:      v.StartDate,
		EndDate:        v.EndDate,
		Status:         *FromStatusView(&v.Status),
		IsActive:       v.IsActive,
		ExtensionCount: v.ExtensionCount,
		LastExtendedAt: v.LastExtendedAt,
		ClosedAt:       v.ClosedAt,
		CloseComment:   v.CloseComment,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

func FromRentalList(items []*queries.RentalListItem, total int64, page queries.Page) *RentalListResponse {
	out := make([]*RentalListItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, &RentalListItemResponse{
			ID:             item.ID,
			ClientID:       item.ClientID,
			CellIDs:        item.CellIDs,
			StartDate:      item.StartDate,
			EndDate:        item.EndDate,
			StatusID:       item.StatusID,
			StatusName:     item.StatusName,
			StatusColor:    item.StatusColor,
			IsActive:       item.IsActive,
			ExtensionCount: item.ExtensionCount,
			CreatedAt:      item.CreatedAt,
		})
	}
	return &RentalListResponse{Rentals: out, Total: total, Page: page.Page, Limit: page.Limit}
}
