package request

type CreateStatusRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color,omitempty"`
	Kind  string `json:"kind" binding:"required"`
}

type UpdateStatusRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color" binding:"required"`
}
