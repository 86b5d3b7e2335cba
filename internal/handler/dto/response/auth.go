package response

import (
	"time"

	"storent/internal/usecase/queries"

	"github.com/google/uuid"
)

type AdminResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	Admin       *AdminResponse `json:"admin"`
}

func FromAdminView(v *queries.AdminView) *AdminResponse {
	return &AdminResponse{
		ID:          v.ID,
		Email:       v.Email,
		Name:        v.Name,
		LastLoginAt: v.LastLoginAt,
		CreatedAt:   v.CreatedAt,
	}
}
