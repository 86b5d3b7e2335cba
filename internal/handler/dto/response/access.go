package response

import (
	"time"

	"storent/internal/usecase/queries"

	"github.com/google/uuid"
)

type AccessGrantResponse struct {
	ID         uuid.UUID  `json:"id"`
	RelayID    uuid.UUID  `json:"relayId"`
	RentalID   uuid.UUID  `json:"rentalId"`
	Active     bool       `json:"active"`
	ValidUntil time.Time  `json:"validUntil"`
	GrantedAt  time.Time  `json:"grantedAt"`
	RevokedAt  *time.Time `json:"revokedAt,omitempty"`
}

// AccessCheckResponse is the single field relay controllers consume.
type AccessCheckResponse struct {
	Allowed bool `json:"allowed"`
}

func FromAccessGrantView(v *queries.AccessGrantView) *AccessGrantResponse {
	return &AccessGrantResponse{
		ID:         v.ID,
		RelayID:    v.RelayID,
		RentalID:   v.RentalID,
		Active:     v.Active,
		ValidUntil: v.ValidUntil,
		GrantedAt:  v.GrantedAt,
		RevokedAt:  v.RevokedAt,
	}
}

func FromAccessGrantList(views []*queries.AccessGrantView) []*AccessGrantResponse {
	out := make([]*AccessGrantResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromAccessGrantView(v))
	}
	return out
}
