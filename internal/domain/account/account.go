package account

import (
	"time"

	"github.com/google/uuid"
)

// Role classifies an account
type Role string

const (
	RoleRequester Role = "requester"
	RoleHelper    Role = "helper"
	RoleAdmin     Role = "admin"
)

// Account represents a requester, helper or admin identity.
// Helper-only fields stay zero for other roles.
type Account struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Role          Role      `json:"role"`
	Age           int       `json:"age"`
	City          string    `json:"city,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	MobilityNeeds string    `json:"mobility_needs,omitempty"`

	Skills       []string `json:"skills,omitempty"`
	NGOID        string   `json:"ngo_id,omitempty"`
	Verified     bool     `json:"verified"`
	Available    bool     `json:"available"`
	AvgRating    *float64 `json:"avg_rating,omitempty"`
	TotalReviews int      `json:"total_reviews"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsValid validates the role
func (r Role) IsValid() bool {
	switch r {
	case RoleRequester, RoleHelper, RoleAdmin:
		return true
	}
	return false
}

// IsHelper reports whether the account can browse and accept requests
func (a *Account) IsHelper() bool {
	return a.Role == RoleHelper
}

// CanAcceptRequests reports whether the helper may take on a new assignment
func (a *Account) CanAcceptRequests() bool {
	return a.Role == RoleHelper && a.Verified && a.Available
}
