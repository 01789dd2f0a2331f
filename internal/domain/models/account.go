package models

import "hostelmeals/internal/domain"

// Account is the backend user record keyed by email. Role and Badge live
// here, not in the identity provider.
type Account struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	PhotoURL  string       `json:"photo_url"`
	Role      domain.Role  `json:"role"`
	Badge     domain.Badge `json:"badge"`
	CreatedAt string       `json:"created_at"`
}

// AccountUpsert is the idempotent registration payload sent after every
// transition to an authenticated session.
type AccountUpsert struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photo_url"`
}
