package domain

import "time"

// Role tiers, from most to least privileged. SUser ("s-user") is a staff
// account that sees financial data but has no user-administration rights.
const (
	RoleAdmin = "admin"
	RoleSUser = "s-user"
	RoleUser  = "user"
)

// ValidRole reports whether role is one of the three known tiers.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleSUser || role == RoleUser
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	DisplayName  string    `json:"display_name,omitempty"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	LastActiveAt time.Time `json:"last_active_at,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin tier.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasPrivateDataAccess reports whether the user may see financial fields
// (sale prices, purchase totals). Every tier except the lowest one qualifies.
func (u *User) HasPrivateDataAccess() bool {
	return u.Role != RoleUser
}
