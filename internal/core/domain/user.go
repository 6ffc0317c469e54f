package domain

import "time"

const (
	RoleAdministrator = "Administrator"
	RoleUser          = "User"
)

// User models an account in the credential store. Roles are stored as an
// ordered list of role names; the reference set is seeded at startup.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole reports whether the user currently carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Role is an immutable reference record seeded at startup.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Principal is the authenticated caller extracted from a bearer token.
// It is passed explicitly to whatever needs the caller's identity; nothing
// in the system reads identity from ambient state.
type Principal struct {
	UserID string   `json:"user_id"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
}

// HasRole reports whether the principal's token carried the given role claim.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}
