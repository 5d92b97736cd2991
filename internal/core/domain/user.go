package domain

import "time"

// AppRole is the closed set of role names recognised by the platform.
type AppRole string

const (
	RoleUser   AppRole = "ROLE_USER"
	RoleSeller AppRole = "ROLE_SELLER"
	RoleAdmin  AppRole = "ROLE_ADMIN"
)

// AllRoles lists every role the catalog must contain, in seeding order.
var AllRoles = []AppRole{RoleUser, RoleSeller, RoleAdmin}

// Valid reports whether r is one of the enumerated role names.
func (r AppRole) Valid() bool {
	switch r {
	case RoleUser, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// Role is a named capability grouping persisted in the role catalog.
// Immutable once created; never deleted.
type Role struct {
	ID   string  `json:"id"`
	Name AppRole `json:"name"`
}

// User models a registered account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Roles        []AppRole `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role AppRole) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// AuthenticatedIdentity is the request-scoped identity established by the
// token filter or the authentication provider. It is never persisted and
// never shared across requests.
type AuthenticatedIdentity struct {
	Username string    `json:"username"`
	Email    string    `json:"email,omitempty"`
	Roles    []AppRole `json:"roles"`
}

// HasRole reports whether the identity carries the given role.
func (id *AuthenticatedIdentity) HasRole(role AppRole) bool {
	for _, r := range id.Roles {
		if r == role {
			return true
		}
	}
	return false
}
