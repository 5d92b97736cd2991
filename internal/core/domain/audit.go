package domain

import "time"

// AuthAction names an auditable authentication event.
type AuthAction string

const (
	AuthActionLogin   AuthAction = "login"
	AuthActionSignout AuthAction = "signout"
	AuthActionDenied  AuthAction = "denied"
)

// AuthEvent records a single authentication or authorization decision.
// Username may be empty for anonymous rejections.
type AuthEvent struct {
	Username string     `json:"username,omitempty"`
	Action   AuthAction `json:"action"`
	Success  bool       `json:"success"`
	Path     string     `json:"path,omitempty"`
	At       time.Time  `json:"at"`
}
