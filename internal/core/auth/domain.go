package auth

import (
	"errors"
	"time"
)

// Member roles as the backend reports them
const (
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
)

// ErrSessionNotFound is returned when a session ID has no stored session,
// either because it expired or was revoked.
var ErrSessionNotFound = errors.New("session not found")

// Session is a server-side login session. The JWT handed to the client only
// carries the session ID; revoking the stored session invalidates the token
// immediately regardless of its expiry.
type Session struct {
	ID        string    `json:"id"`
	MemberID  int64     `json:"member_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsAdmin reports whether the session belongs to an admin member
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
