package model

import "time"

// Role names stored in users.role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an application user record as stored in the
// `users` table. Password holds the bcrypt hash, never the plaintext.
type User struct {
	ID        uint64    `json:"id"`         // users.id
	Email     string    `json:"email"`      // users.email (unique)
	Username  string    `json:"username"`   // users.username
	Password  string    `json:"password"`   // users.password (bcrypt hash)
	Role      string    `json:"role"`       // users.role
	CreatedAt time.Time `json:"created_at"` // users.created_at
}

// IsAdmin reports whether the user may call admin endpoints.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
