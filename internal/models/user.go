package models

import "time"

// user roles
const (
	RoleUser     = "user"
	RoleAdmin    = "admin"
	RoleDesigner = "designer"
)

// User is a storefront account
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	CreatedAt    time.Time
}

// Session is a server-side session record
type Session struct {
	ID        string
	UserID    string
	Role      string
	ExpiresAt time.Time
}

// TokenPayload is the verified content of an auth token
type TokenPayload struct {
	UserID    string
	SessionID string
	Email     string
	Role      string
}
