package models

import (
	"time"

	"github.com/google/uuid"
)

// Roles understood by the authorization checks. Stored as plain text so new
// roles can be added without a migration.
const (
	RoleAdmin  = "ADMIN"
	RoleViewer = "VIEWER"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse mirrors what the frontend expects after a successful login:
// the bearer token plus the user with their mandal memberships.
type LoginResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    LoginUser `json:"user"`
}

type LoginUser struct {
	ID      uuid.UUID            `json:"id"`
	Email   string               `json:"email"`
	Role    string               `json:"role"`
	Mandals []MandalWithJoinedAt `json:"mandals"`
}
