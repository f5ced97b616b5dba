package models

import (
	"time"

	"github.com/google/uuid"
)

// Mandal is a donation collection group. Joining requires the mandal password,
// so the hash never leaves the database layer in responses.
type Mandal struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// MandalSummary is the embedded view returned alongside donators and logins.
type MandalSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Membership links a user to a mandal, unique per (user, mandal) pair.
type Membership struct {
	UserID   uuid.UUID `json:"userId"`
	MandalID uuid.UUID `json:"mandalId"`
	JoinedAt time.Time `json:"joinedAt"`
}

// MandalWithJoinedAt is a membership as seen from the member's side.
type MandalWithJoinedAt struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	JoinedAt    time.Time `json:"joinedAt"`
}

type CreateMandalRequest struct {
	Name        string `json:"name"`
	Password    string `json:"password"`
	Description string `json:"description"`
}

type JoinMandalRequest struct {
	MandalName string `json:"mandalName"`
	Password   string `json:"password"`
}
