package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/seva-sangam/donation-services/models"
)

// CreateUser inserts a new user. The caller is responsible for hashing the
// password and for checking email uniqueness beforehand.
func (db *DonationsDB) CreateUser(user *models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	query := `INSERT INTO users (id, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5) RETURNING created_at`
	if err := db.DB.QueryRow(query, user.ID, user.Name, user.Email, user.PasswordHash, user.Role).
		Scan(&user.CreatedAt); err != nil {
		return nil, fmt.Errorf("error inserting user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email. Returns nil when no user exists.
func (db *DonationsDB) GetUserByEmail(email string) (*models.User, error) {
	query := `SELECT id, name, email, password_hash, role, created_at FROM users WHERE email = $1`
	var user models.User
	err := db.DB.QueryRow(query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return &user, nil
}
