package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/seva-sangam/donation-services/internal/events"
	"github.com/seva-sangam/donation-services/models"
)

// CreateMandal inserts a new mandal with its hashed join password.
func (db *DonationsDB) CreateMandal(mandal *models.Mandal) (*models.Mandal, error) {
	if mandal.ID == uuid.Nil {
		mandal.ID = uuid.New()
	}
	query := `INSERT INTO mandals (id, name, password_hash, description)
		VALUES ($1, $2, $3, $4) RETURNING created_at, updated_at`
	if err := db.DB.QueryRow(query, mandal.ID, mandal.Name, mandal.PasswordHash, mandal.Description).
		Scan(&mandal.CreatedAt, &mandal.UpdatedAt); err != nil {
		return nil, fmt.Errorf("error inserting mandal: %w", err)
	}

	if err := db.Events.Publish(events.DonationEvent{
		Action:    events.ActionMandalCreated,
		MandalID:  &mandal.ID,
		Timestamp: time.Now().Unix(),
	}); err != nil {
		db.Log.Warn().Err(err).Msg("failed to publish mandal created event")
	}

	return mandal, nil
}

// GetMandalByName retrieves a mandal by its unique name. Returns nil when no
// mandal exists.
func (db *DonationsDB) GetMandalByName(name string) (*models.Mandal, error) {
	query := `SELECT id, name, password_hash, COALESCE(description, ''), created_at, updated_at
		FROM mandals WHERE name = $1`
	var m models.Mandal
	err := db.DB.QueryRow(query, name).Scan(
		&m.ID, &m.Name, &m.PasswordHash, &m.Description, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving mandal: %w", err)
	}
	return &m, nil
}

// UserMandalIDs returns the ids of all mandals the user belongs to. An empty
// slice means the user sees nothing in grouped mode.
func (db *DonationsDB) UserMandalIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := db.DB.Query(`SELECT mandal_id FROM user_mandals WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving user mandals: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning mandal id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// HasMandalAccess reports whether the user is a member of the mandal.
func (db *DonationsDB) HasMandalAccess(userID, mandalID uuid.UUID) (bool, error) {
	var exists bool
	err := db.DB.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM user_mandals WHERE user_id = $1 AND mandal_id = $2)`,
		userID, mandalID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking mandal access: %w", err)
	}
	return exists, nil
}

// AddMembership records that the user joined the mandal.
func (db *DonationsDB) AddMembership(userID, mandalID uuid.UUID) error {
	_, err := db.DB.Exec(
		`INSERT INTO user_mandals (user_id, mandal_id) VALUES ($1, $2)`, userID, mandalID)
	if err != nil {
		return fmt.Errorf("error inserting membership: %w", err)
	}

	if err := db.Events.Publish(events.DonationEvent{
		Action:    events.ActionMandalJoined,
		MandalID:  &mandalID,
		UserID:    userID,
		Timestamp: time.Now().Unix(),
	}); err != nil {
		db.Log.Warn().Err(err).Msg("failed to publish mandal joined event")
	}
	return nil
}

// RemoveMembership deletes the membership row. Returns false when the user was
// not a member.
func (db *DonationsDB) RemoveMembership(userID, mandalID uuid.UUID) (bool, error) {
	res, err := db.DB.Exec(
		`DELETE FROM user_mandals WHERE user_id = $1 AND mandal_id = $2`, userID, mandalID)
	if err != nil {
		return false, fmt.Errorf("error deleting membership: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}

	if err := db.Events.Publish(events.DonationEvent{
		Action:    events.ActionMandalLeft,
		MandalID:  &mandalID,
		UserID:    userID,
		Timestamp: time.Now().Unix(),
	}); err != nil {
		db.Log.Warn().Err(err).Msg("failed to publish mandal left event")
	}
	return true, nil
}

// UserMandals returns the user's memberships joined with the mandal details.
func (db *DonationsDB) UserMandals(userID uuid.UUID) ([]models.MandalWithJoinedAt, error) {
	query := `SELECT m.id, m.name, COALESCE(m.description, ''), m.created_at, m.updated_at, um.joined_at
		FROM user_mandals um
		JOIN mandals m ON m.id = um.mandal_id
		WHERE um.user_id = $1
		ORDER BY um.joined_at`
	rows, err := db.DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving memberships: %w", err)
	}
	defer rows.Close()

	var mandals []models.MandalWithJoinedAt
	for rows.Next() {
		var m models.MandalWithJoinedAt
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.CreatedAt, &m.UpdatedAt, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("error scanning membership: %w", err)
		}
		mandals = append(mandals, m)
	}
	return mandals, rows.Err()
}
