package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/seva-sangam/donation-services/internal/events"
	"github.com/seva-sangam/donation-services/models"
)

// DonationFilter selects donations for summaries. A nil MandalIDs slice means
// no membership scoping (the backward-compatible unauthenticated view);
// MandalID narrows to one mandal and BookNumber to one receipt book.
type DonationFilter struct {
	MandalIDs  []uuid.UUID
	MandalID   *uuid.UUID
	BookNumber string
}

const donationColumns = `id, donator_id, user_id, mandal_id, amount, paid_amount, balance,
	status, payment_method, COALESCE(book_number, ''), created_at`

func scanDonation(scanner interface{ Scan(...interface{}) error }) (models.Donation, error) {
	var d models.Donation
	var mandalID uuid.NullUUID
	err := scanner.Scan(&d.ID, &d.DonatorID, &d.UserID, &mandalID, &d.Amount, &d.PaidAmount,
		&d.Balance, &d.Status, &d.PaymentMethod, &d.BookNumber, &d.CreatedAt)
	if err != nil {
		return d, err
	}
	if mandalID.Valid {
		d.MandalID = &mandalID.UUID
	}
	return d, nil
}

// CreateDonatorWithDonation persists a donator and their first donation as one
// transaction. The donation inherits the donator's mandal. The create event is
// published before commit so a publish failure rolls the insert back.
func (db *DonationsDB) CreateDonatorWithDonation(donator *models.Donator, donation *models.Donation) (*models.Donator, error) {
	if donator.ID == uuid.Nil {
		donator.ID = uuid.New()
	}
	if donation.ID == uuid.Nil {
		donation.ID = uuid.New()
	}
	donation.DonatorID = donator.ID
	donation.MandalID = donator.MandalID

	tx, err := db.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(`INSERT INTO donators (id, name, phone, address, mandal_id)
		VALUES ($1, $2, $3, $4, $5) RETURNING created_at`,
		donator.ID, donator.Name, donator.Phone, donator.Address, donator.MandalID).
		Scan(&donator.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error inserting donator: %w", err)
	}

	err = tx.QueryRow(`INSERT INTO donations
		(id, donator_id, user_id, mandal_id, amount, paid_amount, balance, status, payment_method, book_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, '')) RETURNING created_at`,
		donation.ID, donation.DonatorID, donation.UserID, donation.MandalID, donation.Amount,
		donation.PaidAmount, donation.Balance, donation.Status, donation.PaymentMethod,
		donation.BookNumber).
		Scan(&donation.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error inserting donation: %w", err)
	}

	if err := db.Events.Publish(events.DonationEvent{
		Action:     events.ActionDonatorCreated,
		DonatorID:  donator.ID,
		DonationID: donation.ID,
		MandalID:   donator.MandalID,
		UserID:     donation.UserID,
		Amount:     donation.Amount,
		PaidAmount: donation.PaidAmount,
		Timestamp:  time.Now().Unix(),
	}); err != nil {
		return nil, fmt.Errorf("error publishing donator created event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing transaction: %w", err)
	}

	donator.Donations = []models.Donation{*donation}
	if donator.MandalID != nil {
		donator.Mandal, _ = db.mandalSummary(*donator.MandalID)
	}
	return donator, nil
}

func (db *DonationsDB) mandalSummary(mandalID uuid.UUID) (*models.MandalSummary, error) {
	var m models.MandalSummary
	err := db.DB.QueryRow(`SELECT id, name FROM mandals WHERE id = $1`, mandalID).
		Scan(&m.ID, &m.Name)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListDonators returns donators with their donations nested. mandalIDs scopes
// the listing to the caller's mandals (nil means unscoped); filterMandal
// narrows to one mandal. The caller is responsible for checking that an
// explicit filter lies within the accessible set.
func (db *DonationsDB) ListDonators(mandalIDs []uuid.UUID, filterMandal *uuid.UUID) ([]models.Donator, error) {
	query := `SELECT d.id, d.name, COALESCE(d.phone, ''), COALESCE(d.address, ''), d.mandal_id,
		m.id, m.name, d.created_at
		FROM donators d LEFT JOIN mandals m ON m.id = d.mandal_id`
	var args []interface{}
	switch {
	case filterMandal != nil:
		query += ` WHERE d.mandal_id = $1`
		args = append(args, *filterMandal)
	case mandalIDs != nil:
		query += ` WHERE d.mandal_id = ANY($1)`
		args = append(args, pq.Array(mandalIDs))
	}
	query += ` ORDER BY d.created_at`

	rows, err := db.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving donators: %w", err)
	}
	defer rows.Close()

	var donators []models.Donator
	for rows.Next() {
		var donator models.Donator
		var mandalID uuid.NullUUID
		var summaryID uuid.NullUUID
		var summaryName sql.NullString
		if err := rows.Scan(&donator.ID, &donator.Name, &donator.Phone, &donator.Address,
			&mandalID, &summaryID, &summaryName, &donator.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning donator: %w", err)
		}
		if mandalID.Valid {
			donator.MandalID = &mandalID.UUID
		}
		if summaryID.Valid {
			donator.Mandal = &models.MandalSummary{ID: summaryID.UUID, Name: summaryName.String}
		}
		donators = append(donators, donator)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Attach donations per donator, mirroring the nested include of the API.
	for i := range donators {
		donations, err := db.donationsForDonator(donators[i].ID)
		if err != nil {
			return nil, err
		}
		donators[i].Donations = donations
	}
	return donators, nil
}

func (db *DonationsDB) donationsForDonator(donatorID uuid.UUID) ([]models.Donation, error) {
	rows, err := db.DB.Query(
		`SELECT `+donationColumns+` FROM donations WHERE donator_id = $1 ORDER BY created_at`,
		donatorID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving donations: %w", err)
	}
	defer rows.Close()

	donations := []models.Donation{}
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning donation: %w", err)
		}
		donations = append(donations, d)
	}
	return donations, rows.Err()
}

// GetDonator retrieves a donator with donations nested. Returns nil when no
// donator exists.
func (db *DonationsDB) GetDonator(donatorID uuid.UUID) (*models.Donator, error) {
	query := `SELECT d.id, d.name, COALESCE(d.phone, ''), COALESCE(d.address, ''), d.mandal_id,
		m.id, m.name, d.created_at
		FROM donators d LEFT JOIN mandals m ON m.id = d.mandal_id
		WHERE d.id = $1`
	var donator models.Donator
	var mandalID, summaryID uuid.NullUUID
	var summaryName sql.NullString
	err := db.DB.QueryRow(query, donatorID).Scan(&donator.ID, &donator.Name, &donator.Phone,
		&donator.Address, &mandalID, &summaryID, &summaryName, &donator.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving donator: %w", err)
	}
	if mandalID.Valid {
		donator.MandalID = &mandalID.UUID
	}
	if summaryID.Valid {
		donator.Mandal = &models.MandalSummary{ID: summaryID.UUID, Name: summaryName.String}
	}

	donations, err := db.donationsForDonator(donator.ID)
	if err != nil {
		return nil, err
	}
	donator.Donations = donations
	return &donator, nil
}

// UpdateDonator updates the provided contact fields, leaving blank ones
// untouched. Returns the updated donator without nested donations.
func (db *DonationsDB) UpdateDonator(donatorID uuid.UUID, req models.UpdateDonatorRequest) (*models.Donator, error) {
	query := `UPDATE donators SET
		name = COALESCE(NULLIF($2, ''), name),
		phone = COALESCE(NULLIF($3, ''), phone),
		address = COALESCE(NULLIF($4, ''), address)
		WHERE id = $1
		RETURNING id, name, COALESCE(phone, ''), COALESCE(address, ''), mandal_id, created_at`
	var donator models.Donator
	var mandalID uuid.NullUUID
	err := db.DB.QueryRow(query, donatorID, req.Name, req.Phone, req.Address).Scan(
		&donator.ID, &donator.Name, &donator.Phone, &donator.Address, &mandalID, &donator.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error updating donator: %w", err)
	}
	if mandalID.Valid {
		donator.MandalID = &mandalID.UUID
		donator.Mandal, _ = db.mandalSummary(mandalID.UUID)
	}
	return &donator, nil
}

// GetDonation retrieves a single donation. Returns nil when no donation
// exists.
func (db *DonationsDB) GetDonation(donationID uuid.UUID) (*models.Donation, error) {
	row := db.DB.QueryRow(
		`SELECT `+donationColumns+` FROM donations WHERE id = $1`, donationID)
	d, err := scanDonation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving donation: %w", err)
	}
	return &d, nil
}

// ListDonations returns the donations matching the filter, for summaries.
func (db *DonationsDB) ListDonations(filter DonationFilter) ([]models.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations`
	var clauses []string
	var args []interface{}

	switch {
	case filter.MandalID != nil:
		args = append(args, *filter.MandalID)
		clauses = append(clauses, fmt.Sprintf("mandal_id = $%d", len(args)))
	case filter.MandalIDs != nil:
		args = append(args, pq.Array(filter.MandalIDs))
		clauses = append(clauses, fmt.Sprintf("mandal_id = ANY($%d)", len(args)))
	}
	if filter.BookNumber != "" {
		args = append(args, filter.BookNumber)
		clauses = append(clauses, fmt.Sprintf("book_number = $%d", len(args)))
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}

	rows, err := db.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving donations: %w", err)
	}
	defer rows.Close()

	donations := []models.Donation{}
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning donation: %w", err)
		}
		donations = append(donations, d)
	}
	return donations, rows.Err()
}

// ListBookDonations returns the donations of one receipt book joined with
// their donator, scoped like ListDonators.
func (db *DonationsDB) ListBookDonations(bookNumber string, mandalIDs []uuid.UUID, filterMandal *uuid.UUID) ([]models.BookDonation, error) {
	query := `SELECT dn.id, dn.donator_id, dn.user_id, dn.mandal_id, dn.amount, dn.paid_amount,
		dn.balance, dn.status, dn.payment_method, COALESCE(dn.book_number, ''), dn.created_at,
		d.name, m.id, m.name
		FROM donations dn
		JOIN donators d ON d.id = dn.donator_id
		LEFT JOIN mandals m ON m.id = dn.mandal_id
		WHERE dn.book_number = $1`
	args := []interface{}{bookNumber}
	switch {
	case filterMandal != nil:
		args = append(args, *filterMandal)
		query += fmt.Sprintf(" AND dn.mandal_id = $%d", len(args))
	case mandalIDs != nil:
		args = append(args, pq.Array(mandalIDs))
		query += fmt.Sprintf(" AND dn.mandal_id = ANY($%d)", len(args))
	}
	query += " ORDER BY dn.created_at"

	rows, err := db.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving book donations: %w", err)
	}
	defer rows.Close()

	donations := []models.BookDonation{}
	for rows.Next() {
		var bd models.BookDonation
		var mandalID, summaryID uuid.NullUUID
		var summaryName sql.NullString
		if err := rows.Scan(&bd.ID, &bd.DonatorID, &bd.UserID, &mandalID, &bd.Amount,
			&bd.PaidAmount, &bd.Balance, &bd.Status, &bd.PaymentMethod, &bd.BookNumber,
			&bd.CreatedAt, &bd.DonatorName, &summaryID, &summaryName); err != nil {
			return nil, fmt.Errorf("error scanning book donation: %w", err)
		}
		if mandalID.Valid {
			bd.Donation.MandalID = &mandalID.UUID
		}
		if summaryID.Valid {
			bd.Mandal = &models.MandalSummary{ID: summaryID.UUID, Name: summaryName.String}
		}
		donations = append(donations, bd)
	}
	return donations, rows.Err()
}

// UpdateDonationPayment re-reads the donation under a row lock, lets apply
// mutate it through the ledger, persists the result, optionally renames the
// donator, and returns the updated donation with all of the donator's
// donations for aggregation. Everything happens in one transaction so
// concurrent payments against the same donation serialize. Returns
// sql.ErrNoRows when the donation does not exist.
func (db *DonationsDB) UpdateDonationPayment(donationID, donatorID uuid.UUID, donorName string, apply func(*models.Donation) error) (*models.Donation, []models.Donation, error) {
	tx, err := db.DB.Begin()
	if err != nil {
		return nil, nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(
		`SELECT `+donationColumns+` FROM donations WHERE id = $1 FOR UPDATE`, donationID)
	donation, err := scanDonation(row)
	if err == sql.ErrNoRows {
		return nil, nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, nil, fmt.Errorf("error retrieving donation: %w", err)
	}

	if err := apply(&donation); err != nil {
		return nil, nil, err
	}

	_, err = tx.Exec(`UPDATE donations SET paid_amount = $2, balance = $3, status = $4, payment_method = $5
		WHERE id = $1`,
		donation.ID, donation.PaidAmount, donation.Balance, donation.Status, donation.PaymentMethod)
	if err != nil {
		return nil, nil, fmt.Errorf("error updating donation: %w", err)
	}

	if donorName != "" {
		if _, err := tx.Exec(`UPDATE donators SET name = $2 WHERE id = $1`, donatorID, donorName); err != nil {
			return nil, nil, fmt.Errorf("error updating donator name: %w", err)
		}
	}

	rows, err := tx.Query(
		`SELECT `+donationColumns+` FROM donations WHERE donator_id = $1 ORDER BY created_at`,
		donatorID)
	if err != nil {
		return nil, nil, fmt.Errorf("error retrieving donator donations: %w", err)
	}
	defer rows.Close()

	donations := []models.Donation{}
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("error scanning donation: %w", err)
		}
		donations = append(donations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	rows.Close()

	if err := db.Events.Publish(events.DonationEvent{
		Action:     events.ActionDonationPayment,
		DonatorID:  donatorID,
		DonationID: donation.ID,
		MandalID:   donation.MandalID,
		UserID:     donation.UserID,
		Amount:     donation.Amount,
		PaidAmount: donation.PaidAmount,
		Timestamp:  time.Now().Unix(),
	}); err != nil {
		return nil, nil, fmt.Errorf("error publishing payment event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("error committing transaction: %w", err)
	}
	return &donation, donations, nil
}
