package services

import (
	"github.com/google/uuid"

	"github.com/seva-sangam/donation-services/db"
	"github.com/seva-sangam/donation-services/internal/appconfig"
	"github.com/seva-sangam/donation-services/internal/authn"
	"github.com/seva-sangam/donation-services/models"
)

// DonationStore is the persistence surface the services depend on. It is
// implemented by *db.DonationsDB and mocked in tests.
type DonationStore interface {
	CreateUser(user *models.User) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)

	CreateMandal(mandal *models.Mandal) (*models.Mandal, error)
	GetMandalByName(name string) (*models.Mandal, error)
	UserMandalIDs(userID uuid.UUID) ([]uuid.UUID, error)
	HasMandalAccess(userID, mandalID uuid.UUID) (bool, error)
	AddMembership(userID, mandalID uuid.UUID) error
	RemoveMembership(userID, mandalID uuid.UUID) (bool, error)
	UserMandals(userID uuid.UUID) ([]models.MandalWithJoinedAt, error)

	CreateDonatorWithDonation(donator *models.Donator, donation *models.Donation) (*models.Donator, error)
	ListDonators(mandalIDs []uuid.UUID, filterMandal *uuid.UUID) ([]models.Donator, error)
	GetDonator(donatorID uuid.UUID) (*models.Donator, error)
	UpdateDonator(donatorID uuid.UUID, req models.UpdateDonatorRequest) (*models.Donator, error)
	GetDonation(donationID uuid.UUID) (*models.Donation, error)
	ListDonations(filter db.DonationFilter) ([]models.Donation, error)
	ListBookDonations(bookNumber string, mandalIDs []uuid.UUID, filterMandal *uuid.UUID) ([]models.BookDonation, error)
	UpdateDonationPayment(donationID, donatorID uuid.UUID, donorName string, apply func(*models.Donation) error) (*models.Donation, []models.Donation, error)
}

// Service contains all shared dependencies for handlers.
type Service struct {
	Config   *appconfig.Config
	Store    DonationStore
	Verifier *authn.Verifier
}
