package services

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/seva-sangam/donation-services/db"
	"github.com/seva-sangam/donation-services/models"
)

// MockDonationStore is the test double for DonationStore.
type MockDonationStore struct {
	mock.Mock
}

func (m *MockDonationStore) CreateUser(user *models.User) (*models.User, error) {
	args := m.Called(user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockDonationStore) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockDonationStore) CreateMandal(mandal *models.Mandal) (*models.Mandal, error) {
	args := m.Called(mandal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mandal), args.Error(1)
}

func (m *MockDonationStore) GetMandalByName(name string) (*models.Mandal, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mandal), args.Error(1)
}

func (m *MockDonationStore) UserMandalIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockDonationStore) HasMandalAccess(userID, mandalID uuid.UUID) (bool, error) {
	args := m.Called(userID, mandalID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDonationStore) AddMembership(userID, mandalID uuid.UUID) error {
	args := m.Called(userID, mandalID)
	return args.Error(0)
}

func (m *MockDonationStore) RemoveMembership(userID, mandalID uuid.UUID) (bool, error) {
	args := m.Called(userID, mandalID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDonationStore) UserMandals(userID uuid.UUID) ([]models.MandalWithJoinedAt, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MandalWithJoinedAt), args.Error(1)
}

func (m *MockDonationStore) CreateDonatorWithDonation(donator *models.Donator, donation *models.Donation) (*models.Donator, error) {
	args := m.Called(donator, donation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Donator), args.Error(1)
}

func (m *MockDonationStore) ListDonators(mandalIDs []uuid.UUID, filterMandal *uuid.UUID) ([]models.Donator, error) {
	args := m.Called(mandalIDs, filterMandal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Donator), args.Error(1)
}

func (m *MockDonationStore) GetDonator(donatorID uuid.UUID) (*models.Donator, error) {
	args := m.Called(donatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Donator), args.Error(1)
}

func (m *MockDonationStore) UpdateDonator(donatorID uuid.UUID, req models.UpdateDonatorRequest) (*models.Donator, error) {
	args := m.Called(donatorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Donator), args.Error(1)
}

func (m *MockDonationStore) GetDonation(donationID uuid.UUID) (*models.Donation, error) {
	args := m.Called(donationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Donation), args.Error(1)
}

func (m *MockDonationStore) ListDonations(filter db.DonationFilter) ([]models.Donation, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Donation), args.Error(1)
}

func (m *MockDonationStore) ListBookDonations(bookNumber string, mandalIDs []uuid.UUID, filterMandal *uuid.UUID) ([]models.BookDonation, error) {
	args := m.Called(bookNumber, mandalIDs, filterMandal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BookDonation), args.Error(1)
}

func (m *MockDonationStore) UpdateDonationPayment(donationID, donatorID uuid.UUID, donorName string, apply func(*models.Donation) error) (*models.Donation, []models.Donation, error) {
	args := m.Called(donationID, donatorID, donorName, apply)
	var donation *models.Donation
	if args.Get(0) != nil {
		donation = args.Get(0).(*models.Donation)
	}
	var donations []models.Donation
	if args.Get(1) != nil {
		donations = args.Get(1).([]models.Donation)
	}
	return donation, donations, args.Error(2)
}
