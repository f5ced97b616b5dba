package models

import (
	"time"

	"github.com/google/uuid"
)

// Donator owns its donations; deleting a donator cascades to them. MandalID is
// nullable to keep pre-mandal records readable.
type Donator struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Phone     string         `json:"phone,omitempty"`
	Address   string         `json:"address,omitempty"`
	MandalID  *uuid.UUID     `json:"mandalId,omitempty"`
	Mandal    *MandalSummary `json:"mandal,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	Donations []Donation     `json:"donations"`
}

// Donation is a single pledge against a donator. Amounts are integer rupees.
// Balance and Status are always derived from Amount and PaidAmount by the
// ledger package, never set independently.
type Donation struct {
	ID            uuid.UUID  `json:"id"`
	DonatorID     uuid.UUID  `json:"donatorId"`
	UserID        uuid.UUID  `json:"userId"`
	MandalID      *uuid.UUID `json:"mandalId,omitempty"`
	Amount        int64      `json:"amount"`
	PaidAmount    int64      `json:"paidAmount"`
	Balance       int64      `json:"balance"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"paymentMethod"`
	BookNumber    string     `json:"bookNumber,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type CreateDonatorRequest struct {
	Name          string     `json:"name"`
	Phone         string     `json:"phone"`
	Address       string     `json:"address"`
	MandalID      *uuid.UUID `json:"mandalId"`
	Amount        int64      `json:"amount"`
	PaidAmount    int64      `json:"paidAmount"`
	PaymentMethod string     `json:"paymentMethod"`
	BookNumber    string     `json:"bookNumber"`
}

type UpdateDonatorRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateDonationRequest drives the payment update endpoint. PaymentDelta is
// the incremental path with the overpayment guard; PaidAmount is the legacy
// absolute path without one. At most one of the two should be supplied.
type UpdateDonationRequest struct {
	DonationID    uuid.UUID `json:"donationId"`
	PaymentDelta  *int64    `json:"paymentDelta"`
	PaidAmount    *int64    `json:"paidAmount"`
	PaymentMethod *string   `json:"paymentMethod"`
	Name          string    `json:"name"`
}

// DonorTotals are the per-donator aggregates returned after a payment update.
type DonorTotals struct {
	TotalPaid    int64 `json:"totalPaid"`
	TotalBalance int64 `json:"totalBalance"`
}

type UpdateDonationResponse struct {
	Donation    Donation    `json:"donation"`
	DonorTotals DonorTotals `json:"donorTotals"`
}

// BookDonation is a donation row joined with its donator, as returned by the
// bookwise listing.
type BookDonation struct {
	Donation
	DonatorName string         `json:"donatorName"`
	Mandal      *MandalSummary `json:"mandal,omitempty"`
}

// DonationSummary is the global/mandal/book roll-up.
type DonationSummary struct {
	BookNumber   string `json:"bookNumber,omitempty"`
	TotalAmount  int64  `json:"totalAmount"`
	TotalPaid    int64  `json:"totalPaid"`
	TotalBalance int64  `json:"totalBalance"`
}
