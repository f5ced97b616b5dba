// Package ledger owns the arithmetic and status invariants of donations:
// balance is always amount minus paid, status follows the three-way rule, and
// incremental payments can never exceed the outstanding balance.
package ledger

import (
	"github.com/seva-sangam/donation-services/models"
)

// Donation statuses.
const (
	StatusPending = "PENDING"
	StatusPartial = "PARTIAL"
	StatusPaid    = "PAID"
)

// Accepted payment methods. "Not Done" marks a pledge with no payment yet.
const (
	MethodNotDone = "Not Done"
	MethodCash    = "Cash"
	MethodOnline  = "Online"
)

var allowedMethods = []string{MethodNotDone, MethodCash, MethodOnline}

// AllowedMethods returns the accepted payment methods, for error messages.
func AllowedMethods() []string {
	out := make([]string, len(allowedMethods))
	copy(out, allowedMethods)
	return out
}

// ValidMethod reports whether method is one of the accepted payment methods.
func ValidMethod(method string) bool {
	for _, m := range allowedMethods {
		if m == method {
			return true
		}
	}
	return false
}

// Derive computes the balance and status for a given amount and paid amount.
// Paid equal to amount is PAID; exactly zero (or below) is PENDING.
func Derive(amount, paidAmount int64) (balance int64, status string) {
	balance = amount - paidAmount
	switch {
	case paidAmount >= amount:
		status = StatusPaid
	case paidAmount > 0:
		status = StatusPartial
	default:
		status = StatusPending
	}
	return balance, status
}

// NewDonation validates the creation inputs and returns a donation with its
// balance and status derived. The initial paid amount is deliberately not
// bounded by the amount; only the incremental path enforces that ceiling.
func NewDonation(amount, paidAmount int64, paymentMethod, bookNumber string) (*models.Donation, error) {
	if amount <= 0 {
		return nil, &ValidationError{Field: "amount", Reason: "amount must be a positive number"}
	}
	if !ValidMethod(paymentMethod) {
		return nil, &ValidationError{Field: "paymentMethod", Reason: "paymentMethod must be one of Not Done, Cash, Online"}
	}
	balance, status := Derive(amount, paidAmount)
	return &models.Donation{
		Amount:        amount,
		PaidAmount:    paidAmount,
		Balance:       balance,
		Status:        status,
		PaymentMethod: paymentMethod,
		BookNumber:    bookNumber,
	}, nil
}

// ApplyIncrement adds delta to the donation's paid amount. The delta must be
// positive and must not push the paid amount past the donation amount; on an
// overpayment the error carries the maximum additional payment still allowed.
// The donation is updated all-or-nothing.
func ApplyIncrement(d *models.Donation, delta int64) error {
	if delta <= 0 {
		return &ValidationError{Field: "paymentDelta", Reason: "paymentDelta must be a positive number"}
	}
	remaining := d.Amount - d.PaidAmount
	if delta > remaining {
		return &OverpaymentError{MaxAdditional: remaining}
	}
	d.PaidAmount += delta
	d.Balance, d.Status = Derive(d.Amount, d.PaidAmount)
	return nil
}

// Replace sets the paid amount and/or payment method absolutely. This is the
// legacy entry point: unlike ApplyIncrement it does not bound the new paid
// amount by the donation amount.
func Replace(d *models.Donation, newPaidAmount *int64, newPaymentMethod *string) error {
	if newPaymentMethod != nil && !ValidMethod(*newPaymentMethod) {
		return &ValidationError{Field: "paymentMethod", Reason: "paymentMethod must be one of Not Done, Cash, Online"}
	}
	if newPaidAmount != nil {
		d.PaidAmount = *newPaidAmount
		d.Balance, d.Status = Derive(d.Amount, d.PaidAmount)
	}
	if newPaymentMethod != nil {
		d.PaymentMethod = *newPaymentMethod
	}
	return nil
}

// Totals are component-wise sums over a set of donations.
type Totals struct {
	TotalAmount  int64 `json:"totalAmount"`
	TotalPaid    int64 `json:"totalPaid"`
	TotalBalance int64 `json:"totalBalance"`
}

// Aggregate folds donations into their totals. The fold is associative:
// aggregating a concatenation equals summing the partial aggregates.
func Aggregate(donations []models.Donation) Totals {
	var t Totals
	for _, d := range donations {
		t.TotalAmount += d.Amount
		t.TotalPaid += d.PaidAmount
		t.TotalBalance += d.Balance
	}
	return t
}

// ClassifyTotals derives a donor-level status for reporting: PAID when nothing
// is outstanding, PARTIAL when anything was paid, PENDING otherwise. This rule
// intentionally differs from the per-donation rule in Derive and the two must
// not be unified.
func ClassifyTotals(totalPaid, totalBalance int64) string {
	switch {
	case totalBalance == 0:
		return StatusPaid
	case totalPaid > 0:
		return StatusPartial
	default:
		return StatusPending
	}
}
