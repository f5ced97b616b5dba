package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seva-sangam/donation-services/models"
)

func TestNewDonationDerivesBalanceAndStatus(t *testing.T) {
	cases := []struct {
		name       string
		amount     int64
		paid       int64
		wantStatus string
	}{
		{"nothing paid is pending", 1000, 0, StatusPending},
		{"partial payment", 1000, 400, StatusPartial},
		{"fully paid boundary", 1000, 1000, StatusPaid},
		{"one short of full", 1000, 999, StatusPartial},
		{"one rupee paid", 1000, 1, StatusPartial},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := NewDonation(tc.amount, tc.paid, MethodCash, "B-1")
			require.NoError(t, err)
			assert.Equal(t, tc.amount-tc.paid, d.Balance)
			assert.Equal(t, tc.wantStatus, d.Status)
		})
	}
}

func TestNewDonationValidation(t *testing.T) {
	_, err := NewDonation(0, 0, MethodCash, "")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "amount", verr.Field)

	_, err = NewDonation(-50, 0, MethodCash, "")
	assert.Error(t, err)

	_, err = NewDonation(100, 0, "Cheque", "")
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "paymentMethod", verr.Field)
}

func TestApplyIncrementScenario(t *testing.T) {
	// amount 1000: pay 400, then 600, then 1 more must fail with max 0.
	d := &models.Donation{Amount: 1000, PaidAmount: 0, Balance: 1000, Status: StatusPending, PaymentMethod: MethodCash}

	require.NoError(t, ApplyIncrement(d, 400))
	assert.Equal(t, int64(400), d.PaidAmount)
	assert.Equal(t, int64(600), d.Balance)
	assert.Equal(t, StatusPartial, d.Status)

	require.NoError(t, ApplyIncrement(d, 600))
	assert.Equal(t, int64(1000), d.PaidAmount)
	assert.Equal(t, int64(0), d.Balance)
	assert.Equal(t, StatusPaid, d.Status)

	err := ApplyIncrement(d, 1)
	var overpay *OverpaymentError
	require.True(t, errors.As(err, &overpay))
	assert.Equal(t, int64(0), overpay.MaxAdditional)
}

func TestApplyIncrementOverpaymentReportsRemaining(t *testing.T) {
	d := &models.Donation{Amount: 500, PaidAmount: 200, Balance: 300, Status: StatusPartial}

	err := ApplyIncrement(d, 301)
	var overpay *OverpaymentError
	require.True(t, errors.As(err, &overpay))
	assert.Equal(t, int64(300), overpay.MaxAdditional)

	// A failed increment must leave the donation untouched.
	assert.Equal(t, int64(200), d.PaidAmount)
	assert.Equal(t, int64(300), d.Balance)
	assert.Equal(t, StatusPartial, d.Status)
}

func TestApplyIncrementExactRemainderSettles(t *testing.T) {
	d := &models.Donation{Amount: 750, PaidAmount: 150, Balance: 600, Status: StatusPartial}
	require.NoError(t, ApplyIncrement(d, 600))
	assert.Equal(t, StatusPaid, d.Status)
	assert.Equal(t, int64(0), d.Balance)
}

func TestApplyIncrementRejectsNonPositiveDelta(t *testing.T) {
	d := &models.Donation{Amount: 100, PaidAmount: 0, Balance: 100, Status: StatusPending}
	assert.Error(t, ApplyIncrement(d, 0))
	assert.Error(t, ApplyIncrement(d, -10))
}

func TestReplaceIsAbsoluteAndUnbounded(t *testing.T) {
	d := &models.Donation{Amount: 100, PaidAmount: 90, Balance: 10, Status: StatusPartial, PaymentMethod: MethodNotDone}

	paid := int64(40)
	require.NoError(t, Replace(d, &paid, nil))
	assert.Equal(t, int64(40), d.PaidAmount)
	assert.Equal(t, int64(60), d.Balance)
	assert.Equal(t, StatusPartial, d.Status)

	// Known relaxation: the absolute path does not bound paid by amount, so an
	// over-set produces a negative balance and PAID status.
	paid = 150
	require.NoError(t, Replace(d, &paid, nil))
	assert.Equal(t, int64(-50), d.Balance)
	assert.Equal(t, StatusPaid, d.Status)

	method := MethodOnline
	require.NoError(t, Replace(d, nil, &method))
	assert.Equal(t, MethodOnline, d.PaymentMethod)
	assert.Equal(t, int64(150), d.PaidAmount)

	bad := "Barter"
	assert.Error(t, Replace(d, nil, &bad))
}

func TestAggregate(t *testing.T) {
	donations := []models.Donation{
		{Amount: 500, PaidAmount: 500, Balance: 0},
		{Amount: 300, PaidAmount: 100, Balance: 200},
	}

	got := Aggregate(donations)
	assert.Equal(t, Totals{TotalAmount: 800, TotalPaid: 600, TotalBalance: 200}, got)

	assert.Equal(t, Totals{}, Aggregate(nil))
}

func TestAggregateIsAssociative(t *testing.T) {
	a := []models.Donation{
		{Amount: 100, PaidAmount: 50, Balance: 50},
		{Amount: 900, PaidAmount: 900, Balance: 0},
	}
	b := []models.Donation{
		{Amount: 250, PaidAmount: 0, Balance: 250},
	}

	whole := Aggregate(append(append([]models.Donation{}, a...), b...))
	ta, tb := Aggregate(a), Aggregate(b)
	sum := Totals{
		TotalAmount:  ta.TotalAmount + tb.TotalAmount,
		TotalPaid:    ta.TotalPaid + tb.TotalPaid,
		TotalBalance: ta.TotalBalance + tb.TotalBalance,
	}
	assert.Equal(t, whole, sum)
}

func TestClassifyTotals(t *testing.T) {
	// Donor-level rule keys off balance, not amount; it is deliberately not the
	// same rule as Derive.
	assert.Equal(t, StatusPaid, ClassifyTotals(0, 0))
	assert.Equal(t, StatusPaid, ClassifyTotals(800, 0))
	assert.Equal(t, StatusPartial, ClassifyTotals(600, 200))
	assert.Equal(t, StatusPending, ClassifyTotals(0, 800))
}
