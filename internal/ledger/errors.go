package ledger

import "fmt"

// ValidationError reports missing or malformed input. Handlers translate it to
// a 400 response.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// OverpaymentError reports an incremental payment exceeding the outstanding
// balance. MaxAdditional is the largest delta still accepted, for display.
type OverpaymentError struct {
	MaxAdditional int64
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment exceeds remaining balance; maximum additional payment is %d", e.MaxAdditional)
}
