package services

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/seva-sangam/donation-services/api/middleware"
	"github.com/seva-sangam/donation-services/internal/authn"
	"github.com/seva-sangam/donation-services/internal/ledger"
	"github.com/seva-sangam/donation-services/models"
)

func WriteResponse(w http.ResponseWriter, statusCode int, response interface{}) {
	w.Header().Set("Content-Type", "application/json")

	// API responses must not be cached so the client sees current balances
	w.Header().Set("Cache-Control", "max-age=0")

	w.WriteHeader(statusCode)

	if response != nil {
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
			return
		}
	}
}

// WriteError writes the error envelope used across the API.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteResponse(w, statusCode, models.ErrorResponse{Error: message})
}

type overpaymentResponse struct {
	Error         string `json:"error"`
	MaxAdditional int64  `json:"maxAdditional"`
}

// WriteLedgerError maps ledger errors to their status codes: validation and
// overpayment are both 400, with the overpayment response carrying the largest
// additional payment still accepted.
func WriteLedgerError(w http.ResponseWriter, err error) {
	var overpay *ledger.OverpaymentError
	if errors.As(err, &overpay) {
		WriteResponse(w, http.StatusBadRequest, overpaymentResponse{
			Error:         overpay.Error(),
			MaxAdditional: overpay.MaxAdditional,
		})
		return
	}
	var verr *ledger.ValidationError
	if errors.As(err, &verr) {
		WriteError(w, http.StatusBadRequest, verr.Error())
		return
	}
	WriteError(w, http.StatusInternalServerError, err.Error())
}

// ClaimsFrom extracts the verified claims placed in the context by the JWT
// middleware. ok is false on optional-auth routes with no (valid) token.
func ClaimsFrom(r *http.Request) (authn.Claims, bool) {
	claims, ok := r.Context().Value(middleware.ClaimsKey).(authn.Claims)
	return claims, ok
}
