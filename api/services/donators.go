package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/seva-sangam/donation-services/db"
	"github.com/seva-sangam/donation-services/internal/ledger"
	"github.com/seva-sangam/donation-services/models"
)

// requestScope is the mandal visibility resolved for a request. A nil
// MandalIDs with Unscoped set means the caller sees everything, which is the
// behaviour unauthenticated callers get on the read endpoints.
type requestScope struct {
	Unscoped  bool
	MandalIDs []uuid.UUID
}

// resolveScope works out which mandals the request may see. Unauthenticated
// requests get the unscoped view. Authenticated requests are limited to their
// memberships; an empty membership set is a valid scope that matches nothing.
func resolveScope(svc *Service, r *http.Request) (requestScope, error) {
	claims, ok := ClaimsFrom(r)
	if !ok {
		return requestScope{Unscoped: true}, nil
	}
	ids, err := svc.Store.UserMandalIDs(claims.UserID)
	if err != nil {
		return requestScope{}, err
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return requestScope{MandalIDs: ids}, nil
}

// contains reports whether id is in the scope's mandal set.
func (s requestScope) contains(id uuid.UUID) bool {
	if s.Unscoped {
		return true
	}
	for _, m := range s.MandalIDs {
		if m == id {
			return true
		}
	}
	return false
}

// mandalFilterFromQuery parses the optional ?mandalId= query parameter.
func mandalFilterFromQuery(r *http.Request) (*uuid.UUID, error) {
	raw := r.URL.Query().Get("mandalId")
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// CreateDonatorService creates a donator together with its first donation in
// one transaction. Admin only; when a mandal is given the caller must be a
// member of it.
func CreateDonatorService(svc *Service, w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	claims, ok := ClaimsFrom(r)
	if !ok {
		WriteError(w, http.StatusUnauthorized, "no token provided")
		return
	}
	if !claims.IsAdmin() {
		WriteError(w, http.StatusForbidden, "only admins can add donators")
		return
	}

	var req models.CreateDonatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Name == "" {
		WriteError(w, http.StatusBadRequest, "name is required")
		return
	}

	if req.MandalID != nil {
		member, err := svc.Store.HasMandalAccess(claims.UserID, *req.MandalID)
		if err != nil {
			logger.Error().Err(err).Msg("failed to check mandal access")
			WriteError(w, http.StatusInternalServerError, "failed to create donator")
			return
		}
		if !member {
			WriteError(w, http.StatusForbidden, "you do not have access to this mandal")
			return
		}
	}

	donation, err := ledger.NewDonation(req.Amount, req.PaidAmount, req.PaymentMethod, req.BookNumber)
	if err != nil {
		WriteLedgerError(w, err)
		return
	}
	donation.UserID = claims.UserID

	donator, err := svc.Store.CreateDonatorWithDonation(&models.Donator{
		Name:     req.Name,
		Phone:    req.Phone,
		Address:  req.Address,
		MandalID: req.MandalID,
	}, donation)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create donator")
		WriteError(w, http.StatusInternalServerError, "failed to create donator")
		return
	}

	logger.Info().Str("donator_id", donator.ID.String()).Msg("donator created")
	WriteResponse(w, http.StatusCreated, *donator)
}

// ListDonatorsService lists donators with their donations. Authenticated
// callers see only their mandals; an authenticated user with no memberships
// gets an empty list, not an error. Unauthenticated callers get the legacy
// unscoped view.
func ListDonatorsService(svc *Service, w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	scope, err := resolveScope(svc, r)
	if err != nil {
		logger.Error().Err(err).Msg("failed to resolve mandal scope")
		WriteError(w, http.StatusInternalServerError, "failed to retrieve donators")
		return
	}

	filterMandal, err := mandalFilterFromQuery(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid mandal id")
		return
	}
	if filterMandal != nil && !scope.contains(*filterMandal) {
		WriteError(w, http.StatusForbidden, "you do not have access to this mandal")
		return
	}

	if !scope.Unscoped && len(scope.MandalIDs) == 0 {
		WriteResponse(w, http.StatusOK, []models.Donator{})
		return
	}

	donators, err := svc.Store.ListDonators(scope.MandalIDs, filterMandal)
	if err != nil {
		logger.Error().Err(err).Msg("failed to retrieve donators")
		WriteError(w, http.StatusInternalServerError, "failed to retrieve donators")
		return
	}
	if donators == nil {
		donators = []models.Donator{}
	}
	WriteResponse(w, http.StatusOK, donators)
}

// DonationSummaryService returns the totals across all visible donations,
// optionally narrowed to a mandal or a receipt book. Scoping matches the
// donator listing.
func DonationSummaryService(svc *Service, w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	scope, err := resolveScope(svc, r)
	if err != nil {
		logger.Error().Err(err).Msg("failed to resolve mandal scope")
		WriteError(w, http.StatusInternalServerError, "failed to compute summary")
		return
	}

	filterMandal, err := mandalFilterFromQuery(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid mandal id")
		return
	}
	if filterMandal != nil && !scope.contains(*filterMandal) {
		WriteError(w, http.StatusForbidden, "you do not have access to this mandal")
		return
	}

	bookNumber := r.URL.Query().Get("book")

	if !scope.Unscoped && len(scope.MandalIDs) == 0 {
		WriteResponse(w, http.StatusOK, models.DonationSummary{BookNumber: bookNumber})
		return
	}

	donations, err := svc.Store.ListDonations(db.DonationFilter{
		MandalIDs:  scope.MandalIDs,
		MandalID:   filterMandal,
		BookNumber: bookNumber,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to retrieve donations")
		WriteError(w, http.StatusInternalServerError, "failed to compute summary")
		return
	}

	totals := ledger.Aggregate(donations)
	WriteResponse(w, http.StatusOK, models.DonationSummary{
		BookNumber:   bookNumber,
		TotalAmount:  totals.TotalAmount,
		TotalPaid:    totals.TotalPaid,
		TotalBalance: totals.TotalBalance,
	})
}

// GetDonatorService fetches a single donator with donations. Authenticated
// callers may only see donators inside their mandals.
func GetDonatorService(svc *Service, w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	donatorID, err := uuid.Parse(mux.Vars(r)["donator-id"])
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid donator id")
		return
	}

	scope, err := resolveScope(svc, r)
	if err != nil {
		logger.Error().Err(err).Msg("failed to resolve mandal scope")
		WriteError(w, http.StatusInternalServerError, "failed to retrieve donator")
		return
	}

	donator, err := svc.Store.GetDonator(donatorID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to retrieve donator")
		WriteError(w, http.StatusInternalServerError, "failed to retrieve donator")
		return
	}
	if donator == nil {
		WriteError(w, http.StatusNotFound, "donator not found")
		return
	}
	if donator.MandalID != nil && !scope.contains(*donator.MandalID) {
		WriteError(w, http.StatusForbidden, "you do not have access to this donator")
		return
	}

	WriteResponse(w, http.StatusOK, *donator)
}

// UpdateDonatorService updates a donator's contact details. Admin only, and
// the donator must be inside the caller's mandals.
func UpdateDonatorService(svc *Service, w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	claims, ok := ClaimsFrom(r)
	if !ok {
		WriteError(w, http.StatusUnauthorized, "no token provided")
		return
	}
	if !claims.IsAdmin() {
		WriteError(w, http.StatusForbidden, "only admins can update donators")
		return
	}

	donatorID, err := uuid.Parse(mux.Vars(r)["donator-id"])
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid donator id")
		return
	}

	var req models.UpdateDonatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	donator, err := svc.Store.GetDonator(donatorID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to retrieve donator")
		WriteError(w, http.StatusInternalServerError, "failed to update donator")
		return
	}
	if donator == nil {
		WriteError(w, http.StatusNotFound, "donator not found")
		return
	}
	if donator.MandalID != nil {
		member, err := svc.Store.HasMandalAccess(claims.UserID, *donator.MandalID)
		if err != nil {
			logger.Error().Err(err).Msg("failed to check mandal access")
			WriteError(w, http.StatusInternalServerError, "failed to update donator")
			return
		}
		if !member {
			WriteError(w, http.StatusForbidden, "you do not have access to this donator")
			return
		}
	}

	updated, err := svc.Store.UpdateDonator(donatorID, req)
	if err != nil {
		logger.Error().Err(err).Msg("failed to update donator")
		WriteError(w, http.StatusInternalServerError, "failed to update donator")
		return
	}

	WriteResponse(w, http.StatusOK, *updated)
}

// UpdateDonationService records a payment against a donation. The
// paymentDelta path is incremental and rejects anything past the outstanding
// balance; the paidAmount path sets the value absolutely, as older clients
// expect. The row is locked for the duration of the update.
func UpdateDonationService(svc *Service, w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	claims, ok := ClaimsFrom(r)
	if !ok {
		WriteError(w, http.StatusUnauthorized, "no token provided")
		return
	}
	if !claims.IsAdmin() {
		WriteError(w, http.StatusForbidden, "only admins can update donations")
		return
	}

	donatorID, err := uuid.Parse(mux.Vars(r)["donator-id"])
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid donator id")
		return
	}

	var req models.UpdateDonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.DonationID == uuid.Nil {
		WriteError(w, http.StatusBadRequest, "donationId is required")
		return
	}
	if req.PaymentDelta != nil && req.PaidAmount != nil {
		WriteError(w, http.StatusBadRequest, "provide either paymentDelta or paidAmount, not both")
		return
	}

	donation, err := svc.Store.GetDonation(req.DonationID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to retrieve donation")
		WriteError(w, http.StatusInternalServerError, "failed to update donation")
		return
	}
	if donation == nil || donation.DonatorID != donatorID {
		WriteError(w, http.StatusNotFound, "donation not found")
		return
	}
	if donation.MandalID != nil {
		member, err := svc.Store.HasMandalAccess(claims.UserID, *donation.MandalID)
		if err != nil {
			logger.Error().Err(err).Msg("failed to check mandal access")
			WriteError(w, http.StatusInternalServerError, "failed to update donation")
			return
		}
		if !member {
			WriteError(w, http.StatusForbidden, "you do not have access to this donation")
			return
		}
	}

	apply := func(d *models.Donation) error {
		if req.PaymentDelta != nil {
			if err := ledger.ApplyIncrement(d, *req.PaymentDelta); err != nil {
				return err
			}
		}
		return ledger.Replace(d, req.PaidAmount, req.PaymentMethod)
	}

	updated, donorDonations, err := svc.Store.UpdateDonationPayment(req.DonationID, donatorID, req.Name, apply)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "donation not found")
			return
		}
		var overpay *ledger.OverpaymentError
		var verr *ledger.ValidationError
		if errors.As(err, &overpay) || errors.As(err, &verr) {
			WriteLedgerError(w, err)
			return
		}
		logger.Error().Err(err).Msg("failed to update donation")
		WriteError(w, http.StatusInternalServerError, "failed to update donation")
		return
	}

	totals := ledger.Aggregate(donorDonations)
	logger.Info().Str("donation_id", updated.ID.String()).
		Int64("paid_amount", updated.PaidAmount).
		Str("status", updated.Status).Msg("donation payment recorded")
	WriteResponse(w, http.StatusOK, models.UpdateDonationResponse{
		Donation: *updated,
		DonorTotals: models.DonorTotals{
			TotalPaid:    totals.TotalPaid,
			TotalBalance: totals.TotalBalance,
		},
	})
}

// BookDonationsService lists the donations recorded against one receipt book,
// joined with donator names. Admin only, and always scoped to the caller's
// mandals.
func BookDonationsService(svc *Service, w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	claims, ok := ClaimsFrom(r)
	if !ok {
		WriteError(w, http.StatusUnauthorized, "no token provided")
		return
	}
	if !claims.IsAdmin() {
		WriteError(w, http.StatusForbidden, "only admins can view bookwise donations")
		return
	}

	bookNumber := mux.Vars(r)["book-number"]
	if bookNumber == "" {
		WriteError(w, http.StatusBadRequest, "book number is required")
		return
	}

	mandalIDs, err := svc.Store.UserMandalIDs(claims.UserID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to resolve mandal scope")
		WriteError(w, http.StatusInternalServerError, "failed to retrieve book donations")
		return
	}
	scope := requestScope{MandalIDs: mandalIDs}

	filterMandal, err := mandalFilterFromQuery(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid mandal id")
		return
	}
	if filterMandal != nil && !scope.contains(*filterMandal) {
		WriteError(w, http.StatusForbidden, "you do not have access to this mandal")
		return
	}

	if len(mandalIDs) == 0 {
		WriteResponse(w, http.StatusOK, []models.BookDonation{})
		return
	}

	donations, err := svc.Store.ListBookDonations(bookNumber, mandalIDs, filterMandal)
	if err != nil {
		logger.Error().Err(err).Msg("failed to retrieve book donations")
		WriteError(w, http.StatusInternalServerError, "failed to retrieve book donations")
		return
	}
	if donations == nil {
		donations = []models.BookDonation{}
	}
	WriteResponse(w, http.StatusOK, donations)
}

// BookSummaryService returns the totals for one receipt book, scoped to the
// caller's mandals. Any authenticated member may read it.
func BookSummaryService(svc *Service, w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	claims, ok := ClaimsFrom(r)
	if !ok {
		WriteError(w, http.StatusUnauthorized, "no token provided")
		return
	}

	bookNumber := mux.Vars(r)["book-number"]
	if bookNumber == "" {
		WriteError(w, http.StatusBadRequest, "book number is required")
		return
	}

	mandalIDs, err := svc.Store.UserMandalIDs(claims.UserID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to resolve mandal scope")
		WriteError(w, http.StatusInternalServerError, "failed to compute book summary")
		return
	}
	scope := requestScope{MandalIDs: mandalIDs}

	filterMandal, err := mandalFilterFromQuery(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid mandal id")
		return
	}
	if filterMandal != nil && !scope.contains(*filterMandal) {
		WriteError(w, http.StatusForbidden, "you do not have access to this mandal")
		return
	}

	if len(mandalIDs) == 0 {
		WriteResponse(w, http.StatusOK, models.DonationSummary{BookNumber: bookNumber})
		return
	}

	donations, err := svc.Store.ListDonations(db.DonationFilter{
		MandalIDs:  mandalIDs,
		MandalID:   filterMandal,
		BookNumber: bookNumber,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to retrieve donations")
		WriteError(w, http.StatusInternalServerError, "failed to compute book summary")
		return
	}

	totals := ledger.Aggregate(donations)
	WriteResponse(w, http.StatusOK, models.DonationSummary{
		BookNumber:   bookNumber,
		TotalAmount:  totals.TotalAmount,
		TotalPaid:    totals.TotalPaid,
		TotalBalance: totals.TotalBalance,
	})
}
