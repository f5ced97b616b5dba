package services

import (
	"bytes"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/seva-sangam/donation-services/internal/report"
	"github.com/seva-sangam/donation-services/models"
)

// DonorReportService renders the visible donators as a downloadable PDF.
// Scoping matches the donator listing, including the unscoped legacy view
// for unauthenticated callers.
func DonorReportService(svc *Service, w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	scope, err := resolveScope(svc, r)
	if err != nil {
		logger.Error().Err(err).Msg("failed to resolve mandal scope")
		WriteError(w, http.StatusInternalServerError, "failed to generate report")
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

	var donators []models.Donator
	if scope.Unscoped || len(scope.MandalIDs) > 0 {
		donators, err = svc.Store.ListDonators(scope.MandalIDs, filterMandal)
		if err != nil {
			logger.Error().Err(err).Msg("failed to retrieve donators")
			WriteError(w, http.StatusInternalServerError, "failed to generate report")
			return
		}
	}

	var buf bytes.Buffer
	if err := report.DonorReport(&buf, "Donation Report", donators, time.Now()); err != nil {
		logger.Error().Err(err).Msg("failed to render report")
		WriteError(w, http.StatusInternalServerError, "failed to generate report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="donation-report.pdf"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Error().Err(err).Msg("failed to write report")
	}
}
