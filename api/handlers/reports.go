package handlers

import (
	"net/http"

	"github.com/seva-sangam/donation-services/api/services"
)

func DonorReport(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.DonorReportService(svc, w, r)
	}
}
