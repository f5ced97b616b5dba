package handlers

import (
	"net/http"

	"github.com/seva-sangam/donation-services/api/services"
)

func CreateDonator(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.CreateDonatorService(svc, w, r)
	}
}

func ListDonators(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.ListDonatorsService(svc, w, r)
	}
}

func DonationSummary(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.DonationSummaryService(svc, w, r)
	}
}

func GetDonator(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.GetDonatorService(svc, w, r)
	}
}

func UpdateDonator(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.UpdateDonatorService(svc, w, r)
	}
}

func UpdateDonation(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.UpdateDonationService(svc, w, r)
	}
}

func BookDonations(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.BookDonationsService(svc, w, r)
	}
}

func BookSummary(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.BookSummaryService(svc, w, r)
	}
}
