package handlers

import (
	"net/http"

	"github.com/seva-sangam/donation-services/api/services"
)

func CreateMandal(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.CreateMandalService(svc, w, r)
	}
}

func JoinMandal(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.JoinMandalService(svc, w, r)
	}
}

func MyMandals(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.MyMandalsService(svc, w, r)
	}
}

func LeaveMandal(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.LeaveMandalService(svc, w, r)
	}
}
