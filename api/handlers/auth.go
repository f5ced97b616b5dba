package handlers

import (
	"net/http"

	"github.com/seva-sangam/donation-services/api/services"
)

func Register(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.RegisterService(svc, w, r)
	}
}

func Login(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.LoginService(svc, w, r)
	}
}
