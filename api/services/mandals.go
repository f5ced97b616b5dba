package services

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/seva-sangam/donation-services/models"
)

// CreateMandalService creates a new mandal. Admin only; the join password is
// stored bcrypt-hashed and never returned.
func CreateMandalService(svc *Service, w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	claims, ok := ClaimsFrom(r)
	if !ok {
		WriteError(w, http.StatusUnauthorized, "no token provided")
		return
	}
	if !claims.IsAdmin() {
		WriteError(w, http.StatusForbidden, "only admins can create mandals")
		return
	}

	var req models.CreateMandalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Name == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, "name and password are required")
		return
	}

	existing, err := svc.Store.GetMandalByName(req.Name)
	if err != nil {
		logger.Error().Err(err).Msg("failed to look up mandal")
		WriteError(w, http.StatusInternalServerError, "failed to create mandal")
		return
	}
	if existing != nil {
		WriteError(w, http.StatusBadRequest, "mandal already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error().Err(err).Msg("failed to hash mandal password")
		WriteError(w, http.StatusInternalServerError, "failed to create mandal")
		return
	}

	mandal, err := svc.Store.CreateMandal(&models.Mandal{
		Name:         req.Name,
		PasswordHash: string(hash),
		Description:  req.Description,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to create mandal")
		WriteError(w, http.StatusInternalServerError, "failed to create mandal")
		return
	}

	logger.Info().Str("mandal_id", mandal.ID.String()).Msg("mandal created")
	WriteResponse(w, http.StatusOK, *mandal)
}

// JoinMandalService adds the caller to a mandal after verifying the mandal
// password. Joining twice is rejected.
func JoinMandalService(svc *Service, w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	claims, ok := ClaimsFrom(r)
	if !ok {
		WriteError(w, http.StatusUnauthorized, "no token provided")
		return
	}

	var req models.JoinMandalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.MandalName == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, "mandal name and password are required")
		return
	}

	mandal, err := svc.Store.GetMandalByName(req.MandalName)
	if err != nil {
		logger.Error().Err(err).Msg("failed to look up mandal")
		WriteError(w, http.StatusInternalServerError, "failed to join mandal")
		return
	}
	if mandal == nil {
		WriteError(w, http.StatusNotFound, "mandal not found")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(mandal.PasswordHash), []byte(req.Password)); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid mandal password")
		return
	}

	member, err := svc.Store.HasMandalAccess(claims.UserID, mandal.ID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to check membership")
		WriteError(w, http.StatusInternalServerError, "failed to join mandal")
		return
	}
	if member {
		WriteError(w, http.StatusBadRequest, "you are already part of this mandal")
		return
	}

	if err := svc.Store.AddMembership(claims.UserID, mandal.ID); err != nil {
		logger.Error().Err(err).Msg("failed to add membership")
		WriteError(w, http.StatusInternalServerError, "failed to join mandal")
		return
	}

	logger.Info().Str("mandal_id", mandal.ID.String()).
		Str("user_id", claims.UserID.String()).Msg("user joined mandal")
	WriteResponse(w, http.StatusOK, struct {
		Message string        `json:"message"`
		Mandal  models.Mandal `json:"mandal"`
	}{Message: "Successfully joined mandal", Mandal: *mandal})
}

// MyMandalsService lists the caller's memberships.
func MyMandalsService(svc *Service, w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	claims, ok := ClaimsFrom(r)
	if !ok {
		WriteError(w, http.StatusUnauthorized, "no token provided")
		return
	}

	mandals, err := svc.Store.UserMandals(claims.UserID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to retrieve memberships")
		WriteError(w, http.StatusInternalServerError, "failed to retrieve mandals")
		return
	}
	if mandals == nil {
		mandals = []models.MandalWithJoinedAt{}
	}
	WriteResponse(w, http.StatusOK, mandals)
}

// LeaveMandalService removes the caller's membership.
func LeaveMandalService(svc *Service, w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	claims, ok := ClaimsFrom(r)
	if !ok {
		WriteError(w, http.StatusUnauthorized, "no token provided")
		return
	}

	mandalID, err := uuid.Parse(mux.Vars(r)["mandal-id"])
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid mandal id")
		return
	}

	removed, err := svc.Store.RemoveMembership(claims.UserID, mandalID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to remove membership")
		WriteError(w, http.StatusInternalServerError, "failed to leave mandal")
		return
	}
	if !removed {
		WriteError(w, http.StatusNotFound, "you are not part of this mandal")
		return
	}

	logger.Info().Str("mandal_id", mandalID.String()).
		Str("user_id", claims.UserID.String()).Msg("user left mandal")
	WriteResponse(w, http.StatusOK, models.MessageResponse{Message: "Successfully left mandal"})
}
