package services

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/seva-sangam/donation-services/models"
)

// RegisterService creates a new user with a bcrypt-hashed password.
func RegisterService(svc *Service, w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn().Err(err).Msg("invalid register payload")
		WriteError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, "all fields are required")
		return
	}

	existing, err := svc.Store.GetUserByEmail(req.Email)
	if err != nil {
		logger.Error().Err(err).Msg("failed to look up user")
		WriteError(w, http.StatusInternalServerError, "failed to register user")
		return
	}
	if existing != nil {
		WriteError(w, http.StatusBadRequest, "user already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error().Err(err).Msg("failed to hash password")
		WriteError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleViewer
	}

	user, err := svc.Store.CreateUser(&models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to create user")
		WriteError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	logger.Info().Str("user_id", user.ID.String()).Msg("user registered")
	WriteResponse(w, http.StatusOK, struct {
		Message string      `json:"message"`
		User    models.User `json:"user"`
	}{Message: "User registered successfully", User: *user})
}

// LoginService verifies the password and issues a signed token carrying the
// user's id and role. The response includes the user's mandal memberships.
func LoginService(svc *Service, w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn().Err(err).Msg("invalid login payload")
		WriteError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if req.Email == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, "all fields are required")
		return
	}

	user, err := svc.Store.GetUserByEmail(req.Email)
	if err != nil {
		logger.Error().Err(err).Msg("failed to look up user")
		WriteError(w, http.StatusInternalServerError, "failed to log in")
		return
	}
	// Same message whether the email or the password is wrong
	if user == nil {
		WriteError(w, http.StatusBadRequest, "invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid email or password")
		return
	}

	mandals, err := svc.Store.UserMandals(user.ID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to retrieve memberships")
		WriteError(w, http.StatusInternalServerError, "failed to log in")
		return
	}
	if mandals == nil {
		mandals = []models.MandalWithJoinedAt{}
	}

	token, err := svc.Verifier.IssueToken(user.ID, user.Role)
	if err != nil {
		logger.Error().Err(err).Msg("failed to issue token")
		WriteError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	logger.Info().Str("user_id", user.ID.String()).Msg("user logged in")
	WriteResponse(w, http.StatusOK, models.LoginResponse{
		Message: "Login successful",
		Token:   token,
		User: models.LoginUser{
			ID:      user.ID,
			Email:   user.Email,
			Role:    user.Role,
			Mandals: mandals,
		},
	})
}
