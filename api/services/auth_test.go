package services

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/seva-sangam/donation-services/internal/authn"
	"github.com/seva-sangam/donation-services/models"
)

func newTestService(store *MockDonationStore) *Service {
	return &Service{
		Store:    store,
		Verifier: authn.NewVerifier("test-secret", time.Hour),
	}
}

func TestRegisterService(t *testing.T) {
	mockStore := new(MockDonationStore)
	svc := newTestService(mockStore)

	mockStore.On("GetUserByEmail", "ramesh@example.com").Return(nil, nil)
	mockStore.On("CreateUser", mock.AnythingOfType("*models.User")).
		Return(&models.User{Name: "Ramesh", Email: "ramesh@example.com", Role: models.RoleViewer}, nil)

	body, _ := json.Marshal(models.RegisterRequest{
		Name:     "Ramesh",
		Email:    "ramesh@example.com",
		Password: "secret123",
	})
	r := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	w := httptest.NewRecorder()

	RegisterService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	raw, _ := io.ReadAll(res.Body)
	var resp struct {
		Message string      `json:"message"`
		User    models.User `json:"user"`
	}
	assert.NoError(t, json.Unmarshal(raw, &resp))
	assert.Equal(t, "ramesh@example.com", resp.User.Email)
	assert.Equal(t, models.RoleViewer, resp.User.Role)
	assert.NotContains(t, string(raw), "passwordHash")

	mockStore.AssertExpectations(t)
}

func TestRegisterServiceDuplicateEmail(t *testing.T) {
	mockStore := new(MockDonationStore)
	svc := newTestService(mockStore)

	mockStore.On("GetUserByEmail", "taken@example.com").
		Return(&models.User{Email: "taken@example.com"}, nil)

	body, _ := json.Marshal(models.RegisterRequest{
		Name:     "Someone",
		Email:    "taken@example.com",
		Password: "secret123",
	})
	r := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	w := httptest.NewRecorder()

	RegisterService(svc, w, r)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
	mockStore.AssertNotCalled(t, "CreateUser", mock.Anything)
}

func TestRegisterServiceMissingFields(t *testing.T) {
	mockStore := new(MockDonationStore)
	svc := newTestService(mockStore)

	body, _ := json.Marshal(models.RegisterRequest{Name: "No Email"})
	r := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	w := httptest.NewRecorder()

	RegisterService(svc, w, r)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestLoginService(t *testing.T) {
	mockStore := new(MockDonationStore)
	svc := newTestService(mockStore)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	user := &models.User{
		Email:        "ramesh@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	mockStore.On("GetUserByEmail", "ramesh@example.com").Return(user, nil)
	mockStore.On("UserMandals", user.ID).Return([]models.MandalWithJoinedAt{}, nil)

	body, _ := json.Marshal(models.LoginRequest{Email: "ramesh@example.com", Password: "secret123"})
	r := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()

	LoginService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var resp models.LoginResponse
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)

	// The issued token must round-trip through the verifier
	claims, err := svc.Verifier.ParseClaims(resp.Token)
	assert.NoError(t, err)
	assert.True(t, claims.IsAdmin())

	mockStore.AssertExpectations(t)
}

func TestLoginServiceWrongPassword(t *testing.T) {
	mockStore := new(MockDonationStore)
	svc := newTestService(mockStore)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	mockStore.On("GetUserByEmail", "ramesh@example.com").
		Return(&models.User{Email: "ramesh@example.com", PasswordHash: string(hash)}, nil)

	body, _ := json.Marshal(models.LoginRequest{Email: "ramesh@example.com", Password: "wrong"})
	r := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()

	LoginService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var resp models.ErrorResponse
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&resp))
	assert.Equal(t, "invalid email or password", resp.Error)
}

func TestLoginServiceUnknownEmail(t *testing.T) {
	mockStore := new(MockDonationStore)
	svc := newTestService(mockStore)

	mockStore.On("GetUserByEmail", "nobody@example.com").Return(nil, nil)

	body, _ := json.Marshal(models.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	r := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()

	LoginService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	// Unknown email and wrong password must be indistinguishable
	var resp models.ErrorResponse
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&resp))
	assert.Equal(t, "invalid email or password", resp.Error)
}
