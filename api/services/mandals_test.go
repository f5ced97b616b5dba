package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/seva-sangam/donation-services/api/middleware"
	"github.com/seva-sangam/donation-services/internal/authn"
	"github.com/seva-sangam/donation-services/models"
)

func withClaims(r *http.Request, userID uuid.UUID, role string) *http.Request {
	claims := authn.Claims{UserID: userID, Role: role}
	return r.WithContext(context.WithValue(r.Context(), middleware.ClaimsKey, claims))
}

func TestCreateMandalService(t *testing.T) {
	mockStore := new(MockDonationStore)
	svc := newTestService(mockStore)
	userID := uuid.New()

	mockStore.On("GetMandalByName", "Ganesh Mandal").Return(nil, nil)
	mockStore.On("CreateMandal", mock.AnythingOfType("*models.Mandal")).
		Return(&models.Mandal{ID: uuid.New(), Name: "Ganesh Mandal"}, nil)

	body, _ := json.Marshal(models.CreateMandalRequest{Name: "Ganesh Mandal", Password: "mandal-pass"})
	r := withClaims(httptest.NewRequest(http.MethodPost, "/mandals", bytes.NewReader(body)), userID, models.RoleAdmin)
	w := httptest.NewRecorder()

	CreateMandalService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var resp models.Mandal
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&resp))
	assert.Equal(t, "Ganesh Mandal", resp.Name)

	mockStore.AssertExpectations(t)
}

func TestCreateMandalServiceRequiresAdmin(t *testing.T) {
	mockStore := new(MockDonationStore)
	svc := newTestService(mockStore)

	body, _ := json.Marshal(models.CreateMandalRequest{Name: "Ganesh Mandal", Password: "mandal-pass"})
	r := withClaims(httptest.NewRequest(http.MethodPost, "/mandals", bytes.NewReader(body)), uuid.New(), models.RoleViewer)
	w := httptest.NewRecorder()

	CreateMandalService(svc, w, r)

	assert.Equal(t, http.StatusForbidden, w.Result().StatusCode)
	mockStore.AssertNotCalled(t, "CreateMandal", mock.Anything)
}

func TestCreateMandalServiceDuplicateName(t *testing.T) {
	mockStore := new(MockDonationStore)
	svc := newTestService(mockStore)

	mockStore.On("GetMandalByName", "Ganesh Mandal").
		Return(&models.Mandal{ID: uuid.New(), Name: "Ganesh Mandal"}, nil)

	body, _ := json.Marshal(models.CreateMandalRequest{Name: "Ganesh Mandal", Password: "mandal-pass"})
	r := withClaims(httptest.NewRequest(http.MethodPost, "/mandals", bytes.NewReader(body)), uuid.New(), models.RoleAdmin)
	w := httptest.NewRecorder()

	CreateMandalService(svc, w, r)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
	mockStore.AssertNotCalled(t, "CreateMandal", mock.Anything)
}

func TestJoinMandalService(t *testing.T) {
	mockStore := new(MockDonationStore)
	svc := newTestService(mockStore)
	userID := uuid.New()
	mandalID := uuid.New()

	hash, _ := bcrypt.GenerateFromPassword([]byte("mandal-pass"), bcrypt.DefaultCost)
	mandal := &models.Mandal{ID: mandalID, Name: "Ganesh Mandal", PasswordHash: string(hash)}

	mockStore.On("GetMandalByName", "Ganesh Mandal").Return(mandal, nil)
	mockStore.On("HasMandalAccess", userID, mandalID).Return(false, nil)
	mockStore.On("AddMembership", userID, mandalID).Return(nil)

	body, _ := json.Marshal(models.JoinMandalRequest{MandalName: "Ganesh Mandal", Password: "mandal-pass"})
	r := withClaims(httptest.NewRequest(http.MethodPost, "/mandals/join", bytes.NewReader(body)), userID, models.RoleViewer)
	w := httptest.NewRecorder()

	JoinMandalService(svc, w, r)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	mockStore.AssertExpectations(t)
}

func TestJoinMandalServiceWrongPassword(t *testing.T) {
	mockStore := new(MockDonationStore)
	svc := newTestService(mockStore)
	userID := uuid.New()

	hash, _ := bcrypt.GenerateFromPassword([]byte("mandal-pass"), bcrypt.DefaultCost)
	mockStore.On("GetMandalByName", "Ganesh Mandal").
		Return(&models.Mandal{ID: uuid.New(), Name: "Ganesh Mandal", PasswordHash: string(hash)}, nil)

	body, _ := json.Marshal(models.JoinMandalRequest{MandalName: "Ganesh Mandal", Password: "wrong"})
	r := withClaims(httptest.NewRequest(http.MethodPost, "/mandals/join", bytes.NewReader(body)), userID, models.RoleViewer)
	w := httptest.NewRecorder()

	JoinMandalService(svc, w, r)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
	mockStore.AssertNotCalled(t, "AddMembership", mock.Anything, mock.Anything)
}

func TestJoinMandalServiceUnknownMandal(t *testing.T) {
	mockStore := new(MockDonationStore)
	svc := newTestService(mockStore)

	mockStore.On("GetMandalByName", "Nowhere").Return(nil, nil)

	body, _ := json.Marshal(models.JoinMandalRequest{MandalName: "Nowhere", Password: "x"})
	r := withClaims(httptest.NewRequest(http.MethodPost, "/mandals/join", bytes.NewReader(body)), uuid.New(), models.RoleViewer)
	w := httptest.NewRecorder()

	JoinMandalService(svc, w, r)

	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}

func TestJoinMandalServiceAlreadyMember(t *testing.T) {
	mockStore := new(MockDonationStore)
	svc := newTestService(mockStore)
	userID := uuid.New()
	mandalID := uuid.New()

	hash, _ := bcrypt.GenerateFromPassword([]byte("mandal-pass"), bcrypt.DefaultCost)
	mockStore.On("GetMandalByName", "Ganesh Mandal").
		Return(&models.Mandal{ID: mandalID, Name: "Ganesh Mandal", PasswordHash: string(hash)}, nil)
	mockStore.On("HasMandalAccess", userID, mandalID).Return(true, nil)

	body, _ := json.Marshal(models.JoinMandalRequest{MandalName: "Ganesh Mandal", Password: "mandal-pass"})
	r := withClaims(httptest.NewRequest(http.MethodPost, "/mandals/join", bytes.NewReader(body)), userID, models.RoleViewer)
	w := httptest.NewRecorder()

	JoinMandalService(svc, w, r)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
	mockStore.AssertNotCalled(t, "AddMembership", mock.Anything, mock.Anything)
}

func TestMyMandalsService(t *testing.T) {
	mockStore := new(MockDonationStore)
	svc := newTestService(mockStore)
	userID := uuid.New()

	mockStore.On("UserMandals", userID).Return([]models.MandalWithJoinedAt{
		{ID: uuid.New(), Name: "Ganesh Mandal"},
	}, nil)

	r := withClaims(httptest.NewRequest(http.MethodGet, "/mandals/my-mandals", nil), userID, models.RoleViewer)
	w := httptest.NewRecorder()

	MyMandalsService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var resp []models.MandalWithJoinedAt
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&resp))
	assert.Len(t, resp, 1)
}

func TestLeaveMandalService(t *testing.T) {
	mockStore := new(MockDonationStore)
	svc := newTestService(mockStore)
	userID := uuid.New()
	mandalID := uuid.New()

	mockStore.On("RemoveMembership", userID, mandalID).Return(true, nil)

	r := withClaims(httptest.NewRequest(http.MethodDelete, "/mandals/"+mandalID.String()+"/leave", nil), userID, models.RoleViewer)
	r = mux.SetURLVars(r, map[string]string{"mandal-id": mandalID.String()})
	w := httptest.NewRecorder()

	LeaveMandalService(svc, w, r)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	mockStore.AssertExpectations(t)
}

func TestLeaveMandalServiceNotMember(t *testing.T) {
	mockStore := new(MockDonationStore)
	svc := newTestService(mockStore)
	userID := uuid.New()
	mandalID := uuid.New()

	mockStore.On("RemoveMembership", userID, mandalID).Return(false, nil)

	r := withClaims(httptest.NewRequest(http.MethodDelete, "/mandals/"+mandalID.String()+"/leave", nil), userID, models.RoleViewer)
	r = mux.SetURLVars(r, map[string]string{"mandal-id": mandalID.String()})
	w := httptest.NewRecorder()

	LeaveMandalService(svc, w, r)

	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}
