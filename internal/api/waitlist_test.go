package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hallway-backend/internal/middleware"
	"hallway-backend/internal/model"
	"hallway-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testAPIKey = "test-api-key"

type mockWaitlistService struct {
	mock.Mock
}

func (m *mockWaitlistService) Signup(ctx context.Context, email, referralCode string) (*model.WaitlistEntry, error) {
	args := m.Called(ctx, email, referralCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WaitlistEntry), args.Error(1)
}

func newWaitlistTestRouter(ws service.WaitlistServiceI) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true

	a := router.Group("/api/v1")
	NewWaitlistRoutes(a, ws, testAPIKey)

	return router
}

func doSignup(router *gin.Engine, method, apiKey string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/v1/waitlist", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set(middleware.APIKeyHeader, apiKey)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestWaitlistSignup_MissingAPIKey(t *testing.T) {
	ws := &mockWaitlistService{}
	router := newWaitlistTestRouter(ws)

	w := doSignup(router, http.MethodPost, "", []byte(`{"email":"jane@example.com"}`))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	ws.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything, mock.Anything)
}

func TestWaitlistSignup_WrongAPIKey(t *testing.T) {
	ws := &mockWaitlistService{}
	router := newWaitlistTestRouter(ws)

	w := doSignup(router, http.MethodPost, "nope", []byte(`{"email":"jane@example.com"}`))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	ws.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything, mock.Anything)
}

func TestWaitlistSignup_MethodNotAllowed(t *testing.T) {
	ws := &mockWaitlistService{}
	router := newWaitlistTestRouter(ws)

	w := doSignup(router, http.MethodGet, testAPIKey, nil)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestWaitlistSignup_Success(t *testing.T) {
	entryID := uuid.New()
	code := "HW26ZXCG"

	ws := &mockWaitlistService{}
	ws.On("Signup", mock.Anything, "jane@example.com", code).
		Return(&model.WaitlistEntry{
			ID:           entryID,
			Email:        "jane@example.com",
			ReferralCode: &code,
			Status:       model.WaitlistStatusPending,
			CreatedAt:    time.Now(),
		}, nil)

	router := newWaitlistTestRouter(ws)
	w := doSignup(router, http.MethodPost, testAPIKey,
		[]byte(`{"email":"jane@example.com","referral_code":"HW26ZXCG"}`))

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool                  `json:"success"`
		Data    WaitlistEntryResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, entryID, resp.Data.ID)
	assert.Equal(t, "jane@example.com", resp.Data.Email)
	assert.Equal(t, model.WaitlistStatusPending, resp.Data.Status)
	ws.AssertExpectations(t)
}

func TestWaitlistSignup_InvalidEmail(t *testing.T) {
	ws := &mockWaitlistService{}
	ws.On("Signup", mock.Anything, "not-an-email", "").
		Return(nil, service.ErrInvalidEmail)

	router := newWaitlistTestRouter(ws)
	w := doSignup(router, http.MethodPost, testAPIKey, []byte(`{"email":"not-an-email"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email format")
}

func TestWaitlistSignup_MissingEmail(t *testing.T) {
	ws := &mockWaitlistService{}
	ws.On("Signup", mock.Anything, "", "").
		Return(nil, service.ErrEmailRequired)

	router := newWaitlistTestRouter(ws)
	w := doSignup(router, http.MethodPost, testAPIKey, []byte(`{}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email is required")
}

func TestWaitlistSignup_DuplicateEmail(t *testing.T) {
	ws := &mockWaitlistService{}
	ws.On("Signup", mock.Anything, "dup@example.com", "").
		Return(nil, service.ErrAlreadyRegistered)

	router := newWaitlistTestRouter(ws)
	w := doSignup(router, http.MethodPost, testAPIKey, []byte(`{"email":"dup@example.com"}`))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestWaitlistSignup_StoreFailure(t *testing.T) {
	ws := &mockWaitlistService{}
	ws.On("Signup", mock.Anything, "jane@example.com", "").
		Return(nil, assert.AnError)

	router := newWaitlistTestRouter(ws)
	w := doSignup(router, http.MethodPost, testAPIKey, []byte(`{"email":"jane@example.com"}`))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to add to waitlist")
}
