package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hallway-backend/internal/model"
	"hallway-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Login(ctx context.Context, referenceCode, password string) (*model.User, string, error) {
	args := m.Called(ctx, referenceCode, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *mockAuthService) AdminLogin(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func newAuthTestRouter(as service.AuthServiceI) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	a := router.Group("/api/v1")
	NewAuthRoutes(a, as)

	return router
}

func doLogin(router *gin.Engine, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLogin_Success(t *testing.T) {
	userID := uuid.New()

	as := &mockAuthService{}
	as.On("Login", mock.Anything, "HW26ZXCG", "correct-horse").
		Return(&model.User{
			ID:            userID,
			ReferenceCode: "HW26ZXCG",
			Email:         "jane@example.com",
			FullName:      "Jane Volunteer",
			PasswordHash:  "never-shown",
		}, "session-token", nil)

	router := newAuthTestRouter(as)
	w := doLogin(router, "/api/v1/auth/login",
		[]byte(`{"referenceCode":"HW26ZXCG","password":"correct-horse"}`))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string           `json:"token"`
		User  model.PublicUser `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "session-token", resp.Token)
	assert.Equal(t, userID, resp.User.ID)
	assert.Equal(t, "HW26ZXCG", resp.User.ReferenceCode)
	assert.Equal(t, "jane@example.com", resp.User.Email)
	assert.Equal(t, "Jane Volunteer", resp.User.FullName)
	assert.NotContains(t, w.Body.String(), "never-shown")
}

// A wrong password and an unknown code must produce identical response bodies.
func TestLogin_GenericUnauthorizedBody(t *testing.T) {
	as := &mockAuthService{}
	as.On("Login", mock.Anything, "MISSING1", "whatever").
		Return(nil, "", service.ErrInvalidCredentials)
	as.On("Login", mock.Anything, "HW26ZXCG", "wrong").
		Return(nil, "", service.ErrInvalidCredentials)

	router := newAuthTestRouter(as)

	unknownCode := doLogin(router, "/api/v1/auth/login",
		[]byte(`{"referenceCode":"MISSING1","password":"whatever"}`))
	wrongPassword := doLogin(router, "/api/v1/auth/login",
		[]byte(`{"referenceCode":"HW26ZXCG","password":"wrong"}`))

	assert.Equal(t, http.StatusUnauthorized, unknownCode.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, unknownCode.Body.String(), wrongPassword.Body.String())
}

func TestLogin_InternalError(t *testing.T) {
	as := &mockAuthService{}
	as.On("Login", mock.Anything, "HW26ZXCG", "correct-horse").
		Return(nil, "", assert.AnError)

	router := newAuthTestRouter(as)
	w := doLogin(router, "/api/v1/auth/login",
		[]byte(`{"referenceCode":"HW26ZXCG","password":"correct-horse"}`))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
}

func TestAdminLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		as := &mockAuthService{}
		as.On("AdminLogin", mock.Anything, "controlroom", "admin-pass").
			Return("admin-token", nil)

		router := newAuthTestRouter(as)
		w := doLogin(router, "/api/v1/admin/login",
			[]byte(`{"username":"controlroom","password":"admin-pass"}`))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "admin-token")
	})

	t.Run("Invalid credentials", func(t *testing.T) {
		as := &mockAuthService{}
		as.On("AdminLogin", mock.Anything, "controlroom", "wrong").
			Return("", service.ErrInvalidCredentials)

		router := newAuthTestRouter(as)
		w := doLogin(router, "/api/v1/admin/login",
			[]byte(`{"username":"controlroom","password":"wrong"}`))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials")
	})
}
