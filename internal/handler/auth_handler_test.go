package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "fieldserv/internal/errors"
	"fieldserv/internal/handler"
	"fieldserv/internal/model"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

func TestAuthHandler_Login_JSONAndFormAreEquivalent(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{
			name:        "json body",
			contentType: echo.MIMEApplicationJSON,
			body:        `{"email":"a@x.com","password":"secret"}`,
		},
		{
			name:        "form body",
			contentType: echo.MIMEApplicationForm,
			body:        url.Values{"email": {"a@x.com"}, "password": {"secret"}}.Encode(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAuth := new(MockAuthService)
			mockAuth.On("Login", mock.Anything, "a@x.com", "secret").
				Return("signed-token", &model.User{ID: 1, Role: model.RoleStaff}, nil)

			h := handler.NewAuthHandler(mockAuth)
			e := newEcho()

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, tt.contentType)
			rec := httptest.NewRecorder()

			err := h.Login(e.NewContext(req, rec))
			assert.NoError(t, err)
			assert.Equal(t, http.StatusOK, rec.Code)

			var resp handler.TokenResponse
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			// Both encodings reach the service with identical credentials
			// and produce identical responses.
			assert.Equal(t, "signed-token", resp.AccessToken)
			assert.Equal(t, "bearer", resp.TokenType)
			assert.Equal(t, "STAFF", resp.Role)

			mockAuth.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockAuth.On("Login", mock.Anything, "a@x.com", "wrong").
		Return("", nil, apperrors.ErrInvalidCredentials)

	h := handler.NewAuthHandler(mockAuth)
	e := newEcho()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@x.com","password":"wrong"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.Login(e.NewContext(req, rec))
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestAuthHandler_Login_RelaxedEmail(t *testing.T) {
	// Login accepts any non-empty email string; only user creation
	// validates the format.
	mockAuth := new(MockAuthService)
	mockAuth.On("Login", mock.Anything, "not-an-email", "secret").
		Return("signed-token", &model.User{ID: 2, Role: model.RoleAdmin}, nil)

	h := handler.NewAuthHandler(mockAuth)
	e := newEcho()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"not-an-email","password":"secret"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.Login(e.NewContext(req, rec))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	mockAuth.AssertExpectations(t)
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := handler.NewAuthHandler(new(MockAuthService))
	e := newEcho()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@x.com"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.Login(e.NewContext(req, rec))
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Code)
}
