package handler

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chiefbiiko/lauth/internal/mocks"
	"github.com/chiefbiiko/lauth/internal/model"
	"github.com/chiefbiiko/lauth/internal/testutil"
)

func newTestApp(service *mocks.AuthService, reporter *mocks.Reporter) *fiber.App {
	h := NewAuth(service, reporter, testutil.MakeNoopLogger())

	app := fiber.New()
	app.Post("/signup", h.SignUp)
	app.Post("/signin", h.SignIn)
	app.Post("/refresh", h.Refresh)

	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func basicAuth(email, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(email+":"+password))
}

func TestAuth_SignUp(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{"created", `{"email":"chief@it.com","password":"fraud419"}`, nil, fiber.StatusCreated},
		{"invalid input", `{"email":"@it.wtf","password":"fraud419"}`, model.ErrInvalidInput, fiber.StatusBadRequest},
		{"duplicate", `{"email":"chief@it.com","password":"fraud419"}`, model.ErrEmailTaken, fiber.StatusConflict},
		{"null document", `null`, nil, fiber.StatusBadRequest},
		{"store down", `{"email":"chief@it.com","password":"fraud419"}`, errors.New("connection refused"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mocks.AuthService{}
			reporter := &mocks.Reporter{}
			service.On("SignUp", mock.Anything, mock.Anything).Return(tt.serviceErr).Maybe()
			reporter.On("Report", mock.Anything, mock.Anything).Maybe()

			app := newTestApp(service, reporter)
			resp, err := app.Test(jsonRequest(fiber.MethodPost, "/signup", tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus == fiber.StatusCreated {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.NotContains(t, string(body), "password")
				assert.NotContains(t, string(body), "salt")
			}
		})
	}
}

func TestAuth_SignUp_UnparsableBodyIsReported(t *testing.T) {
	service := &mocks.AuthService{}
	reporter := &mocks.Reporter{}
	reporter.On("Report", mock.Anything, mock.Anything).Once()

	app := newTestApp(service, reporter)
	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/signup", `{"email":`))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	reporter.AssertExpectations(t)
	service.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything)
}

func TestAuth_SignIn(t *testing.T) {
	pair := model.TokenPair{AccessToken: "a.b.c", RefreshToken: "d.e.f"}

	tests := []struct {
		name       string
		authHeader string
		serviceErr error
		wantStatus int
	}{
		{"ok", basicAuth("u@it.wtf", "weakweak"), nil, fiber.StatusOK},
		{"lowercase scheme ok", "basic " + base64.StdEncoding.EncodeToString([]byte("u@it.wtf:weakweak")), nil, fiber.StatusOK},
		{"missing header", "", nil, fiber.StatusBadRequest},
		{"wrong scheme", "Bearer sometoken", nil, fiber.StatusBadRequest},
		{"bad base64", "Basic %%%", nil, fiber.StatusBadRequest},
		{"no colon", "Basic " + base64.StdEncoding.EncodeToString([]byte("nocolon")), nil, fiber.StatusBadRequest},
		{"bad credentials", basicAuth("u@it.wtf", "wrongpass"), model.ErrInvalidCredentials, fiber.StatusUnauthorized},
		{"invalid input", basicAuth("@it.wtf", "weakweak"), model.ErrInvalidInput, fiber.StatusBadRequest},
		{"store down", basicAuth("u@it.wtf", "weakweak"), errors.New("connection refused"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mocks.AuthService{}
			reporter := &mocks.Reporter{}
			service.On("SignIn", mock.Anything, mock.Anything, mock.Anything).Return(pair, tt.serviceErr).Maybe()
			reporter.On("Report", mock.Anything, mock.Anything).Maybe()

			app := newTestApp(service, reporter)
			req := httptest.NewRequest(fiber.MethodPost, "/signin", nil)
			if tt.authHeader != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.authHeader)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus == fiber.StatusOK {
				var got model.TokenPair
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
				assert.Equal(t, pair, got)
			}
		})
	}
}

func TestAuth_SignIn_SplitsAtFirstColon(t *testing.T) {
	service := &mocks.AuthService{}
	service.On("SignIn", mock.Anything, "u@it.wtf", "pass:with:colons").
		Return(model.TokenPair{}, nil).Once()

	app := newTestApp(service, &mocks.Reporter{})
	req := httptest.NewRequest(fiber.MethodPost, "/signin", nil)
	req.Header.Set(fiber.HeaderAuthorization, basicAuth("u@it.wtf", "pass:with:colons"))

	_, err := app.Test(req)
	require.NoError(t, err)
	service.AssertExpectations(t)
}

func TestAuth_Refresh(t *testing.T) {
	pair := model.TokenPair{AccessToken: "a.b.c", RefreshToken: "d.e.f"}

	tests := []struct {
		name       string
		authHeader string
		serviceErr error
		wantStatus int
	}{
		{"ok", "Bearer refresh.tok.en", nil, fiber.StatusOK},
		{"missing header", "", nil, fiber.StatusBadRequest},
		{"wrong scheme", basicAuth("u@it.wtf", "weakweak"), nil, fiber.StatusBadRequest},
		{"invalid token", "Bearer bogus", model.ErrTokenInvalid, fiber.StatusUnauthorized},
		{"wrong subtype", "Bearer access.tok.en", model.ErrWrongTokenType, fiber.StatusForbidden},
		{"store down", "Bearer refresh.tok.en", errors.New("connection refused"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mocks.AuthService{}
			reporter := &mocks.Reporter{}
			service.On("Refresh", mock.Anything, mock.Anything).Return(pair, tt.serviceErr).Maybe()
			reporter.On("Report", mock.Anything, mock.Anything).Maybe()

			app := newTestApp(service, reporter)
			req := httptest.NewRequest(fiber.MethodPost, "/refresh", nil)
			if tt.authHeader != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.authHeader)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
