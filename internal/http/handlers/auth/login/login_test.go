package login

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/newsletter-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/newsletter-service/internal/services/auth"
)

// MockService реализует интерфейс login.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Login(rawPassword string) (string, error) {
	args := m.Called(rawPassword)
	return args.String(0), args.Error(1)
}

func TestLoginHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный вход",
			body: `{"password":"secret"}`,
			setupMock: func(m *MockService) {
				m.On("Login", "secret").Return("signed-token", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"redirect_url":"/dashboard"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"password"`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"invalid request body"`,
		},
		{
			name:           "пустой пароль",
			body:           `{"password":""}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Password is a required field`,
		},
		{
			name: "неверный пароль",
			body: `{"password":"wrong"}`,
			setupMock: func(m *MockService) {
				m.On("Login", "wrong").Return("", auth.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"invalid credentials"`,
		},
		{
			name: "ошибка сервиса",
			body: `{"password":"secret"}`,
			setupMock: func(m *MockService) {
				m.On("Login", "secret").Return("", errors.New("signing error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"could not log in"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService, 24*time.Hour, false)

			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}

func TestLoginHandler_SetsAuthCookie(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	mockService := new(MockService)
	mockService.On("Login", "secret").Return("signed-token", nil)

	handler := New(logger, mockService, 24*time.Hour, false)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"password":"secret"}`))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var authCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middlewarectx.AuthCookieName {
			authCookie = c
		}
	}
	require.NotNil(t, authCookie)
	assert.Equal(t, "signed-token", authCookie.Value)
	assert.True(t, authCookie.HttpOnly)
	assert.Equal(t, int((24 * time.Hour).Seconds()), authCookie.MaxAge)
}
