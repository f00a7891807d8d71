package removebatch

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockService реализует интерфейс removebatch.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) RemoveMany(ctx context.Context, ids []int) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

func TestRemoveBatchHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное удаление нескольких записей",
			body: `{"ids":[1,2,3]}`,
			setupMock: func(m *MockService) {
				m.On("RemoveMany", mock.Anything, []int{1, 2, 3}).Return(3, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"deleted_count":3`,
		},
		{
			name: "неизвестные id пропускаются",
			body: `{"ids":[1,999]}`,
			setupMock: func(m *MockService) {
				m.On("RemoveMany", mock.Anything, []int{1, 999}).Return(1, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"deleted_count":1`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"ids":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"invalid request body"`,
		},
		{
			name:           "пустой список",
			body:           `{"ids":[]}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"ids list must not be empty"`,
		},
		{
			name: "ошибка сервиса",
			body: `{"ids":[1]}`,
			setupMock: func(m *MockService) {
				m.On("RemoveMany", mock.Anything, []int{1}).Return(0, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"failed to delete subscribers"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/delete-multiple-emails", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
