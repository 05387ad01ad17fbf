package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDBPool mocks the database.Pool interface
type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}

func TestHandleHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	HandleHealthz().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"status":"ok"}`+"\n", w.Body.String())
}

func TestHandleReadyz(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantBody   string
	}{
		{"database connected", nil, http.StatusOK, `"status":"ok"`},
		{"connection failed", assert.AnError, http.StatusServiceUnavailable, `"message":"database connection failed"`},
		{"ping timeout", context.DeadlineExceeded, http.StatusServiceUnavailable, `"status":"unavailable"`},
		{"connection refused", errors.New("connection refused"), http.StatusServiceUnavailable, `"status":"unavailable"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB := &MockDBPool{}
			mockDB.On("Ping", mock.Anything).Return(tt.pingErr)

			req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
			w := httptest.NewRecorder()

			HandleReadyz(mockDB).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			mockDB.AssertExpectations(t)
		})
	}
}

func TestHandleVersion(t *testing.T) {
	t.Setenv("VERSION", "1.2.3")

	w := httptest.NewRecorder()
	HandleVersion().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var info VersionInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
}
