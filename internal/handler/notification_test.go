package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Mivy_Go/internal/notification"
)

func TestNotificationHandlers_Lifecycle(t *testing.T) {
	store := notification.NewMemoryStore(16, time.Hour)
	h := NewNotificationHandlers(store)
	params := map[string]string{"fid": "42"}

	w := httptest.NewRecorder()
	h.HandleGet()(w, newRequest(http.MethodGet, "/", nil, params, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":null`)

	details := notification.Details{URL: "https://api.example.com/notify", Token: "tok-1"}
	w = httptest.NewRecorder()
	h.HandlePut()(w, newRequest(http.MethodPut, "/", details, params, nil))
	require.Equal(t, http.StatusOK, w.Code)

	got, err := store.Get(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, details, *got)

	w = httptest.NewRecorder()
	h.HandleList()(w, newRequest(http.MethodGet, "/", nil, nil, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"fid":42`)

	w = httptest.NewRecorder()
	h.HandleDelete()(w, newRequest(http.MethodDelete, "/", nil, params, nil))
	require.Equal(t, http.StatusOK, w.Code)

	got, err = store.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNotificationHandlers_Invalid(t *testing.T) {
	h := NewNotificationHandlers(notification.NewMemoryStore(16, time.Hour))

	t.Run("Bad fid", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.HandleGet()(w, newRequest(http.MethodGet, "/", nil, map[string]string{"fid": "x"}, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.HandlePut()(w, newRequest(http.MethodPut, "/", notification.Details{URL: "https://a.example"}, map[string]string{"fid": "1"}, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"token":"This field is required"`)
	})
}
