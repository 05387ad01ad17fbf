package storage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Mivy_Go/internal/domain"
)

func TestUpload_Success(t *testing.T) {
	var got gatewayRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get(HeaderAuthorization))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success":  true,
			"cid":      "bafy-root",
			"pieceCid": "baga-piece",
			"size":     11,
		})
	}))
	defer srv.Close()

	client := NewClient(Config{GatewayURL: srv.URL, Token: "secret"})
	res, err := client.Upload(context.Background(), UploadInput{Content: "# Hello\nhi"})
	require.NoError(t, err)
	assert.Equal(t, &UploadResult{CID: "bafy-root", PieceCID: "baga-piece", Size: 11}, res)
	assert.Equal(t, DefaultTitle, got.Title)
	assert.Equal(t, ContentTypeMD, got.ContentType)
}

func TestUpload_CIDFallsBackToPieceCID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"pieceCid":"baga-piece"}`))
	}))
	defer srv.Close()

	res, err := NewClient(Config{GatewayURL: srv.URL}).Upload(context.Background(), UploadInput{Content: "abc", Title: "t"})
	require.NoError(t, err)
	assert.Equal(t, "baga-piece", res.CID)
	assert.Equal(t, int64(3), res.Size)
}

func TestUpload_InputErrors(t *testing.T) {
	_, err := NewClient(Config{GatewayURL: "http://unused"}).Upload(context.Background(), UploadInput{})
	assert.ErrorIs(t, err, domain.ErrEmptyContent)

	_, err = NewClient(Config{}).Upload(context.Background(), UploadInput{Content: "x"})
	assert.ErrorIs(t, err, domain.ErrStorageNotConfigured)
}

func TestUpload_RejectedDoesNotTripBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too large", http.StatusRequestEntityTooLarge)
	}))
	defer srv.Close()

	client := NewClient(Config{GatewayURL: srv.URL})
	for i := 0; i < BreakerFailureThreshold+2; i++ {
		_, err := client.Upload(context.Background(), UploadInput{Content: "x"})
		assert.ErrorIs(t, err, domain.ErrStorageUploadRejected)
	}
	assert.Equal(t, gobreaker.StateClosed, client.State())
}

func TestUpload_BreakerOpensOnGatewayFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(Config{GatewayURL: srv.URL})
	for i := 0; i < BreakerFailureThreshold; i++ {
		_, err := client.Upload(context.Background(), UploadInput{Content: "x"})
		assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	}
	assert.Equal(t, gobreaker.StateOpen, client.State())

	_, err := client.Upload(context.Background(), UploadInput{Content: "x"})
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.Equal(t, int32(BreakerFailureThreshold), atomic.LoadInt32(&calls), "open breaker short-circuits")
}
