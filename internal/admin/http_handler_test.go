package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"tourapi/internal/cache"
	"tourapi/internal/httpx"
)

func newStores() (*cache.Store[string], *cache.Store[int]) {
	details := cache.New[string]("detail", cache.Options{})
	details.Set("a", "1")
	details.Set("b", "2")
	results := cache.New[int]("tour-result", cache.Options{})
	results.Set("trip_1_20", 20)
	return details, results
}

func TestHTTPHandler_Stats(t *testing.T) {
	details, results := newStores()
	_, _ = details.Get("a")
	_, _ = details.Get("missing")
	handler := NewHTTPHandler("s3cret", zap.NewNop(), details, results)

	req := httptest.NewRequest(http.MethodGet, "/internal/cache", nil)
	req.Header.Set("X-Internal-Secret", "s3cret")
	w := httptest.NewRecorder()
	handler.Stats(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp statsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Caches, 2)
	assert.Equal(t, "detail", resp.Caches[0].Name)
	assert.Equal(t, 2, resp.Caches[0].Entries)
	assert.Equal(t, int64(1), resp.Caches[0].Hits)
	assert.Equal(t, int64(1), resp.Caches[0].Misses)
	assert.Equal(t, "tour-result", resp.Caches[1].Name)
	assert.Equal(t, 1, resp.Caches[1].Entries)
}

func TestHTTPHandler_Clear(t *testing.T) {
	details, results := newStores()
	core, logs := observer.New(zap.InfoLevel)
	handler := NewHTTPHandler("s3cret", zap.New(core), details, results)

	req := httptest.NewRequest(http.MethodDelete, "/internal/cache", nil)
	req.Header.Set("X-Internal-Secret", "s3cret")
	w := httptest.NewRecorder()
	handler.Clear(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"cleared":{"detail":2,"tour-result":1}}`, w.Body.String())
	assert.Equal(t, 0, details.Len())
	assert.Equal(t, 0, results.Len())
	assert.Equal(t, 1, logs.FilterMessage("caches cleared").Len())
}

func TestHTTPHandler_Unauthorized(t *testing.T) {
	details, results := newStores()
	handler := NewHTTPHandler("s3cret", zap.NewNop(), details, results)

	for _, secret := range []string{"", "wrong"} {
		req := httptest.NewRequest(http.MethodDelete, "/internal/cache", nil)
		if secret != "" {
			req.Header.Set("X-Internal-Secret", secret)
		}
		w := httptest.NewRecorder()
		handler.Clear(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var resp httpx.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
	}
	assert.Equal(t, 2, details.Len(), "nothing cleared")
}

func TestHTTPHandler_NoSecretConfigured(t *testing.T) {
	details, results := newStores()
	handler := NewHTTPHandler("", zap.NewNop(), details, results)

	w := httptest.NewRecorder()
	handler.Stats(w, httptest.NewRequest(http.MethodGet, "/internal/cache", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
