// Package admin exposes operational endpoints for the in-process caches.
package admin

import (
	"crypto/subtle"
	"net/http"

	"go.uber.org/zap"

	"tourapi/internal/cache"
	"tourapi/internal/httpx"
	"tourapi/internal/logger"
)

// Store is the part of a cache the admin endpoints need.
type Store interface {
	Name() string
	Stats() cache.Stats
	Clear() int
}

type HTTPHandler struct {
	stores []Store
	secret string
	logger *zap.Logger
}

// NewHTTPHandler guards the endpoints with secret. An empty secret leaves
// them open, which is only acceptable outside production.
func NewHTTPHandler(secret string, l *zap.Logger, stores ...Store) *HTTPHandler {
	return &HTTPHandler{stores: stores, secret: secret, logger: l}
}

type statsResponse struct {
	Caches []cache.Stats `json:"caches"`
}

type clearResponse struct {
	Cleared map[string]int `json:"cleared"`
}

// Stats handles GET /internal/cache
func (h *HTTPHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	resp := statsResponse{Caches: make([]cache.Stats, 0, len(h.stores))}
	for _, s := range h.stores {
		resp.Caches = append(resp.Caches, s.Stats())
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// Clear handles DELETE /internal/cache
func (h *HTTPHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	resp := clearResponse{Cleared: make(map[string]int, len(h.stores))}
	for _, s := range h.stores {
		resp.Cleared[s.Name()] = s.Clear()
	}

	fields := make([]zap.Field, 0, len(resp.Cleared))
	for name, n := range resp.Cleared {
		fields = append(fields, zap.Int(name, n))
	}
	logger.FromContext(r.Context(), h.logger).Info("caches cleared", fields...)

	httpx.JSON(w, http.StatusOK, resp)
}

func (h *HTTPHandler) authorized(w http.ResponseWriter, r *http.Request) bool {
	if h.secret == "" {
		return true
	}
	got := r.Header.Get("X-Internal-Secret")
	if subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid internal secret", nil)
		return false
	}
	return true
}
