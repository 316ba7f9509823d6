package httpx

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tourapi/internal/logger"
)

const requestIDHeader = "X-Request-Id"

// RequestIDMiddleware tags every request with an ID, echoes it back and
// attaches a logger carrying it to the request context.
func RequestIDMiddleware(base *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			w.Header().Set(requestIDHeader, requestID)
			ctx := ContextWithRequestID(r.Context(), requestID)
			ctx = logger.WithContext(ctx, base.With(zap.String("request_id", requestID)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
