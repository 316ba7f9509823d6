package course

import (
	"net/http"

	"go.uber.org/zap"

	"tourapi/internal/httpx"
	"tourapi/internal/logger"
)

type HTTPHandler struct {
	svc    *Service
	logger *zap.Logger
}

func NewHTTPHandler(svc *Service, l *zap.Logger) *HTTPHandler {
	return &HTTPHandler{svc: svc, logger: l}
}

// List handles GET /api/course?numOfRows=
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	numOfRows, ok := httpx.QueryInt(r, "numOfRows", DefaultNumOfRows)
	if !ok {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "numOfRows must be an integer", nil)
		return
	}

	q := Query{NumOfRows: numOfRows}
	if details := httpx.ValidateStruct(q); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "invalid pagination", details)
		return
	}

	courses, err := h.svc.List(r.Context(), q)
	if err != nil {
		logger.FromContext(r.Context(), h.logger).Error("course list failed", zap.Error(err))
		httpx.JSONError(w, r, http.StatusInternalServerError, "UPSTREAM_FAILED", "upstream call failed", nil)
		return
	}

	httpx.JSON(w, http.StatusOK, courses)
}
