package tour

import (
	"errors"
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

// List handles GET /api/tour/{type}?numOfRows=&pageNo=
// and answers with a bare JSON array of enriched items.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	numOfRows, okRows := httpx.QueryInt(r, "numOfRows", DefaultNumOfRows)
	pageNo, okPage := httpx.QueryInt(r, "pageNo", DefaultPageNo)
	if !okRows || !okPage {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "numOfRows and pageNo must be integers", nil)
		return
	}

	q := Query{
		Type:      r.PathValue("type"),
		PageNo:    pageNo,
		NumOfRows: numOfRows,
	}

	if _, ok := LookupCategory(q.Type); !ok {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_CATEGORY", "invalid type", nil)
		return
	}
	if details := httpx.ValidateStruct(q); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "invalid pagination", details)
		return
	}

	items, err := h.svc.List(r.Context(), q)
	if err != nil {
		if errors.Is(err, ErrInvalidCategory) {
			httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_CATEGORY", "invalid type", nil)
			return
		}
		logger.FromContext(r.Context(), h.logger).Error("tour list failed",
			zap.String("type", q.Type),
			zap.Error(err),
		)
		httpx.JSONError(w, r, http.StatusInternalServerError, "UPSTREAM_FAILED", "upstream call failed", nil)
		return
	}

	httpx.JSON(w, http.StatusOK, items)
}

// Categories handles GET /api/tour and lists the supported types.
func (h *HTTPHandler) Categories(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, Categories())
}
