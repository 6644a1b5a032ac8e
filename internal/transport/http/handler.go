package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bruhhgnik/DCLG-outfitrec/internal/platform/apperrors"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/platform/httputil"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/service"
)

const defaultNumLooks = 3

// LooksHandler serves the generateLooks operation.
type LooksHandler struct {
	service *service.DCLGService
	logger  *slog.Logger
}

// NewLooksHandler creates a LooksHandler bound to the DCLG orchestrator.
func NewLooksHandler(svc *service.DCLGService, logger *slog.Logger) *LooksHandler {
	return &LooksHandler{service: svc, logger: logger}
}

// GenerateLooks handles GET /api/v1/looks/{anchorSku}?numLooks=N.
func (h *LooksHandler) GenerateLooks(w http.ResponseWriter, r *http.Request) {
	anchorSKU := chi.URLParam(r, "anchorSku")
	if anchorSKU == "" {
		httputil.WriteError(w, r, apperrors.InvalidArgument("anchorSku is required"), h.logger)
		return
	}

	numLooks := defaultNumLooks
	if v := r.URL.Query().Get("numLooks"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httputil.WriteError(w, r, apperrors.InvalidArgument("numLooks must be an integer"), h.logger)
			return
		}
		numLooks = n
	}

	resp, err := h.service.Generate(r.Context(), anchorSKU, numLooks)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: toLooksResponse(resp)})
}
