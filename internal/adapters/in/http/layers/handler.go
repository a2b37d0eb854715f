// Package layers implements the HTTP adapter for the layer build API.
package layers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/bnema/zerowrap"

	"github.com/bnema/layerkit/internal/adapters/dto"
	"github.com/bnema/layerkit/internal/boundaries/in"
	"github.com/bnema/layerkit/internal/domain"
)

// maxRequestSize is the maximum allowed size for a build request body.
const maxRequestSize = 64 << 10

// Handler implements the HTTP handler for the layer build API.
type Handler struct {
	layerSvc   in.LayerService
	historySvc in.HistoryService
	log        zerowrap.Logger
}

// NewHandler creates a new layer build HTTP handler.
func NewHandler(layerSvc in.LayerService, historySvc in.HistoryService, log zerowrap.Logger) *Handler {
	return &Handler{
		layerSvc:   layerSvc,
		historySvc: historySvc,
		log:        log,
	}
}

// RegisterRoutes registers the layer routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/layers", h)
	mux.Handle("/builds", h)
	mux.Handle("/healthz", h)
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := zerowrap.CtxWithFields(r.Context(), map[string]any{
		zerowrap.FieldLayer:   "adapter",
		zerowrap.FieldAdapter: "http",
		zerowrap.FieldHandler: "layers",
		zerowrap.FieldMethod:  r.Method,
		zerowrap.FieldPath:    r.URL.Path,
	})
	r = r.WithContext(ctx)

	switch r.URL.Path {
	case "/layers":
		h.handleBuild(w, r)
	case "/builds":
		h.handleBuilds(w, r)
	case "/healthz":
		h.handleHealth(w, r)
	default:
		h.sendError(w, http.StatusNotFound, "unknown path "+r.URL.Path)
	}
}

// handleBuild handles POST /layers.
func (h *Handler) handleBuild(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.sendError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}

	log := zerowrap.FromCtx(r.Context())

	var req dto.LayerRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("invalid build request body")
		h.sendError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	result := h.layerSvc.Build(r.Context(), req.Packages, req.LayerName)
	status, body := dto.FromBuildResult(result)
	h.sendJSON(w, status, body)
}

// handleBuilds handles GET /builds?layer=&orphans=&limit=.
func (h *Handler) handleBuilds(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		h.sendError(w, http.StatusMethodNotAllowed, "use GET")
		return
	}

	query := r.URL.Query()
	filter := domain.HistoryFilter{LayerName: query.Get("layer")}

	if v := query.Get("orphans"); v != "" {
		orphans, err := strconv.ParseBool(v)
		if err != nil {
			h.sendError(w, http.StatusBadRequest, "orphans must be a boolean")
			return
		}
		filter.OrphanedOnly = orphans
	}
	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			h.sendError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		filter.Limit = limit
	}

	records, err := h.historySvc.List(r.Context(), filter)
	if err != nil {
		if errors.Is(err, domain.ErrHistoryDisabled) {
			h.sendError(w, http.StatusNotFound, err.Error())
			return
		}
		h.sendError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.sendJSON(w, http.StatusOK, dto.FromBuildRecords(records))
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		h.sendError(w, http.StatusMethodNotAllowed, "use GET")
		return
	}
	h.sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// sendJSON sends a JSON response.
func (h *Handler) sendJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.log.Warn().Err(err).Msg("failed to encode response")
		}
	}
}

// sendError sends an error response in the invocation failure shape.
func (h *Handler) sendError(w http.ResponseWriter, status int, details string) {
	h.sendJSON(w, status, dto.ErrorResponse{
		Error:   http.StatusText(status),
		Details: details,
	})
}
