package scoringhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"workforce/internal/domain/auth"
	"workforce/internal/domain/scoring"
	"workforce/internal/platform/metrics"
	"workforce/internal/transport/http/api"
	"workforce/internal/transport/http/middleware"
	"workforce/internal/transport/http/shared"
)

type Handler struct {
	Service *scoring.Service
}

func NewHandler(service *scoring.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/scoring", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/results/{employeeID}/{cycleID}", h.handleGetResult)
		r.With(middleware.RequireRole(auth.RoleHR, auth.RoleManager)).Post("/recalculate", h.handleRecalculate)
		r.With(middleware.RequireRole(auth.RoleHR)).Post("/recalculate-all", h.handleRecalculateAll)
	})
}

func (h *Handler) handleGetResult(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	cycleID := chi.URLParam(r, "cycleID")

	result, err := h.Service.Result(r.Context(), employeeID, cycleID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "result_not_found", "no performance result for this employee and cycle", requestID)
		return
	}
	api.Success(w, result, requestID)
}

func (h *Handler) handleRecalculate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload struct {
		EmployeeID string `json:"employeeId" validate:"required"`
		CycleID    string `json:"cycleId" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", requestID)
		return
	}
	if shared.Validate(w, requestID, payload) {
		return
	}

	result, err := h.Service.Recalculate(r.Context(), payload.EmployeeID, payload.CycleID)
	if errors.Is(err, scoring.ErrNoResponses) {
		// Not yet computable; the appraisal has no submitted answers.
		api.Success(w, nil, requestID)
		return
	}
	if err != nil {
		metrics.ScoreRecalcsTotal.WithLabelValues("failed").Inc()
		api.Fail(w, http.StatusInternalServerError, "recalc_failed", "failed to recalculate score", requestID)
		return
	}
	metrics.ScoreRecalcsTotal.WithLabelValues("succeeded").Inc()
	api.Success(w, result, requestID)
}

func (h *Handler) handleRecalculateAll(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	summary, err := h.Service.RecalculateAll(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "recalc_failed", "failed to run bulk recalculation", requestID)
		return
	}
	api.Success(w, summary, requestID)
}
