package reportshandler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"workforce/internal/domain/auth"
	"workforce/internal/domain/reports"
	"workforce/internal/transport/http/api"
	"workforce/internal/transport/http/middleware"
	"workforce/internal/transport/http/shared"
)

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.With(middleware.RequireRole(auth.RoleHR, auth.RoleManager)).
			Get("/performance/{employeeID}/{cycleID}/pdf", h.handlePerformancePDF)
		r.With(middleware.RequireRole(auth.RoleHR)).
			Get("/charges/{employeeID}/pdf", h.handleChargeStatementPDF)
	})
}

func (h *Handler) handlePerformancePDF(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	cycleID := chi.URLParam(r, "cycleID")

	path, err := h.Service.GeneratePerformancePDF(r.Context(), employeeID, cycleID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "report_failed", "no performance result to report for this employee and cycle", requestID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, path)
}

func (h *Handler) handleChargeStatementPDF(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	from, err := shared.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "from must be YYYY-MM-DD", requestID)
		return
	}
	to, err := shared.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "to must be YYYY-MM-DD", requestID)
		return
	}
	if from.IsZero() {
		from = time.Now().AddDate(0, -1, 0)
	}
	if to.IsZero() {
		to = time.Now()
	}

	path, err := h.Service.GenerateChargeStatementPDF(r.Context(), employeeID, from, to)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to generate charge statement", requestID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, path)
}
