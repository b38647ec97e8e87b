package attendancehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"workforce/internal/domain/attendance"
	"workforce/internal/domain/auth"
	"workforce/internal/platform/metrics"
	"workforce/internal/transport/http/api"
	"workforce/internal/transport/http/middleware"
	"workforce/internal/transport/http/shared"
)

type Handler struct {
	Service *attendance.Service
}

func NewHandler(service *attendance.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/rule", h.handleGetRule)
		r.With(middleware.RequireRole(auth.RoleHR)).Put("/rule", h.handleUpdateRule)
		r.Get("/escalation-rules", h.handleListEscalationRules)
		r.With(middleware.RequireRole(auth.RoleHR)).Post("/escalation-rules", h.handleCreateEscalationRule)
		r.Get("/charges", h.handleListCharges)
		r.With(middleware.RequireRole(auth.RoleHR)).Post("/charges/{chargeID}/waive", h.handleWaiveCharge)
		r.With(middleware.RequireRole(auth.RoleHR)).Post("/scan", h.handleScan)
		r.With(middleware.RequireRole(auth.RoleHR)).Post("/clockout-sweep", h.handleClockoutSweep)
	})
}

func (h *Handler) handleGetRule(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	rule, err := h.Service.AttendanceRule(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "rule_load_failed", "failed to load attendance rule", requestID)
		return
	}
	if rule == nil {
		api.Fail(w, http.StatusNotFound, "rule_not_found", "no active attendance rule configured", requestID)
		return
	}
	api.Success(w, rule, requestID)
}

func (h *Handler) handleUpdateRule(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload struct {
		WorkStartTime            string  `json:"workStartTime" validate:"required,len=5"`
		WorkEndTime              string  `json:"workEndTime" validate:"required,len=5"`
		GracePeriodMinutes       int     `json:"gracePeriodMinutes" validate:"gte=0,lte=240"`
		LateChargeAmount         float64 `json:"lateChargeAmount" validate:"gte=0"`
		AbsenceChargeAmount      float64 `json:"absenceChargeAmount" validate:"gte=0"`
		EarlyClosureChargeAmount float64 `json:"earlyClosureChargeAmount" validate:"gte=0"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", requestID)
		return
	}
	if shared.Validate(w, requestID, payload) {
		return
	}
	if _, err := time.Parse("15:04", payload.WorkStartTime); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "workStartTime must be HH:MM", requestID)
		return
	}
	if _, err := time.Parse("15:04", payload.WorkEndTime); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "workEndTime must be HH:MM", requestID)
		return
	}

	rule, err := h.Service.UpdateAttendanceRule(r.Context(), attendance.AttendanceRule{
		WorkStartTime:            payload.WorkStartTime,
		WorkEndTime:              payload.WorkEndTime,
		GracePeriodMinutes:       payload.GracePeriodMinutes,
		LateChargeAmount:         decimal.NewFromFloat(payload.LateChargeAmount),
		AbsenceChargeAmount:      decimal.NewFromFloat(payload.AbsenceChargeAmount),
		EarlyClosureChargeAmount: decimal.NewFromFloat(payload.EarlyClosureChargeAmount),
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "rule_update_failed", "failed to update attendance rule", requestID)
		return
	}
	api.Success(w, rule, requestID)
}

func (h *Handler) handleListEscalationRules(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	rules, err := h.Service.ListEscalationRules(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "rules_load_failed", "failed to list escalation rules", requestID)
		return
	}
	api.Success(w, rules, requestID)
}

func (h *Handler) handleCreateEscalationRule(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload struct {
		ViolationType      string `json:"violationType" validate:"required,oneof=late_arrival absence early_departure early_closure break_violation"`
		LookbackPeriodDays int    `json:"lookbackPeriodDays" validate:"gt=0,lte=365"`
		ResetAfterDays     int    `json:"resetAfterDays" validate:"gte=0,lte=365"`
		IsActive           bool   `json:"isActive"`
		Tiers              []struct {
			OccurrenceCountThreshold int     `json:"occurrenceCountThreshold" validate:"gt=0"`
			Multiplier               float64 `json:"multiplier" validate:"gte=1"`
		} `json:"tiers" validate:"required,min=1,dive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", requestID)
		return
	}
	if shared.Validate(w, requestID, payload) {
		return
	}

	rule := attendance.EscalationRule{
		ViolationType:      payload.ViolationType,
		LookbackPeriodDays: payload.LookbackPeriodDays,
		ResetAfterDays:     payload.ResetAfterDays,
		IsActive:           payload.IsActive,
	}
	for _, tier := range payload.Tiers {
		rule.Tiers = append(rule.Tiers, attendance.EscalationTier{
			OccurrenceCountThreshold: tier.OccurrenceCountThreshold,
			Multiplier:               tier.Multiplier,
		})
	}

	created, err := h.Service.CreateEscalationRule(r.Context(), rule)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "rule_create_failed", "failed to create escalation rule", requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleListCharges(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	employeeID := r.URL.Query().Get("employeeId")
	// Employees may only see their own charges.
	if user.Role == auth.RoleEmployee {
		employeeID = user.EmployeeID
	}

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

	charges, err := h.Service.ListCharges(r.Context(), employeeID, from, to)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "charges_load_failed", "failed to list charges", requestID)
		return
	}
	api.Success(w, charges, requestID)
}

func (h *Handler) handleWaiveCharge(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	chargeID := chi.URLParam(r, "chargeID")

	if err := h.Service.WaiveCharge(r.Context(), chargeID); err != nil {
		if errors.Is(err, attendance.ErrChargeNotPending) {
			api.Fail(w, http.StatusConflict, "charge_not_pending", "only pending charges can be waived", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "waive_failed", "failed to waive charge", requestID)
		return
	}
	api.Success(w, map[string]string{"status": attendance.ChargeStatusWaived}, requestID)
}

func (h *Handler) handleScan(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload struct {
		Date string `json:"date"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}
	targetDate, err := shared.ParseDate(payload.Date)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD", requestID)
		return
	}

	report, err := h.Service.Scanner.Run(r.Context(), targetDate)
	if errors.Is(err, attendance.ErrNoActiveAttendanceRule) {
		metrics.ScansTotal.WithLabelValues("failed").Inc()
		api.Fail(w, http.StatusPreconditionFailed, "no_attendance_rule", "no active attendance rule configured", requestID)
		return
	}
	if err != nil {
		metrics.ScansTotal.WithLabelValues("failed").Inc()
		api.Fail(w, http.StatusInternalServerError, "scan_failed", "daily attendance scan failed", requestID)
		return
	}
	metrics.ScansTotal.WithLabelValues("succeeded").Inc()
	for _, charge := range report.Charges {
		metrics.ChargesCreated.WithLabelValues(charge.ChargeType).Inc()
	}
	api.Success(w, report, requestID)
}

func (h *Handler) handleClockoutSweep(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	report, err := h.Service.Clockout.Run(r.Context(), time.Now())
	if errors.Is(err, attendance.ErrNoActiveAttendanceRule) {
		api.Fail(w, http.StatusPreconditionFailed, "no_attendance_rule", "no active attendance rule configured", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "sweep_failed", "auto clockout sweep failed", requestID)
		return
	}
	api.Success(w, report, requestID)
}
