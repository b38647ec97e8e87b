package attendance

import (
	"context"
	"time"
)

// Service bundles the engines with the rule/charge management operations the
// HTTP handlers expose.
type Service struct {
	store    StoreAPI
	Engine   *Engine
	Scanner  *Scanner
	Clockout *Clockout
}

func NewService(store StoreAPI, notify Notifier, clockoutTolerance time.Duration) *Service {
	engine := NewEngine(store)
	return &Service{
		store:    store,
		Engine:   engine,
		Scanner:  NewScanner(store, engine, notify),
		Clockout: NewClockout(store, engine, notify, clockoutTolerance),
	}
}

func (s *Service) AttendanceRule(ctx context.Context) (*AttendanceRule, error) {
	return s.store.ActiveAttendanceRule(ctx)
}

func (s *Service) UpdateAttendanceRule(ctx context.Context, rule AttendanceRule) (AttendanceRule, error) {
	return s.store.UpdateAttendanceRule(ctx, rule)
}

func (s *Service) ListEscalationRules(ctx context.Context) ([]EscalationRule, error) {
	return s.store.ListEscalationRules(ctx)
}

func (s *Service) CreateEscalationRule(ctx context.Context, rule EscalationRule) (EscalationRule, error) {
	return s.store.CreateEscalationRule(ctx, rule)
}

func (s *Service) ListCharges(ctx context.Context, employeeID string, from, to time.Time) ([]ChargeRecord, error) {
	return s.store.ListCharges(ctx, employeeID, from, to)
}

// WaiveCharge transitions a pending charge to waived; any other starting
// status is rejected.
func (s *Service) WaiveCharge(ctx context.Context, chargeID string) error {
	return s.store.UpdateChargeStatus(ctx, chargeID, ChargeStatusPending, ChargeStatusWaived)
}
