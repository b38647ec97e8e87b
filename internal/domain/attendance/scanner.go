package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Scanner classifies every active employee for one day and creates at most
// one charge per employee per day: no log at all is an absence, a log later
// than the grace period is a late arrival, anything else is compliant.
type Scanner struct {
	store  ScanStore
	engine *Engine
	notify Notifier
}

func NewScanner(store ScanStore, engine *Engine, notify Notifier) *Scanner {
	return &Scanner{store: store, engine: engine, notify: notify}
}

// Run scans targetDate; a zero date means yesterday. An employee whose record
// cannot be processed is reported in Errors and never halts the scan.
func (s *Scanner) Run(ctx context.Context, targetDate time.Time) (ScanReport, error) {
	if targetDate.IsZero() {
		targetDate = time.Now().AddDate(0, 0, -1)
	}
	targetDate = truncateToDay(targetDate)
	report := ScanReport{Date: targetDate}

	rule, err := s.store.ActiveAttendanceRule(ctx)
	if err != nil {
		return report, fmt.Errorf("load attendance rule: %w", err)
	}
	if rule == nil {
		return report, ErrNoActiveAttendanceRule
	}

	employees, err := s.store.ActiveEmployees(ctx)
	if err != nil {
		return report, fmt.Errorf("load roster: %w", err)
	}

	logs, err := s.store.LogsForDate(ctx, targetDate)
	if err != nil {
		return report, fmt.Errorf("load attendance logs: %w", err)
	}

	for _, employee := range employees {
		charge, err := s.scanEmployee(ctx, employee, logs, rule, targetDate)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("employee %s: %v", employee.ID, err))
			continue
		}
		if charge != nil {
			report.Charges = append(report.Charges, *charge)
			report.ChargesCreated++
		}
	}
	return report, nil
}

func (s *Scanner) scanEmployee(ctx context.Context, employee EmployeeRef, logs map[string]AttendanceLog, rule *AttendanceRule, date time.Time) (*ChargeRecord, error) {
	log, present := logs[employee.ID]

	switch {
	case !present:
		return s.createCharge(ctx, employee.ID, nil, ViolationAbsence, rule, date)
	case log.LateByMinutes > rule.GracePeriodMinutes:
		logID := log.ID
		return s.createCharge(ctx, employee.ID, &logID, ViolationLateArrival, rule, date)
	default:
		return nil, nil
	}
}

// createCharge applies the escalation path and inserts the charge, checking
// first whether one already exists for (employee, date, type) so rerunning a
// scan for an already processed day stays a no-op.
func (s *Scanner) createCharge(ctx context.Context, employeeID string, logID *string, violationType string, rule *AttendanceRule, date time.Time) (*ChargeRecord, error) {
	exists, err := s.store.ChargeExists(ctx, employeeID, date, violationType)
	if err != nil {
		return nil, fmt.Errorf("charge existence check: %w", err)
	}
	if exists {
		return nil, nil
	}

	escalation := s.engine.Escalation(ctx, employeeID, violationType, date)
	charge := ChargeRecord{
		ID:                   uuid.NewString(),
		EmployeeID:           employeeID,
		AttendanceLogID:      logID,
		ChargeType:           violationType,
		ChargeAmount:         ChargeAmount(baseAmount(rule, violationType), escalation.Multiplier),
		ChargeDate:           date,
		EscalationMultiplier: escalation.Multiplier,
		IsEscalated:          escalation.Multiplier > 1,
		Status:               ChargeStatusPending,
	}

	if err := s.store.InsertCharge(ctx, charge); err != nil {
		return nil, fmt.Errorf("insert charge: %w", err)
	}

	if s.notify != nil {
		s.notify.NotifyEmployee(ctx, employeeID, notificationTypeFor(violationType),
			chargeTitle(violationType), chargeMessage(charge))
	}
	return &charge, nil
}

func baseAmount(rule *AttendanceRule, violationType string) decimal.Decimal {
	switch violationType {
	case ViolationAbsence:
		return rule.AbsenceChargeAmount
	case ViolationLateArrival:
		return rule.LateChargeAmount
	case ViolationEarlyClosure:
		return rule.EarlyClosureChargeAmount
	default:
		return rule.LateChargeAmount
	}
}

func chargeTitle(violationType string) string {
	switch violationType {
	case ViolationAbsence:
		return "Absence charge applied"
	case ViolationLateArrival:
		return "Late arrival charge applied"
	case ViolationEarlyClosure:
		return "Early closure charge applied"
	default:
		return "Attendance charge applied"
	}
}

func chargeMessage(charge ChargeRecord) string {
	msg := fmt.Sprintf("A charge of %s was applied for %s on %s.",
		charge.ChargeAmount.StringFixed(2), charge.ChargeType, charge.ChargeDate.Format("2006-01-02"))
	if charge.EscalationMultiplier > 1 {
		msg += fmt.Sprintf(" An escalation multiplier of %.1fx was applied due to repeated violations.", charge.EscalationMultiplier)
	}
	return msg
}

func notificationTypeFor(violationType string) string {
	return "charge_" + violationType
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
