package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Clockout sweeps still-open office sessions around closing time. Within the
// first tolerance window after closing it reminds employees to clock out;
// once the grace minute has passed it force-closes the session, stamping the
// configured closing time (not the sweep time) as the clock-out, and routes
// an early-closure charge through the escalation path.
//
// Sessions with approved overtime or an existing early closure are excluded,
// and a closed session no longer matches the open filter, so repeated or
// late sweeps converge on the same end state.
type Clockout struct {
	store     SweepStore
	engine    *Engine
	notify    Notifier
	tolerance time.Duration
}

func NewClockout(store SweepStore, engine *Engine, notify Notifier, tolerance time.Duration) *Clockout {
	if tolerance <= 0 {
		tolerance = time.Minute
	}
	return &Clockout{store: store, engine: engine, notify: notify, tolerance: tolerance}
}

// Run executes one sweep for the given wall-clock time. Failures on one
// session are collected and never prevent processing of the rest.
func (c *Clockout) Run(ctx context.Context, now time.Time) (SweepReport, error) {
	var report SweepReport

	rule, err := c.store.ActiveAttendanceRule(ctx)
	if err != nil {
		return report, fmt.Errorf("load attendance rule: %w", err)
	}
	if rule == nil {
		return report, ErrNoActiveAttendanceRule
	}

	workEnd, err := atTimeOfDay(now, rule.WorkEndTime)
	if err != nil {
		return report, fmt.Errorf("parse work end time %q: %w", rule.WorkEndTime, err)
	}

	if now.Before(workEnd) {
		return report, nil
	}

	sessions, err := c.store.OpenOfficeSessions(ctx, truncateToDay(now))
	if err != nil {
		return report, fmt.Errorf("load open sessions: %w", err)
	}

	reminderWindow := now.Before(workEnd.Add(c.tolerance))
	for _, session := range sessions {
		if session.OvertimeApproved || session.EarlyClosure {
			continue
		}

		if reminderWindow {
			c.remind(ctx, session)
			report.RemindedCount++
			continue
		}

		if err := c.close(ctx, session, rule, workEnd); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("employee %s: %v", session.EmployeeID, err))
			slog.Warn("auto clockout failed", "employeeId", session.EmployeeID, "logId", session.ID, "err", err)
			continue
		}
		report.ClosedCount++
	}
	return report, nil
}

func (c *Clockout) remind(ctx context.Context, session AttendanceLog) {
	if c.notify == nil {
		return
	}
	c.notify.NotifyEmployee(ctx, session.EmployeeID, "clockout_reminder",
		"Working hours have ended",
		"Please clock out now. Sessions still open in one minute will be closed automatically and charged as an early closure.")
}

func (c *Clockout) close(ctx context.Context, session AttendanceLog, rule *AttendanceRule, workEnd time.Time) error {
	// The employee is credited hours up to closing time, not the sweep time.
	totalHours := workEnd.Sub(session.ClockInTime).Hours()
	if totalHours < 0 {
		totalHours = 0
	}

	if err := c.store.CloseSession(ctx, session.ID, workEnd, totalHours); err != nil {
		return fmt.Errorf("close session: %w", err)
	}

	exists, err := c.store.ChargeExists(ctx, session.EmployeeID, truncateToDay(workEnd), ViolationEarlyClosure)
	if err != nil {
		return fmt.Errorf("charge existence check: %w", err)
	}
	if exists {
		return nil
	}

	escalation := c.engine.Escalation(ctx, session.EmployeeID, ViolationEarlyClosure, workEnd)
	logID := session.ID
	charge := ChargeRecord{
		ID:                   uuid.NewString(),
		EmployeeID:           session.EmployeeID,
		AttendanceLogID:      &logID,
		ChargeType:           ViolationEarlyClosure,
		ChargeAmount:         ChargeAmount(rule.EarlyClosureChargeAmount, escalation.Multiplier),
		ChargeDate:           truncateToDay(workEnd),
		EscalationMultiplier: escalation.Multiplier,
		IsEscalated:          escalation.Multiplier > 1,
		Status:               ChargeStatusPending,
	}
	if err := c.store.InsertCharge(ctx, charge); err != nil {
		return fmt.Errorf("insert charge: %w", err)
	}

	if c.notify != nil {
		c.notify.NotifyEmployee(ctx, session.EmployeeID, "auto_clockout",
			"You were clocked out automatically",
			fmt.Sprintf("Your session was closed at %s because you did not clock out. %s",
				workEnd.Format("15:04"), chargeMessage(charge)))
	}
	return nil
}

// atTimeOfDay resolves an "HH:MM" setting onto the date of ref.
func atTimeOfDay(ref time.Time, hhmm string) (time.Time, error) {
	parsed, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(), parsed.Hour(), parsed.Minute(), 0, 0, ref.Location()), nil
}
