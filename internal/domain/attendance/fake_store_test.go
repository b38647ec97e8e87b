package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// fakeAttendanceStore backs the engine, scanner, and clockout tests.
type fakeAttendanceStore struct {
	rule            *AttendanceRule
	ruleFetchErr    error
	employees       []EmployeeRef
	logs            map[string]AttendanceLog
	logsErr         error
	openSessions    []AttendanceLog
	charges         []ChargeRecord
	insertErrFor    map[string]error
	closeErrFor     map[string]error
	closedSessions  map[string]time.Time
	closedHours     map[string]float64
	escalationRules map[string]*EscalationRule
	ruleErr         error
	priorCharges    int
	countErr        error
	lastCountSince  time.Time
}

func newFakeAttendanceStore() *fakeAttendanceStore {
	return &fakeAttendanceStore{
		logs:            map[string]AttendanceLog{},
		insertErrFor:    map[string]error{},
		closeErrFor:     map[string]error{},
		closedSessions:  map[string]time.Time{},
		closedHours:     map[string]float64{},
		escalationRules: map[string]*EscalationRule{},
	}
}

func defaultRule() *AttendanceRule {
	return &AttendanceRule{
		ID:                       "ar1",
		WorkStartTime:            "09:00",
		WorkEndTime:              "17:00",
		GracePeriodMinutes:       15,
		LateChargeAmount:         decimal.NewFromInt(25),
		AbsenceChargeAmount:      decimal.NewFromInt(100),
		EarlyClosureChargeAmount: decimal.NewFromInt(40),
		IsActive:                 true,
	}
}

func (f *fakeAttendanceStore) ActiveAttendanceRule(context.Context) (*AttendanceRule, error) {
	return f.rule, f.ruleFetchErr
}

func (f *fakeAttendanceStore) ActiveEmployees(context.Context) ([]EmployeeRef, error) {
	return f.employees, nil
}

func (f *fakeAttendanceStore) LogsForDate(context.Context, time.Time) (map[string]AttendanceLog, error) {
	return f.logs, f.logsErr
}

func (f *fakeAttendanceStore) OpenOfficeSessions(context.Context, time.Time) ([]AttendanceLog, error) {
	return f.openSessions, nil
}

func (f *fakeAttendanceStore) CloseSession(_ context.Context, logID string, clockOut time.Time, totalHours float64) error {
	if err := f.closeErrFor[logID]; err != nil {
		return err
	}
	f.closedSessions[logID] = clockOut
	f.closedHours[logID] = totalHours
	return nil
}

func (f *fakeAttendanceStore) ChargeExists(_ context.Context, employeeID string, date time.Time, chargeType string) (bool, error) {
	for _, charge := range f.charges {
		if charge.EmployeeID == employeeID && charge.ChargeDate.Equal(date) && charge.ChargeType == chargeType {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttendanceStore) InsertCharge(_ context.Context, charge ChargeRecord) error {
	if err := f.insertErrFor[charge.EmployeeID]; err != nil {
		return err
	}
	f.charges = append(f.charges, charge)
	return nil
}

func (f *fakeAttendanceStore) ActiveEscalationRule(_ context.Context, violationType string) (*EscalationRule, error) {
	if f.ruleErr != nil {
		return nil, f.ruleErr
	}
	return f.escalationRules[violationType], nil
}

func (f *fakeAttendanceStore) CountChargesSince(_ context.Context, _, _ string, since time.Time) (int, error) {
	f.lastCountSince = since
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.priorCharges, nil
}

// fakeNotifier records notification requests.
type fakeNotifier struct {
	sent []string
}

func (f *fakeNotifier) NotifyEmployee(_ context.Context, employeeID, ntype, title, message string) {
	f.sent = append(f.sent, fmt.Sprintf("%s|%s|%s|%s", employeeID, ntype, title, message))
}
