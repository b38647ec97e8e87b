package attendance

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func scanDate() time.Time {
	return time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
}

func logFor(employeeID string, lateBy int) AttendanceLog {
	date := scanDate()
	return AttendanceLog{
		ID:            "log-" + employeeID,
		EmployeeID:    employeeID,
		LogDate:       date,
		ClockInTime:   date.Add(9 * time.Hour).Add(time.Duration(lateBy) * time.Minute),
		IsLate:        lateBy > 0,
		LateByMinutes: lateBy,
		LocationType:  LocationOffice,
	}
}

func TestScanClassification(t *testing.T) {
	store := newFakeAttendanceStore()
	store.rule = defaultRule()
	store.employees = []EmployeeRef{{ID: "absent"}, {ID: "late"}, {ID: "grace"}, {ID: "ontime"}}
	store.logs["late"] = logFor("late", 30)
	store.logs["grace"] = logFor("grace", 10) // within the 15 minute grace period
	store.logs["ontime"] = logFor("ontime", 0)

	notify := &fakeNotifier{}
	scanner := NewScanner(store, NewEngine(store), notify)
	report, err := scanner.Run(context.Background(), scanDate())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.ChargesCreated != 2 {
		t.Fatalf("expected 2 charges (absence + late), got %d", report.ChargesCreated)
	}
	byEmployee := map[string]ChargeRecord{}
	for _, charge := range report.Charges {
		byEmployee[charge.EmployeeID] = charge
	}
	if byEmployee["absent"].ChargeType != ViolationAbsence {
		t.Fatalf("expected absence charge for missing log, got %+v", byEmployee["absent"])
	}
	if !byEmployee["absent"].ChargeAmount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected absence base amount 100, got %s", byEmployee["absent"].ChargeAmount)
	}
	if byEmployee["late"].ChargeType != ViolationLateArrival {
		t.Fatalf("expected late charge, got %+v", byEmployee["late"])
	}
	if byEmployee["late"].AttendanceLogID == nil || *byEmployee["late"].AttendanceLogID != "log-late" {
		t.Fatalf("expected late charge to reference the attendance log")
	}
	if len(notify.sent) != 2 {
		t.Fatalf("expected one notification per charge, got %d", len(notify.sent))
	}
}

func TestScanEscalatedChargeNamesMultiplier(t *testing.T) {
	store := newFakeAttendanceStore()
	store.rule = defaultRule()
	store.employees = []EmployeeRef{{ID: "late"}}
	store.logs["late"] = logFor("late", 45)
	store.escalationRules[ViolationLateArrival] = tieredRule(ViolationLateArrival)
	store.priorCharges = 3 // current violation is the 4th: tier 3 → 1.5x

	notify := &fakeNotifier{}
	scanner := NewScanner(store, NewEngine(store), notify)
	report, err := scanner.Run(context.Background(), scanDate())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	charge := report.Charges[0]
	if charge.EscalationMultiplier != 1.5 || !charge.IsEscalated {
		t.Fatalf("expected escalated 1.5x charge, got %+v", charge)
	}
	if !charge.ChargeAmount.Equal(decimal.NewFromFloat(37.5)) {
		t.Fatalf("expected 25 * 1.5 = 37.50, got %s", charge.ChargeAmount)
	}
	if !strings.Contains(notify.sent[0], "1.5x") {
		t.Fatalf("expected notification to name the multiplier, got %q", notify.sent[0])
	}
}

func TestScanIsIdempotentPerDay(t *testing.T) {
	store := newFakeAttendanceStore()
	store.rule = defaultRule()
	store.employees = []EmployeeRef{{ID: "absent"}}

	scanner := NewScanner(store, NewEngine(store), nil)
	first, err := scanner.Run(context.Background(), scanDate())
	if err != nil {
		t.Fatalf("first scan failed: %v", err)
	}
	if first.ChargesCreated != 1 {
		t.Fatalf("expected 1 charge on first scan, got %d", first.ChargesCreated)
	}

	second, err := scanner.Run(context.Background(), scanDate())
	if err != nil {
		t.Fatalf("second scan failed: %v", err)
	}
	if second.ChargesCreated != 0 {
		t.Fatalf("expected no duplicate charges on rerun, got %d", second.ChargesCreated)
	}
	if len(store.charges) != 1 {
		t.Fatalf("expected exactly one stored charge, got %d", len(store.charges))
	}
}

func TestScanIsolatesPerEmployeeFailures(t *testing.T) {
	store := newFakeAttendanceStore()
	store.rule = defaultRule()
	store.employees = []EmployeeRef{{ID: "e1"}, {ID: "e2"}, {ID: "e3"}}
	store.insertErrFor["e2"] = errors.New("write conflict")

	scanner := NewScanner(store, NewEngine(store), nil)
	report, err := scanner.Run(context.Background(), scanDate())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.ChargesCreated != 2 {
		t.Fatalf("expected 2 charges despite e2 failure, got %d", report.ChargesCreated)
	}
	if len(report.Errors) != 1 || !strings.Contains(report.Errors[0], "e2") {
		t.Fatalf("expected one error naming e2, got %v", report.Errors)
	}
}

func TestScanAbortsWithoutAttendanceRule(t *testing.T) {
	store := newFakeAttendanceStore()
	store.employees = []EmployeeRef{{ID: "e1"}}

	scanner := NewScanner(store, NewEngine(store), nil)
	_, err := scanner.Run(context.Background(), scanDate())
	if !errors.Is(err, ErrNoActiveAttendanceRule) {
		t.Fatalf("expected ErrNoActiveAttendanceRule, got %v", err)
	}
	if len(store.charges) != 0 {
		t.Fatalf("expected no charges without configuration")
	}
}

func TestScanAbortsOnStoreErrors(t *testing.T) {
	store := newFakeAttendanceStore()
	store.ruleFetchErr = errors.New("connection reset")
	store.employees = []EmployeeRef{{ID: "e1"}}

	scanner := NewScanner(store, NewEngine(store), nil)
	if _, err := scanner.Run(context.Background(), scanDate()); err == nil {
		t.Fatal("expected error when the rule lookup fails")
	}

	store.ruleFetchErr = nil
	store.rule = defaultRule()
	store.logsErr = errors.New("connection reset")
	if _, err := scanner.Run(context.Background(), scanDate()); err == nil {
		t.Fatal("expected error when the log load fails")
	}
	if len(store.charges) != 0 {
		t.Fatalf("expected no charges after aborted scans, got %d", len(store.charges))
	}
}

func TestScanDefaultsToYesterday(t *testing.T) {
	store := newFakeAttendanceStore()
	store.rule = defaultRule()

	scanner := NewScanner(store, NewEngine(store), nil)
	report, err := scanner.Run(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	yesterday := time.Now().AddDate(0, 0, -1)
	if report.Date.Year() != yesterday.Year() || report.Date.YearDay() != yesterday.YearDay() {
		t.Fatalf("expected scan date to default to yesterday, got %v", report.Date)
	}
	if report.Date.Hour() != 0 || report.Date.Minute() != 0 {
		t.Fatalf("expected date truncated to midnight, got %v", report.Date)
	}
}
