package attendance

import (
	"context"
	"time"
)

// Notifier delivers a fire-and-forget notification to an employee. Delivery
// is an external concern; failures are logged by implementations, never
// surfaced into charge processing.
type Notifier interface {
	NotifyEmployee(ctx context.Context, employeeID, ntype, title, message string)
}

type EmployeeRef struct {
	ID        string
	FirstName string
	LastName  string
}

type ScanStore interface {
	ActiveAttendanceRule(ctx context.Context) (*AttendanceRule, error)
	ActiveEmployees(ctx context.Context) ([]EmployeeRef, error)
	LogsForDate(ctx context.Context, date time.Time) (map[string]AttendanceLog, error)
	ChargeExists(ctx context.Context, employeeID string, date time.Time, chargeType string) (bool, error)
	InsertCharge(ctx context.Context, charge ChargeRecord) error
}

type SweepStore interface {
	ActiveAttendanceRule(ctx context.Context) (*AttendanceRule, error)
	OpenOfficeSessions(ctx context.Context, date time.Time) ([]AttendanceLog, error)
	CloseSession(ctx context.Context, logID string, clockOut time.Time, totalHours float64) error
	ChargeExists(ctx context.Context, employeeID string, date time.Time, chargeType string) (bool, error)
	InsertCharge(ctx context.Context, charge ChargeRecord) error
}

// StoreAPI is the full surface the HTTP handlers use on top of the narrower
// engine-facing interfaces.
type StoreAPI interface {
	ScanStore
	SweepStore
	EscalationStore

	UpdateAttendanceRule(ctx context.Context, rule AttendanceRule) (AttendanceRule, error)
	ListEscalationRules(ctx context.Context) ([]EscalationRule, error)
	CreateEscalationRule(ctx context.Context, rule EscalationRule) (EscalationRule, error)
	ListCharges(ctx context.Context, employeeID string, from, to time.Time) ([]ChargeRecord, error)
	UpdateChargeStatus(ctx context.Context, chargeID, fromStatus, toStatus string) error
}
