package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type EscalationTier struct {
	OccurrenceCountThreshold int     `json:"occurrenceCountThreshold"`
	Multiplier               float64 `json:"multiplier"`
}

type EscalationRule struct {
	ID                 string           `json:"id"`
	ViolationType      string           `json:"violationType"`
	LookbackPeriodDays int              `json:"lookbackPeriodDays"`
	Tiers              []EscalationTier `json:"tiers"`
	ResetAfterDays     int              `json:"resetAfterDays"`
	IsActive           bool             `json:"isActive"`
}

// AttendanceRule is the organization's active attendance configuration.
// Charge amounts are money and carried as decimals.
type AttendanceRule struct {
	ID                       string          `json:"id"`
	WorkStartTime            string          `json:"workStartTime"`
	WorkEndTime              string          `json:"workEndTime"`
	GracePeriodMinutes       int             `json:"gracePeriodMinutes"`
	LateChargeAmount         decimal.Decimal `json:"lateChargeAmount"`
	AbsenceChargeAmount      decimal.Decimal `json:"absenceChargeAmount"`
	EarlyClosureChargeAmount decimal.Decimal `json:"earlyClosureChargeAmount"`
	IsActive                 bool            `json:"isActive"`
}

type AttendanceLog struct {
	ID               string     `json:"id"`
	EmployeeID       string     `json:"employeeId"`
	LogDate          time.Time  `json:"logDate"`
	ClockInTime      time.Time  `json:"clockInTime"`
	ClockOutTime     *time.Time `json:"clockOutTime"`
	TotalHours       *float64   `json:"totalHours"`
	IsLate           bool       `json:"isLate"`
	LateByMinutes    int        `json:"lateByMinutes"`
	LocationType     string     `json:"locationType"`
	OvertimeApproved bool       `json:"overtimeApproved"`
	EarlyClosure     bool       `json:"earlyClosure"`
	AutoClockedOut   bool       `json:"autoClockedOut"`
}

type ChargeRecord struct {
	ID                   string          `json:"id"`
	EmployeeID           string          `json:"employeeId"`
	AttendanceLogID      *string         `json:"attendanceLogId"`
	ChargeType           string          `json:"chargeType"`
	ChargeAmount         decimal.Decimal `json:"chargeAmount"`
	ChargeDate           time.Time       `json:"chargeDate"`
	EscalationMultiplier float64         `json:"escalationMultiplier"`
	IsEscalated          bool            `json:"isEscalated"`
	Status               string          `json:"status"`
}

// Escalation is the outcome of a multiplier lookup for one violation.
type Escalation struct {
	Multiplier      float64 `json:"multiplier"`
	OccurrenceCount int     `json:"occurrenceCount"`
}

type ScanReport struct {
	Date           time.Time      `json:"date"`
	ChargesCreated int            `json:"chargesCreated"`
	Charges        []ChargeRecord `json:"charges"`
	Errors         []string       `json:"errors,omitempty"`
}

type SweepReport struct {
	RemindedCount int      `json:"remindedCount"`
	ClosedCount   int      `json:"closedCount"`
	Errors        []string `json:"errors,omitempty"`
}
