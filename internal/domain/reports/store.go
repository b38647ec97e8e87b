package reports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"workforce/internal/domain/attendance"
	"workforce/internal/domain/scoring"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

type performanceReportRow struct {
	FirstName string
	LastName  string
	Email     string
	CycleName string
	Result    scoring.PerformanceResult
}

func (s *Store) performanceReport(ctx context.Context, employeeID, cycleID string) (performanceReportRow, error) {
	var row performanceReportRow
	var sectionsJSON []byte
	err := s.DB.QueryRow(ctx, `
    SELECT e.first_name, e.last_name, e.email, c.name,
           r.overall_score, r.performance_band, r.base_score, r.noteworthy_bonus, r.section_scores, r.computed_at
    FROM performance_results r
    JOIN employees e ON r.employee_id = e.id
    JOIN appraisal_cycles c ON r.cycle_id = c.id
    WHERE r.employee_id = $1 AND r.cycle_id = $2
  `, employeeID, cycleID).Scan(&row.FirstName, &row.LastName, &row.Email, &row.CycleName,
		&row.Result.OverallScore, &row.Result.PerformanceBand, &row.Result.BaseScore,
		&row.Result.NoteworthyBonus, &sectionsJSON, &row.Result.ComputedAt)
	if err != nil {
		return performanceReportRow{}, err
	}
	if err := json.Unmarshal(sectionsJSON, &row.Result.SectionScores); err != nil {
		return performanceReportRow{}, err
	}
	row.Result.EmployeeID = employeeID
	row.Result.CycleID = cycleID
	return row, nil
}

type chargeStatementRow struct {
	FirstName string
	LastName  string
	Charges   []attendance.ChargeRecord
	Total     decimal.Decimal
}

func (s *Store) chargeStatement(ctx context.Context, employeeID string, from, to time.Time) (chargeStatementRow, error) {
	var row chargeStatementRow
	err := s.DB.QueryRow(ctx, "SELECT first_name, last_name FROM employees WHERE id = $1", employeeID).
		Scan(&row.FirstName, &row.LastName)
	if err != nil {
		return chargeStatementRow{}, err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT id, charge_type, charge_amount, charge_date, escalation_multiplier, is_escalated, status
    FROM charge_records
    WHERE employee_id = $1 AND charge_date >= $2 AND charge_date <= $3
    ORDER BY charge_date
  `, employeeID, from, to)
	if err != nil {
		return chargeStatementRow{}, err
	}
	defer rows.Close()

	row.Total = decimal.Zero
	for rows.Next() {
		var c attendance.ChargeRecord
		if err := rows.Scan(&c.ID, &c.ChargeType, &c.ChargeAmount, &c.ChargeDate,
			&c.EscalationMultiplier, &c.IsEscalated, &c.Status); err != nil {
			return chargeStatementRow{}, err
		}
		c.EmployeeID = employeeID
		row.Charges = append(row.Charges, c)
		if c.Status != attendance.ChargeStatusWaived {
			row.Total = row.Total.Add(c.ChargeAmount)
		}
	}
	return row, rows.Err()
}
