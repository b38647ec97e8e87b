package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ActiveAttendanceRule(ctx context.Context) (*AttendanceRule, error) {
	var rule AttendanceRule
	err := s.DB.QueryRow(ctx, `
    SELECT id, work_start_time, work_end_time, grace_period_minutes,
           late_charge_amount, absence_charge_amount, early_closure_charge_amount, is_active
    FROM attendance_rules
    WHERE is_active
    ORDER BY updated_at DESC
    LIMIT 1
  `).Scan(&rule.ID, &rule.WorkStartTime, &rule.WorkEndTime, &rule.GracePeriodMinutes,
		&rule.LateChargeAmount, &rule.AbsenceChargeAmount, &rule.EarlyClosureChargeAmount, &rule.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (s *Store) UpdateAttendanceRule(ctx context.Context, rule AttendanceRule) (AttendanceRule, error) {
	err := s.DB.QueryRow(ctx, `
    UPDATE attendance_rules
    SET work_start_time = $1, work_end_time = $2, grace_period_minutes = $3,
        late_charge_amount = $4, absence_charge_amount = $5, early_closure_charge_amount = $6,
        updated_at = now()
    WHERE is_active
    RETURNING id, is_active
  `, rule.WorkStartTime, rule.WorkEndTime, rule.GracePeriodMinutes,
		rule.LateChargeAmount, rule.AbsenceChargeAmount, rule.EarlyClosureChargeAmount).
		Scan(&rule.ID, &rule.IsActive)
	if err != nil {
		return AttendanceRule{}, err
	}
	return rule, nil
}

func (s *Store) ActiveEmployees(ctx context.Context) ([]EmployeeRef, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, first_name, last_name
    FROM employees
    WHERE status = 'active'
    ORDER BY id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []EmployeeRef
	for rows.Next() {
		var e EmployeeRef
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (s *Store) LogsForDate(ctx context.Context, date time.Time) (map[string]AttendanceLog, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, log_date, clock_in_time, clock_out_time, total_hours,
           is_late, late_by_minutes, location_type, overtime_approved, early_closure, auto_clocked_out
    FROM attendance_logs
    WHERE log_date = $1
  `, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := map[string]AttendanceLog{}
	for rows.Next() {
		var l AttendanceLog
		if err := rows.Scan(&l.ID, &l.EmployeeID, &l.LogDate, &l.ClockInTime, &l.ClockOutTime, &l.TotalHours,
			&l.IsLate, &l.LateByMinutes, &l.LocationType, &l.OvertimeApproved, &l.EarlyClosure, &l.AutoClockedOut); err != nil {
			return nil, err
		}
		logs[l.EmployeeID] = l
	}
	return logs, rows.Err()
}

func (s *Store) OpenOfficeSessions(ctx context.Context, date time.Time) ([]AttendanceLog, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, log_date, clock_in_time, clock_out_time, total_hours,
           is_late, late_by_minutes, location_type, overtime_approved, early_closure, auto_clocked_out
    FROM attendance_logs
    WHERE log_date = $1
      AND clock_out_time IS NULL
      AND location_type = $2
      AND NOT early_closure
      AND NOT overtime_approved
  `, date, LocationOffice)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []AttendanceLog
	for rows.Next() {
		var l AttendanceLog
		if err := rows.Scan(&l.ID, &l.EmployeeID, &l.LogDate, &l.ClockInTime, &l.ClockOutTime, &l.TotalHours,
			&l.IsLate, &l.LateByMinutes, &l.LocationType, &l.OvertimeApproved, &l.EarlyClosure, &l.AutoClockedOut); err != nil {
			return nil, err
		}
		sessions = append(sessions, l)
	}
	return sessions, rows.Err()
}

func (s *Store) CloseSession(ctx context.Context, logID string, clockOut time.Time, totalHours float64) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE attendance_logs
    SET clock_out_time = $1, total_hours = $2, early_closure = TRUE, auto_clocked_out = TRUE
    WHERE id = $3 AND clock_out_time IS NULL
  `, clockOut, totalHours, logID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("session already closed")
	}
	return nil
}

func (s *Store) ActiveEscalationRule(ctx context.Context, violationType string) (*EscalationRule, error) {
	var rule EscalationRule
	var tiersJSON []byte
	err := s.DB.QueryRow(ctx, `
    SELECT id, violation_type, lookback_period_days, tiers, reset_after_days, is_active
    FROM escalation_rules
    WHERE violation_type = $1 AND is_active
    ORDER BY updated_at DESC
    LIMIT 1
  `, violationType).Scan(&rule.ID, &rule.ViolationType, &rule.LookbackPeriodDays, &tiersJSON, &rule.ResetAfterDays, &rule.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tiersJSON, &rule.Tiers); err != nil {
		return nil, err
	}
	return &rule, nil
}

func (s *Store) ListEscalationRules(ctx context.Context) ([]EscalationRule, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, violation_type, lookback_period_days, tiers, reset_after_days, is_active
    FROM escalation_rules
    ORDER BY violation_type
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []EscalationRule
	for rows.Next() {
		var rule EscalationRule
		var tiersJSON []byte
		if err := rows.Scan(&rule.ID, &rule.ViolationType, &rule.LookbackPeriodDays, &tiersJSON, &rule.ResetAfterDays, &rule.IsActive); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(tiersJSON, &rule.Tiers); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

func (s *Store) CreateEscalationRule(ctx context.Context, rule EscalationRule) (EscalationRule, error) {
	tiersJSON, err := json.Marshal(rule.Tiers)
	if err != nil {
		return EscalationRule{}, err
	}
	err = s.DB.QueryRow(ctx, `
    INSERT INTO escalation_rules (violation_type, lookback_period_days, tiers, reset_after_days, is_active)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, rule.ViolationType, rule.LookbackPeriodDays, tiersJSON, rule.ResetAfterDays, rule.IsActive).Scan(&rule.ID)
	if err != nil {
		return EscalationRule{}, err
	}
	return rule, nil
}

func (s *Store) CountChargesSince(ctx context.Context, employeeID, chargeType string, since time.Time) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM charge_records
    WHERE employee_id = $1 AND charge_type = $2 AND charge_date >= $3 AND status <> $4
  `, employeeID, chargeType, since, ChargeStatusWaived).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) ChargeExists(ctx context.Context, employeeID string, date time.Time, chargeType string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM charge_records
    WHERE employee_id = $1 AND charge_date = $2 AND charge_type = $3
  `, employeeID, date, chargeType).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) InsertCharge(ctx context.Context, charge ChargeRecord) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO charge_records
      (id, employee_id, attendance_log_id, charge_type, charge_amount, charge_date,
       escalation_multiplier, is_escalated, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
  `, charge.ID, charge.EmployeeID, charge.AttendanceLogID, charge.ChargeType, charge.ChargeAmount,
		charge.ChargeDate, charge.EscalationMultiplier, charge.IsEscalated, charge.Status)
	return err
}

func (s *Store) ListCharges(ctx context.Context, employeeID string, from, to time.Time) ([]ChargeRecord, error) {
	query := `
    SELECT id, employee_id, attendance_log_id, charge_type, charge_amount, charge_date,
           escalation_multiplier, is_escalated, status
    FROM charge_records
    WHERE charge_date >= $1 AND charge_date <= $2
  `
	args := []any{from, to}
	if employeeID != "" {
		query += " AND employee_id = $3"
		args = append(args, employeeID)
	}
	query += " ORDER BY charge_date DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var charges []ChargeRecord
	for rows.Next() {
		var c ChargeRecord
		if err := rows.Scan(&c.ID, &c.EmployeeID, &c.AttendanceLogID, &c.ChargeType, &c.ChargeAmount,
			&c.ChargeDate, &c.EscalationMultiplier, &c.IsEscalated, &c.Status); err != nil {
			return nil, err
		}
		charges = append(charges, c)
	}
	return charges, rows.Err()
}

func (s *Store) UpdateChargeStatus(ctx context.Context, chargeID, fromStatus, toStatus string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE charge_records
    SET status = $1
    WHERE id = $2 AND status = $3
  `, toStatus, chargeID, fromStatus)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrChargeNotPending
	}
	return nil
}
