package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"workforce/internal/domain/attendance"
	"workforce/internal/platform/config"
	"workforce/internal/platform/metrics"
)

const (
	JobDailyScan     = "daily_attendance_scan"
	JobClockoutSweep = "auto_clockout_sweep"
)

// Service runs the time-driven batch work: the once-daily attendance scan and
// the per-minute auto-clockout poll. The engines themselves never see a
// clock; this layer decides "now" and the target date and records each run.
type Service struct {
	DB       *pgxpool.Pool
	Cfg      config.Config
	Scanner  *attendance.Scanner
	Clockout *attendance.Clockout
	queue    chan job
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(db *pgxpool.Pool, cfg config.Config, scanner *attendance.Scanner, clockout *attendance.Clockout) *Service {
	return &Service{
		DB:       db,
		Cfg:      cfg,
		Scanner:  scanner,
		Clockout: clockout,
		queue:    make(chan job, 128),
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.Cfg.DailyScanInterval > 0 {
		go s.scheduleDailyScan(ctx, s.Cfg.DailyScanInterval)
	}
	if s.Cfg.ClockoutPollInterval > 0 {
		go s.scheduleClockoutPoll(ctx, s.Cfg.ClockoutPollInterval)
	}
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID := ""
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO job_runs (job_type, status)
    VALUES ($1,$2)
    RETURNING id
  `, j.Type, "running").Scan(&runID); err != nil {
		slog.Warn("job run insert failed", "err", err)
	}

	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != "" {
		if _, updErr := s.DB.Exec(ctx, `
      UPDATE job_runs
      SET status = $1, details_json = $2, completed_at = now()
      WHERE id = $3
    `, status, detailsJSON, runID); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

func (s *Service) scheduleDailyScan(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(JobDailyScan, func(ctx context.Context) (any, error) {
				// Zero date: the scanner defaults to yesterday.
				report, err := s.Scanner.Run(ctx, time.Time{})
				if err != nil {
					metrics.ScansTotal.WithLabelValues("failed").Inc()
					return nil, err
				}
				metrics.ScansTotal.WithLabelValues("succeeded").Inc()
				for _, charge := range report.Charges {
					metrics.ChargesCreated.WithLabelValues(charge.ChargeType).Inc()
				}
				return report, nil
			})
		}
	}
}

func (s *Service) scheduleClockoutPoll(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(JobClockoutSweep, func(ctx context.Context) (any, error) {
				report, err := s.Clockout.Run(ctx, time.Now())
				if err != nil {
					return nil, err
				}
				metrics.AutoClockoutsTotal.Add(float64(report.ClosedCount))
				metrics.ChargesCreated.WithLabelValues(attendance.ViolationEarlyClosure).Add(float64(report.ClosedCount))
				return report, nil
			})
		}
	}
}
