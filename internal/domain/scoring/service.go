package scoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrNoResponses reports an appraisal with nothing to aggregate yet. Callers
// treat it as "not yet computable" rather than a failure.
var ErrNoResponses = errors.New("appraisal has no responses")

type Service struct {
	store  StoreAPI
	policy RatingPolicy
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store, policy: ManagerOverridesEmployee}
}

// WithPolicy substitutes the rating policy used by all recalculations.
func (s *Service) WithPolicy(policy RatingPolicy) *Service {
	s.policy = policy
	return s
}

// Recalculate recomputes and stores the performance result for one
// employee/cycle pair. The stored row is fully replaced, so rerunning after
// a rule change never merges stale section scores.
func (s *Service) Recalculate(ctx context.Context, employeeID, cycleID string) (*PerformanceResult, error) {
	appraisal, err := s.store.AppraisalForEmployeeCycle(ctx, employeeID, cycleID)
	if err != nil {
		return nil, fmt.Errorf("load appraisal: %w", err)
	}
	return s.recalculate(ctx, appraisal)
}

func (s *Service) recalculate(ctx context.Context, appraisal AppraisalRef) (*PerformanceResult, error) {
	sections, err := s.store.SectionResponses(ctx, appraisal.ID)
	if err != nil {
		return nil, fmt.Errorf("load responses: %w", err)
	}

	result := Aggregate(sections, appraisal.Noteworthy, s.policy)
	if result == nil {
		return nil, ErrNoResponses
	}

	result.EmployeeID = appraisal.EmployeeID
	result.CycleID = appraisal.CycleID
	result.ComputedAt = time.Now().UTC()

	if err := s.store.UpsertResult(ctx, *result); err != nil {
		return nil, fmt.Errorf("store result: %w", err)
	}
	return result, nil
}

// RecalculateAll recomputes every appraisal that has progressed past draft.
// One bad record must not block the rest: failures are collected per
// appraisal and reported in the summary.
func (s *Service) RecalculateAll(ctx context.Context) (RecalcSummary, error) {
	statuses := []string{
		AppraisalStatusSubmitted,
		AppraisalStatusManagerReview,
		AppraisalStatusCommitteeReview,
		AppraisalStatusCompleted,
	}

	appraisals, err := s.store.AppraisalsByStatus(ctx, statuses)
	if err != nil {
		return RecalcSummary{}, fmt.Errorf("list appraisals: %w", err)
	}

	var summary RecalcSummary
	for _, appraisal := range appraisals {
		summary.Processed++
		if _, err := s.recalculate(ctx, appraisal); err != nil {
			if errors.Is(err, ErrNoResponses) {
				// Nothing submitted yet; skip without counting a failure.
				summary.Processed--
				continue
			}
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("employee %s cycle %s: %v", appraisal.EmployeeID, appraisal.CycleID, err))
			slog.Warn("score recalculation failed", "employeeId", appraisal.EmployeeID, "cycleId", appraisal.CycleID, "err", err)
			continue
		}
		summary.Succeeded++
	}
	return summary, nil
}

// Result returns the stored performance result for one employee/cycle pair.
func (s *Service) Result(ctx context.Context, employeeID, cycleID string) (PerformanceResult, error) {
	return s.store.GetResult(ctx, employeeID, cycleID)
}
