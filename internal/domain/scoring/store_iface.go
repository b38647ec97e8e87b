package scoring

import "context"

type StoreAPI interface {
	AppraisalForEmployeeCycle(ctx context.Context, employeeID, cycleID string) (AppraisalRef, error)
	AppraisalsByStatus(ctx context.Context, statuses []string) ([]AppraisalRef, error)
	SectionResponses(ctx context.Context, appraisalID string) ([]SectionGroup, error)
	UpsertResult(ctx context.Context, result PerformanceResult) error
	GetResult(ctx context.Context, employeeID, cycleID string) (PerformanceResult, error)
}
