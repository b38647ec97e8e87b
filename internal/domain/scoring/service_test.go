package scoring

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

type fakeStore struct {
	appraisals map[string]AppraisalRef
	responses  map[string][]SectionGroup
	upserts    []PerformanceResult
	failLoad   map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		appraisals: map[string]AppraisalRef{},
		responses:  map[string][]SectionGroup{},
		failLoad:   map[string]error{},
	}
}

func (f *fakeStore) AppraisalForEmployeeCycle(_ context.Context, employeeID, cycleID string) (AppraisalRef, error) {
	for _, ref := range f.appraisals {
		if ref.EmployeeID == employeeID && ref.CycleID == cycleID {
			return ref, nil
		}
	}
	return AppraisalRef{}, errors.New("appraisal not found")
}

func (f *fakeStore) AppraisalsByStatus(_ context.Context, statuses []string) ([]AppraisalRef, error) {
	var refs []AppraisalRef
	for _, ref := range f.appraisals {
		for _, status := range statuses {
			if ref.Status == status {
				refs = append(refs, ref)
			}
		}
	}
	return refs, nil
}

func (f *fakeStore) SectionResponses(_ context.Context, appraisalID string) ([]SectionGroup, error) {
	if err, ok := f.failLoad[appraisalID]; ok {
		return nil, err
	}
	return f.responses[appraisalID], nil
}

func (f *fakeStore) UpsertResult(_ context.Context, result PerformanceResult) error {
	// Upsert semantics: replace any prior result for the same pair.
	for i, prior := range f.upserts {
		if prior.EmployeeID == result.EmployeeID && prior.CycleID == result.CycleID {
			f.upserts[i] = result
			return nil
		}
	}
	f.upserts = append(f.upserts, result)
	return nil
}

func (f *fakeStore) GetResult(_ context.Context, employeeID, cycleID string) (PerformanceResult, error) {
	for _, result := range f.upserts {
		if result.EmployeeID == employeeID && result.CycleID == cycleID {
			return result, nil
		}
	}
	return PerformanceResult{}, errors.New("not found")
}

func TestRecalculateStoresResult(t *testing.T) {
	store := newFakeStore()
	store.appraisals["a1"] = AppraisalRef{ID: "a1", EmployeeID: "e1", CycleID: "c1", Status: AppraisalStatusSubmitted}
	store.responses["a1"] = []SectionGroup{
		section("s1", "Financial Performance", response(4, 1)),
	}

	service := NewService(store)
	result, err := service.Recalculate(context.Background(), "e1", "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OverallScore != 40 {
		t.Fatalf("expected overall 40, got %v", result.OverallScore)
	}
	if len(store.upserts) != 1 {
		t.Fatalf("expected one upsert, got %d", len(store.upserts))
	}
}

func TestRecalculateReplacesPriorResult(t *testing.T) {
	store := newFakeStore()
	store.appraisals["a1"] = AppraisalRef{ID: "a1", EmployeeID: "e1", CycleID: "c1", Status: AppraisalStatusSubmitted}
	store.responses["a1"] = []SectionGroup{section("s1", "Innovation", response(5, 1))}

	service := NewService(store)
	if _, err := service.Recalculate(context.Background(), "e1", "c1"); err != nil {
		t.Fatalf("first recalc failed: %v", err)
	}

	store.responses["a1"] = []SectionGroup{section("s1", "Innovation", response(3, 1))}
	if _, err := service.Recalculate(context.Background(), "e1", "c1"); err != nil {
		t.Fatalf("second recalc failed: %v", err)
	}

	if len(store.upserts) != 1 {
		t.Fatalf("expected replacement, got %d stored rows", len(store.upserts))
	}
	if store.upserts[0].OverallScore != 60 {
		t.Fatalf("expected replaced score 60, got %v", store.upserts[0].OverallScore)
	}
}

func TestRecalculateNoResponses(t *testing.T) {
	store := newFakeStore()
	store.appraisals["a1"] = AppraisalRef{ID: "a1", EmployeeID: "e1", CycleID: "c1", Status: AppraisalStatusSubmitted}

	service := NewService(store)
	_, err := service.Recalculate(context.Background(), "e1", "c1")
	if !errors.Is(err, ErrNoResponses) {
		t.Fatalf("expected ErrNoResponses, got %v", err)
	}
	if len(store.upserts) != 0 {
		t.Fatalf("expected no upsert for empty appraisal")
	}
}

func TestRecalculateAllIsolatesFailures(t *testing.T) {
	store := newFakeStore()
	for i := 1; i <= 10; i++ {
		id := fmt.Sprintf("a%d", i)
		store.appraisals[id] = AppraisalRef{
			ID:         id,
			EmployeeID: fmt.Sprintf("e%d", i),
			CycleID:    "c1",
			Status:     AppraisalStatusCompleted,
		}
		store.responses[id] = []SectionGroup{section("s1", "Innovation", response(4, 1))}
	}
	store.failLoad["a5"] = errors.New("malformed appraisal row")

	service := NewService(store)
	summary, err := service.RecalculateAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Succeeded != 9 || summary.Failed != 1 {
		t.Fatalf("expected 9 succeeded / 1 failed, got %+v", summary)
	}
	if len(summary.Errors) != 1 || !strings.Contains(summary.Errors[0], "e5") {
		t.Fatalf("expected an error entry naming employee e5, got %v", summary.Errors)
	}
	if len(store.upserts) != 9 {
		t.Fatalf("expected 9 stored results, got %d", len(store.upserts))
	}
}
