package scoring

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) AppraisalForEmployeeCycle(ctx context.Context, employeeID, cycleID string) (AppraisalRef, error) {
	var ref AppraisalRef
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, cycle_id, status, COALESCE(noteworthy_sections, '')
    FROM appraisals
    WHERE employee_id = $1 AND cycle_id = $2
  `, employeeID, cycleID).Scan(&ref.ID, &ref.EmployeeID, &ref.CycleID, &ref.Status, &ref.Noteworthy)
	if err != nil {
		return AppraisalRef{}, err
	}
	return ref, nil
}

func (s *Store) AppraisalsByStatus(ctx context.Context, statuses []string) ([]AppraisalRef, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, cycle_id, status, COALESCE(noteworthy_sections, '')
    FROM appraisals
    WHERE status = ANY($1)
    ORDER BY created_at
  `, statuses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []AppraisalRef
	for rows.Next() {
		var ref AppraisalRef
		if err := rows.Scan(&ref.ID, &ref.EmployeeID, &ref.CycleID, &ref.Status, &ref.Noteworthy); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// SectionResponses loads an appraisal's responses joined with question weight
// and section metadata, grouped by section in section display order.
func (s *Store) SectionResponses(ctx context.Context, appraisalID string) ([]SectionGroup, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT sec.id, sec.name, sec.weight,
           q.id, q.weight,
           r.employee_rating, r.manager_rating
    FROM appraisal_responses r
    JOIN appraisal_questions q ON r.question_id = q.id
    JOIN appraisal_sections sec ON q.section_id = sec.id
    WHERE r.appraisal_id = $1
    ORDER BY sec.sort_order, sec.id
  `, appraisalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []SectionGroup
	index := map[string]int{}
	for rows.Next() {
		var (
			sectionID, sectionName string
			sectionWeight          float64
			response               QuestionResponse
		)
		if err := rows.Scan(&sectionID, &sectionName, &sectionWeight,
			&response.QuestionID, &response.QuestionWeight,
			&response.EmployeeRating, &response.ManagerRating); err != nil {
			return nil, err
		}
		response.SectionID = sectionID

		i, ok := index[sectionID]
		if !ok {
			i = len(sections)
			index[sectionID] = i
			sections = append(sections, SectionGroup{
				SectionID:     sectionID,
				SectionName:   sectionName,
				SectionWeight: sectionWeight,
			})
		}
		sections[i].Responses = append(sections[i].Responses, response)
	}
	return sections, rows.Err()
}

func (s *Store) UpsertResult(ctx context.Context, result PerformanceResult) error {
	sectionsJSON, err := json.Marshal(result.SectionScores)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO performance_results
      (employee_id, cycle_id, overall_score, performance_band, base_score, noteworthy_bonus, section_scores, computed_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    ON CONFLICT (employee_id, cycle_id) DO UPDATE SET
      overall_score = EXCLUDED.overall_score,
      performance_band = EXCLUDED.performance_band,
      base_score = EXCLUDED.base_score,
      noteworthy_bonus = EXCLUDED.noteworthy_bonus,
      section_scores = EXCLUDED.section_scores,
      computed_at = EXCLUDED.computed_at
  `, result.EmployeeID, result.CycleID, result.OverallScore, result.PerformanceBand,
		result.BaseScore, result.NoteworthyBonus, sectionsJSON, result.ComputedAt)
	return err
}

func (s *Store) GetResult(ctx context.Context, employeeID, cycleID string) (PerformanceResult, error) {
	var result PerformanceResult
	var sectionsJSON []byte
	err := s.DB.QueryRow(ctx, `
    SELECT employee_id, cycle_id, overall_score, performance_band, base_score, noteworthy_bonus, section_scores, computed_at
    FROM performance_results
    WHERE employee_id = $1 AND cycle_id = $2
  `, employeeID, cycleID).Scan(&result.EmployeeID, &result.CycleID, &result.OverallScore,
		&result.PerformanceBand, &result.BaseScore, &result.NoteworthyBonus, &sectionsJSON, &result.ComputedAt)
	if err != nil {
		return PerformanceResult{}, err
	}
	if err := json.Unmarshal(sectionsJSON, &result.SectionScores); err != nil {
		return PerformanceResult{}, err
	}
	return result, nil
}
