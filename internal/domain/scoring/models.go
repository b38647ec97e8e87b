package scoring

import "time"

type QuestionResponse struct {
	QuestionID     string   `json:"questionId"`
	SectionID      string   `json:"sectionId"`
	EmployeeRating *float64 `json:"employeeRating"`
	ManagerRating  *float64 `json:"managerRating"`
	QuestionWeight float64  `json:"questionWeight"`
}

type SectionGroup struct {
	SectionID     string             `json:"sectionId"`
	SectionName   string             `json:"sectionName"`
	SectionWeight float64            `json:"sectionWeight"`
	Responses     []QuestionResponse `json:"responses"`
}

type SectionScore struct {
	SectionID          string  `json:"sectionId"`
	SectionName        string  `json:"sectionName"`
	RawPercentage      float64 `json:"rawPercentage"`
	CappedContribution float64 `json:"cappedContribution"`
	IsNoteworthy       bool    `json:"isNoteworthy"`
}

type PerformanceResult struct {
	EmployeeID      string         `json:"employeeId"`
	CycleID         string         `json:"cycleId"`
	OverallScore    float64        `json:"overallScore"`
	PerformanceBand string         `json:"performanceBand"`
	BaseScore       float64        `json:"baseScore"`
	NoteworthyBonus float64        `json:"noteworthyBonus"`
	SectionScores   []SectionScore `json:"sectionScores"`
	ComputedAt      time.Time      `json:"computedAt"`
}

// AppraisalRef carries the fields of an appraisal row the aggregator needs.
type AppraisalRef struct {
	ID         string
	EmployeeID string
	CycleID    string
	Status     string
	Noteworthy string
}

type RecalcSummary struct {
	Processed int      `json:"processed"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}
