package scoring

// RatingPolicy selects the effective rating for one response. Extracted so
// an alternative policy (e.g. a weighted blend) can replace the default
// without touching the aggregation math.
type RatingPolicy func(response QuestionResponse) float64

// ManagerOverridesEmployee is the review-workflow default: once a manager
// rating exists it supersedes the self-assessment; a response with neither
// counts as zero.
func ManagerOverridesEmployee(response QuestionResponse) float64 {
	if response.ManagerRating != nil {
		return *response.ManagerRating
	}
	if response.EmployeeRating != nil {
		return *response.EmployeeRating
	}
	return 0
}
