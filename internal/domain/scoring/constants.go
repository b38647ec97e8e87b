package scoring

const (
	AppraisalStatusDraft           = "draft"
	AppraisalStatusSubmitted       = "submitted"
	AppraisalStatusManagerReview   = "manager_review"
	AppraisalStatusCommitteeReview = "committee_review"
	AppraisalStatusCompleted       = "completed"

	BandExceptional = "Exceptional"
	BandExcellent   = "Excellent"
	BandVeryGood    = "Very Good"
	BandGood        = "Good"
	BandFair        = "Fair"
	BandPoor        = "Poor"
)

// RatingScaleMax is the fixed upper bound of the question rating scale.
const RatingScaleMax = 5.0

const (
	noteworthyBonusRate = 0.10
	noteworthyBonusCap  = 10.0
)
