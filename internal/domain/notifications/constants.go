package notifications

const (
	TypeChargeLateArrival  = "charge_late_arrival"
	TypeChargeAbsence      = "charge_absence"
	TypeChargeEarlyClosure = "charge_early_closure"
	TypeClockoutReminder   = "clockout_reminder"
	TypeAutoClockout       = "auto_clockout"
	TypeScoresPublished    = "scores_published"
)
