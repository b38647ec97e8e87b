package attendance

const (
	ViolationLateArrival    = "late_arrival"
	ViolationAbsence        = "absence"
	ViolationEarlyClosure   = "early_closure"
	ViolationEarlyDeparture = "early_departure"
	ViolationBreak          = "break_violation"

	ChargeStatusPending  = "pending"
	ChargeStatusWaived   = "waived"
	ChargeStatusResolved = "resolved"

	LocationOffice = "office"
	LocationRemote = "remote"
	LocationField  = "field"
)
