package directory

import "time"

type Employee struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
	Status     string    `json:"status"`
	HiredAt    time.Time `json:"hiredAt"`
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)
