package models

import "time"

// Rule is a tunable detection threshold read by the edge detector,
// e.g. name "EAR_THRESHOLD" value "0.24".
type Rule struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Value       string    `json:"value"`
	Description string    `json:"description"`
	Enabled     bool      `json:"enabled"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
