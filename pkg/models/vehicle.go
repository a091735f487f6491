package models

import (
	"time"

	"github.com/google/uuid"
)

type Vehicle struct {
	ID        uuid.UUID  `json:"id"`
	Plate     string     `json:"plate"`
	Make      string     `json:"make"`
	Model     string     `json:"model"`
	Year      int        `json:"year"`
	Active    bool       `json:"active"`
	DriverID  *uuid.UUID `json:"driver_id"` // nil = unassigned
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
