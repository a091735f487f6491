package models

import (
	"time"

	"github.com/google/uuid"
)

type Driver struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	License   string     `json:"license"`
	BirthDate *time.Time `json:"birth_date"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// UnknownDriverName is the sentinel used when a driver id cannot be
// resolved to a name (missing, deleted, or malformed id).
const UnknownDriverName = "unknown driver"
