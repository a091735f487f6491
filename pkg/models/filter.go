package models

import (
	"time"

	"github.com/google/uuid"
)

// Filter structs carry optional search criteria. A zero/blank field means
// "no constraint"; an entirely zero filter matches everything.

type DriverFilter struct {
	Name     string // partial, case-insensitive
	License  string // exact
	Active   *bool
	Assigned *bool // has at least one vehicle
}

type VehicleFilter struct {
	Plate    string // exact, case-insensitive
	Make     string // partial, case-insensitive
	Model    string // partial, case-insensitive
	Year     *int
	DriverID *uuid.UUID
	Assigned *bool // driver_id set / unset
	Active   *bool
}

type EventFilter struct {
	StartDate    *time.Time // calendar date, start-of-day UTC lower bound
	EndDate      *time.Time // calendar date, end-of-day UTC upper bound
	DriverID     string
	VehicleID    string
	FatigueLevel *FatigueLevel
	FatigueType  *FatigueType
	DriverName   string // partial, case-insensitive, against drivers.name
	VehiclePlate string // partial, case-insensitive, against vehicles.plate
}

type UserFilter struct {
	Name   string // partial, case-insensitive
	Email  string // partial, case-insensitive
	Role   *Role
	Active *bool
}
