package models

import (
	"time"

	"github.com/google/uuid"
)

type FatigueLevel string

const (
	FatigueLow    FatigueLevel = "low"
	FatigueMedium FatigueLevel = "medium"
	FatigueHigh   FatigueLevel = "high"
)

func (l FatigueLevel) Valid() bool {
	switch l {
	case FatigueLow, FatigueMedium, FatigueHigh:
		return true
	}
	return false
}

type FatigueType string

const (
	TypeMicrosleep    FatigueType = "microsleep"
	TypeYawn          FatigueType = "yawn"
	TypeHeadNod       FatigueType = "head_nod"
	TypeVisualFatigue FatigueType = "visual_fatigue"
	TypeTiredness     FatigueType = "tiredness"
)

func (t FatigueType) Valid() bool {
	switch t {
	case TypeMicrosleep, TypeYawn, TypeHeadNod, TypeVisualFatigue, TypeTiredness:
		return true
	}
	return false
}

// VehicleEvent is a persisted fatigue detection. Driver and vehicle ids are
// denormalized: they are stored as plain columns and resolved at read time,
// so an event survives deletion of the entities it references.
// Events are immutable once created.
type VehicleEvent struct {
	ID                 uuid.UUID    `json:"id"`
	DriverID           string       `json:"driver_id"`
	VehicleID          string       `json:"vehicle_id"`
	Timestamp          time.Time    `json:"timestamp"`
	FatigueLevel       FatigueLevel `json:"fatigue_level"`
	FatigueType        FatigueType  `json:"fatigue_type"`
	EyeClosureDuration float64      `json:"eye_closure_duration"`
	YawnCount          int          `json:"yawn_count"`
	BlinkRate          float64      `json:"blink_rate"`
}

// VehicleEventResponse is the event enriched with lazily resolved names.
type VehicleEventResponse struct {
	VehicleEvent
	DriverName   string `json:"driver_name"`
	VehiclePlate string `json:"vehicle_plate"`
}
