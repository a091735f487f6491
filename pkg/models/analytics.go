package models

import "time"

type TopDriver struct {
	DriverID   string `json:"driver_id"`
	DriverName string `json:"driver_name"`
	Count      int64  `json:"count"`
}

type TimelinePoint struct {
	Date  time.Time `json:"date"` // midnight UTC of the bucket day
	Count int64     `json:"count"`
}
