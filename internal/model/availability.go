package model

import "time"

// AvailabilitySlot - получасовой интервал в расписании одного дентиста
type AvailabilitySlot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"disponible"`
}
