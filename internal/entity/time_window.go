package entity

import (
	"time"
)

// CheckMode identifies which schedule branch produced a time window.
type CheckMode string

const (
	CheckModeNoon    CheckMode = "NOON_CHECK"
	CheckModeEvening CheckMode = "EVENING_CHECK"
	CheckModeManual  CheckMode = "MANUAL_CHECK"
)

// TimeWindow is the publish-time range a run accepts news from.
// Both bounds are inclusive.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Mode  CheckMode `json:"mode"`
}

// Contains reports whether t falls inside the window.
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}
