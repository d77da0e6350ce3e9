package service

import (
	"time"

	"stock-news-watcher/internal/entity"
)

// ResolveTimeWindow computes the publish-time range a run should cover
// from the invocation instant. The two scheduled slots carve the trading
// day so consecutive runs never overlap, anything outside them falls back
// to a trailing six hour window for manual runs.
func ResolveTimeWindow(now time.Time) entity.TimeWindow {
	switch hour := now.Hour(); {
	case hour >= 11 && hour <= 13:
		// Noon slot: previous evening close through today's lunch break.
		prev := now.AddDate(0, 0, -1)
		return entity.TimeWindow{
			Start: time.Date(prev.Year(), prev.Month(), prev.Day(), 17, 0, 0, 0, now.Location()),
			End:   time.Date(now.Year(), now.Month(), now.Day(), 12, 4, 59, 0, now.Location()),
			Mode:  entity.CheckModeNoon,
		}
	case hour >= 16 && hour <= 18:
		// Evening slot: lunch break through today's close.
		return entity.TimeWindow{
			Start: time.Date(now.Year(), now.Month(), now.Day(), 12, 5, 0, 0, now.Location()),
			End:   time.Date(now.Year(), now.Month(), now.Day(), 16, 59, 59, 0, now.Location()),
			Mode:  entity.CheckModeEvening,
		}
	default:
		return entity.TimeWindow{
			Start: now.Add(-6 * time.Hour),
			End:   now,
			Mode:  entity.CheckModeManual,
		}
	}
}
