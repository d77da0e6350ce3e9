package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-news-watcher/internal/entity"
)

func jst(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	return loc
}

func TestResolveTimeWindowNoon(t *testing.T) {
	loc := jst(t)

	for _, hour := range []int{11, 12, 13} {
		now := time.Date(2026, 8, 25, hour, 30, 12, 0, loc)
		window := ResolveTimeWindow(now)

		assert.Equal(t, entity.CheckModeNoon, window.Mode)
		assert.Equal(t, time.Date(2026, 8, 24, 17, 0, 0, 0, loc), window.Start, "hour %d", hour)
		assert.Equal(t, time.Date(2026, 8, 25, 12, 4, 59, 0, loc), window.End, "hour %d", hour)
	}
}

func TestResolveTimeWindowEvening(t *testing.T) {
	loc := jst(t)

	for _, hour := range []int{16, 17, 18} {
		now := time.Date(2026, 8, 25, hour, 2, 33, 0, loc)
		window := ResolveTimeWindow(now)

		assert.Equal(t, entity.CheckModeEvening, window.Mode)
		assert.Equal(t, time.Date(2026, 8, 25, 12, 5, 0, 0, loc), window.Start, "hour %d", hour)
		assert.Equal(t, time.Date(2026, 8, 25, 16, 59, 59, 0, loc), window.End, "hour %d", hour)
	}
}

func TestResolveTimeWindowManual(t *testing.T) {
	loc := jst(t)

	for _, hour := range []int{0, 9, 10, 14, 15, 19, 23} {
		now := time.Date(2026, 8, 25, hour, 45, 0, 0, loc)
		window := ResolveTimeWindow(now)

		assert.Equal(t, entity.CheckModeManual, window.Mode, "hour %d", hour)
		assert.Equal(t, now.Add(-6*time.Hour), window.Start, "hour %d", hour)
		assert.Equal(t, now, window.End, "hour %d", hour)
	}
}

func TestResolveTimeWindowManualCrossesMidnight(t *testing.T) {
	loc := jst(t)

	now := time.Date(2026, 8, 25, 0, 30, 0, 0, loc)
	window := ResolveTimeWindow(now)

	assert.Equal(t, entity.CheckModeManual, window.Mode)
	assert.Equal(t, time.Date(2026, 8, 24, 18, 30, 0, 0, loc), window.Start)
}

func TestSlotWindowsDoNotOverlap(t *testing.T) {
	loc := jst(t)

	noon := ResolveTimeWindow(time.Date(2026, 8, 25, 12, 0, 0, 0, loc))
	evening := ResolveTimeWindow(time.Date(2026, 8, 25, 17, 0, 0, 0, loc))

	boundary := time.Date(2026, 8, 25, 12, 4, 59, 0, loc)
	assert.True(t, noon.Contains(boundary), "noon window includes its end second")
	assert.False(t, evening.Contains(boundary))

	next := time.Date(2026, 8, 25, 12, 5, 0, 0, loc)
	assert.False(t, noon.Contains(next))
	assert.True(t, evening.Contains(next), "evening window starts where noon ends")
}

func TestTimeWindowContainsInclusive(t *testing.T) {
	loc := jst(t)
	window := entity.TimeWindow{
		Start: time.Date(2026, 8, 25, 12, 5, 0, 0, loc),
		End:   time.Date(2026, 8, 25, 16, 59, 59, 0, loc),
		Mode:  entity.CheckModeEvening,
	}

	assert.True(t, window.Contains(window.Start))
	assert.True(t, window.Contains(window.End))
	assert.False(t, window.Contains(window.Start.Add(-time.Second)))
	assert.False(t, window.Contains(window.End.Add(time.Second)))
}
