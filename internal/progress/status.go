// ABOUTME: Day unlock rule for the 30-day plan.
// ABOUTME: A day opens at the first calendar midnight after its predecessor was completed.
package progress

import (
	"fmt"
	"time"

	"github.com/harperreed/fittrack/internal/models"
)

// Midnight returns the start of t's calendar day in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Status reports whether day is locked, available or completed at now.
// Day boundaries are evaluated in loc.
func Status(s *models.WorkoutState, day int, now time.Time, loc *time.Location) models.DayStatus {
	if day < 1 || day > models.PlanLength {
		return models.StatusLocked
	}
	if s.IsCompleted(day) {
		return models.StatusCompleted
	}
	if day == 1 {
		return models.StatusAvailable
	}
	unlock, ok := UnlockAt(s, day, loc)
	if !ok {
		return models.StatusLocked
	}
	if Midnight(now, loc).Before(unlock) {
		return models.StatusLocked
	}
	return models.StatusAvailable
}

// UnlockAt returns the midnight at which day becomes available. ok is
// false when the previous day is not completed or has no completion time.
func UnlockAt(s *models.WorkoutState, day int, loc *time.Location) (time.Time, bool) {
	if day <= 1 || day > models.PlanLength || !s.IsCompleted(day-1) {
		return time.Time{}, false
	}
	prev := s.HistoryDay(day - 1)
	if prev == nil || prev.CompletedAt == nil {
		return time.Time{}, false
	}
	m := Midnight(*prev.CompletedAt, loc)
	y, mo, d := m.Date()
	return time.Date(y, mo, d+1, 0, 0, 0, 0, loc), true
}

// FormatUntil renders the wait until unlock.
func FormatUntil(d time.Duration) string {
	if d <= 0 {
		return "Unlocked"
	}
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	return fmt.Sprintf("Unlocks in %dh %dm", h, m)
}
