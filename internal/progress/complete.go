// ABOUTME: Completion transition and streak calculation.
// ABOUTME: Complete does not check the lock rule; callers guard that.
package progress

import (
	"slices"
	"time"

	"github.com/harperreed/fittrack/internal/models"
)

// Complete marks day as done at now. It returns false and leaves the
// state untouched when the day is already completed or out of range.
// lastCompletionDate is the calendar date of now in now's location.
func Complete(s *models.WorkoutState, day int, now time.Time) bool {
	if day < 1 || day > models.PlanLength || s.IsCompleted(day) {
		return false
	}

	s.CompletedDays = append(s.CompletedDays, day)
	slices.Sort(s.CompletedDays)

	if h := s.HistoryDay(day); h != nil {
		at := now
		h.Completed = true
		h.CompletedAt = &at
	}
	s.LastCompletionDate = now.Format(time.DateOnly)
	s.Streak = Streak(s.CompletedDays)

	if day == s.CurrentDay {
		next := day + 1
		for next < models.PlanLength && s.IsCompleted(next) {
			next++
		}
		s.CurrentDay = min(next, models.PlanLength)
	}
	return true
}

// Streak counts consecutive completed days downward from the highest
// completed day, stopping at the first gap.
func Streak(days []int) int {
	if len(days) == 0 {
		return 0
	}
	sorted := slices.Clone(days)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	slices.Reverse(sorted)

	streak := 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1]-sorted[i] != 1 {
			break
		}
		streak++
	}
	return streak
}
