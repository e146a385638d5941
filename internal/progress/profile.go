// ABOUTME: Applying a (new) profile to a workout state.
// ABOUTME: Regenerates the plan while keeping completion by day number.
package progress

import (
	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/plan"
)

// ApplyProfile regenerates the history from p. Days in CompletedDays stay
// completed and keep their completion time from the previous history.
func ApplyProfile(s *models.WorkoutState, p models.Profile) {
	old := s.WorkoutHistory
	days := plan.Generate(p)

	for i := range days {
		if !s.IsCompleted(days[i].Day) {
			continue
		}
		days[i].Completed = true
		for _, o := range old {
			if o.Day == days[i].Day && o.CompletedAt != nil {
				at := *o.CompletedAt
				days[i].CompletedAt = &at
				break
			}
		}
	}

	s.WorkoutHistory = days
	s.UserProfile = &p
	if s.CurrentDay < 1 {
		s.CurrentDay = 1
	}
	if s.CurrentDay > models.PlanLength {
		s.CurrentDay = models.PlanLength
	}
}
