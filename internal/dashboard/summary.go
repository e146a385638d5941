// ABOUTME: Dashboard summary computed from all of a user's documents.
// ABOUTME: Missing documents contribute the same defaults the home page showed.
package dashboard

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/storage"
)

const (
	NoSleep       = "0h 0m"
	NoRisk        = "N/A"
	TestAnalyzed  = "Analyzed"
	TestNotTested = "Not Tested"
)

// Summary is the set of dashboard tiles for one user.
type Summary struct {
	DayStreak           int      `json:"dayStreak"`
	WorkoutsCompleted   int      `json:"workoutsCompleted"`
	WaterToday          float64  `json:"waterToday"`
	WaterGoal           float64  `json:"waterGoal"`
	AvgSleep            string   `json:"avgSleep"`
	AvgSleepHours       float64  `json:"avgSleepHours"`
	CaloriesConsumed    float64  `json:"caloriesConsumed"`
	HealthRisk          string   `json:"healthRisk"`
	NutritionMealsToday int      `json:"nutritionMealsToday"`
	BloodTestStatus     string   `json:"bloodTestStatus"`
	Insights            []string `json:"insights"`
}

// Build reads every document of userID and summarises it for the day
// containing now in loc.
func Build(repo storage.Repository, userID string, now time.Time, loc *time.Location) (*Summary, error) {
	s := &Summary{
		WaterGoal:       8,
		AvgSleep:        NoSleep,
		HealthRisk:      NoRisk,
		BloodTestStatus: TestNotTested,
	}

	st, err := repo.GetWorkoutState(userID)
	if err := optional(err, "workout"); err != nil {
		return nil, err
	}
	if st != nil {
		s.DayStreak = st.Streak
		s.WorkoutsCompleted = len(st.CompletedDays)
	}

	h, err := repo.GetHydration(userID)
	if err := optional(err, "hydration"); err != nil {
		return nil, err
	}
	if h != nil {
		if h.DailyGoal > 0 {
			s.WaterGoal = h.DailyGoal
		}
		if onDay(h.Date, now, loc) {
			s.WaterToday = h.CurrentIntake
		}
	}

	sl, err := repo.GetSleep(userID)
	if err := optional(err, "sleep"); err != nil {
		return nil, err
	}
	if sl != nil && len(sl.SleepRecords) > 0 {
		var total float64
		for _, r := range sl.SleepRecords {
			total += r.Duration
		}
		s.AvgSleepHours = total / float64(len(sl.SleepRecords))
		s.AvgSleep = FormatHours(s.AvgSleepHours)
	}

	d, err := repo.GetDiet(userID)
	if err := optional(err, "diet"); err != nil {
		return nil, err
	}
	if d != nil {
		for _, m := range d.Meals {
			if onDay(m.Timestamp, now, loc) {
				s.CaloriesConsumed += m.Calories
			}
		}
	}

	ha, err := repo.GetHealth(userID)
	if err := optional(err, "health"); err != nil {
		return nil, err
	}
	if ha != nil && ha.RiskAssessment != nil && ha.RiskAssessment.OverallRisk != "" {
		s.HealthRisk = ha.RiskAssessment.OverallRisk
	}

	n, err := repo.GetNutrition(userID)
	if err := optional(err, "nutrition"); err != nil {
		return nil, err
	}
	if n != nil && onDay(n.Date, now, loc) {
		s.NutritionMealsToday = len(n.Meals)
	}

	bt, err := repo.GetBloodTest(userID)
	if err := optional(err, "blood test"); err != nil {
		return nil, err
	}
	if bt != nil && bt.BloodTest != nil {
		s.BloodTestStatus = TestAnalyzed
	}

	s.Insights = Insights(s)
	return s, nil
}

func optional(err error, what string) error {
	if err == nil || errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	return fmt.Errorf("load %s: %w", what, err)
}

func onDay(date string, now time.Time, loc *time.Location) bool {
	if date == "" {
		return false
	}
	t, err := models.ParseDocDate(date, loc)
	if err != nil {
		return false
	}
	return models.SameDay(t, now, loc)
}

// FormatHours renders fractional hours as "Xh Ym".
func FormatHours(hours float64) string {
	h := math.Floor(hours)
	m := math.Round((hours - h) * 60)
	if m == 60 {
		h++
		m = 0
	}
	return fmt.Sprintf("%dh %dm", int(h), int(m))
}

// Insights returns the rule-based tips shown under the tiles.
func Insights(s *Summary) []string {
	var out []string

	if s.WorkoutsCompleted > 5 {
		out = append(out, "Great consistency! Your workout streak is building momentum.")
	} else {
		out = append(out, "Start small: consistency beats intensity. Try completing 3 workouts this week.")
	}

	switch s.HealthRisk {
	case "Low":
		out = append(out, "Your health metrics are optimal! Keep up the great work.")
	case "Moderate":
		out = append(out, "Some areas need attention. Review your health checkup for details.")
	case "High", "Very High":
		out = append(out, "Important: Consult with your healthcare provider about your risk factors.")
	default:
		out = append(out, "Complete your health checkup to get personalized insights.")
	}

	switch {
	case s.CaloriesConsumed > 2500:
		out = append(out, fmt.Sprintf("You've consumed %.0f calories today. Consider lighter meals for dinner.", s.CaloriesConsumed))
	case s.CaloriesConsumed > 0:
		out = append(out, fmt.Sprintf("You've consumed %.0f calories today. Good balance so far!", s.CaloriesConsumed))
	default:
		out = append(out, "Start tracking your meals to get nutrition insights.")
	}

	switch {
	case s.AvgSleep == NoSleep:
		out = append(out, "Track your sleep to optimize recovery.")
	case s.AvgSleepHours < 7:
		out = append(out, fmt.Sprintf("Average sleep: %s. Aim for 7-9 hours for optimal recovery.", s.AvgSleep))
	default:
		out = append(out, fmt.Sprintf("Average sleep: %s. Great sleep habits support your fitness goals!", s.AvgSleep))
	}

	return out
}
