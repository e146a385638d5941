// ABOUTME: Deterministic 30-day plan generation from a Profile.
// ABOUTME: Picks a day archetype by day index and copies exercises from the level library.
package plan

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/harperreed/fittrack/internal/models"
)

var titleCaser = cases.Title(language.English)

// Generate builds the full plan for a profile. All days start incomplete.
func Generate(p models.Profile) []models.WorkoutDay {
	lib := LibraryFor(p.FitnessLevel)
	level := p.FitnessLevel
	if _, ok := libraries[level]; !ok {
		level = models.LevelBeginner
	}
	duration := DurationLabel(p.AvailableTime)

	days := make([]models.WorkoutDay, 0, models.PlanLength)
	for d := 1; d <= models.PlanLength; d++ {
		typ := Archetype(d)
		days = append(days, models.WorkoutDay{
			Day:       d,
			Title:     title(typ, level),
			Type:      typ,
			Duration:  duration,
			Exercises: exercisesFor(typ, lib, level),
		})
	}
	return days
}

// Archetype returns the workout type for a day number.
func Archetype(day int) models.WorkoutType {
	switch {
	case day == 1:
		return models.TypeIntroduction
	case day%7 == 0:
		return models.TypeRecovery
	case day%3 == 1:
		return models.TypeStrength
	case day%3 == 2:
		return models.TypeCardio
	default:
		return models.TypeFullBody
	}
}

// DurationLabel maps available minutes to the session length label.
func DurationLabel(minutes int) string {
	switch {
	case minutes < 30:
		return "15-20 min"
	case minutes < 45:
		return "25-35 min"
	default:
		return "35-45 min"
	}
}

func title(typ models.WorkoutType, level models.FitnessLevel) string {
	switch typ {
	case models.TypeIntroduction:
		return fmt.Sprintf("Welcome to Your Personalized %s Plan!", titleCaser.String(string(level)))
	case models.TypeRecovery:
		return "Active Recovery"
	case models.TypeStrength:
		return "Strength Training"
	case models.TypeCardio:
		return "Cardio Blast"
	default:
		return "Full Body Workout"
	}
}

func exercisesFor(typ models.WorkoutType, lib Library, level models.FitnessLevel) []models.Exercise {
	var out []models.Exercise
	out = appendCopies(out, lib.Warmup, level)
	switch typ {
	case models.TypeIntroduction:
		out = appendCopies(out, first(lib.Strength, 2), level)
	case models.TypeStrength:
		out = appendCopies(out, lib.Strength, level)
	case models.TypeCardio:
		out = appendCopies(out, lib.Cardio, level)
	case models.TypeFullBody:
		out = appendCopies(out, first(lib.Strength, 2), level)
		out = appendCopies(out, first(lib.Cardio, 1), level)
	}
	return out
}

func first(xs []models.Exercise, n int) []models.Exercise {
	return xs[:min(n, len(xs))]
}

// appendCopies appends deep copies so no day shares backing arrays with
// the library or with another day.
func appendCopies(dst, src []models.Exercise, level models.FitnessLevel) []models.Exercise {
	for _, e := range src {
		e.MuscleGroups = append([]string(nil), e.MuscleGroups...)
		e.Difficulty = level
		dst = append(dst, e)
	}
	return dst
}
