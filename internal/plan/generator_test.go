// ABOUTME: Tests for the plan generator.
// ABOUTME: Covers archetype precedence, determinism, titles and copy isolation.
package plan

import (
	"reflect"
	"testing"

	"github.com/harperreed/fittrack/internal/models"
)

func profile(level models.FitnessLevel, minutes int) models.Profile {
	p := models.DefaultProfile()
	p.FitnessLevel = level
	p.AvailableTime = minutes
	return p
}

func names(xs []models.Exercise) []string {
	out := make([]string, len(xs))
	for i, e := range xs {
		out[i] = e.Name
	}
	return out
}

func TestGenerateIsDeterministic(t *testing.T) {
	for _, level := range models.AllFitnessLevels {
		t.Run(string(level), func(t *testing.T) {
			a := Generate(profile(level, 30))
			b := Generate(profile(level, 30))
			if !reflect.DeepEqual(a, b) {
				t.Error("two plans from the same profile differ")
			}
			if len(a) != models.PlanLength {
				t.Fatalf("plan length = %d, want %d", len(a), models.PlanLength)
			}
			for i, d := range a {
				if d.Day != i+1 {
					t.Errorf("day %d has Day=%d", i+1, d.Day)
				}
				if d.Completed || d.CompletedAt != nil {
					t.Errorf("day %d should start incomplete", d.Day)
				}
			}
		})
	}
}

func TestArchetype(t *testing.T) {
	tests := []struct {
		day  int
		want models.WorkoutType
	}{
		{1, models.TypeIntroduction},
		{2, models.TypeCardio},
		{3, models.TypeFullBody},
		{4, models.TypeStrength},
		{7, models.TypeRecovery},
		{14, models.TypeRecovery},
		{21, models.TypeRecovery},
		{28, models.TypeRecovery},
		{9, models.TypeFullBody},
		{22, models.TypeStrength},
		{29, models.TypeCardio},
		{30, models.TypeFullBody},
	}

	for _, tt := range tests {
		if got := Archetype(tt.day); got != tt.want {
			t.Errorf("Archetype(%d) = %s, want %s", tt.day, got, tt.want)
		}
	}
}

func TestGenerateExerciseSelection(t *testing.T) {
	for _, level := range models.AllFitnessLevels {
		t.Run(string(level), func(t *testing.T) {
			lib := LibraryFor(level)
			days := Generate(profile(level, 30))
			warm := names(lib.Warmup)

			intro := names(days[0].Exercises)
			want := append(append([]string{}, warm...), lib.Strength[0].Name, lib.Strength[1].Name)
			if !reflect.DeepEqual(intro, want) {
				t.Errorf("day 1 exercises = %v, want %v", intro, want)
			}

			for _, d := range days {
				if d.Day%7 == 0 {
					if d.Type != models.TypeRecovery {
						t.Errorf("day %d type = %s, want Recovery", d.Day, d.Type)
					}
					if got := names(d.Exercises); !reflect.DeepEqual(got, warm) {
						t.Errorf("day %d exercises = %v, want warmup %v", d.Day, got, warm)
					}
				}
			}

			strength := names(days[3].Exercises)
			if len(strength) != len(lib.Warmup)+len(lib.Strength) {
				t.Errorf("day 4 has %d exercises", len(strength))
			}

			cardio := names(days[1].Exercises)
			if len(cardio) != len(lib.Warmup)+len(lib.Cardio) {
				t.Errorf("day 2 has %d exercises", len(cardio))
			}

			full := names(days[2].Exercises)
			want = append(append([]string{}, warm...), lib.Strength[0].Name, lib.Strength[1].Name, lib.Cardio[0].Name)
			if !reflect.DeepEqual(full, want) {
				t.Errorf("day 3 exercises = %v, want %v", full, want)
			}
		})
	}
}

func TestGenerateTitles(t *testing.T) {
	days := Generate(profile(models.LevelIntermediate, 30))

	if got := days[0].Title; got != "Welcome to Your Personalized Intermediate Plan!" {
		t.Errorf("intro title = %q", got)
	}
	titles := map[int]string{
		2: "Cardio Blast",
		3: "Full Body Workout",
		4: "Strength Training",
		7: "Active Recovery",
	}
	for day, want := range titles {
		if got := days[day-1].Title; got != want {
			t.Errorf("day %d title = %q, want %q", day, got, want)
		}
	}
}

func TestDurationLabel(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{10, "15-20 min"},
		{29, "15-20 min"},
		{30, "25-35 min"},
		{44, "25-35 min"},
		{45, "35-45 min"},
		{90, "35-45 min"},
	}

	for _, tt := range tests {
		if got := DurationLabel(tt.minutes); got != tt.want {
			t.Errorf("DurationLabel(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}

	days := Generate(profile(models.LevelBeginner, 50))
	for _, d := range days {
		if d.Duration != "35-45 min" {
			t.Fatalf("day %d duration = %q", d.Day, d.Duration)
		}
	}
}

func TestGenerateSetsDifficultyAndCopies(t *testing.T) {
	days := Generate(profile(models.LevelAdvanced, 60))
	for _, d := range days {
		for _, e := range d.Exercises {
			if e.Difficulty != models.LevelAdvanced {
				t.Fatalf("day %d %s difficulty = %s", d.Day, e.Name, e.Difficulty)
			}
		}
	}

	days[0].Exercises[0].MuscleGroups[0] = "mutated"
	days[0].Exercises[0].Name = "mutated"

	if LibraryFor(models.LevelAdvanced).Warmup[0].MuscleGroups[0] == "mutated" {
		t.Error("mutating a plan leaked into the library")
	}
	if days[1].Exercises[0].MuscleGroups[0] == "mutated" || days[1].Exercises[0].Name == "mutated" {
		t.Error("mutating one day leaked into another")
	}
}

func TestGenerateUnknownLevelFallsBack(t *testing.T) {
	days := Generate(profile("elite", 30))
	if got := days[0].Title; got != "Welcome to Your Personalized Beginner Plan!" {
		t.Errorf("title = %q", got)
	}
	if got := days[0].Exercises[0].Name; got != "Gentle Walk" {
		t.Errorf("first exercise = %q, want Gentle Walk", got)
	}
	if days[0].Exercises[0].Difficulty != models.LevelBeginner {
		t.Errorf("difficulty = %s", days[0].Exercises[0].Difficulty)
	}
}
