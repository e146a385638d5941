// ABOUTME: Exercise, WorkoutDay and WorkoutState models for the 30-day plan.
// ABOUTME: Also defines the DayStatus enum used by the unlock state machine.
package models

import (
	"slices"
	"time"
)

// PlanLength is the number of days in every generated plan.
const PlanLength = 30

// WorkoutType is the archetype of a plan day.
type WorkoutType string

const (
	TypeIntroduction WorkoutType = "Introduction"
	TypeRecovery     WorkoutType = "Recovery"
	TypeStrength     WorkoutType = "Strength"
	TypeCardio       WorkoutType = "Cardio"
	TypeFullBody     WorkoutType = "Full Body"
)

// Exercise is a single movement inside a workout day.
type Exercise struct {
	Name         string       `json:"name" yaml:"name"`
	Duration     string       `json:"duration" yaml:"duration"`
	Reps         string       `json:"reps,omitempty" yaml:"reps,omitempty"`
	Instructions string       `json:"instructions" yaml:"instructions"`
	MuscleGroups []string     `json:"muscleGroups" yaml:"muscle_groups"`
	Difficulty   FitnessLevel `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
}

// WorkoutDay is one entry of a plan.
type WorkoutDay struct {
	Day         int         `json:"day" yaml:"day"`
	Title       string      `json:"title" yaml:"title"`
	Type        WorkoutType `json:"type" yaml:"type"`
	Duration    string      `json:"duration" yaml:"duration"`
	Exercises   []Exercise  `json:"exercises" yaml:"exercises"`
	Completed   bool        `json:"completed" yaml:"completed"`
	CompletedAt *time.Time  `json:"completedAt,omitempty" yaml:"completed_at,omitempty"`
}

// WorkoutState is the persisted root of a user's plan progress.
type WorkoutState struct {
	CurrentDay         int          `json:"currentDay"`
	Streak             int          `json:"streak"`
	CompletedDays      []int        `json:"completedDays"`
	WorkoutHistory     []WorkoutDay `json:"workoutHistory"`
	LastCompletionDate string       `json:"lastCompletionDate"`
	StartDate          string       `json:"startDate"`
	UserProfile        *Profile     `json:"userProfile,omitempty"`
}

// NewWorkoutState returns the state a user starts with before any profile.
// StartDate is now's date in now's location.
func NewWorkoutState(now time.Time) *WorkoutState {
	return &WorkoutState{
		CurrentDay:     1,
		CompletedDays:  []int{},
		WorkoutHistory: []WorkoutDay{},
		StartDate:      now.Format(time.DateOnly),
	}
}

// IsCompleted reports whether day is in CompletedDays.
func (s *WorkoutState) IsCompleted(day int) bool {
	return slices.Contains(s.CompletedDays, day)
}

// HistoryDay returns the history entry for a day number, or nil.
func (s *WorkoutState) HistoryDay(day int) *WorkoutDay {
	for i := range s.WorkoutHistory {
		if s.WorkoutHistory[i].Day == day {
			return &s.WorkoutHistory[i]
		}
	}
	return nil
}

// DayStatus is the accessibility of a plan day at a point in time.
type DayStatus int

const (
	StatusLocked DayStatus = iota
	StatusAvailable
	StatusCompleted
)

func (s DayStatus) String() string {
	switch s {
	case StatusAvailable:
		return "available"
	case StatusCompleted:
		return "completed"
	default:
		return "locked"
	}
}

// MarshalText encodes the status by name.
func (s DayStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
