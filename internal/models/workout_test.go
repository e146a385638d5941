// ABOUTME: Tests for WorkoutState helpers and the DayStatus enum.
// ABOUTME: Validates defaults, lookups, and status names.
package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewWorkoutState(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	s := NewWorkoutState(now)

	if s.CurrentDay != 1 {
		t.Errorf("CurrentDay = %d, want 1", s.CurrentDay)
	}
	if s.Streak != 0 {
		t.Errorf("Streak = %d, want 0", s.Streak)
	}
	if len(s.CompletedDays) != 0 {
		t.Errorf("CompletedDays = %v, want empty", s.CompletedDays)
	}
	if s.StartDate != "2025-03-14" {
		t.Errorf("StartDate = %s, want 2025-03-14", s.StartDate)
	}
	if s.UserProfile != nil {
		t.Error("expected no profile on a new state")
	}
}

func TestWorkoutStateLookups(t *testing.T) {
	s := &WorkoutState{
		CompletedDays:  []int{1, 2},
		WorkoutHistory: []WorkoutDay{{Day: 1}, {Day: 2}, {Day: 3}},
	}

	if !s.IsCompleted(2) {
		t.Error("expected day 2 to be completed")
	}
	if s.IsCompleted(3) {
		t.Error("expected day 3 to be incomplete")
	}

	d := s.HistoryDay(3)
	if d == nil || d.Day != 3 {
		t.Fatalf("HistoryDay(3) = %v", d)
	}
	d.Title = "changed"
	if s.WorkoutHistory[2].Title != "changed" {
		t.Error("HistoryDay should return a pointer into the history slice")
	}
	if s.HistoryDay(31) != nil {
		t.Error("expected nil for a day outside the history")
	}
}

func TestDayStatusString(t *testing.T) {
	tests := []struct {
		status DayStatus
		want   string
	}{
		{StatusLocked, "locked"},
		{StatusAvailable, "available"},
		{StatusCompleted, "completed"},
		{DayStatus(42), "locked"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.status.String(); got != tt.want {
				t.Errorf("String() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDayStatusJSON(t *testing.T) {
	data, err := json.Marshal(map[string]DayStatus{"status": StatusAvailable})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"status":"available"}` {
		t.Errorf("got %s", data)
	}
}

func TestWorkoutStateDecodesBrowserJSON(t *testing.T) {
	raw := `{
		"currentDay": 3,
		"streak": 2,
		"completedDays": [1, 2],
		"workoutHistory": [
			{"day": 1, "title": "Welcome", "type": "Introduction", "duration": "25-35 min",
			 "exercises": [], "completed": true, "completedAt": "2025-01-01T21:15:00.000Z"}
		],
		"lastCompletionDate": "Thu Jan 02 2025",
		"startDate": "Wed Jan 01 2025",
		"userProfile": {"age": 41, "gender": "female", "fitnessLevel": "advanced",
			"goals": ["strength"], "healthConditions": [], "availableTime": 40}
	}`

	var s WorkoutState
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if s.CurrentDay != 3 || s.Streak != 2 {
		t.Errorf("got currentDay=%d streak=%d", s.CurrentDay, s.Streak)
	}
	if s.UserProfile == nil || s.UserProfile.FitnessLevel != LevelAdvanced {
		t.Fatalf("profile not decoded: %+v", s.UserProfile)
	}
	if s.WorkoutHistory[0].CompletedAt == nil {
		t.Fatal("expected completedAt to decode")
	}
	if got := s.WorkoutHistory[0].CompletedAt.UTC().Hour(); got != 21 {
		t.Errorf("completedAt hour = %d, want 21", got)
	}
}
