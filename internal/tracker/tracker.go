// ABOUTME: Workout service doing read-modify-write of a user's plan document.
// ABOUTME: Enforces the unlock guard before completing a day.
package tracker

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/progress"
	"github.com/harperreed/fittrack/internal/storage"
)

var (
	ErrNoProfile  = errors.New("no profile set: create one with 'fittrack profile set'")
	ErrInvalidDay = fmt.Errorf("day must be between 1 and %d", models.PlanLength)
	ErrDayLocked  = errors.New("day is locked")
)

// LockedError reports a completion attempt on a locked day.
type LockedError struct {
	Day      int
	UnlockAt time.Time // zero when the previous day is not done yet
}

func (e *LockedError) Error() string {
	if e.UnlockAt.IsZero() {
		return fmt.Sprintf("day %d is locked: complete day %d first", e.Day, e.Day-1)
	}
	return fmt.Sprintf("day %d is locked until %s", e.Day, e.UnlockAt.Format("Mon Jan 2 15:04"))
}

func (e *LockedError) Is(target error) bool {
	return target == ErrDayLocked
}

// DayView is one plan day with its status at the time of the call.
type DayView struct {
	Day      int                `json:"day"`
	Status   models.DayStatus   `json:"status"`
	UnlockAt *time.Time         `json:"unlockAt,omitempty"`
	Workout  *models.WorkoutDay `json:"workout,omitempty"`
}

// Service operates on workout documents.
type Service struct {
	repo storage.Repository
	loc  *time.Location
	now  func() time.Time
}

// New creates a Service whose day boundaries are midnights in loc.
func New(repo storage.Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{repo: repo, loc: loc, now: time.Now}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Location returns the day-boundary location.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.now()
}

// State loads a user's plan. A missing document yields a fresh state; a
// stored profile regenerates the history with completion kept.
func (s *Service) State(userID string) (*models.WorkoutState, error) {
	st, err := s.repo.GetWorkoutState(userID)
	if errors.Is(err, storage.ErrNotFound) {
		return models.NewWorkoutState(s.now().In(s.loc)), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load workout state: %w", err)
	}
	if st.UserProfile != nil {
		progress.ApplyProfile(st, *st.UserProfile)
	}
	return st, nil
}

// SetProfile validates p, regenerates the plan and saves it.
func (s *Service) SetProfile(userID string, p models.Profile) (*models.WorkoutState, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	st, err := s.State(userID)
	if err != nil {
		return nil, err
	}
	progress.ApplyProfile(st, p)
	if st.StartDate == "" {
		st.StartDate = s.now().In(s.loc).Format(time.DateOnly)
	}

	if err := s.repo.SaveWorkoutState(userID, st); err != nil {
		return nil, fmt.Errorf("save workout state: %w", err)
	}
	slog.Info("profile updated", "user_id", userID, "level", p.FitnessLevel)
	return st, nil
}

// Complete marks day as done. Completing a completed day returns false
// and no error.
func (s *Service) Complete(userID string, day int) (*models.WorkoutState, bool, error) {
	st, err := s.State(userID)
	if err != nil {
		return nil, false, err
	}
	if st.UserProfile == nil {
		return nil, false, ErrNoProfile
	}
	if day < 1 || day > models.PlanLength {
		return nil, false, fmt.Errorf("%w: got %d", ErrInvalidDay, day)
	}

	now := s.now().In(s.loc)
	switch progress.Status(st, day, now, s.loc) {
	case models.StatusCompleted:
		return st, false, nil
	case models.StatusLocked:
		unlock, _ := progress.UnlockAt(st, day, s.loc)
		return nil, false, &LockedError{Day: day, UnlockAt: unlock}
	}

	if !progress.Complete(st, day, now) {
		return st, false, nil
	}
	if err := s.repo.SaveWorkoutState(userID, st); err != nil {
		return nil, false, fmt.Errorf("save workout state: %w", err)
	}
	slog.Info("day completed", "user_id", userID, "day", day, "streak", st.Streak)
	return st, true, nil
}

// Calendar returns all plan days with their current status.
func (s *Service) Calendar(userID string) ([]DayView, error) {
	st, err := s.planState(userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	views := make([]DayView, 0, len(st.WorkoutHistory))
	for d := 1; d <= models.PlanLength; d++ {
		views = append(views, s.view(st, d, now))
	}
	return views, nil
}

// Day returns one plan day.
func (s *Service) Day(userID string, day int) (*DayView, error) {
	if day < 1 || day > models.PlanLength {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDay, day)
	}
	st, err := s.planState(userID)
	if err != nil {
		return nil, err
	}
	v := s.view(st, day, s.now())
	return &v, nil
}

// Today returns the current-day view.
func (s *Service) Today(userID string) (*DayView, *models.WorkoutState, error) {
	st, err := s.planState(userID)
	if err != nil {
		return nil, nil, err
	}
	v := s.view(st, st.CurrentDay, s.now())
	return &v, st, nil
}

func (s *Service) planState(userID string) (*models.WorkoutState, error) {
	st, err := s.State(userID)
	if err != nil {
		return nil, err
	}
	if st.UserProfile == nil {
		return nil, ErrNoProfile
	}
	return st, nil
}

func (s *Service) view(st *models.WorkoutState, day int, now time.Time) DayView {
	v := DayView{Day: day, Status: progress.Status(st, day, now, s.loc)}
	if h := st.HistoryDay(day); h != nil {
		w := *h
		v.Workout = &w
	}
	if v.Status == models.StatusLocked {
		if unlock, ok := progress.UnlockAt(st, day, s.loc); ok {
			v.UnlockAt = &unlock
		}
	}
	return v
}
