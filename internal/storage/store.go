// ABOUTME: Store implements Repository on top of any Backend.
// ABOUTME: Malformed stored JSON is logged and replaced by the kind's default.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/harperreed/fittrack/internal/models"
)

// Store is the typed view over a Backend.
type Store struct {
	backend Backend
	now     func() time.Time
}

// Compile-time check that Store implements Repository.
var _ Repository = (*Store)(nil)

// NewStore wraps a backend.
func NewStore(b Backend) *Store {
	return &Store{backend: b, now: time.Now}
}

// Backend returns the underlying document backend.
func (s *Store) Backend() Backend {
	return s.backend
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// load decodes a document into a fresh T. A nil def makes malformed
// documents behave like missing ones.
func load[T any](s *Store, owner string, kind Kind, def func() *T) (*T, error) {
	doc, err := s.backend.GetDocument(owner, kind)
	if err != nil {
		return nil, err
	}

	v := new(T)
	if err := json.Unmarshal(doc.Body, v); err != nil {
		slog.Warn("malformed stored document, using default",
			"owner", owner, "kind", kind, "error", err)
		if def == nil {
			return nil, notFound(owner, kind)
		}
		return def(), nil
	}
	return v, nil
}

func save[T any](s *Store, owner string, kind Kind, v *T) error {
	if v == nil {
		return fmt.Errorf("save %s: nil document", kind)
	}
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", kind, err)
	}
	return s.backend.PutDocument(&Document{
		Owner:     owner,
		Kind:      kind,
		Body:      body,
		UpdatedAt: s.now(),
	})
}

// GetWorkoutState loads a user's plan state and repairs out-of-range
// fields left by older writers.
func (s *Store) GetWorkoutState(userID string) (*models.WorkoutState, error) {
	st, err := load(s, userID, KindWorkout, func() *models.WorkoutState {
		return models.NewWorkoutState(s.now())
	})
	if err != nil {
		return nil, err
	}
	normalizeWorkoutState(st)
	return st, nil
}

func normalizeWorkoutState(st *models.WorkoutState) {
	days := st.CompletedDays[:0]
	seen := make(map[int]bool)
	for _, d := range st.CompletedDays {
		if d >= 1 && d <= models.PlanLength && !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	st.CompletedDays = days
	if st.CompletedDays == nil {
		st.CompletedDays = []int{}
	}
	if st.WorkoutHistory == nil {
		st.WorkoutHistory = []models.WorkoutDay{}
	}
	st.CurrentDay = min(max(st.CurrentDay, 1), models.PlanLength)
}

// SaveWorkoutState persists a user's plan state.
func (s *Store) SaveWorkoutState(userID string, st *models.WorkoutState) error {
	return save(s, userID, KindWorkout, st)
}

// GetAccounts returns registered accounts keyed by email. A missing
// document yields an empty map.
func (s *Store) GetAccounts() (map[string]*models.Account, error) {
	accounts := map[string]*models.Account{}
	p, err := load(s, GlobalOwner, KindAccounts, func() *map[string]*models.Account {
		return &accounts
	})
	if errors.Is(err, ErrNotFound) {
		return accounts, nil
	}
	if err != nil {
		return nil, err
	}
	if *p == nil {
		return accounts, nil
	}
	return *p, nil
}

// SaveAccounts replaces the accounts document.
func (s *Store) SaveAccounts(accounts map[string]*models.Account) error {
	return save(s, GlobalOwner, KindAccounts, &accounts)
}

// GetSession returns the active session or ErrNotFound.
func (s *Store) GetSession() (*models.Session, error) {
	return load[models.Session](s, GlobalOwner, KindSession, nil)
}

// SaveSession writes the active session.
func (s *Store) SaveSession(sess *models.Session) error {
	return save(s, GlobalOwner, KindSession, sess)
}

// ClearSession removes the active session. Clearing an absent session is
// not an error.
func (s *Store) ClearSession() error {
	err := s.backend.DeleteDocument(GlobalOwner, KindSession)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

func (s *Store) GetBMI(userID string) (*models.BMIRecord, error) {
	return load(s, userID, KindBMI, func() *models.BMIRecord {
		return &models.BMIRecord{IsMetric: true}
	})
}

func (s *Store) SaveBMI(userID string, r *models.BMIRecord) error {
	return save(s, userID, KindBMI, r)
}

func (s *Store) GetDiet(userID string) (*models.DietLog, error) {
	return load(s, userID, KindDiet, func() *models.DietLog {
		return &models.DietLog{Meals: []models.MealEntry{}}
	})
}

func (s *Store) SaveDiet(userID string, d *models.DietLog) error {
	return save(s, userID, KindDiet, d)
}

func (s *Store) GetHydration(userID string) (*models.HydrationLog, error) {
	return load(s, userID, KindHydration, func() *models.HydrationLog {
		return &models.HydrationLog{DailyGoal: 8, History: []models.HydrationEntry{}}
	})
}

func (s *Store) SaveHydration(userID string, h *models.HydrationLog) error {
	return save(s, userID, KindHydration, h)
}

func (s *Store) GetSleep(userID string) (*models.SleepLog, error) {
	return load(s, userID, KindSleep, func() *models.SleepLog {
		return &models.SleepLog{SleepRecords: []models.SleepRecord{}}
	})
}

func (s *Store) SaveSleep(userID string, l *models.SleepLog) error {
	return save(s, userID, KindSleep, l)
}

func (s *Store) GetHealth(userID string) (*models.HealthAssessment, error) {
	return load(s, userID, KindHealth, func() *models.HealthAssessment {
		return &models.HealthAssessment{}
	})
}

func (s *Store) SaveHealth(userID string, h *models.HealthAssessment) error {
	return save(s, userID, KindHealth, h)
}

func (s *Store) GetNutrition(userID string) (*models.NutritionPlan, error) {
	return load(s, userID, KindNutrition, func() *models.NutritionPlan {
		return &models.NutritionPlan{Meals: []models.PlannedMeal{}}
	})
}

func (s *Store) SaveNutrition(userID string, n *models.NutritionPlan) error {
	return save(s, userID, KindNutrition, n)
}

func (s *Store) GetBloodTest(userID string) (*models.BloodTestRecord, error) {
	return load(s, userID, KindBloodTest, func() *models.BloodTestRecord {
		return &models.BloodTestRecord{Recommendations: []models.Recommendation{}}
	})
}

func (s *Store) SaveBloodTest(userID string, b *models.BloodTestRecord) error {
	return save(s, userID, KindBloodTest, b)
}

// PutJSON stores body verbatim for owner and kind after checking it is JSON.
func (s *Store) PutJSON(owner string, kind Kind, body []byte) error {
	if err := validateKey(owner, kind); err != nil {
		return err
	}
	if !json.Valid(body) {
		return fmt.Errorf("%s/%s: body is not valid JSON", owner, kind)
	}
	return s.putRaw(owner, kind, string(body))
}
