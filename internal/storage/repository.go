// ABOUTME: Repository interface for typed fitness document storage.
// ABOUTME: One get/save pair per document kind, plus export/import and lifecycle.
package storage

import (
	"github.com/harperreed/fittrack/internal/models"
)

// Repository defines the typed storage interface.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Workout plan state
	GetWorkoutState(userID string) (*models.WorkoutState, error)
	SaveWorkoutState(userID string, s *models.WorkoutState) error

	// Auth documents
	GetAccounts() (map[string]*models.Account, error)
	SaveAccounts(accounts map[string]*models.Account) error
	GetSession() (*models.Session, error)
	SaveSession(s *models.Session) error
	ClearSession() error

	// Side documents
	GetBMI(userID string) (*models.BMIRecord, error)
	SaveBMI(userID string, r *models.BMIRecord) error
	GetDiet(userID string) (*models.DietLog, error)
	SaveDiet(userID string, d *models.DietLog) error
	GetHydration(userID string) (*models.HydrationLog, error)
	SaveHydration(userID string, h *models.HydrationLog) error
	GetSleep(userID string) (*models.SleepLog, error)
	SaveSleep(userID string, l *models.SleepLog) error
	GetHealth(userID string) (*models.HealthAssessment, error)
	SaveHealth(userID string, h *models.HealthAssessment) error
	GetNutrition(userID string) (*models.NutritionPlan, error)
	SaveNutrition(userID string, n *models.NutritionPlan) error
	GetBloodTest(userID string) (*models.BloodTestRecord, error)
	SaveBloodTest(userID string, b *models.BloodTestRecord) error

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Backend() Backend
	Close() error
}
