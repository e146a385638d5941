// ABOUTME: Account, session and side-document models stored per user.
// ABOUTME: Field names follow the JSON documents the browser app wrote.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account is a registered user, keyed by email in the accounts document.
type Account struct {
	UserID         string    `json:"userId"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	PasswordHash   string    `json:"passwordHash,omitempty"`
	Password       string    `json:"password,omitempty"` // legacy plaintext, cleared on next login
	RegisteredDate time.Time `json:"registeredDate"`
}

// NewAccount creates an Account with a generated user ID.
func NewAccount(name, email string) *Account {
	return &Account{
		UserID:         uuid.New().String(),
		Email:          strings.ToLower(strings.TrimSpace(email)),
		Name:           name,
		RegisteredDate: time.Now(),
	}
}

// Session is the single active login on this machine.
type Session struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	LoggedIn  bool      `json:"loggedIn"`
	LoginDate time.Time `json:"loginDate"`
	Token     string    `json:"token,omitempty"`
}

// BMIRecord is the last BMI calculator input and result.
type BMIRecord struct {
	IsMetric       bool     `json:"isMetric"`
	Height         string   `json:"height,omitempty"`
	Weight         string   `json:"weight,omitempty"`
	Feet           string   `json:"feet,omitempty"`
	Inches         string   `json:"inches,omitempty"`
	Pounds         string   `json:"pounds,omitempty"`
	BMI            *float64 `json:"bmi,omitempty"`
	LastCalculated string   `json:"lastCalculated,omitempty"`
}

// MealEntry is a logged meal.
type MealEntry struct {
	ID        string  `json:"id"`
	MealType  string  `json:"mealType"`
	FoodName  string  `json:"foodName"`
	Calories  float64 `json:"calories"`
	Protein   float64 `json:"protein"`
	Carbs     float64 `json:"carbs"`
	Fats      float64 `json:"fats"`
	Timestamp string  `json:"timestamp"`
}

// DietGoals are the user's daily macro targets.
type DietGoals struct {
	DailyCalories float64 `json:"dailyCalories"`
	Protein       float64 `json:"protein"`
	Carbs         float64 `json:"carbs"`
	Fats          float64 `json:"fats"`
}

// DietLog holds all logged meals and the macro goals.
type DietLog struct {
	Meals       []MealEntry `json:"meals"`
	Goals       DietGoals   `json:"goals"`
	LastUpdated string      `json:"lastUpdated,omitempty"`
}

// HydrationEntry is one glass of water.
type HydrationEntry struct {
	Amount    float64 `json:"amount"`
	Time      string  `json:"time,omitempty"`
	Timestamp string  `json:"timestamp"`
}

// HydrationLog is the water counter for Date.
type HydrationLog struct {
	Date          string           `json:"date"`
	CurrentIntake float64          `json:"currentIntake"`
	DailyGoal     float64          `json:"dailyGoal"`
	History       []HydrationEntry `json:"history"`
	LastUpdated   string           `json:"lastUpdated,omitempty"`
}

// SleepRecord is one night of sleep; Duration is in hours.
type SleepRecord struct {
	Date     string  `json:"date"`
	Bedtime  string  `json:"bedtime"`
	WakeTime string  `json:"wakeTime"`
	Duration float64 `json:"duration"`
	Quality  int     `json:"quality"`
	Notes    string  `json:"notes,omitempty"`
}

// SleepLog holds all sleep records.
type SleepLog struct {
	SleepRecords []SleepRecord `json:"sleepRecords"`
	LastUpdated  string        `json:"lastUpdated,omitempty"`
}

// HealthInputs are the risk questionnaire answers.
type HealthInputs struct {
	Age                    int      `json:"age"`
	Gender                 string   `json:"gender"`
	BloodPressureSystolic  float64  `json:"bloodPressureSystolic"`
	BloodPressureDiastolic float64  `json:"bloodPressureDiastolic"`
	Cholesterol            float64  `json:"cholesterol"`
	Glucose                float64  `json:"glucose"`
	Smoking                bool     `json:"smoking"`
	AlcoholConsumption     bool     `json:"alcoholConsumption"`
	PhysicalActivity       string   `json:"physicalActivity"`
	FamilyHistory          []string `json:"familyHistory"`
}

// RiskScore is an additive score and its band.
type RiskScore struct {
	Risk  float64 `json:"risk"`
	Level string  `json:"level"`
}

// RiskAssessment is the stored result of the questionnaire.
type RiskAssessment struct {
	HeartDisease RiskScore `json:"heartDisease"`
	Diabetes     RiskScore `json:"diabetes"`
	Stroke       RiskScore `json:"stroke"`
	Hypertension RiskScore `json:"hypertension"`
	OverallRisk  string    `json:"overallRisk"`
}

// HealthAssessment is the health questionnaire document.
type HealthAssessment struct {
	HealthData     *HealthInputs   `json:"healthData,omitempty"`
	RiskAssessment *RiskAssessment `json:"riskAssessment,omitempty"`
	LastUpdated    string          `json:"lastUpdated,omitempty"`
}

// FoodItem is an entry of the nutrition food table.
type FoodItem struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
	Fiber    float64 `json:"fiber"`
	Category string  `json:"category"`
	IsIndian bool    `json:"isIndian"`
}

// PlannedMeal is a food with a portion multiplier.
type PlannedMeal struct {
	Food    FoodItem `json:"food"`
	Portion float64  `json:"portion"`
}

// NutritionPlan is the meal plan for Date.
type NutritionPlan struct {
	Date        string        `json:"date"`
	Meals       []PlannedMeal `json:"meals"`
	LastUpdated string        `json:"lastUpdated,omitempty"`
}

// BloodTest holds the panel values entered by the user.
type BloodTest struct {
	Hemoglobin       float64 `json:"hemoglobin"`
	WBC              float64 `json:"wbc"`
	Platelets        float64 `json:"platelets"`
	TotalCholesterol float64 `json:"totalCholesterol"`
	LDL              float64 `json:"ldl"`
	HDL              float64 `json:"hdl"`
	Triglycerides    float64 `json:"triglycerides"`
	FastingGlucose   float64 `json:"fastingGlucose"`
	HbA1c            float64 `json:"hba1c,omitempty"`
	SGPT             float64 `json:"sgpt"`
	SGOT             float64 `json:"sgot"`
	Creatinine       float64 `json:"creatinine"`
	Urea             float64 `json:"urea"`
	TSH              float64 `json:"tsh"`
	VitaminD         float64 `json:"vitaminD"`
	VitaminB12       float64 `json:"vitaminB12,omitempty"`
	UricAcid         float64 `json:"uricAcid"`
	Iron             float64 `json:"iron"`
	TestDate         string  `json:"testDate"`
}

// Recommendation is one rule-table finding for a blood test.
type Recommendation struct {
	Category string   `json:"category"`
	Severity string   `json:"severity"`
	Message  string   `json:"message"`
	Action   []string `json:"action"`
	Icon     string   `json:"icon,omitempty"`
}

// BloodTestRecord is the blood test document.
type BloodTestRecord struct {
	BloodTest       *BloodTest       `json:"bloodTest,omitempty"`
	Recommendations []Recommendation `json:"recommendations"`
	LastUpdated     string           `json:"lastUpdated,omitempty"`
}

// docDateLayouts are the date-string forms found in stored documents.
var docDateLayouts = []string{
	time.DateOnly,
	"Mon Jan 02 2006",
	time.RFC3339,
}

// ParseDocDate parses a document date string in the given location.
func ParseDocDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range docDateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date: %q", s)
}

// SameDay reports whether a and b fall on the same calendar date in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
