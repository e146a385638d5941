// ABOUTME: Profile model with Gender and FitnessLevel enums.
// ABOUTME: The profile is the only input to the 30-day plan generator.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// Gender is the self-reported gender on a profile.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// FitnessLevel selects the exercise library used for a plan.
type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

// AllFitnessLevels lists the valid fitness levels in ascending order.
var AllFitnessLevels = []FitnessLevel{LevelBeginner, LevelIntermediate, LevelAdvanced}

// AllGenders lists the valid genders.
var AllGenders = []Gender{GenderMale, GenderFemale, GenderOther}

// ParseFitnessLevel converts a case-insensitive string into a FitnessLevel.
func ParseFitnessLevel(s string) (FitnessLevel, error) {
	for _, l := range AllFitnessLevels {
		if strings.EqualFold(string(l), strings.TrimSpace(s)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown fitness level: %q (use beginner, intermediate, or advanced)", s)
}

// ParseGender converts a case-insensitive string into a Gender.
func ParseGender(s string) (Gender, error) {
	for _, g := range AllGenders {
		if strings.EqualFold(string(g), strings.TrimSpace(s)) {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown gender: %q (use male, female, or other)", s)
}

// Profile holds the user-entered attributes a plan is generated from.
type Profile struct {
	Age              int          `json:"age" yaml:"age"`
	Gender           Gender       `json:"gender" yaml:"gender"`
	FitnessLevel     FitnessLevel `json:"fitnessLevel" yaml:"fitness_level"`
	Goals            []string     `json:"goals" yaml:"goals"`
	HealthConditions []string     `json:"healthConditions" yaml:"health_conditions"`
	AvailableTime    int          `json:"availableTime" yaml:"available_time"`
}

// DefaultProfile mirrors the pre-filled profile form.
func DefaultProfile() Profile {
	return Profile{
		Age:              30,
		Gender:           GenderMale,
		FitnessLevel:     LevelBeginner,
		Goals:            []string{},
		HealthConditions: []string{},
		AvailableTime:    30,
	}
}

// Validate checks the fields the plan generator assumes are sane.
func (p Profile) Validate() error {
	var errs []error
	if p.Age <= 0 || p.Age > 120 {
		errs = append(errs, fmt.Errorf("age must be between 1 and 120, got %d", p.Age))
	}
	if _, err := ParseGender(string(p.Gender)); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseFitnessLevel(string(p.FitnessLevel)); err != nil {
		errs = append(errs, err)
	}
	if p.AvailableTime <= 0 {
		errs = append(errs, fmt.Errorf("available time must be positive, got %d", p.AvailableTime))
	}
	return errors.Join(errs...)
}
