// ABOUTME: Tests for Profile validation and enum parsing.
// ABOUTME: Covers valid/invalid levels, genders and field ranges.
package models

import (
	"testing"
	"time"
)

func TestParseFitnessLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    FitnessLevel
		wantErr bool
	}{
		{"beginner", LevelBeginner, false},
		{"Intermediate", LevelIntermediate, false},
		{" ADVANCED ", LevelAdvanced, false},
		{"elite", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFitnessLevel(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseFitnessLevel(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFitnessLevel(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseFitnessLevel(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseGender(t *testing.T) {
	if g, err := ParseGender("Female"); err != nil || g != GenderFemale {
		t.Errorf("ParseGender(Female) = %s, %v", g, err)
	}
	if _, err := ParseGender("unknown"); err == nil {
		t.Error("expected error for unknown gender")
	}
}

func TestProfileValidate(t *testing.T) {
	valid := DefaultProfile()
	if err := valid.Validate(); err != nil {
		t.Fatalf("default profile should be valid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(p *Profile)
	}{
		{"zero age", func(p *Profile) { p.Age = 0 }},
		{"absurd age", func(p *Profile) { p.Age = 300 }},
		{"bad gender", func(p *Profile) { p.Gender = "robot" }},
		{"bad level", func(p *Profile) { p.FitnessLevel = "pro" }},
		{"no time", func(p *Profile) { p.AvailableTime = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultProfile()
			tt.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestParseDocDate(t *testing.T) {
	loc := time.UTC
	tests := []struct {
		input   string
		wantDay int
		wantErr bool
	}{
		{"2025-06-07", 7, false},
		{"Sat Jun 07 2025", 7, false},
		{"2025-06-07T10:00:00Z", 7, false},
		{"07/06/2025", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDocDate(tt.input, loc)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Day() != tt.wantDay {
				t.Errorf("day = %d, want %d", got.Day(), tt.wantDay)
			}
		})
	}
}

func TestNewAccountNormalisesEmail(t *testing.T) {
	a := NewAccount("Ada", "  Ada@Example.COM ")
	if a.Email != "ada@example.com" {
		t.Errorf("Email = %q", a.Email)
	}
	if a.UserID == "" {
		t.Error("expected a user ID")
	}
}
