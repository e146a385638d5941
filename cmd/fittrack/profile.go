// ABOUTME: CLI commands for the fitness profile the plan is generated from.
// ABOUTME: Setting a profile regenerates the plan and keeps completed days.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/spf13/cobra"
)

var (
	profileAge        int
	profileGender     string
	profileLevel      string
	profileGoals      []string
	profileConditions []string
	profileTime       int
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your fitness profile",
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set your profile and regenerate the plan",
	Long: `Set your fitness profile. The 30-day plan is regenerated from it;
days you already completed stay completed.

Flags not given keep their current value (or the default for a new profile:
age 30, male, beginner, 30 minutes).

EXAMPLES:

  fittrack profile set --age 28 --gender female --level intermediate --time 45
  fittrack profile set --goal "weight loss" --goal endurance
  fittrack profile set --level advanced`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := currentUser()
		if err != nil {
			return err
		}
		svc, err := newTracker()
		if err != nil {
			return err
		}

		st, err := svc.State(sess.UserID)
		if err != nil {
			return err
		}
		p := models.DefaultProfile()
		if st.UserProfile != nil {
			p = *st.UserProfile
		}

		flags := cmd.Flags()
		if flags.Changed("age") {
			p.Age = profileAge
		}
		if flags.Changed("gender") {
			if p.Gender, err = models.ParseGender(profileGender); err != nil {
				return err
			}
		}
		if flags.Changed("level") {
			if p.FitnessLevel, err = models.ParseFitnessLevel(profileLevel); err != nil {
				return err
			}
		}
		if flags.Changed("goal") {
			p.Goals = profileGoals
		}
		if flags.Changed("condition") {
			p.HealthConditions = profileConditions
		}
		if flags.Changed("time") {
			p.AvailableTime = profileTime
		}

		st, err = svc.SetProfile(sess.UserID, p)
		if err != nil {
			return err
		}

		color.Green("✓ Generated your %d-day %s plan", len(st.WorkoutHistory), p.FitnessLevel)
		if n := len(st.CompletedDays); n > 0 {
			fmt.Printf("  %d completed day(s) kept\n", n)
		}
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := currentUser()
		if err != nil {
			return err
		}
		svc, err := newTracker()
		if err != nil {
			return err
		}
		st, err := svc.State(sess.UserID)
		if err != nil {
			return err
		}
		if st.UserProfile == nil {
			color.Yellow("⚠ No profile yet. Run 'fittrack profile set'.")
			return nil
		}
		printProfile(*st.UserProfile)
		return nil
	},
}

func printProfile(p models.Profile) {
	faint := color.New(color.Faint)
	row := func(label, value string) {
		fmt.Printf("%s %s\n", faint.Sprint(padRight(label, 18)), value)
	}
	row("Age", fmt.Sprint(p.Age))
	row("Gender", string(p.Gender))
	row("Fitness level", string(p.FitnessLevel))
	row("Available time", fmt.Sprintf("%d min", p.AvailableTime))
	row("Goals", orNone(p.Goals))
	row("Health conditions", orNone(p.HealthConditions))
}

func orNone(xs []string) string {
	if len(xs) == 0 {
		return "none"
	}
	return strings.Join(xs, ", ")
}

func init() {
	profileSetCmd.Flags().IntVar(&profileAge, "age", 30, "age in years")
	profileSetCmd.Flags().StringVar(&profileGender, "gender", "male", "male, female or other")
	profileSetCmd.Flags().StringVarP(&profileLevel, "level", "l", "beginner", "beginner, intermediate or advanced")
	profileSetCmd.Flags().StringArrayVar(&profileGoals, "goal", nil, "fitness goal (repeatable)")
	profileSetCmd.Flags().StringArrayVar(&profileConditions, "condition", nil, "health condition (repeatable)")
	profileSetCmd.Flags().IntVarP(&profileTime, "time", "t", 30, "minutes available per workout")

	profileCmd.AddCommand(profileSetCmd, profileShowCmd)
	rootCmd.AddCommand(profileCmd)
}
