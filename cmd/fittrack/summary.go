// ABOUTME: CLI command printing the dashboard tiles for the logged-in user.
// ABOUTME: Combines the workout plan with the stored side documents.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fittrack/internal/dashboard"
	"github.com/spf13/cobra"
)

var summaryJSON bool

var summaryCmd = &cobra.Command{
	Use:     "summary",
	Aliases: []string{"dashboard", "stats"},
	Short:   "Show your dashboard summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := currentUser()
		if err != nil {
			return err
		}
		svc, err := newTracker()
		if err != nil {
			return err
		}

		sum, err := dashboard.Build(store, sess.UserID, svc.Now(), svc.Location())
		if err != nil {
			return err
		}

		if summaryJSON {
			data, err := json.MarshalIndent(sum, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		faint := color.New(color.Faint)
		tile := func(label string, value any) {
			fmt.Printf("%s %v\n", faint.Sprint(padRight(label, 20)), value)
		}
		color.New(color.Bold).Printf("Welcome back, %s\n\n", sess.Name)
		tile("Day streak", sum.DayStreak)
		tile("Workouts completed", sum.WorkoutsCompleted)
		tile("Water today", fmt.Sprintf("%.0f/%.0f glasses", sum.WaterToday, sum.WaterGoal))
		tile("Calories today", fmt.Sprintf("%.0f", sum.CaloriesConsumed))
		tile("Avg sleep", sum.AvgSleep)
		tile("Health risk", riskColor(sum.HealthRisk))
		tile("Nutrition meals", sum.NutritionMealsToday)
		tile("Blood test", sum.BloodTestStatus)

		fmt.Println()
		for _, tip := range sum.Insights {
			fmt.Printf("• %s\n", tip)
		}
		return nil
	},
}

func riskColor(risk string) string {
	switch risk {
	case "Low":
		return color.GreenString(risk)
	case "Moderate":
		return color.YellowString(risk)
	case "High", "Very High":
		return color.RedString(risk)
	default:
		return risk
	}
}

func init() {
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "print as JSON")
	rootCmd.AddCommand(summaryCmd)
}
