// ABOUTME: CLI commands for viewing the plan: plan, today and day <n>.
// ABOUTME: Shows lock status and the countdown to the next unlock.
package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/progress"
	"github.com/harperreed/fittrack/internal/tracker"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:     "plan",
	Aliases: []string{"calendar", "ls"},
	Short:   "Show all 30 plan days",
	Long: `Show the 30-day plan with each day's status.

STATUS:

  ✓  completed
  ▶  available now
  🔒 locked (complete the previous day, then wait for midnight)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := currentUser()
		if err != nil {
			return err
		}
		svc, err := newTracker()
		if err != nil {
			return err
		}
		views, err := svc.Calendar(sess.UserID)
		if err != nil {
			return err
		}

		now := svc.Now()
		faint := color.New(color.Faint)
		for _, v := range views {
			line := fmt.Sprintf("%s Day %-2d %s %s %s",
				statusIcon(v.Status),
				v.Day,
				padRight(truncate(v.Workout.Title, 44), 44),
				padRight(string(v.Workout.Type), 12),
				faint.Sprint(v.Workout.Duration))
			if v.UnlockAt != nil {
				line += " " + color.YellowString(progress.FormatUntil(v.UnlockAt.Sub(now)))
			}
			fmt.Println(line)
		}
		return nil
	},
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's workout",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := currentUser()
		if err != nil {
			return err
		}
		svc, err := newTracker()
		if err != nil {
			return err
		}
		v, st, err := svc.Today(sess.UserID)
		if err != nil {
			return err
		}

		fmt.Printf("Streak: %d  ·  Completed: %d/%d\n\n", st.Streak, len(st.CompletedDays), models.PlanLength)
		printDay(v, svc.Now())
		return nil
	},
}

var dayCmd = &cobra.Command{
	Use:   "day <n>",
	Short: "Show one plan day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseDay(args[0])
		if err != nil {
			return err
		}
		sess, err := currentUser()
		if err != nil {
			return err
		}
		svc, err := newTracker()
		if err != nil {
			return err
		}
		v, err := svc.Day(sess.UserID, n)
		if err != nil {
			return err
		}
		printDay(v, svc.Now())
		return nil
	},
}

func printDay(v *tracker.DayView, now time.Time) {
	w := v.Workout
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	bold.Printf("Day %d: %s\n", v.Day, w.Title)
	fmt.Printf("%s  ·  %s  ·  %s %s\n", w.Type, w.Duration, statusIcon(v.Status), v.Status)
	switch {
	case v.UnlockAt != nil:
		color.Yellow("%s (at %s)", progress.FormatUntil(v.UnlockAt.Sub(now)), v.UnlockAt.Format("Mon Jan 2 15:04"))
	case v.Status == models.StatusLocked:
		color.Yellow("Complete day %d first", v.Day-1)
	case w.CompletedAt != nil:
		faint.Printf("Completed %s\n", w.CompletedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println()

	for i, ex := range w.Exercises {
		amount := ex.Duration
		if ex.Reps != "" {
			amount = ex.Reps
		}
		fmt.Printf("%2d. %s %s\n", i+1, padRight(ex.Name, 24), faint.Sprint(amount))
		fmt.Printf("    %s\n", ex.Instructions)
		if len(ex.MuscleGroups) > 0 {
			faint.Printf("    %s\n", strings.Join(ex.MuscleGroups, ", "))
		}
	}
}

func statusIcon(s models.DayStatus) string {
	switch s {
	case models.StatusCompleted:
		return color.GreenString("✓")
	case models.StatusAvailable:
		return color.CyanString("▶")
	default:
		return "🔒"
	}
}

func parseDay(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > models.PlanLength {
		return 0, fmt.Errorf("invalid day: %q (use 1-%d)", s, models.PlanLength)
	}
	return n, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	rootCmd.AddCommand(planCmd, todayCmd, dayCmd)
}
