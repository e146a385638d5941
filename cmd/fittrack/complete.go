// ABOUTME: CLI command for completing a plan day.
// ABOUTME: Refuses locked days and reports the time until they unlock.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/progress"
	"github.com/harperreed/fittrack/internal/tracker"
	"github.com/spf13/cobra"
)

var completeCmd = &cobra.Command{
	Use:     "complete <day>",
	Aliases: []string{"done"},
	Short:   "Mark a plan day as completed",
	Long: `Mark a plan day as completed.

A day can only be completed once it is unlocked: day 1 always is, and day N
unlocks at the first midnight after day N-1 was completed. Completing an
already completed day does nothing.

EXAMPLES:

  fittrack complete 1
  fittrack done 2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDay(args[0])
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

		st, changed, err := svc.Complete(sess.UserID, day)
		var locked *tracker.LockedError
		if errors.As(err, &locked) {
			if locked.UnlockAt.IsZero() {
				return fmt.Errorf("day %d is locked: complete day %d first", day, day-1)
			}
			return fmt.Errorf("day %d is locked: %s", day, progress.FormatUntil(locked.UnlockAt.Sub(svc.Now())))
		}
		if err != nil {
			return err
		}

		if !changed {
			color.Yellow("⚠ Day %d is already completed", day)
			return nil
		}
		color.Green("✓ Completed day %d! Streak: %d", day, st.Streak)
		if len(st.CompletedDays) == models.PlanLength {
			color.Green("🎉 You finished the 30-day plan!")
		} else if next := day + 1; next <= models.PlanLength && !st.IsCompleted(next) {
			fmt.Printf("Day %d unlocks at midnight.\n", next)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completeCmd)
}
