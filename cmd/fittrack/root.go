// ABOUTME: Root Cobra command for fittrack CLI.
// ABOUTME: Loads config, sets up logging and opens storage via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/harperreed/fittrack/internal/auth"
	"github.com/harperreed/fittrack/internal/config"
	"github.com/harperreed/fittrack/internal/logger"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/storage"
	"github.com/harperreed/fittrack/internal/tracker"
	"github.com/spf13/cobra"
)

// skipStorage marks commands that must not open the configured backend.
const skipStorage = "skip-storage"

var (
	cfg      *config.Config
	store    *storage.Store
	closeLog func() error
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "fittrack",
	Short: "30-day personalized workout plan tracker",
	Long: `Fittrack generates a personalized 30-day workout plan from your profile
and tracks your progress through it. Each day unlocks at midnight after the
previous day is completed.

QUICK START:

  $ fittrack signup --name Ada --email ada@example.com
  $ fittrack profile set --age 30 --gender female --level beginner --time 30
  $ fittrack today                # Today's workout
  $ fittrack complete 1           # Mark day 1 done
  $ fittrack plan                 # All 30 days with lock status
  $ fittrack summary              # Dashboard tiles

PLAN DAYS:

  Day 1            Introduction
  Every 7th day    Active Recovery
  Days 4, 10, ...  Strength Training
  Days 2, 5, ...   Cardio Blast
  Other days       Full Body Workout

MCP INTEGRATION:

  Run 'fittrack mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants.

  {
    "mcpServers": {
      "fittrack": { "command": "fittrack", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Backends: sqlite (default), markdown, badger.
  Data lives in ~/.local/share/fittrack unless data_dir is configured.
  Config: ~/.config/fittrack/config.json (see 'fittrack config show').`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		closeLog = logger.Init(logger.Options{
			Level:   cfg.GetLogLevel(),
			File:    filepath.Join(cfg.GetDataDir(), "fittrack.log"),
			Verbose: verbose,
			Stderr:  cmd.ErrOrStderr(),
		})

		if cmd.Annotations[skipStorage] == "true" {
			return nil
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		store, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		logger.Log.Debug("storage opened", "backend", cfg.GetBackend(), "data_dir", cfg.GetDataDir())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanup()
	},
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	_ = cleanup()
	return err
}

// cleanup closes storage and the log file. Failed commands skip
// PersistentPostRunE, so Execute calls it too.
func cleanup() error {
	var err error
	if store != nil {
		err = store.Close()
		store = nil
	}
	if closeLog != nil {
		_ = closeLog()
		closeLog = nil
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr at the configured level")
}

func newTracker() (*tracker.Service, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return tracker.New(store, loc), nil
}

func newAuth() (*auth.Service, error) {
	secret, err := cfg.GetSessionSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to load session secret: %w", err)
	}
	return auth.NewService(store, secret), nil
}

// currentUser returns the logged-in session or a hint to log in.
func currentUser() (*models.Session, error) {
	a, err := newAuth()
	if err != nil {
		return nil, err
	}
	sess, err := a.Current()
	if err != nil {
		return nil, fmt.Errorf("%w (run 'fittrack login' or 'fittrack signup')", err)
	}
	return sess, nil
}
