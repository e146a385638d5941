// ABOUTME: CLI commands for viewing and changing configuration.
// ABOUTME: Edits the config file only; environment overrides are shown separately.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/fittrack/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
	Long: `Show or change configuration stored in ~/.config/fittrack/config.json.

KEYS:

  backend          sqlite, markdown or badger
  data_dir         data directory (default ~/.local/share/fittrack)
  timezone         zone whose midnight unlocks days (Local, UTC, Europe/Paris, ...)
  log_level        debug, info, warn or error
  session_secret   key used to sign login sessions

ENVIRONMENT:

  FITTRACK_BACKEND, FITTRACK_DATA_DIR, FITTRACK_TIMEZONE and FITTRACK_LOG_LEVEL
  override the file. They can also be set in a .env file in the current
  directory or the config directory.`,
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show effective configuration",
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		faint := color.New(color.Faint)
		row := func(key, value string) {
			fmt.Printf("%s %s\n", faint.Sprint(padRight(key, 16)), value)
		}

		loc, err := cfg.Location()
		if err != nil {
			return err
		}
		row("config file", config.GetConfigPath())
		row("backend", cfg.GetBackend())
		row("data_dir", cfg.GetDataDir())
		row("storage", config.BackendPath(cfg.GetBackend(), cfg.GetDataDir()))
		row("timezone", loc.String())
		row("log_level", cfg.GetLogLevel().String())
		secret := "(generated, in data_dir/session.key)"
		if cfg.SessionSecret != "" {
			secret = "(set)"
		}
		row("session_secret", secret)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:         "set <key> <value>",
	Short:       "Set a configuration value",
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		fileCfg, err := config.LoadFile()
		if err != nil {
			return err
		}
		if err := fileCfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := fileCfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		color.Green("✓ Set %s", args[0])
		if args[0] == "backend" {
			fmt.Println("Existing data is not moved; use 'fittrack migrate' to copy it.")
		}
		return nil
	},
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
