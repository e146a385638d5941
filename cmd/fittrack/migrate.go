// ABOUTME: CLI command for migrating data between storage backends.
// ABOUTME: Copies every document from one backend to another under the data directory.
package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fittrack/internal/config"
	"github.com/harperreed/fittrack/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateForce  bool
	migrateSwitch bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate data between storage backends",
	Long: `Copy every document from one storage backend to another.

BACKENDS:

  sqlite     <data_dir>/fittrack.db
  markdown   <data_dir>/documents/
  badger     <data_dir>/kv/

The destination must be empty unless --force is given. --from defaults to
the configured backend.

EXAMPLES:

  fittrack migrate --to markdown
  fittrack migrate --from markdown --to badger --switch`,
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		from := migrateFrom
		if from == "" {
			from = cfg.GetBackend()
		}
		for _, b := range []string{from, migrateTo} {
			if !slices.Contains(config.Backends, b) {
				return fmt.Errorf("unknown backend: %q (use %s)", b, strings.Join(config.Backends, ", "))
			}
		}
		if from == migrateTo {
			return fmt.Errorf("source and destination are both %s", from)
		}

		dataDir := cfg.GetDataDir()
		dstPath := config.BackendPath(migrateTo, dataDir)
		if !migrateForce {
			if err := ensureEmptyDestination(migrateTo, dstPath); err != nil {
				return err
			}
		}

		src, err := config.OpenBackend(from, dataDir)
		if err != nil {
			return fmt.Errorf("failed to open source: %w", err)
		}
		defer func() { _ = src.Close() }()

		dst, err := config.OpenBackend(migrateTo, dataDir)
		if err != nil {
			return fmt.Errorf("failed to open destination: %w", err)
		}
		defer func() { _ = dst.Close() }()

		summary, err := storage.MigrateData(src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		color.Green("✓ Migrated %d documents (%d owners) from %s to %s", summary.Documents, summary.Owners, from, migrateTo)

		if migrateSwitch {
			fileCfg, err := config.LoadFile()
			if err != nil {
				return err
			}
			fileCfg.Backend = migrateTo
			if err := fileCfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			color.Green("✓ Backend set to %s", migrateTo)
		}
		return nil
	},
}

func ensureEmptyDestination(backend, path string) error {
	if backend == "sqlite" {
		exists, err := fileExists(path)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("destination %s already exists (use --force to merge)", path)
		}
		return nil
	}
	nonEmpty, err := storage.IsDirNonEmpty(path)
	if err != nil {
		return err
	}
	if nonEmpty {
		return fmt.Errorf("destination %s is not empty (use --force to merge)", path)
	}
	return nil
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "source backend (default: configured backend)")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "write into a non-empty destination")
	migrateCmd.Flags().BoolVar(&migrateSwitch, "switch", false, "make the destination the configured backend")
	_ = migrateCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(migrateCmd)
}
