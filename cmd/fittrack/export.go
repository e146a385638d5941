// ABOUTME: CLI commands for exporting and importing fittrack data.
// ABOUTME: Supports JSON, YAML, Markdown and HTML export plus browser data import.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/fittrack/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput  string
	exportAll     bool
	importBrowser bool
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export fittrack data",
	Long: `Export fittrack data in various formats.

FORMATS:

  json       Full JSON export of every document (suitable for backup/restore)
  yaml       YAML export (human-readable)
  markdown   Readable report with the plan as a table
  html       The markdown report rendered to HTML

json and yaml always include every document. markdown and html cover the
logged-in user unless --all is given.

OPTIONS:

  --output, -o   Write to file instead of stdout
  --all          Include every user (markdown/html)

EXAMPLES:

  fittrack export json -o backup.json
  fittrack export yaml
  fittrack export markdown
  fittrack export html --all -o report.html`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown", "html"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = store.ExportJSON()
		case "yaml":
			data, err = store.ExportYAML()
		case "markdown", "md", "html":
			owner := ""
			if !exportAll {
				sess, err := currentUser()
				if err != nil {
					return err
				}
				owner = sess.UserID
			}
			var md string
			md, err = store.ExportMarkdown(owner)
			if err == nil {
				data = []byte(md)
				if format == "html" {
					data, err = storage.MarkdownToHTML(md)
				}
			}
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, markdown, or html)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import fittrack data from JSON",
	Long: `Import documents from a JSON backup file. Documents with the same
owner and kind are replaced.

With --browser, the file is a dump of the web app's localStorage (a JSON
object of key/value pairs, e.g. from JSON.stringify(localStorage)). Accounts,
the active session and every per-user document are imported. Registered
users already present locally are kept.

EXAMPLES:

  fittrack import backup.json
  fittrack import --browser localstorage.json
  cat backup.json | fittrack import -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := readInput(cmd.InOrStdin(), filename)
		if err != nil {
			return err
		}

		if !importBrowser {
			if err := store.ImportJSON(data); err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			color.Green("✓ Imported from %s", filename)
			return nil
		}

		items, err := storage.ParseLocalStorageDump(data)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		summary, err := store.ImportLocalStorage(items)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported %d documents and %d accounts from %s", summary.Documents, summary.Accounts, filename)
		for _, key := range summary.Skipped {
			color.Yellow("⚠ Skipped %s", key)
		}
		if summary.Accounts > 0 {
			fmt.Println("Log in again with 'fittrack login' to start a session.")
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "include every user (markdown/html)")
	importCmd.Flags().BoolVar(&importBrowser, "browser", false, "file is a browser localStorage dump")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
