// ABOUTME: CLI command for reading and writing raw per-user documents.
// ABOUTME: Covers the side documents (bmi, diet, hydration, ...) the CLI only stores.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/fatih/color"
	"github.com/harperreed/fittrack/internal/storage"
	"github.com/spf13/cobra"
)

var (
	docSetFile string
	docDelete  bool
)

var docCmd = &cobra.Command{
	Use:   "doc [kind]",
	Short: "Show or replace one of your documents",
	Long: `Show or replace one of your stored documents as JSON.

KINDS:

  workout, bmi, diet, hydration, sleep, health, nutrition, bloodtest

Without a kind, lists the documents you have.

EXAMPLES:

  fittrack doc                          # List your documents
  fittrack doc sleep                    # Print the sleep log
  fittrack doc hydration --set h.json   # Replace the hydration log
  cat diet.json | fittrack doc diet --set -
  fittrack doc bmi --delete`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := currentUser()
		if err != nil {
			return err
		}
		backend := store.Backend()

		if len(args) == 0 {
			docs, err := backend.ListDocuments(sess.UserID)
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				fmt.Println("No documents found.")
				return nil
			}
			faint := color.New(color.Faint)
			for _, d := range docs {
				fmt.Printf("%s %s\n", padRight(string(d.Kind), 12), faint.Sprint(d.UpdatedAt.Local().Format("2006-01-02 15:04")))
			}
			return nil
		}

		kind, err := storage.ParseKind(args[0])
		if err != nil {
			return err
		}
		if !slices.Contains(storage.UserKinds, kind) {
			return fmt.Errorf("%s is not a user document", kind)
		}

		switch {
		case docDelete:
			if err := backend.DeleteDocument(sess.UserID, kind); err != nil {
				return err
			}
			color.Green("✓ Deleted %s", kind)
			return nil

		case docSetFile != "":
			body, err := readInput(cmd.InOrStdin(), docSetFile)
			if err != nil {
				return err
			}
			if err := store.PutJSON(sess.UserID, kind, body); err != nil {
				return err
			}
			color.Green("✓ Saved %s", kind)
			return nil
		}

		d, err := backend.GetDocument(sess.UserID, kind)
		if errors.Is(err, storage.ErrNotFound) {
			color.Yellow("⚠ No %s document yet", kind)
			return nil
		}
		if err != nil {
			return err
		}
		var out bytes.Buffer
		if err := json.Indent(&out, d.Body, "", "  "); err != nil {
			return fmt.Errorf("stored %s is not valid JSON: %w", kind, err)
		}
		fmt.Println(out.String())
		return nil
	},
}

// readInput reads a file, or stdin when name is "-".
func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func init() {
	docCmd.Flags().StringVar(&docSetFile, "set", "", "replace the document with JSON from a file (- for stdin)")
	docCmd.Flags().BoolVar(&docDelete, "delete", false, "delete the document")
	docCmd.MarkFlagsMutuallyExclusive("set", "delete")
	rootCmd.AddCommand(docCmd)
}
