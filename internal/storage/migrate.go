// ABOUTME: Data migration between fittrack storage backends.
// ABOUTME: Copies every document from source to destination unchanged.
package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Documents int
	Owners    int
}

// MigrateData copies all documents from src to dst, keeping their
// timestamps. Existing destination documents with the same key are
// replaced.
func MigrateData(src, dst Backend) (*MigrateSummary, error) {
	docs, err := src.ListDocuments("")
	if err != nil {
		return nil, fmt.Errorf("list source documents: %w", err)
	}

	summary := &MigrateSummary{}
	owners := make(map[string]bool)
	for _, d := range docs {
		if err := dst.PutDocument(d); err != nil {
			return nil, fmt.Errorf("put document %s/%s: %w", d.Owner, d.Kind, err)
		}
		summary.Documents++
		owners[d.Owner] = true
	}
	summary.Owners = len(owners)

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
