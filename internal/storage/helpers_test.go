// ABOUTME: Shared test fixtures for storage tests.
// ABOUTME: Opens each backend against temporary locations.
package storage

import (
	"path/filepath"
	"testing"
	"time"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func setupTestMarkdown(t *testing.T) *MarkdownStore {
	t.Helper()
	s, err := NewMarkdownStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewMarkdownStore failed: %v", err)
	}
	return s
}

func setupTestKV(t *testing.T) *KVStore {
	t.Helper()
	s, err := OpenKVInMemory()
	if err != nil {
		t.Fatalf("OpenKVInMemory failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// backends returns one fresh instance of every backend.
func backends(t *testing.T) map[string]Backend {
	t.Helper()
	return map[string]Backend{
		"sqlite":   setupTestDB(t),
		"markdown": setupTestMarkdown(t),
		"badger":   setupTestKV(t),
	}
}

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(setupTestDB(t))
	s.now = func() time.Time { return time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC) }
	return s
}
