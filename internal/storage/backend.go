// ABOUTME: Backend interface and Document type shared by all storage engines.
// ABOUTME: A document is one JSON body per (owner, kind) pair.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// ErrNotFound is returned when no document exists for an owner and kind.
var ErrNotFound = errors.New("document not found")

// GlobalOwner owns the documents that are not tied to a user.
const GlobalOwner = "global"

// Kind names a document type.
type Kind string

const (
	KindAccounts  Kind = "accounts"
	KindSession   Kind = "session"
	KindWorkout   Kind = "workout"
	KindBMI       Kind = "bmi"
	KindDiet      Kind = "diet"
	KindHydration Kind = "hydration"
	KindSleep     Kind = "sleep"
	KindHealth    Kind = "health"
	KindNutrition Kind = "nutrition"
	KindBloodTest Kind = "bloodtest"
)

// UserKinds are the per-user document kinds.
var UserKinds = []Kind{
	KindWorkout, KindBMI, KindDiet, KindHydration,
	KindSleep, KindHealth, KindNutrition, KindBloodTest,
}

// GlobalKinds live under GlobalOwner.
var GlobalKinds = []Kind{KindAccounts, KindSession}

// ParseKind converts a string into a known Kind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range slices.Concat(GlobalKinds, UserKinds) {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown document kind: %q", s)
}

// Document is the unit of storage.
type Document struct {
	Owner     string          `json:"owner" yaml:"owner"`
	Kind      Kind            `json:"kind" yaml:"kind"`
	Body      json.RawMessage `json:"body" yaml:"-"`
	UpdatedAt time.Time       `json:"updated_at" yaml:"updated_at"`
}

// Backend is a raw document store. Implementations must be safe to reopen
// and must return an error wrapping ErrNotFound for missing documents.
type Backend interface {
	GetDocument(owner string, kind Kind) (*Document, error)
	PutDocument(doc *Document) error
	DeleteDocument(owner string, kind Kind) error
	// ListDocuments returns all documents of owner, or every document
	// when owner is empty.
	ListDocuments(owner string) ([]*Document, error)
	Close() error
}

func notFound(owner string, kind Kind) error {
	return fmt.Errorf("%s/%s: %w", owner, kind, ErrNotFound)
}

// validateKey rejects owners and kinds that cannot be used as path or key
// segments.
func validateKey(owner string, kind Kind) error {
	if owner == "" {
		return errors.New("document owner is required")
	}
	if kind == "" {
		return errors.New("document kind is required")
	}
	for _, s := range []string{owner, string(kind)} {
		if strings.ContainsAny(s, `/\`) || s == "." || s == ".." {
			return fmt.Errorf("invalid document key segment: %q", s)
		}
	}
	return nil
}
