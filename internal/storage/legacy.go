// ABOUTME: Import of the browser localStorage layout used by the web app.
// ABOUTME: Maps vitalsync_* and <prefix>_<userId> keys onto typed documents.
package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/harperreed/fittrack/internal/models"
)

const (
	legacySessionKey  = "vitalsync_user"
	legacyAccountsKey = "vitalsync_registered_users"
)

// legacyPrefixes maps per-user localStorage key prefixes to kinds.
var legacyPrefixes = map[string]Kind{
	"fitTrackState_": KindWorkout,
	"bmiData_":       KindBMI,
	"dietData_":      KindDiet,
	"hydrationData_": KindHydration,
	"sleepData_":     KindSleep,
	"healthData_":    KindHealth,
	"nutritionPlan_": KindNutrition,
	"bloodTest_":     KindBloodTest,
}

// LegacyImportSummary reports what a localStorage import did.
type LegacyImportSummary struct {
	Documents int
	Accounts  int
	Skipped   []string
}

// ParseLocalStorageDump decodes a JSON object of localStorage items. Values
// may be JSON strings (as localStorage holds them) or already-decoded JSON.
func ParseLocalStorageDump(data []byte) (map[string]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse localStorage dump: %w", err)
	}

	items := make(map[string]string, len(raw))
	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			items[k] = s
			continue
		}
		items[k] = string(v)
	}
	return items, nil
}

// ImportLocalStorage writes every recognised item as a document. Accounts
// are merged into the existing accounts document; existing emails win.
// Unknown keys and values that are not valid JSON are skipped.
func (s *Store) ImportLocalStorage(items map[string]string) (*LegacyImportSummary, error) {
	summary := &LegacyImportSummary{}

	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := items[key]
		if !json.Valid([]byte(value)) {
			slog.Warn("skipping localStorage item with invalid JSON", "key", key)
			summary.Skipped = append(summary.Skipped, key)
			continue
		}

		switch key {
		case legacyAccountsKey:
			n, err := s.mergeLegacyAccounts(value)
			if err != nil {
				return nil, err
			}
			summary.Accounts += n
			continue
		case legacySessionKey:
			if err := s.putRaw(GlobalOwner, KindSession, value); err != nil {
				return nil, err
			}
			summary.Documents++
			continue
		}

		owner, kind, ok := legacyKey(key)
		if !ok {
			summary.Skipped = append(summary.Skipped, key)
			continue
		}
		if err := s.putRaw(owner, kind, value); err != nil {
			return nil, err
		}
		summary.Documents++
	}

	return summary, nil
}

func legacyKey(key string) (owner string, kind Kind, ok bool) {
	for prefix, k := range legacyPrefixes {
		if id, found := strings.CutPrefix(key, prefix); found && id != "" {
			return id, k, validateKey(id, k) == nil
		}
	}
	return "", "", false
}

func (s *Store) putRaw(owner string, kind Kind, value string) error {
	err := s.backend.PutDocument(&Document{
		Owner:     owner,
		Kind:      kind,
		Body:      json.RawMessage(value),
		UpdatedAt: s.now(),
	})
	if err != nil {
		return fmt.Errorf("import %s/%s: %w", owner, kind, err)
	}
	return nil
}

func (s *Store) mergeLegacyAccounts(value string) (int, error) {
	var imported map[string]*models.Account
	if err := json.Unmarshal([]byte(value), &imported); err != nil {
		slog.Warn("skipping malformed registered users", "error", err)
		return 0, nil
	}

	accounts, err := s.GetAccounts()
	if err != nil {
		return 0, fmt.Errorf("load accounts: %w", err)
	}

	added := 0
	for email, a := range imported {
		if a == nil {
			continue
		}
		email = strings.ToLower(strings.TrimSpace(email))
		if _, exists := accounts[email]; exists {
			continue
		}
		a.Email = email
		accounts[email] = a
		added++
	}

	if err := s.SaveAccounts(accounts); err != nil {
		return 0, fmt.Errorf("save accounts: %w", err)
	}
	return added, nil
}
