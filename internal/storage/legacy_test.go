// ABOUTME: Tests for importing a browser localStorage dump.
// ABOUTME: Uses the key layout and document shapes the web app wrote.
package storage

import (
	"testing"
)

const legacyDump = `{
	"vitalsync_user": "{\"userId\":\"user_1700000000000_abc123xyz\",\"email\":\"ada@example.com\",\"name\":\"Ada\",\"loggedIn\":true,\"loginDate\":\"2025-01-05T09:00:00.000Z\"}",
	"vitalsync_registered_users": "{\"ada@example.com\":{\"userId\":\"user_1700000000000_abc123xyz\",\"email\":\"ada@example.com\",\"name\":\"Ada\",\"password\":\"secret1\",\"registeredDate\":\"2025-01-01T08:00:00.000Z\"}}",
	"fitTrackState_user_1700000000000_abc123xyz": "{\"currentDay\":2,\"streak\":1,\"completedDays\":[1],\"workoutHistory\":[],\"lastCompletionDate\":\"Sun Jan 05 2025\",\"startDate\":\"Sun Jan 05 2025\"}",
	"hydrationData_user_1700000000000_abc123xyz": "{\"date\":\"Sun Jan 05 2025\",\"currentIntake\":4,\"dailyGoal\":8,\"history\":[]}",
	"theme": "dark",
	"bmiData_user_1700000000000_abc123xyz": "{broken"
}`

func TestImportLocalStorage(t *testing.T) {
	s := setupTestStore(t)

	items, err := ParseLocalStorageDump([]byte(legacyDump))
	if err != nil {
		t.Fatalf("ParseLocalStorageDump failed: %v", err)
	}

	summary, err := s.ImportLocalStorage(items)
	if err != nil {
		t.Fatalf("ImportLocalStorage failed: %v", err)
	}
	if summary.Documents != 3 {
		t.Errorf("Documents = %d, want 3", summary.Documents)
	}
	if summary.Accounts != 1 {
		t.Errorf("Accounts = %d, want 1", summary.Accounts)
	}
	if len(summary.Skipped) != 2 {
		t.Errorf("Skipped = %v, want theme and broken bmi", summary.Skipped)
	}

	userID := "user_1700000000000_abc123xyz"
	st, err := s.GetWorkoutState(userID)
	if err != nil {
		t.Fatalf("GetWorkoutState failed: %v", err)
	}
	if st.CurrentDay != 2 || !st.IsCompleted(1) {
		t.Errorf("workout state mismatch: %+v", st)
	}

	h, err := s.GetHydration(userID)
	if err != nil || h.CurrentIntake != 4 {
		t.Errorf("hydration = %+v, %v", h, err)
	}

	accounts, err := s.GetAccounts()
	if err != nil {
		t.Fatalf("GetAccounts failed: %v", err)
	}
	a := accounts["ada@example.com"]
	if a == nil || a.UserID != userID || a.Password != "secret1" {
		t.Errorf("account mismatch: %+v", a)
	}

	sess, err := s.GetSession()
	if err != nil || sess.UserID != userID {
		t.Errorf("session = %+v, %v", sess, err)
	}
}

func TestImportLocalStorageKeepsExistingAccounts(t *testing.T) {
	s := setupTestStore(t)
	items := map[string]string{
		"vitalsync_registered_users": `{"ada@example.com":{"userId":"old","name":"Ada"}}`,
	}
	if _, err := s.ImportLocalStorage(items); err != nil {
		t.Fatalf("first import failed: %v", err)
	}

	items["vitalsync_registered_users"] = `{"ADA@example.com":{"userId":"new","name":"Ada"},"bob@example.com":{"userId":"bob","name":"Bob"}}`
	summary, err := s.ImportLocalStorage(items)
	if err != nil {
		t.Fatalf("second import failed: %v", err)
	}
	if summary.Accounts != 1 {
		t.Errorf("Accounts = %d, want 1 (bob only)", summary.Accounts)
	}

	accounts, _ := s.GetAccounts()
	if accounts["ada@example.com"].UserID != "old" {
		t.Errorf("existing account overwritten: %+v", accounts["ada@example.com"])
	}
	if accounts["bob@example.com"] == nil {
		t.Error("bob not imported")
	}
}

func TestParseLocalStorageDumpAcceptsDecodedValues(t *testing.T) {
	items, err := ParseLocalStorageDump([]byte(`{"sleepData_u1": {"sleepRecords": []}}`))
	if err != nil {
		t.Fatalf("ParseLocalStorageDump failed: %v", err)
	}
	if items["sleepData_u1"] != `{"sleepRecords": []}` {
		t.Errorf("value = %q", items["sleepData_u1"])
	}

	if _, err := ParseLocalStorageDump([]byte(`[1,2]`)); err == nil {
		t.Error("expected error for non-object dump")
	}
}
