// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers.
package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/fittrack/internal/storage"
	"github.com/harperreed/fittrack/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }

// setupTestServer creates a server over a temporary SQLite store.
func setupTestServer(t *testing.T) (*Server, *testClock) {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "fittrack.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	store := storage.NewStore(db)
	t.Cleanup(func() { _ = store.Close() })

	clock := &testClock{t: time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)}
	svc := tracker.New(store, time.UTC).WithClock(clock.now)

	server, err := NewServer(store, svc, "user-1")
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server, clock
}

func withProfile(t *testing.T, server *Server) {
	t.Helper()
	_, _, err := server.handleSetProfile(context.Background(), &mcp.CallToolRequest{}, setProfileInput{
		Age:           30,
		Gender:        "female",
		FitnessLevel:  "beginner",
		AvailableTime: 40,
	})
	if err != nil {
		t.Fatalf("handleSetProfile failed: %v", err)
	}
}

func TestNewServer(t *testing.T) {
	server, _ := setupTestServer(t)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.repo == nil {
		t.Error("Expected non-nil repo")
	}
	if server.userID != "user-1" {
		t.Errorf("userID mismatch: got %q", server.userID)
	}
}

func TestHandleSetProfile(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     setProfileInput
		wantErr   bool
		errSubstr string
	}{
		{
			name:  "valid profile",
			input: setProfileInput{Age: 25, Gender: "male", FitnessLevel: "Advanced", AvailableTime: 60},
		},
		{
			name:      "unknown level",
			input:     setProfileInput{Age: 25, Gender: "male", FitnessLevel: "elite", AvailableTime: 60},
			wantErr:   true,
			errSubstr: "unknown fitness level",
		},
		{
			name:      "unknown gender",
			input:     setProfileInput{Age: 25, Gender: "robot", FitnessLevel: "beginner", AvailableTime: 60},
			wantErr:   true,
			errSubstr: "unknown gender",
		},
		{
			name:      "bad age",
			input:     setProfileInput{Age: 0, Gender: "male", FitnessLevel: "beginner", AvailableTime: 60},
			wantErr:   true,
			errSubstr: "age",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleSetProfile(ctx, &mcp.CallToolRequest{}, tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("Expected error containing %q, got %q", tt.errSubstr, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !strings.Contains(output.Message, "30-day advanced plan") {
				t.Errorf("Unexpected message: %q", output.Message)
			}
		})
	}
}

func TestHandleGetProfile(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	_, out, err := server.handleGetProfile(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, ok := out.(simpleOutput); !ok {
		t.Errorf("Expected message output without profile, got %T", out)
	}

	withProfile(t, server)
	_, out, err = server.handleGetProfile(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	data, _ := json.Marshal(out)
	if !strings.Contains(string(data), `"fitnessLevel":"beginner"`) {
		t.Errorf("Unexpected profile output: %s", data)
	}
}

func TestHandleGetPlan(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	if _, _, err := server.handleGetPlan(ctx, &mcp.CallToolRequest{}, emptyInput{}); err == nil {
		t.Error("Expected error without profile")
	}

	withProfile(t, server)
	_, out, err := server.handleGetPlan(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(out.Days) != 30 {
		t.Fatalf("Expected 30 days, got %d", len(out.Days))
	}
	if out.Days[0].Status != "available" || out.Days[1].Status != "locked" {
		t.Errorf("Unexpected statuses: %s, %s", out.Days[0].Status, out.Days[1].Status)
	}
	if out.Days[0].Duration != "25-35 min" {
		t.Errorf("Duration mismatch: got %q", out.Days[0].Duration)
	}
}

func TestHandleGetDay(t *testing.T) {
	server, _ := setupTestServer(t)
	withProfile(t, server)
	ctx := context.Background()

	_, out, err := server.handleGetDay(ctx, &mcp.CallToolRequest{}, dayInput{Day: 14})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	v, ok := out.(*tracker.DayView)
	if !ok {
		t.Fatalf("Expected *tracker.DayView, got %T", out)
	}
	if v.Workout == nil || v.Workout.Title != "Active Recovery" {
		t.Errorf("Unexpected day 14: %+v", v.Workout)
	}

	if _, _, err := server.handleGetDay(ctx, &mcp.CallToolRequest{}, dayInput{Day: 0}); err == nil {
		t.Error("Expected error for day 0")
	}
}

func TestHandleCompleteDay(t *testing.T) {
	server, clock := setupTestServer(t)
	withProfile(t, server)
	ctx := context.Background()

	_, out, err := server.handleCompleteDay(ctx, &mcp.CallToolRequest{}, dayInput{Day: 1})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !out.Changed || out.Streak != 1 || out.CurrentDay != 2 {
		t.Errorf("Unexpected output: %+v", out)
	}

	_, out, err = server.handleCompleteDay(ctx, &mcp.CallToolRequest{}, dayInput{Day: 1})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Changed || !strings.Contains(out.Message, "already completed") {
		t.Errorf("Expected no-op, got %+v", out)
	}

	_, _, err = server.handleCompleteDay(ctx, &mcp.CallToolRequest{}, dayInput{Day: 2})
	if err == nil {
		t.Fatal("Expected locked error")
	}
	if !strings.Contains(err.Error(), "Unlocks in 15h 0m") {
		t.Errorf("Expected countdown in error, got %q", err.Error())
	}

	clock.t = clock.t.Add(24 * time.Hour)
	if _, _, err := server.handleCompleteDay(ctx, &mcp.CallToolRequest{}, dayInput{Day: 2}); err != nil {
		t.Errorf("Unexpected error next day: %v", err)
	}
}

func TestHandleGetStatus(t *testing.T) {
	server, _ := setupTestServer(t)
	withProfile(t, server)
	ctx := context.Background()

	if _, _, err := server.handleCompleteDay(ctx, &mcp.CallToolRequest{}, dayInput{Day: 1}); err != nil {
		t.Fatalf("handleCompleteDay failed: %v", err)
	}

	_, out, err := server.handleGetStatus(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.CurrentDay != 2 || out.Streak != 1 {
		t.Errorf("Unexpected status: %+v", out)
	}
	if out.TodayStatus != "locked" {
		t.Errorf("TodayStatus mismatch: got %q, want locked", out.TodayStatus)
	}
	if out.NextUnlock != "2025-04-02 00:00 UTC" {
		t.Errorf("NextUnlock mismatch: got %q", out.NextUnlock)
	}
}

func readJSON(t *testing.T, result *mcp.ReadResourceResult) map[string]any {
	t.Helper()
	if result == nil || len(result.Contents) != 1 {
		t.Fatal("Expected one resource content")
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &out); err != nil {
		t.Fatalf("Failed to parse resource JSON: %v", err)
	}
	return out
}

func TestHandleTodayResource(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	if _, err := server.handleTodayResource(ctx, &mcp.ReadResourceRequest{}); err == nil {
		t.Error("Expected error without profile")
	}

	withProfile(t, server)
	result, err := server.handleTodayResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	out := readJSON(t, result)
	if out["date"] != "2025-04-01" {
		t.Errorf("date mismatch: got %v", out["date"])
	}
	if result.Contents[0].URI != todayURI {
		t.Errorf("URI mismatch: got %s", result.Contents[0].URI)
	}
}

func TestHandlePlanResource(t *testing.T) {
	server, _ := setupTestServer(t)
	withProfile(t, server)
	ctx := context.Background()

	if _, _, err := server.handleCompleteDay(ctx, &mcp.CallToolRequest{}, dayInput{Day: 1}); err != nil {
		t.Fatalf("handleCompleteDay failed: %v", err)
	}
	result, err := server.handlePlanResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	out := readJSON(t, result)
	if out["completed"] != float64(1) || out["total"] != float64(30) {
		t.Errorf("Unexpected counts: completed=%v total=%v", out["completed"], out["total"])
	}
}

func TestHandleSummaryResource(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	result, err := server.handleSummaryResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	out := readJSON(t, result)
	sum, ok := out["summary"].(map[string]any)
	if !ok {
		t.Fatalf("Expected summary object, got %T", out["summary"])
	}
	if sum["bloodTestStatus"] != "Not Tested" {
		t.Errorf("bloodTestStatus mismatch: got %v", sum["bloodTestStatus"])
	}
}
