// ABOUTME: MCP tool implementations for the 30-day plan.
// ABOUTME: Profile, plan, day lookup, completion and status tools.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/progress"
	"github.com/harperreed/fittrack/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_profile",
		Description: "Get the fitness profile the plan is generated from",
	}, s.handleGetProfile)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_profile",
		Description: "Create or update the fitness profile and regenerate the 30-day plan (completed days are kept)",
	}, s.handleSetProfile)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_plan",
		Description: "List all 30 plan days with title, type and lock status",
	}, s.handleGetPlan)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_day",
		Description: "Get one plan day with its exercises",
	}, s.handleGetDay)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "complete_day",
		Description: "Mark a plan day as completed; fails if the day is still locked",
	}, s.handleCompleteDay)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_status",
		Description: "Get current day, streak, completed days and the next unlock time",
	}, s.handleGetStatus)
}

// Tool input/output types

type emptyInput struct{}

type setProfileInput struct {
	Age              int      `json:"age" jsonschema:"Age in years (1-120)"`
	Gender           string   `json:"gender" jsonschema:"male, female or other"`
	FitnessLevel     string   `json:"fitness_level" jsonschema:"beginner, intermediate or advanced"`
	Goals            []string `json:"goals,omitempty" jsonschema:"Fitness goals, e.g. weight loss"`
	HealthConditions []string `json:"health_conditions,omitempty" jsonschema:"Health conditions to keep in mind"`
	AvailableTime    int      `json:"available_time" jsonschema:"Minutes available per workout"`
}

type dayInput struct {
	Day int `json:"day" jsonschema:"Plan day number (1-30)"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type planDayOutput struct {
	Day      int    `json:"day"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Duration string `json:"duration"`
	Status   string `json:"status"`
	UnlockAt string `json:"unlock_at,omitempty"`
}

type planOutput struct {
	Days []planDayOutput `json:"days"`
}

type completeOutput struct {
	Day        int    `json:"day"`
	Changed    bool   `json:"changed"`
	CurrentDay int    `json:"current_day"`
	Streak     int    `json:"streak"`
	Message    string `json:"message"`
}

type statusOutput struct {
	CurrentDay    int    `json:"current_day"`
	Streak        int    `json:"streak"`
	CompletedDays []int  `json:"completed_days"`
	TodayStatus   string `json:"today_status"`
	NextUnlock    string `json:"next_unlock,omitempty"`
	UnlocksIn     string `json:"unlocks_in,omitempty"`
}

// Tool handlers

func (s *Server) handleGetProfile(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	st, err := s.tracker.State(s.userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if st.UserProfile == nil {
		return nil, simpleOutput{Message: "No profile set. Use set_profile to create one."}, nil
	}
	return nil, st.UserProfile, nil
}

func (s *Server) handleSetProfile(ctx context.Context, req *mcp.CallToolRequest, input setProfileInput) (*mcp.CallToolResult, simpleOutput, error) {
	gender, err := models.ParseGender(input.Gender)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	level, err := models.ParseFitnessLevel(input.FitnessLevel)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	p := models.Profile{
		Age:              input.Age,
		Gender:           gender,
		FitnessLevel:     level,
		Goals:            nonNil(input.Goals),
		HealthConditions: nonNil(input.HealthConditions),
		AvailableTime:    input.AvailableTime,
	}
	st, err := s.tracker.SetProfile(s.userID, p)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to set profile: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Generated %d-day %s plan (%d days completed)", len(st.WorkoutHistory), level, len(st.CompletedDays)),
	}, nil
}

func (s *Server) handleGetPlan(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, planOutput, error) {
	views, err := s.tracker.Calendar(s.userID)
	if err != nil {
		return nil, planOutput{}, fmt.Errorf("failed to load plan: %w", err)
	}

	out := planOutput{Days: make([]planDayOutput, 0, len(views))}
	for _, v := range views {
		out.Days = append(out.Days, planDay(v))
	}
	return nil, out, nil
}

func (s *Server) handleGetDay(ctx context.Context, req *mcp.CallToolRequest, input dayInput) (*mcp.CallToolResult, any, error) {
	v, err := s.tracker.Day(s.userID, input.Day)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get day: %w", err)
	}
	return nil, v, nil
}

func (s *Server) handleCompleteDay(ctx context.Context, req *mcp.CallToolRequest, input dayInput) (*mcp.CallToolResult, completeOutput, error) {
	st, changed, err := s.tracker.Complete(s.userID, input.Day)
	var locked *tracker.LockedError
	if errors.As(err, &locked) {
		msg := locked.Error()
		if !locked.UnlockAt.IsZero() {
			msg = fmt.Sprintf("%s (%s)", msg, progress.FormatUntil(locked.UnlockAt.Sub(s.tracker.Now())))
		}
		return nil, completeOutput{}, errors.New(msg)
	}
	if err != nil {
		return nil, completeOutput{}, fmt.Errorf("failed to complete day: %w", err)
	}

	msg := fmt.Sprintf("Completed day %d. Streak: %d", input.Day, st.Streak)
	if !changed {
		msg = fmt.Sprintf("Day %d was already completed", input.Day)
	}
	return nil, completeOutput{
		Day:        input.Day,
		Changed:    changed,
		CurrentDay: st.CurrentDay,
		Streak:     st.Streak,
		Message:    msg,
	}, nil
}

func (s *Server) handleGetStatus(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, statusOutput, error) {
	today, st, err := s.tracker.Today(s.userID)
	if err != nil {
		return nil, statusOutput{}, fmt.Errorf("failed to get status: %w", err)
	}

	out := statusOutput{
		CurrentDay:    st.CurrentDay,
		Streak:        st.Streak,
		CompletedDays: st.CompletedDays,
		TodayStatus:   today.Status.String(),
	}
	if today.UnlockAt != nil {
		out.NextUnlock = today.UnlockAt.Format("2006-01-02 15:04 MST")
		out.UnlocksIn = progress.FormatUntil(today.UnlockAt.Sub(s.tracker.Now()))
	}
	return nil, out, nil
}

func planDay(v tracker.DayView) planDayOutput {
	out := planDayOutput{Day: v.Day, Status: v.Status.String()}
	if v.Workout != nil {
		out.Title = v.Workout.Title
		out.Type = string(v.Workout.Type)
		out.Duration = v.Workout.Duration
	}
	if v.UnlockAt != nil {
		out.UnlockAt = v.UnlockAt.Format("2006-01-02 15:04 MST")
	}
	return out
}

func nonNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
