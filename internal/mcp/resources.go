// ABOUTME: MCP resource implementations for the fitness tracker.
// ABOUTME: Provides fittrack://today, fittrack://plan, and fittrack://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/fittrack/internal/dashboard"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	todayURI   = "fittrack://today"
	planURI    = "fittrack://plan"
	summaryURI = "fittrack://summary"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Workout",
		Description: "The current plan day with exercises and unlock status",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         planURI,
		Name:        "30-Day Plan",
		Description: "All plan days with their status",
		MIMEType:    "application/json",
	}, s.handlePlanResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         summaryURI,
		Name:        "Fitness Dashboard",
		Description: "Streak, workouts completed, water, sleep, calories and health tiles",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today, st, err := s.tracker.Today(s.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load today: %w", err)
	}

	result := map[string]any{
		"date":        s.tracker.Now().In(s.tracker.Location()).Format(time.DateOnly),
		"current_day": st.CurrentDay,
		"streak":      st.Streak,
		"day":         today,
	}
	return jsonResource(todayURI, result)
}

func (s *Server) handlePlanResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	views, err := s.tracker.Calendar(s.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}

	days := make([]planDayOutput, 0, len(views))
	completed := 0
	for _, v := range views {
		days = append(days, planDay(v))
		if v.Workout != nil && v.Workout.Completed {
			completed++
		}
	}

	result := map[string]any{
		"days":      days,
		"completed": completed,
		"total":     len(days),
	}
	return jsonResource(planURI, result)
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	sum, err := dashboard.Build(s.repo, s.userID, s.tracker.Now(), s.tracker.Location())
	if err != nil {
		return nil, fmt.Errorf("failed to build summary: %w", err)
	}

	result := map[string]any{
		"generated_at": s.tracker.Now().Format(time.RFC3339),
		"summary":      sum,
	}
	return jsonResource(summaryURI, result)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
