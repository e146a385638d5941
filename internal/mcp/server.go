// ABOUTME: MCP server setup for the fitness tracker.
// ABOUTME: Wraps the MCP server with storage and the workout service for one user.
package mcp

import (
	"context"

	"github.com/harperreed/fittrack/internal/storage"
	"github.com/harperreed/fittrack/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients.
var Version = "1.0.0"

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	tracker   *tracker.Service
	userID    string
}

// NewServer creates a new MCP server acting as userID.
func NewServer(repo storage.Repository, svc *tracker.Service, userID string) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fittrack",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		tracker:   svc,
		userID:    userID,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
