// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration as the logged-in user.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/fittrack/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server acts as the user logged in with 'fittrack login' and communicates
via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "fittrack": {
        "command": "fittrack",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  get_profile    Get the fitness profile
  set_profile    Set the profile and regenerate the plan
  get_plan       All 30 days with status
  get_day        One day with its exercises
  complete_day   Complete an unlocked day
  get_status     Current day, streak and next unlock

AVAILABLE RESOURCES:

  fittrack://today     Today's workout
  fittrack://plan      The 30-day plan
  fittrack://summary   Dashboard summary`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := currentUser()
		if err != nil {
			return err
		}
		svc, err := newTracker()
		if err != nil {
			return err
		}

		server, err := mcp.NewServer(store, svc, sess.UserID)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
