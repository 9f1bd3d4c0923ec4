// ABOUTME: MCP command to start the MCP server.
// ABOUTME: Runs on stdio, acting as one user, for AI agent integration.

package main

import (
	"github.com/harper/notes/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long:  `Start the Model Context Protocol server for AI agent integration. Agents see only the given user's notes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := actingUser(cmd)
		if err != nil {
			return err
		}
		server := mcp.NewServer(dbConn, user)
		return server.Serve(cmd.Context())
	},
}

func init() {
	userFlag(mcpCmd)
	rootCmd.AddCommand(mcpCmd)
}
