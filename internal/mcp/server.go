// ABOUTME: MCP server exposing one user's notes to AI agents.
// ABOUTME: Provides tools, resources and prompts scoped to that author.

package mcp

import (
	"context"
	"database/sql"

	"github.com/harper/notes/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Server struct {
	server *mcp.Server
	db     *sql.DB
	user   *models.User
}

// NewServer builds an MCP server acting as user. Every note it touches must
// belong to that user.
func NewServer(conn *sql.DB, user *models.User) *Server {
	s := &Server{db: conn, user: user}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "notes",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
			HasPrompts:   true,
		},
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

func (s *Server) Serve(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
