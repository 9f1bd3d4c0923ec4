// ABOUTME: Tests for the MCP tool, resource and prompt handlers.
// ABOUTME: Handlers are called directly against a temporary database.

package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/harper/notes/internal/auth"
	"github.com/harper/notes/internal/db"
	"github.com/harper/notes/internal/forms"
	"github.com/harper/notes/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*sql.DB, *models.User, *Server) {
	t.Helper()
	conn, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	user, err := auth.Register(conn, "author", "correct-horse")
	require.NoError(t, err)
	return conn, user, NewServer(conn, user)
}

func call(t *testing.T, handler mcp.ToolHandler, args string) *mcp.CallToolResult {
	t.Helper()
	res, err := handler(context.Background(), &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Arguments: json.RawMessage(args)},
	})
	require.NoError(t, err)
	return res
}

func text(res *mcp.CallToolResult) string {
	return res.Content[0].(*mcp.TextContent).Text
}

func TestAddNoteDerivesSlug(t *testing.T) {
	conn, user, s := setup(t)

	res := call(t, s.handleAddNote, `{"title": "Заголовок заметки", "text": "Текст"}`)
	require.False(t, res.IsError, text(res))
	assert.Equal(t, "Created note zagolovok-zametki", text(res))

	note, err := db.GetNoteBySlug(conn, "zagolovok-zametki")
	require.NoError(t, err)
	assert.Equal(t, user.ID, note.AuthorID)
}

func TestAddNoteRejectsDuplicateSlug(t *testing.T) {
	_, _, s := setup(t)

	require.False(t, call(t, s.handleAddNote, `{"title": "A", "text": "a", "slug": "dup"}`).IsError)

	res := call(t, s.handleAddNote, `{"title": "B", "text": "b", "slug": "dup"}`)
	assert.True(t, res.IsError)
	assert.Contains(t, text(res), "dup"+forms.WARNING)
}

func TestAddNoteRequiresText(t *testing.T) {
	_, _, s := setup(t)

	res := call(t, s.handleAddNote, `{"title": "Empty"}`)
	assert.True(t, res.IsError)
	assert.Contains(t, text(res), "text:")
}

func TestNotesOfOtherAuthorsAreHidden(t *testing.T) {
	conn, _, s := setup(t)
	other, err := auth.Register(conn, "other", "correct-horse")
	require.NoError(t, err)
	require.NoError(t, db.CreateNote(conn, models.NewNote("Secret", "hidden", "secret", other.ID)))

	for name, h := range map[string]mcp.ToolHandler{
		"get":    s.handleGetNote,
		"update": s.handleUpdateNote,
		"delete": s.handleDeleteNote,
	} {
		t.Run(name, func(t *testing.T) {
			res := call(t, h, `{"slug": "secret", "title": "Mine now"}`)
			assert.True(t, res.IsError)
			assert.Contains(t, text(res), db.ErrNoteNotFound.Error())
		})
	}

	note, err := db.GetNoteBySlug(conn, "secret")
	require.NoError(t, err)
	assert.Equal(t, "Secret", note.Title)

	res := call(t, s.handleListNotes, `{}`)
	assert.Equal(t, "null", text(res))
}

func TestUpdateNoteKeepsUntouchedFields(t *testing.T) {
	conn, _, s := setup(t)
	require.False(t, call(t, s.handleAddNote, `{"title": "Plan", "text": "draft", "slug": "plan"}`).IsError)

	res := call(t, s.handleUpdateNote, `{"slug": "plan", "text": "final", "new_slug": "plan-v2"}`)
	require.False(t, res.IsError, text(res))

	note, err := db.GetNoteBySlug(conn, "plan-v2")
	require.NoError(t, err)
	assert.Equal(t, "Plan", note.Title)
	assert.Equal(t, "final", note.Text)
}

func TestDeleteAndSearch(t *testing.T) {
	conn, _, s := setup(t)
	require.False(t, call(t, s.handleAddNote, `{"title": "Apples", "text": "buy apples", "slug": "apples"}`).IsError)

	res := call(t, s.handleSearchNotes, `{"query": "apples"}`)
	require.False(t, res.IsError)
	assert.Contains(t, text(res), `"slug": "apples"`)

	require.False(t, call(t, s.handleDeleteNote, `{"slug": "apples"}`).IsError)
	n, err := db.CountNotes(conn)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	assert.True(t, call(t, s.handleSearchNotes, `{"query": "  "}`).IsError)
}

func TestReadResource(t *testing.T) {
	_, _, s := setup(t)
	require.False(t, call(t, s.handleAddNote, `{"title": "Plan", "text": "step one", "slug": "plan"}`).IsError)

	res, err := s.handleReadResource(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: "notes://note/plan"},
	})
	require.NoError(t, err)
	assert.Equal(t, "# Plan\n\nstep one", res.Contents[0].Text)

	_, err = s.handleReadResource(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: "memo://note/plan"},
	})
	assert.Error(t, err)
}

func TestPrompts(t *testing.T) {
	_, _, s := setup(t)

	res, err := s.getSummarizeNotePrompt(context.Background(), &mcp.GetPromptRequest{
		Params: &mcp.GetPromptParams{Arguments: map[string]string{"slug": "plan"}},
	})
	require.NoError(t, err)
	assert.Contains(t, res.Messages[0].Content.(*mcp.TextContent).Text, "plan")

	_, err = s.getDraftNotePrompt(context.Background(), &mcp.GetPromptRequest{
		Params: &mcp.GetPromptParams{Arguments: map[string]string{}},
	})
	assert.Error(t, err)
}
