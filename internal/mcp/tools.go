// ABOUTME: MCP tools for note CRUD and search.
// ABOUTME: Input goes through the same form validation as the web app.

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/harper/notes/internal/db"
	"github.com/harper/notes/internal/forms"
	"github.com/harper/notes/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	defaultListLimit   = 20
	defaultSearchLimit = 10
)

func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "add_note",
		Description: "Create a new note. The slug is derived from the title when omitted.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Note title, at most 100 characters"},
				"text": {"type": "string", "description": "Note text (markdown)"},
				"slug": {"type": "string", "description": "Optional unique slug"}
			},
			"required": ["title", "text"]
		}`),
	}, s.handleAddNote)

	s.server.AddTool(&mcp.Tool{
		Name:        "list_notes",
		Description: "List your notes, oldest first",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"limit": {"type": "integer", "description": "Max results", "default": 20}
			}
		}`),
	}, s.handleListNotes)

	s.server.AddTool(&mcp.Tool{
		Name:        "get_note",
		Description: "Get a note by slug",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"slug": {"type": "string", "description": "Note slug"}
			},
			"required": ["slug"]
		}`),
	}, s.handleGetNote)

	s.server.AddTool(&mcp.Tool{
		Name:        "update_note",
		Description: "Update a note's title, text or slug",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"slug": {"type": "string", "description": "Current note slug"},
				"title": {"type": "string", "description": "New title"},
				"text": {"type": "string", "description": "New text"},
				"new_slug": {"type": "string", "description": "New slug"}
			},
			"required": ["slug"]
		}`),
	}, s.handleUpdateNote)

	s.server.AddTool(&mcp.Tool{
		Name:        "delete_note",
		Description: "Delete a note",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"slug": {"type": "string", "description": "Note slug"}
			},
			"required": ["slug"]
		}`),
	}, s.handleDeleteNote)

	s.server.AddTool(&mcp.Tool{
		Name:        "search_notes",
		Description: "Full-text search over your notes",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "Words to search for"},
				"limit": {"type": "integer", "description": "Max results", "default": 10}
			},
			"required": ["query"]
		}`),
	}, s.handleSearchNotes)
}

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

func toolText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func toolJSON(v any) *mcp.CallToolResult {
	data, _ := json.MarshalIndent(v, "", "  ")
	return toolText(string(data))
}

// ownedNote looks a note up by slug. Notes of other authors are reported
// as missing.
func (s *Server) ownedNote(slug string) (*models.Note, error) {
	note, err := db.GetNoteBySlug(s.db, slug)
	if err != nil {
		return nil, err
	}
	if !note.OwnedBy(s.user) {
		return nil, db.ErrNoteNotFound
	}
	return note, nil
}

func (s *Server) saveForm(form *forms.NoteForm, instance *models.Note) (*models.Note, *mcp.CallToolResult) {
	note, err := form.Save(s.db, s.user, instance)
	if errors.Is(err, forms.ErrInvalid) {
		return nil, toolError("invalid note:\n%s", form.Errors)
	}
	if err != nil {
		return nil, toolError("failed to save note: %v", err)
	}
	return note, nil
}

func (s *Server) handleAddNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	form := &forms.NoteForm{}
	if err := json.Unmarshal(req.Params.Arguments, form); err != nil {
		return nil, err
	}

	note, failed := s.saveForm(form, nil)
	if failed != nil {
		return failed, nil
	}
	return toolText(fmt.Sprintf("Created note %s", note.Slug)), nil
}

func (s *Server) handleListNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Limit int `json:"limit"`
	}
	params.Limit = defaultListLimit
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	notes, err := db.ListNotesByAuthor(s.db, s.user.ID)
	if err != nil {
		return toolError("failed to list notes: %v", err), nil
	}
	if params.Limit > 0 && len(notes) > params.Limit {
		notes = notes[:params.Limit]
	}
	return toolJSON(notes), nil
}

func (s *Server) handleGetNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	note, err := s.ownedNote(params.Slug)
	if err != nil {
		return toolError("failed to get note: %v", err), nil
	}
	return toolJSON(note), nil
}

func (s *Server) handleUpdateNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Slug    string  `json:"slug"`
		Title   *string `json:"title"`
		Text    *string `json:"text"`
		NewSlug *string `json:"new_slug"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	note, err := s.ownedNote(params.Slug)
	if err != nil {
		return toolError("failed to find note: %v", err), nil
	}

	form := forms.NoteFormFromNote(note)
	if params.Title != nil {
		form.Title = *params.Title
	}
	if params.Text != nil {
		form.Text = *params.Text
	}
	if params.NewSlug != nil {
		form.Slug = *params.NewSlug
	}

	updated, failed := s.saveForm(form, note)
	if failed != nil {
		return failed, nil
	}
	return toolText(fmt.Sprintf("Updated note %s", updated.Slug)), nil
}

func (s *Server) handleDeleteNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	note, err := s.ownedNote(params.Slug)
	if err != nil {
		return toolError("failed to find note: %v", err), nil
	}
	if err := db.DeleteNote(s.db, note.ID); err != nil {
		return toolError("failed to delete note: %v", err), nil
	}
	return toolText(fmt.Sprintf("Deleted note %s", note.Slug)), nil
}

func (s *Server) handleSearchNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}
	params.Limit = defaultSearchLimit
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}
	if strings.TrimSpace(params.Query) == "" {
		return toolError("query cannot be empty"), nil
	}

	results, err := db.SearchNotes(s.db, s.user.ID, db.PhraseQuery(params.Query), params.Limit)
	if err != nil {
		return toolError("failed to search notes: %v", err), nil
	}
	return toolJSON(results), nil
}
