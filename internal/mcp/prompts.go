// ABOUTME: MCP prompts for common note-taking workflows.
// ABOUTME: Each prompt steers the agent towards the note tools.

package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "summarize-note",
		Description: "Generate a summary of an existing note",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "slug",
				Description: "Slug of the note to summarize",
				Required:    true,
			},
		},
	}, s.getSummarizeNotePrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "draft-note",
		Description: "Draft a new note on a topic and save it",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "topic",
				Description: "What the note is about",
				Required:    true,
			},
		},
	}, s.getDraftNotePrompt)
}

func userPrompt(text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: text,
				},
			},
		},
	}
}

func (s *Server) getSummarizeNotePrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	slug, ok := req.Params.Arguments["slug"]
	if !ok || slug == "" {
		return nil, fmt.Errorf("slug argument is required")
	}

	return userPrompt(fmt.Sprintf(`Please summarize the note with slug: %s

1. Use the get_note tool to retrieve the note
2. Create a concise summary of the main topic and key points
3. Use the update_note tool to put the summary at the top of the note text`, slug)), nil
}

func (s *Server) getDraftNotePrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic, ok := req.Params.Arguments["topic"]
	if !ok || topic == "" {
		return nil, fmt.Errorf("topic argument is required")
	}

	return userPrompt(fmt.Sprintf(`Draft a note about: %s

1. Use the search_notes tool to check whether a note on this topic already exists
2. If one does, suggest updating it with update_note instead
3. Otherwise write a short title (at most 100 characters) and markdown text
4. Save it with the add_note tool; leave the slug out so it is derived from the title`, topic)), nil
}
