// ABOUTME: Tests for markdown export and import helpers.
// ABOUTME: Frontmatter written by export must be read back by import.

package main

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harper/notes/internal/models"
)

func TestMarkdownNoteFrontmatter(t *testing.T) {
	note := models.NewNote("Заголовок заметки", "# Body\n\ntext", "zagolovok-zametki", uuid.New())
	note.CreatedAt = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	note.UpdatedAt = note.CreatedAt

	content, err := markdownNote(note)
	if err != nil {
		t.Fatalf("failed to render markdown: %v", err)
	}

	en := parseMarkdownNote("ignored.md", content)
	if en.Title != note.Title {
		t.Errorf("expected title %q, got %q", note.Title, en.Title)
	}
	if en.Slug != note.Slug {
		t.Errorf("expected slug %q, got %q", note.Slug, en.Slug)
	}
	if en.Text != note.Text {
		t.Errorf("expected text %q, got %q", note.Text, en.Text)
	}
	if !en.CreatedAt.Equal(note.CreatedAt) {
		t.Errorf("expected created %v, got %v", note.CreatedAt, en.CreatedAt)
	}
}

func TestParseMarkdownWithoutFrontmatter(t *testing.T) {
	en := parseMarkdownNote("/tmp/notes/Shopping list.md", "  milk\neggs\n")

	if en.Title != "Shopping list" {
		t.Errorf("expected title from file name, got %q", en.Title)
	}
	if en.Slug != "" {
		t.Errorf("expected no slug, got %q", en.Slug)
	}
	if en.Text != "milk\neggs" {
		t.Errorf("expected trimmed text, got %q", en.Text)
	}
}
