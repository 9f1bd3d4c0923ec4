// ABOUTME: Import command for restoring notes from a backup.
// ABOUTME: Reads YAML exports or markdown files; every note is validated like a web submission.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/harper/notes/internal/db"
	"github.com/harper/notes/internal/forms"
	"github.com/harper/notes/internal/models"
	"github.com/harper/notes/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import notes",
	Long:  `Import notes from a YAML export or a directory of markdown files. Notes whose slug is taken are skipped.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := actingUser(cmd)
		if err != nil {
			return err
		}
		path := args[0]

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat path: %w", err)
		}

		var count int
		switch {
		case info.IsDir():
			count, err = importMarkdownDir(user, path)
		case strings.HasSuffix(path, ".md"):
			err = importMarkdownFile(user, path)
			if err == nil {
				count = 1
			}
		default:
			count, err = importYAML(user, path)
		}
		if err != nil {
			return err
		}

		fmt.Println(ui.Success(fmt.Sprintf("Imported %d notes", count)))
		return nil
	},
}

// importNote validates one note like a web submission and stores it with
// its exported timestamps.
func importNote(user *models.User, en ExportNote) error {
	form := &forms.NoteForm{Title: en.Title, Text: en.Text, Slug: en.Slug}
	ok, err := form.Validate(dbConn, uuid.Nil)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("invalid note:\n%s", form.Errors)
	}

	note := models.NewNote(form.Title, form.Text, form.Slug, user.ID)
	if !en.CreatedAt.IsZero() {
		note.CreatedAt = en.CreatedAt
		note.UpdatedAt = en.CreatedAt
	}
	if !en.UpdatedAt.IsZero() {
		note.UpdatedAt = en.UpdatedAt
	}
	return db.CreateNote(dbConn, note)
}

func importYAML(user *models.User, path string) (int, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return 0, err
	}

	var export ExportData
	if err := yaml.Unmarshal(data, &export); err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	count := 0
	for _, en := range export.Notes {
		if err := importNote(user, en); err != nil {
			fmt.Println(ui.Error(fmt.Sprintf("skipped %q: %v", en.Title, err)))
			continue
		}
		count++
	}
	return count, nil
}

func importMarkdownDir(user *models.User, dir string) (int, error) {
	count := 0
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		if err := importMarkdownFile(user, path); err != nil {
			fmt.Println(ui.Error(fmt.Sprintf("skipped %s: %v", path, err)))
			return nil
		}
		count++
		return nil
	})
	return count, err
}

// parseMarkdownNote splits optional YAML frontmatter from the body. The
// title falls back to the file name.
func parseMarkdownNote(path, content string) ExportNote {
	var en ExportNote
	if strings.HasPrefix(content, "---\n") {
		parts := strings.SplitN(content, "---\n", 3)
		if len(parts) == 3 {
			if err := yaml.Unmarshal([]byte(parts[1]), &en); err == nil {
				content = parts[2]
			}
		}
	}

	if en.Title == "" {
		en.Title = strings.TrimSuffix(filepath.Base(path), ".md")
	}
	en.Text = strings.TrimSpace(content)
	return en
}

func importMarkdownFile(user *models.User, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return err
	}
	return importNote(user, parseMarkdownNote(path, string(data)))
}

func init() {
	userFlag(importCmd)
	rootCmd.AddCommand(importCmd)
}
