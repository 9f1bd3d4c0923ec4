// ABOUTME: Export command for backing up one user's notes.
// ABOUTME: Supports a YAML document or a directory of markdown files.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harper/notes/internal/db"
	"github.com/harper/notes/internal/models"
	"github.com/harper/notes/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const exportVersion = "1.0"

type ExportNote struct {
	Title     string    `yaml:"title"`
	Slug      string    `yaml:"slug"`
	Text      string    `yaml:"text,omitempty"`
	CreatedAt time.Time `yaml:"created"`
	UpdatedAt time.Time `yaml:"updated"`
}

type ExportData struct {
	ExportedAt time.Time    `yaml:"exported_at"`
	Version    string       `yaml:"version"`
	Author     string       `yaml:"author"`
	Notes      []ExportNote `yaml:"notes"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export notes",
	Long:  `Export a user's notes to YAML or markdown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := actingUser(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")
		slugFlag, _ := cmd.Flags().GetString("note")

		var notes []*models.Note
		if slugFlag != "" {
			note, err := ownedNote(user, slugFlag)
			if err != nil {
				return err
			}
			notes = append(notes, note)
		} else {
			notes, err = db.ListNotesByAuthor(dbConn, user.ID)
			if err != nil {
				return fmt.Errorf("failed to list notes: %w", err)
			}
		}

		switch format {
		case "yaml":
			return exportYAML(user, notes, outputPath)
		case "md":
			return exportMarkdown(notes, outputPath)
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	},
}

func toExportNote(n *models.Note) ExportNote {
	return ExportNote{
		Title:     n.Title,
		Slug:      n.Slug,
		Text:      n.Text,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func exportYAML(user *models.User, notes []*models.Note, outputPath string) error {
	export := ExportData{
		ExportedAt: time.Now(),
		Version:    exportVersion,
		Author:     user.Username,
	}
	for _, n := range notes {
		export.Notes = append(export.Notes, toExportNote(n))
	}

	data, err := yaml.Marshal(export)
	if err != nil {
		return err
	}

	if outputPath == "" || outputPath == "-" {
		fmt.Print(string(data))
		return nil
	}
	if err := os.WriteFile(outputPath, data, 0600); err != nil {
		return err
	}
	fmt.Println(ui.Success(fmt.Sprintf("Exported %d notes to %s", len(notes), outputPath)))
	return nil
}

// markdownNote renders a note as a markdown file with YAML frontmatter.
func markdownNote(n *models.Note) (string, error) {
	meta := toExportNote(n)
	meta.Text = ""
	frontmatter, err := yaml.Marshal(meta)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(frontmatter)
	sb.WriteString("---\n\n")
	sb.WriteString(n.Text)
	return sb.String(), nil
}

func exportMarkdown(notes []*models.Note, outputDir string) error {
	if outputDir == "" {
		outputDir = "export"
	}
	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return err
	}

	for _, n := range notes {
		content, err := markdownNote(n)
		if err != nil {
			return err
		}
		// Slugs are already filesystem safe.
		filePath := filepath.Join(outputDir, n.Slug+".md")
		if err := os.WriteFile(filePath, []byte(content), 0600); err != nil {
			return err
		}
	}

	fmt.Println(ui.Success(fmt.Sprintf("Exported %d notes to %s", len(notes), outputDir)))
	return nil
}

func init() {
	userFlag(exportCmd)
	exportCmd.Flags().String("format", "yaml", "output format: yaml or md")
	exportCmd.Flags().StringP("output", "o", "", "output file (yaml) or directory (md)")
	exportCmd.Flags().String("note", "", "export a single note by slug")
	rootCmd.AddCommand(exportCmd)
}
