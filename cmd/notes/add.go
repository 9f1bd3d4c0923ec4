// ABOUTME: Add command for creating notes from the terminal.
// ABOUTME: Text comes from --text, --file, or $EDITOR.

package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/harper/notes/internal/forms"
	"github.com/harper/notes/internal/models"
	"github.com/harper/notes/internal/ui"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new note",
	Long:  `Create a new note with the given title. The slug is derived from the title unless --slug is set.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := actingUser(cmd)
		if err != nil {
			return err
		}

		textFlag, _ := cmd.Flags().GetString("text")
		fileFlag, _ := cmd.Flags().GetString("file")
		slugFlag, _ := cmd.Flags().GetString("slug")

		var text string
		switch {
		case textFlag != "":
			text = textFlag
		case fileFlag != "":
			data, err := os.ReadFile(fileFlag) //nolint:gosec // User-specified file path is expected CLI behavior
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			text = string(data)
		default:
			text, err = openEditor("")
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
		}

		form := &forms.NoteForm{Title: args[0], Text: text, Slug: slugFlag}
		note, err := saveNoteForm(form, user, nil)
		if err != nil {
			return err
		}

		fmt.Println(ui.Success(fmt.Sprintf("Created note %s", note.Slug)))
		return nil
	},
}

// saveNoteForm saves through the form layer and turns validation failures
// into a readable error.
func saveNoteForm(form *forms.NoteForm, user *models.User, instance *models.Note) (*models.Note, error) {
	note, err := form.Save(dbConn, user, instance)
	if errors.Is(err, forms.ErrInvalid) {
		return nil, fmt.Errorf("invalid note:\n%s", form.Errors)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save note: %w", err)
	}
	return note, nil
}

func openEditor(initial string) (string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}

	tmpFile, err := os.CreateTemp("", "notes-*.md")
	if err != nil {
		return "", err
	}
	defer func() {
		_ = os.Remove(tmpFile.Name())
	}()

	if initial != "" {
		if _, err := tmpFile.WriteString(initial); err != nil {
			_ = tmpFile.Close()
			return "", fmt.Errorf("failed to write initial text: %w", err)
		}
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	cmd := exec.Command(editor, tmpFile.Name()) //nolint:gosec // Launching $EDITOR is expected CLI behavior
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func init() {
	userFlag(addCmd)
	addCmd.Flags().StringP("text", "t", "", "note text")
	addCmd.Flags().StringP("file", "f", "", "read note text from file")
	addCmd.Flags().StringP("slug", "s", "", "note slug (derived from the title when empty)")
	rootCmd.AddCommand(addCmd)
}
