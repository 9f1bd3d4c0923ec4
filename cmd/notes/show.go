// ABOUTME: Show command for displaying a single note.
// ABOUTME: Renders markdown text with glamour.

package main

import (
	"fmt"

	"github.com/harper/notes/internal/db"
	"github.com/harper/notes/internal/models"
	"github.com/harper/notes/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show a note",
	Long:  `Display a note's full text with rendered markdown. With --user the note must belong to that user.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var note *models.Note
		var err error
		if name, _ := cmd.Flags().GetString("user"); name != "" {
			user, err := actingUser(cmd)
			if err != nil {
				return err
			}
			note, err = ownedNote(user, args[0])
			if err != nil {
				return err
			}
		} else {
			note, err = db.GetNoteBySlug(dbConn, args[0])
			if err != nil {
				return fmt.Errorf("failed to get note: %w", err)
			}
		}

		var authorName string
		if author, err := db.GetUserByID(dbConn, note.AuthorID); err == nil {
			authorName = author.Username
		}

		fmt.Print(ui.FormatNoteHeader(note, authorName))
		text, _ := ui.FormatNoteContent(note.Text)
		fmt.Print(text)
		return nil
	},
}

func init() {
	showCmd.Flags().StringP("user", "u", "", "only show the note if it belongs to this user")
	rootCmd.AddCommand(showCmd)
}
