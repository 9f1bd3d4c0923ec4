// ABOUTME: Edit command for modifying existing notes.
// ABOUTME: Opens note text in $EDITOR; --title and --slug change the other fields.

package main

import (
	"fmt"

	"github.com/harper/notes/internal/forms"
	"github.com/harper/notes/internal/ui"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <slug>",
	Short: "Edit a note",
	Long:  `Open a note's text in $EDITOR. With --title or --slug only those fields change.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := actingUser(cmd)
		if err != nil {
			return err
		}
		note, err := ownedNote(user, args[0])
		if err != nil {
			return err
		}

		form := forms.NoteFormFromNote(note)
		titleChanged := cmd.Flags().Changed("title")
		slugChanged := cmd.Flags().Changed("slug")
		if titleChanged {
			form.Title, _ = cmd.Flags().GetString("title")
		}
		if slugChanged {
			form.Slug, _ = cmd.Flags().GetString("slug")
		}
		if !titleChanged && !slugChanged {
			form.Text, err = openEditor(note.Text)
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
			if form.Text == note.Text {
				fmt.Println("No changes made.")
				return nil
			}
		}

		updated, err := saveNoteForm(form, user, note)
		if err != nil {
			return err
		}

		fmt.Println(ui.Success(fmt.Sprintf("Updated note %s", updated.Slug)))
		return nil
	},
}

func init() {
	userFlag(editCmd)
	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().String("slug", "", "new slug")
	rootCmd.AddCommand(editCmd)
}
