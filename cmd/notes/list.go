// ABOUTME: List command for displaying one user's notes.
// ABOUTME: Supports full-text search and a result limit.

package main

import (
	"fmt"

	"github.com/harper/notes/internal/db"
	"github.com/harper/notes/internal/models"
	"github.com/harper/notes/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long:  `List a user's notes, oldest first, optionally filtered by a search query.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := actingUser(cmd)
		if err != nil {
			return err
		}
		searchFlag, _ := cmd.Flags().GetString("search")
		limitFlag, _ := cmd.Flags().GetInt("limit")

		var notes []*models.Note
		if searchFlag != "" {
			results, err := db.SearchNotes(dbConn, user.ID, db.PhraseQuery(searchFlag), limitFlag)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			for _, r := range results {
				notes = append(notes, r.Note)
			}
		} else {
			notes, err = db.ListNotesByAuthor(dbConn, user.ID)
			if err != nil {
				return fmt.Errorf("failed to list notes: %w", err)
			}
			if limitFlag > 0 && len(notes) > limitFlag {
				notes = notes[:limitFlag]
			}
		}

		if len(notes) == 0 {
			fmt.Println("No notes found.")
			return nil
		}
		for _, note := range notes {
			fmt.Print(ui.FormatNoteListItem(note))
		}
		return nil
	},
}

func init() {
	userFlag(listCmd)
	listCmd.Flags().StringP("search", "s", "", "search query")
	listCmd.Flags().IntP("limit", "n", 20, "number of results")
	rootCmd.AddCommand(listCmd)
}
