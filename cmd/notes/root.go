// ABOUTME: Root command holding global flags, config and the database handle.
// ABOUTME: Subcommands register themselves from their own init functions.

package main

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/harper/notes/internal/config"
	"github.com/harper/notes/internal/db"
	"github.com/harper/notes/internal/models"
	"github.com/harper/notes/internal/ui"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	dbConn *sql.DB

	configPath string
	dbPath     string
)

var rootCmd = &cobra.Command{
	Use:           "notes",
	Short:         "Personal notes with a web interface",
	Long:          `notes keeps private, per-user notes in SQLite and serves them over HTTP.`,
	Version:       fmt.Sprintf("%s (%s, %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if dbPath != "" {
			cfg.DBPath = config.ExpandPath(dbPath)
		}

		dbConn, err = db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if dbConn == nil {
			return nil
		}
		return dbConn.Close()
	},
}

// Execute runs the root command and prints any error it returns.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), ui.Error(err.Error()))
	}
	return err
}

// userFlag registers the --user flag naming the acting author.
func userFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("user", "u", "", "username of the note author")
	_ = cmd.MarkFlagRequired("user")
}

// actingUser resolves the --user flag to a stored user.
func actingUser(cmd *cobra.Command) (*models.User, error) {
	name, _ := cmd.Flags().GetString("user")
	user, err := db.GetUserByUsername(dbConn, name)
	if errors.Is(err, db.ErrUserNotFound) {
		return nil, fmt.Errorf("no such user %q", name)
	}
	return user, err
}

// ownedNote loads a note by slug, hiding notes that belong to someone else.
func ownedNote(user *models.User, slug string) (*models.Note, error) {
	note, err := db.GetNoteBySlug(dbConn, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if !note.OwnedBy(user) {
		return nil, fmt.Errorf("failed to get note: %w", db.ErrNoteNotFound)
	}
	return note, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/notes/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides config)")
}
