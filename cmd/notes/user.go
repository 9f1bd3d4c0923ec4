// ABOUTME: User commands for creating and listing accounts.
// ABOUTME: Accounts go through the same signup validation as the web form.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/harper/notes/internal/db"
	"github.com/harper/notes/internal/forms"
	"github.com/harper/notes/internal/ui"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var userAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Create a user",
	Long:  `Create a user account. The password is read from --password or from stdin.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}

		form := &forms.SignupForm{Username: args[0], Password1: password, Password2: password}
		user, err := form.Save(dbConn)
		if errors.Is(err, forms.ErrInvalid) {
			return fmt.Errorf("invalid user:\n%s", form.Errors)
		}
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Created user %s", user.Username)))
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users and their note counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := db.ListUsers(dbConn)
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
		if len(users) == 0 {
			fmt.Print(ui.FormatEmpty("No users yet."))
			return nil
		}

		counts := make([]ui.UserCount, 0, len(users))
		for _, u := range users {
			n, err := db.CountNotesByAuthor(dbConn, u.ID)
			if err != nil {
				return fmt.Errorf("failed to count notes: %w", err)
			}
			counts = append(counts, ui.UserCount{Username: u.Username, Notes: n})
		}
		fmt.Print(ui.FormatUserList(counts))
		return nil
	},
}

func init() {
	userAddCmd.Flags().StringP("password", "p", "", "password (read from stdin when omitted)")
	userCmd.AddCommand(userAddCmd, userListCmd)
	rootCmd.AddCommand(userCmd)
}
