// ABOUTME: Terminal formatting for notes CLI output.
// ABOUTME: Renders note text with glamour and colours labels with fatih/color.

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/harper/notes/internal/models"
)

const timeLayout = "2006-01-02 15:04"

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
)

func FormatNoteListItem(note *models.Note) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("  %s  %s\n", cyan(note.Slug), bold(note.Title)))
	sb.WriteString(fmt.Sprintf("     %s %s\n",
		faint("Updated:"),
		faint(note.UpdatedAt.Format(timeLayout))))

	return sb.String()
}

// FormatNoteContent renders markdown for the terminal, falling back to the
// raw text when glamour cannot.
func FormatNoteContent(content string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return content, nil //nolint:nilerr // raw text is good enough
	}

	out, err := renderer.Render(content)
	if err != nil {
		return content, nil //nolint:nilerr // raw text is good enough
	}
	return out, nil
}

func FormatNoteHeader(note *models.Note, author string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", bold(note.Title)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Slug:"), cyan(note.Slug)))
	if author != "" {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Author:"), author))
	}
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Created:"), faint(note.CreatedAt.Format(timeLayout))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Updated:"), faint(note.UpdatedAt.Format(timeLayout))))

	sb.WriteString(Separator())
	return sb.String()
}

// UserCount pairs a user with how many notes they own.
type UserCount struct {
	Username string
	Notes    int
}

func FormatUserList(users []UserCount) string {
	var sb strings.Builder

	for _, u := range users {
		sb.WriteString(fmt.Sprintf("  %s %s\n",
			bold(u.Username),
			faint(fmt.Sprintf("(%d)", u.Notes))))
	}

	return sb.String()
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}

func FormatEmpty(msg string) string {
	return faint(msg) + "\n"
}
