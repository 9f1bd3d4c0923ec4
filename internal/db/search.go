// ABOUTME: FTS5 full-text search operations for notes.
// ABOUTME: Provides ranked search across one author's titles and text.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harper/notes/internal/models"
)

type SearchResult struct {
	*models.Note
	Rank float64
}

// SearchNotes runs an FTS5 query restricted to the author's own notes.
func SearchNotes(db *sql.DB, authorID uuid.UUID, query string, limit int) ([]*SearchResult, error) {
	rows, err := db.Query(
		`SELECT n.id, n.title, n.text, n.slug, n.author_id, n.created_at, n.updated_at, rank
		 FROM notes_fts
		 JOIN notes n ON notes_fts.rowid = n.rowid
		 WHERE notes_fts MATCH ? AND n.author_id = ?
		 ORDER BY rank
		 LIMIT ?`,
		query, authorID.String(), limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []*SearchResult
	for rows.Next() {
		result := &SearchResult{Note: &models.Note{}}
		var idStr, authorStr string
		if err := rows.Scan(&idStr, &result.Title, &result.Text, &result.Slug, &authorStr,
			&result.CreatedAt, &result.UpdatedAt, &result.Rank); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid note ID in database: %w", err)
		}
		authorID, err := uuid.Parse(authorStr)
		if err != nil {
			return nil, fmt.Errorf("invalid author ID in database: %w", err)
		}
		result.ID, result.AuthorID = id, authorID
		results = append(results, result)
	}
	return results, rows.Err()
}

// PhraseQuery turns free user input into an FTS5 query that matches notes
// containing every word, so stray quotes or operators cannot break MATCH.
func PhraseQuery(input string) string {
	words := strings.Fields(input)
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		quoted = append(quoted, `"`+strings.ReplaceAll(w, `"`, `""`)+`"`)
	}
	return strings.Join(quoted, " ")
}
