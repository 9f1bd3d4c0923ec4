// ABOUTME: Database operations for notes.
// ABOUTME: Provides CRUD, slug lookup and per-author listing for notes.

package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harper/notes/internal/models"
)

var ErrNoteNotFound = errors.New("note not found")
var ErrSlugTaken = errors.New("slug already taken")

const noteColumns = `id, title, text, slug, author_id, created_at, updated_at`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func CreateNote(db *sql.DB, note *models.Note) error {
	_, err := db.Exec(
		`INSERT INTO notes (id, title, text, slug, author_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		note.ID.String(), note.Title, note.Text, note.Slug, note.AuthorID.String(),
		note.CreatedAt, note.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", ErrSlugTaken, note.Slug)
	}
	return err
}

func GetNoteByID(db *sql.DB, id uuid.UUID) (*models.Note, error) {
	row := db.QueryRow(`SELECT `+noteColumns+` FROM notes WHERE id = ?`, id.String())
	return scanNote(row)
}

func GetNoteBySlug(db *sql.DB, slug string) (*models.Note, error) {
	row := db.QueryRow(`SELECT `+noteColumns+` FROM notes WHERE slug = ?`, slug)
	return scanNote(row)
}

// SlugExists reports whether a note other than exclude already uses slug.
// Pass uuid.Nil to check against every note.
func SlugExists(db *sql.DB, slug string, exclude uuid.UUID) (bool, error) {
	var exists bool
	err := db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM notes WHERE slug = ? AND id != ?)`,
		slug, exclude.String(),
	).Scan(&exists)
	return exists, err
}

// ListNotesByAuthor returns every note written by the given user.
func ListNotesByAuthor(db *sql.DB, authorID uuid.UUID) ([]*models.Note, error) {
	rows, err := db.Query(
		`SELECT `+noteColumns+` FROM notes WHERE author_id = ?
		 ORDER BY created_at, rowid`,
		authorID.String(),
	)
	if err != nil {
		return nil, err
	}
	return collectNotes(rows)
}

func CountNotes(db *sql.DB) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM notes`).Scan(&count)
	return count, err
}

func CountNotesByAuthor(db *sql.DB, authorID uuid.UUID) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM notes WHERE author_id = ?`, authorID.String()).Scan(&count)
	return count, err
}

func UpdateNote(db *sql.DB, note *models.Note) error {
	result, err := db.Exec(
		`UPDATE notes SET title = ?, text = ?, slug = ?, updated_at = ? WHERE id = ?`,
		note.Title, note.Text, note.Slug, note.UpdatedAt, note.ID.String(),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", ErrSlugTaken, note.Slug)
	}
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func DeleteNote(db *sql.DB, id uuid.UUID) error {
	result, err := db.Exec(`DELETE FROM notes WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func scanNote(s scanner) (*models.Note, error) {
	note := &models.Note{}
	var idStr, authorStr string
	err := s.Scan(&idStr, &note.Title, &note.Text, &note.Slug, &authorStr, &note.CreatedAt, &note.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, err
	}
	if note.ID, err = uuid.Parse(idStr); err != nil {
		return nil, fmt.Errorf("invalid note ID in database: %w", err)
	}
	if note.AuthorID, err = uuid.Parse(authorStr); err != nil {
		return nil, fmt.Errorf("invalid author ID in database: %w", err)
	}
	return note, nil
}

func collectNotes(rows *sql.Rows) ([]*models.Note, error) {
	defer func() { _ = rows.Close() }()

	var notes []*models.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}
