// ABOUTME: Tests for note database operations.
// ABOUTME: Covers create, read, update, delete, slug checks and author filtering.

package db

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/harper/notes/internal/models"
)

func TestCreateAndGetNote(t *testing.T) {
	db := openTestDB(t)
	author := createTestUser(t, db, "author")

	note := models.NewNote("Заголовок", "Текст заметки", "slug", author.ID)
	if err := CreateNote(db, note); err != nil {
		t.Fatalf("failed to create note: %v", err)
	}

	got, err := GetNoteBySlug(db, "slug")
	if err != nil {
		t.Fatalf("failed to get note: %v", err)
	}

	if got.ID != note.ID {
		t.Errorf("expected ID %v, got %v", note.ID, got.ID)
	}
	if got.Title != note.Title {
		t.Errorf("expected title %q, got %q", note.Title, got.Title)
	}
	if got.Text != note.Text {
		t.Errorf("expected text %q, got %q", note.Text, got.Text)
	}
	if got.AuthorID != author.ID {
		t.Errorf("expected author %v, got %v", author.ID, got.AuthorID)
	}

	byID, err := GetNoteByID(db, note.ID)
	if err != nil {
		t.Fatalf("failed to get note by ID: %v", err)
	}
	if byID.Slug != "slug" {
		t.Errorf("expected slug %q, got %q", "slug", byID.Slug)
	}
}

func TestCreateNoteDuplicateSlug(t *testing.T) {
	db := openTestDB(t)
	author := createTestUser(t, db, "author")

	if err := CreateNote(db, models.NewNote("First", "Text", "same", author.ID)); err != nil {
		t.Fatalf("failed to create first note: %v", err)
	}

	err := CreateNote(db, models.NewNote("Second", "Text", "same", author.ID))
	if !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}

	count, _ := CountNotes(db)
	if count != 1 {
		t.Errorf("expected 1 note after rejected insert, got %d", count)
	}
}

func TestCreateNoteRequiresAuthor(t *testing.T) {
	db := openTestDB(t)

	err := CreateNote(db, models.NewNote("Orphan", "Text", "orphan", uuid.New()))
	if err == nil {
		t.Error("expected foreign key error for unknown author")
	}
}

func TestGetNoteBySlugNotFound(t *testing.T) {
	db := openTestDB(t)

	_, err := GetNoteBySlug(db, "missing")
	if !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestSlugExists(t *testing.T) {
	db := openTestDB(t)
	author := createTestUser(t, db, "author")
	note := models.NewNote("Title", "Text", "taken", author.ID)
	if err := CreateNote(db, note); err != nil {
		t.Fatalf("failed to create note: %v", err)
	}

	tests := []struct {
		name    string
		slug    string
		exclude uuid.UUID
		want    bool
	}{
		{"taken slug", "taken", uuid.Nil, true},
		{"free slug", "free", uuid.Nil, false},
		{"own slug excluded", "taken", note.ID, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SlugExists(db, tt.slug, tt.exclude)
			if err != nil {
				t.Fatalf("SlugExists failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("SlugExists(%q) = %v, want %v", tt.slug, got, tt.want)
			}
		})
	}
}

func TestListNotesByAuthor(t *testing.T) {
	db := openTestDB(t)
	author := createTestUser(t, db, "author")
	reader := createTestUser(t, db, "reader")

	_ = CreateNote(db, models.NewNote("First", "Text 1", "first", author.ID))
	_ = CreateNote(db, models.NewNote("Second", "Text 2", "second", author.ID))
	_ = CreateNote(db, models.NewNote("Other", "Text 3", "other", reader.ID))

	notes, err := ListNotesByAuthor(db, author.ID)
	if err != nil {
		t.Fatalf("failed to list notes: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes for author, got %d", len(notes))
	}
	for _, n := range notes {
		if n.AuthorID != author.ID {
			t.Errorf("note %q belongs to another user", n.Slug)
		}
	}

	readerNotes, _ := ListNotesByAuthor(db, reader.ID)
	if len(readerNotes) != 1 || readerNotes[0].Slug != "other" {
		t.Errorf("expected reader to see only their own note, got %v", readerNotes)
	}

	count, err := CountNotesByAuthor(db, author.ID)
	if err != nil {
		t.Fatalf("failed to count notes: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 notes counted for author, got %d", count)
	}
}

func TestUpdateNote(t *testing.T) {
	db := openTestDB(t)
	author := createTestUser(t, db, "author")

	note := models.NewNote("Original", "Original text", "original", author.ID)
	_ = CreateNote(db, note)

	note.Title = "Updated"
	note.Text = "Updated text"
	note.Slug = "updated"

	if err := UpdateNote(db, note); err != nil {
		t.Fatalf("failed to update note: %v", err)
	}

	got, err := GetNoteByID(db, note.ID)
	if err != nil {
		t.Fatalf("failed to reload note: %v", err)
	}
	if got.Title != "Updated" || got.Text != "Updated text" || got.Slug != "updated" {
		t.Errorf("expected updated fields, got %+v", got)
	}
	count, _ := CountNotes(db)
	if count != 1 {
		t.Errorf("expected update in place, got %d notes", count)
	}
}

func TestUpdateNoteSlugConflict(t *testing.T) {
	db := openTestDB(t)
	author := createTestUser(t, db, "author")

	_ = CreateNote(db, models.NewNote("First", "Text", "first", author.ID))
	second := models.NewNote("Second", "Text", "second", author.ID)
	_ = CreateNote(db, second)

	second.Slug = "first"
	if err := UpdateNote(db, second); !errors.Is(err, ErrSlugTaken) {
		t.Errorf("expected ErrSlugTaken, got %v", err)
	}
}

func TestUpdateNoteNotFound(t *testing.T) {
	db := openTestDB(t)

	err := UpdateNote(db, models.NewNote("Ghost", "Text", "ghost", uuid.New()))
	if !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestDeleteNote(t *testing.T) {
	db := openTestDB(t)
	author := createTestUser(t, db, "author")

	note := models.NewNote("ToDelete", "Text", "to-delete", author.ID)
	_ = CreateNote(db, note)

	if err := DeleteNote(db, note.ID); err != nil {
		t.Fatalf("failed to delete note: %v", err)
	}

	if _, err := GetNoteByID(db, note.ID); !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("expected ErrNoteNotFound for deleted note, got %v", err)
	}

	if err := DeleteNote(db, note.ID); !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("expected second delete to report ErrNoteNotFound, got %v", err)
	}
}

func TestDeletingUserCascadesToNotes(t *testing.T) {
	db := openTestDB(t)
	author := createTestUser(t, db, "author")
	_ = CreateNote(db, models.NewNote("Note", "Text", "note", author.ID))

	if _, err := db.Exec(`DELETE FROM users WHERE id = ?`, author.ID.String()); err != nil {
		t.Fatalf("failed to delete user: %v", err)
	}

	count, _ := CountNotes(db)
	if count != 0 {
		t.Errorf("expected notes to be removed with their author, got %d", count)
	}
}
