// ABOUTME: Note create/edit form with slug derivation and uniqueness checks.
// ABOUTME: A blank slug is derived from the transliterated title.

package forms

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/harper/notes/internal/db"
	"github.com/harper/notes/internal/models"
	"github.com/harper/notes/internal/slug"
)

// WARNING is appended to a conflicting slug in the slug field error.
const WARNING = " - such slug already exists, choose a unique value!"

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

type NoteForm struct {
	Title string `form:"title" json:"title" binding:"required,max=100"`
	Text  string `form:"text" json:"text" binding:"required"`
	Slug  string `form:"slug" json:"slug" binding:"omitempty,max=100"`

	Errors Errors `form:"-" json:"-"`
}

// NoteFormFromNote prefills the form for editing.
func NoteFormFromNote(note *models.Note) *NoteForm {
	return &NoteForm{
		Title:  note.Title,
		Text:   note.Text,
		Slug:   note.Slug,
		Errors: Errors{},
	}
}

// Validate checks the fields, derives a missing slug and verifies that no
// note other than exclude owns it. It reports whether the form is valid.
func (f *NoteForm) Validate(conn *sql.DB, exclude uuid.UUID) (bool, error) {
	f.Errors = Errors{}
	f.Title = strings.TrimSpace(f.Title)
	f.Slug = strings.TrimSpace(f.Slug)

	// Whitespace-only text counts as missing, but the stored text keeps its
	// own leading and trailing blanks.
	fields := *f
	fields.Text = strings.TrimSpace(f.Text)
	if err := validateFields(&fields, f.Errors); err != nil {
		return false, err
	}

	if f.Slug == "" {
		if f.Title == "" {
			return false, nil
		}
		f.Slug = slug.Truncate(slug.Slugify(f.Title), models.MaxSlugLength)
		if f.Slug == "" {
			f.Errors.Add("slug", "Could not derive a slug from the title; enter one.")
			return false, nil
		}
	} else {
		if f.Errors.Get("slug") == nil && !slugPattern.MatchString(f.Slug) {
			f.Errors.Add("slug", "Enter a valid slug consisting of letters, numbers, underscores or hyphens.")
		}
		if f.Errors.Get("slug") != nil {
			return false, nil
		}
	}

	taken, err := db.SlugExists(conn, f.Slug, exclude)
	if err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	if taken {
		f.Errors.Add("slug", f.Slug+WARNING)
	}

	return !f.Errors.Any(), nil
}

// Save validates the form and persists it. With a nil instance a new note
// owned by author is created; otherwise instance is updated in place.
// Validation failures return ErrInvalid and leave both the database and
// instance untouched.
func (f *NoteForm) Save(conn *sql.DB, author *models.User, instance *models.Note) (*models.Note, error) {
	exclude := uuid.Nil
	if instance != nil {
		exclude = instance.ID
	}

	ok, err := f.Validate(conn, exclude)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalid
	}

	var note *models.Note
	if instance == nil {
		note = models.NewNote(f.Title, f.Text, f.Slug, author.ID)
		err = db.CreateNote(conn, note)
	} else {
		updated := *instance
		updated.Title, updated.Text, updated.Slug = f.Title, f.Text, f.Slug
		updated.Touch()
		if err = db.UpdateNote(conn, &updated); err == nil {
			*instance = updated
		}
		note = instance
	}

	// A concurrent writer can claim the slug between the check and the write.
	if errors.Is(err, db.ErrSlugTaken) {
		f.Errors.Add("slug", f.Slug+WARNING)
		return nil, ErrInvalid
	}
	if err != nil {
		return nil, fmt.Errorf("save note: %w", err)
	}
	return note, nil
}
