// ABOUTME: Note model representing a personal note owned by one user.
// ABOUTME: Provides constructor and methods for note lifecycle.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Field limits shared by the form layer and the schema.
const (
	MaxTitleLength = 100
	MaxSlugLength  = 100
)

type Note struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Text      string    `json:"text" yaml:"text"`
	Slug      string    `json:"slug" yaml:"slug"`
	AuthorID  uuid.UUID `json:"author_id" yaml:"author_id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

func NewNote(title, text, slug string, authorID uuid.UUID) *Note {
	now := time.Now()
	return &Note{
		ID:        uuid.New(),
		Title:     title,
		Text:      text,
		Slug:      slug,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (n *Note) Touch() {
	n.UpdatedAt = time.Now()
}

// OwnedBy reports whether the user is the note's author.
func (n *Note) OwnedBy(u *User) bool {
	return u != nil && n.AuthorID == u.ID
}
