// ABOUTME: User model for note authors.
// ABOUTME: Usernames are trimmed; passwords are stored only as hashes.

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const MaxUsernameLength = 150

type User struct {
	ID           uuid.UUID `json:"id" yaml:"id"`
	Username     string    `json:"username" yaml:"username"`
	PasswordHash string    `json:"-" yaml:"-"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
}

func NewUser(username, passwordHash string) *User {
	return &User{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(username),
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
}
