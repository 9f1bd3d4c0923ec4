// ABOUTME: Password hashing and credential checks for note authors.
// ABOUTME: Wraps bcrypt and the user table behind Register/Authenticate.

package auth

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/harper/notes/internal/db"
	"github.com/harper/notes/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// MinPasswordLength is enforced by the signup form.
const MinPasswordLength = 8

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Register creates a user with a hashed password.
func Register(conn *sql.DB, username, password string) (*models.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := models.NewUser(username, hash)
	if err := db.CreateUser(conn, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user when the password matches.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
func Authenticate(conn *sql.DB, username, password string) (*models.User, error) {
	user, err := db.GetUserByUsername(conn, username)
	if errors.Is(err, db.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
