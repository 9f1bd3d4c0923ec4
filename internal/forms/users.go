// ABOUTME: Signup and login forms for user accounts.
// ABOUTME: Signup validates and registers; login authenticates.

package forms

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/harper/notes/internal/auth"
	"github.com/harper/notes/internal/db"
	"github.com/harper/notes/internal/models"
)

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+\- ]+$`)

type SignupForm struct {
	Username  string `form:"username"`
	Password1 string `form:"password1"`
	Password2 string `form:"password2"`

	Errors Errors `form:"-"`
}

func (f *SignupForm) Validate() bool {
	f.Errors = Errors{}
	f.Username = strings.TrimSpace(f.Username)

	switch {
	case f.Username == "":
		f.Errors.Add("username", msgRequired)
	case utf8.RuneCountInString(f.Username) > models.MaxUsernameLength:
		f.Errors.Add("username", fmt.Sprintf("Ensure this value has at most %d characters.", models.MaxUsernameLength))
	case !usernamePattern.MatchString(f.Username):
		f.Errors.Add("username", "Enter a valid username. It may contain letters, numbers, spaces and @/./+/-/_ characters.")
	}

	switch {
	case f.Password1 == "":
		f.Errors.Add("password1", msgRequired)
	case utf8.RuneCountInString(f.Password1) < auth.MinPasswordLength:
		f.Errors.Add("password1", fmt.Sprintf("This password is too short. It must contain at least %d characters.", auth.MinPasswordLength))
	}
	if f.Password2 == "" {
		f.Errors.Add("password2", msgRequired)
	} else if f.Password1 != f.Password2 {
		f.Errors.Add("password2", "The two password fields didn't match.")
	}

	return !f.Errors.Any()
}

// Save validates the form and registers the user.
func (f *SignupForm) Save(conn *sql.DB) (*models.User, error) {
	if !f.Validate() {
		return nil, ErrInvalid
	}
	user, err := auth.Register(conn, f.Username, f.Password1)
	if errors.Is(err, db.ErrUsernameTaken) {
		f.Errors.Add("username", "A user with that username already exists.")
		return nil, ErrInvalid
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`

	Errors Errors `form:"-"`
}

// Authenticate checks the credentials and returns the matching user.
func (f *LoginForm) Authenticate(conn *sql.DB) (*models.User, error) {
	f.Errors = Errors{}
	f.Username = strings.TrimSpace(f.Username)
	if f.Username == "" {
		f.Errors.Add("username", msgRequired)
	}
	if f.Password == "" {
		f.Errors.Add("password", msgRequired)
	}
	if f.Errors.Any() {
		return nil, ErrInvalid
	}

	user, err := auth.Authenticate(conn, f.Username, f.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		f.Errors.Add(NonFieldErrors, "Please enter a correct username and password.")
		return nil, ErrInvalid
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
