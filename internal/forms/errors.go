// ABOUTME: Field-level validation errors shared by all forms.
// ABOUTME: Errors maps a field name to its messages; "__all__" holds form-wide ones.

package forms

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// NonFieldErrors is the key for errors not tied to a single field.
const NonFieldErrors = "__all__"

// ErrInvalid is returned by Save methods when validation fails.
var ErrInvalid = errors.New("form is invalid")

const (
	msgRequired = "This field is required."
)

type Errors map[string][]string

func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e Errors) Get(field string) []string {
	return e[field]
}

// First returns the first message for field, or "".
func (e Errors) First(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (e Errors) Any() bool {
	return len(e) > 0
}

// String renders one "field: message" line per error, fields sorted.
func (e Errors) String() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var lines []string
	for _, field := range fields {
		for _, msg := range e[field] {
			lines = append(lines, fmt.Sprintf("%s: %s", field, msg))
		}
	}
	return strings.Join(lines, "\n")
}
