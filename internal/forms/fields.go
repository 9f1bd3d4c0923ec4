// ABOUTME: Struct-tag field validation through gin's binding validator.
// ABOUTME: Maps validator failures onto form Errors with Django-style messages.

package forms

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// validateFields runs the `binding` tags of obj and records each failure
// under the lowercased field name. Forms call it outside gin too, so the CLI
// and MCP paths get the same messages as the web.
func validateFields(obj any, errs Errors) error {
	err := binding.Validator.ValidateStruct(obj)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate fields: %w", err)
	}
	for _, fe := range fieldErrs {
		errs.Add(strings.ToLower(fe.Field()), fieldMessage(fe))
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "max":
		s, _ := fe.Value().(string)
		return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).", fe.Param(), utf8.RuneCountInString(s))
	default:
		return fmt.Sprintf("Enter a valid value (%s).", fe.Tag())
	}
}
