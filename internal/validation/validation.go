// Package validation holds the rules a book must satisfy before it is
// written to the catalog. Rules are declared as `validate` struct tags on
// entities.Book and evaluated with go-playground/validator.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/mrlokans/library/internal/entities"
)

const (
	InvalidISBNMessage   = "Value was not a valid ISBN-13"
	DuplicateISBNMessage = "A book with this ISBN-13 already exists"
)

// isbnShape is a three digit prefix, a hyphen, then digits and single
// hyphens ending in a digit. The digit count is checked separately.
var isbnShape = regexp.MustCompile(`^\d{3}-\d(?:-?\d)*$`)

// FieldError is a single failed rule, reported by JSON field name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DuplicateISBN is the failure reported when a create hits an existing ISBN.
func DuplicateISBN() FieldError {
	return FieldError{Field: "isbn", Message: DuplicateISBNMessage}
}

// Validator evaluates book rules. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with the catalog's custom rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("isbn13", func(fl validator.FieldLevel) bool {
		return IsISBN13(fl.Field().String())
	})

	return &Validator{validate: v}
}

// ValidateBook returns the failed rules for book in field declaration order.
// An empty result means the book may be persisted.
func (v *Validator) ValidateBook(book *entities.Book) []FieldError {
	err := v.validate.Struct(book)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	failures := make([]FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		failures = append(failures, FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return failures
}

// IsISBN13 reports whether s has the hyphenated ISBN-13 shape accepted by
// the catalog: digits and hyphens only, exactly 13 digits, the first group
// being three digits followed by a hyphen.
func IsISBN13(s string) bool {
	if !isbnShape.MatchString(s) {
		return false
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits == 13
}

func message(fe validator.FieldError) string {
	name := displayName(fe.StructField())
	switch fe.Tag() {
	case "isbn13":
		return InvalidISBNMessage
	case "notblank", "required":
		return fmt.Sprintf("'%s' must not be empty.", name)
	case "gt":
		return fmt.Sprintf("'%s' must be greater than '%s'.", name, fe.Param())
	default:
		return fmt.Sprintf("'%s' is not valid.", name)
	}
}

// displayName splits a Go field name into words: ShortDescription -> Short Description.
func displayName(field string) string {
	var b strings.Builder
	runes := []rune(field)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
