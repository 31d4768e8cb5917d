package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library/internal/entities"
)

func validBook() *entities.Book {
	return &entities.Book{
		ISBN:             "978-0134190440",
		Title:            "The Go Programming Language",
		Author:           "Alan Donovan",
		ShortDescription: "The authoritative resource to writing clear and idiomatic Go",
		PageCount:        380,
	}
}

func TestIsISBN13(t *testing.T) {
	tests := []struct {
		isbn  string
		valid bool
	}{
		{"978-0134190440", true},
		{"978-0-13-468599-1", true},
		{"979-1-234-56789-0", true},
		{"12345", false},
		{"9780134190440", false},   // no hyphen after the prefix
		{"97-80134190440", false},  // prefix too short
		{"978-013419044", false},   // 12 digits
		{"978-01341904401", false}, // 14 digits
		{"978--0134190440", false}, // doubled hyphen
		{"978-0134190440-", false}, // trailing hyphen
		{"978-013419044X", false},  // non-digit
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.isbn, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsISBN13(tt.isbn))
		})
	}
}

func TestValidateBook_Valid(t *testing.T) {
	v := New()

	assert.Empty(t, v.ValidateBook(validBook()))

	book := validBook()
	book.ISBN = "978-0-13-468599-1"
	assert.Empty(t, v.ValidateBook(book))
}

func TestValidateBook_InvalidISBN(t *testing.T) {
	v := New()
	book := validBook()
	book.ISBN = "12345"

	failures := v.ValidateBook(book)

	require.Len(t, failures, 1)
	assert.Equal(t, FieldError{Field: "isbn", Message: InvalidISBNMessage}, failures[0])
}

func TestValidateBook_BlankStrings(t *testing.T) {
	v := New()

	t.Run("empty title", func(t *testing.T) {
		book := validBook()
		book.Title = ""

		failures := v.ValidateBook(book)
		require.Len(t, failures, 1)
		assert.Equal(t, "title", failures[0].Field)
		assert.Equal(t, "'Title' must not be empty.", failures[0].Message)
	})

	t.Run("whitespace author", func(t *testing.T) {
		book := validBook()
		book.Author = "   \t"

		failures := v.ValidateBook(book)
		require.Len(t, failures, 1)
		assert.Equal(t, "author", failures[0].Field)
	})

	t.Run("empty description", func(t *testing.T) {
		book := validBook()
		book.ShortDescription = ""

		failures := v.ValidateBook(book)
		require.Len(t, failures, 1)
		assert.Equal(t, "short_description", failures[0].Field)
		assert.Equal(t, "'Short Description' must not be empty.", failures[0].Message)
	})
}

func TestValidateBook_PageCount(t *testing.T) {
	v := New()

	for _, count := range []int{0, -5} {
		book := validBook()
		book.PageCount = count

		failures := v.ValidateBook(book)
		require.Len(t, failures, 1)
		assert.Equal(t, "page_count", failures[0].Field)
		assert.Equal(t, "'Page Count' must be greater than '0'.", failures[0].Message)
	}

	book := validBook()
	book.PageCount = 1
	assert.Empty(t, v.ValidateBook(book))
}

func TestValidateBook_ReportsAllFailuresInFieldOrder(t *testing.T) {
	v := New()

	failures := v.ValidateBook(&entities.Book{})

	fields := make([]string, 0, len(failures))
	for _, f := range failures {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{"isbn", "title", "author", "short_description", "page_count"}, fields)
}

func TestDuplicateISBN(t *testing.T) {
	assert.Equal(t, FieldError{Field: "isbn", Message: "A book with this ISBN-13 already exists"}, DuplicateISBN())
}
