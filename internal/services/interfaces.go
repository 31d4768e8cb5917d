package services

import (
	"context"

	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/validation"
)

// BookService is the catalog contract used by the HTTP layer.
//
// Absence is reported through the results, never as an error: lookups
// return a nil book and mutations return false. Errors mean the store
// itself failed and wrap database.ErrStorageUnavailable.
type BookService interface {
	// Create returns false if a book with the same ISBN already exists.
	Create(ctx context.Context, book *entities.Book) (bool, error)
	GetByISBN(ctx context.Context, isbn string) (*entities.Book, error)
	GetAll(ctx context.Context) ([]entities.Book, error)
	// SearchByTitle matches a case-insensitive substring of the title.
	SearchByTitle(ctx context.Context, term string) ([]entities.Book, error)
	// Update returns false if no book has book.ISBN.
	Update(ctx context.Context, book *entities.Book) (bool, error)
	// Delete returns false if no book has isbn.
	Delete(ctx context.Context, isbn string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// BookValidator checks a book before it is written.
type BookValidator interface {
	ValidateBook(book *entities.Book) []validation.FieldError
}
