// Package books provides database operations for the book catalog.
//
// This package implements the BookService interface defined in
// internal/services/interfaces.go.
//
// # Interface Implementation
//
//	var _ services.BookService = (*Repository)(nil)
//
// # Usage
//
//	repo := books.NewRepository(db)
//	created, err := repo.Create(ctx, &book)
package books

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/entities"
)

// Repository handles all book database operations. It keeps no state of its
// own and is safe for concurrent use.
type Repository struct {
	db *database.Database
}

// NewRepository creates a new books repository.
func NewRepository(db *database.Database) *Repository {
	return &Repository{db: db}
}

// Create inserts book. It returns false without error when a book with the
// same ISBN already exists; the primary key constraint decides, so two
// concurrent creates of one ISBN cannot both succeed.
func (r *Repository) Create(ctx context.Context, book *entities.Book) (bool, error) {
	err := r.db.Conn(ctx).Create(book).Error
	if err == nil {
		return true, nil
	}
	if database.IsUniqueViolation(err) {
		return false, nil
	}
	return false, database.StorageError("create book", err)
}

// GetByISBN returns the book with the given ISBN, or nil if there is none.
func (r *Repository) GetByISBN(ctx context.Context, isbn string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Conn(ctx).Where("isbn = ?", isbn).Take(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.StorageError("get book", err)
	}
	return &book, nil
}

// GetAll returns every book ordered by ISBN.
func (r *Repository) GetAll(ctx context.Context) ([]entities.Book, error) {
	books := []entities.Book{}
	if err := r.db.Conn(ctx).Order("isbn ASC").Find(&books).Error; err != nil {
		return nil, database.StorageError("list books", err)
	}
	return books, nil
}

// SearchByTitle returns books whose title contains term, ignoring case for
// any Unicode letter. The term is matched literally; % and _ carry no
// wildcard meaning.
func (r *Repository) SearchByTitle(ctx context.Context, term string) ([]entities.Book, error) {
	books := []entities.Book{}
	err := r.db.Conn(ctx).
		Where("INSTR("+database.UnicodeLowerFunc+"(title), ?) > 0", strings.ToLower(term)).
		Order("isbn ASC").
		Find(&books).Error
	if err != nil {
		return nil, database.StorageError("search books", err)
	}
	return books, nil
}

// Update overwrites every field of the book identified by book.ISBN.
// It returns false when no such book exists; nothing is inserted.
func (r *Repository) Update(ctx context.Context, book *entities.Book) (bool, error) {
	result := r.db.Conn(ctx).
		Model(&entities.Book{}).
		Where("isbn = ?", book.ISBN).
		Updates(map[string]any{
			"title":             book.Title,
			"author":            book.Author,
			"short_description": book.ShortDescription,
			"page_count":        book.PageCount,
		})
	if result.Error != nil {
		return false, database.StorageError("update book", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Delete removes the book with the given ISBN, returning false if there was none.
func (r *Repository) Delete(ctx context.Context, isbn string) (bool, error) {
	result := r.db.Conn(ctx).Where("isbn = ?", isbn).Delete(&entities.Book{})
	if result.Error != nil {
		return false, database.StorageError("delete book", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Count returns the number of books in the catalog.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.Conn(ctx).Model(&entities.Book{}).Count(&total).Error; err != nil {
		return 0, database.StorageError("count books", err)
	}
	return total, nil
}
