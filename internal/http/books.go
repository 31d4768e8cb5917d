package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/audit"
	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/services"
	"github.com/mrlokans/library/internal/validation"
)

type BooksController struct {
	books     services.BookService
	validator services.BookValidator
	audit     *audit.Service
}

func NewBooksController(books services.BookService, validator services.BookValidator, auditService *audit.Service) *BooksController {
	return &BooksController{
		books:     books,
		validator: validator,
		audit:     auditService,
	}
}

// CreateBook handles POST /books.
//
//	@Summary	Create a book
//	@Tags		books
//	@Accept		json
//	@Produce	json
//	@Param		book	body		entities.Book	true	"Book to create"
//	@Success	201		{object}	entities.Book
//	@Header		201		{string}	Location	"/books/{isbn}"
//	@Failure	400		{array}		validation.FieldError
//	@Failure	401		{object}	ErrorResponse
//	@Failure	503		{object}	ErrorResponse
//	@Security	ApiKey
//	@Router		/books [post]
func (controller *BooksController) CreateBook(c *gin.Context) {
	var book entities.Book
	if err := c.ShouldBindJSON(&book); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if errs := controller.validator.ValidateBook(&book); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	created, err := controller.books.Create(c.Request.Context(), &book)
	if err != nil {
		controller.record(c, entities.AuditActionBookCreate, &book, err)
		respondStoreError(c, err, "create book")
		return
	}
	if !created {
		c.JSON(http.StatusBadRequest, []validation.FieldError{validation.DuplicateISBN()})
		return
	}

	controller.record(c, entities.AuditActionBookCreate, &book, nil)
	c.Header("Location", "/books/"+book.ISBN)
	c.JSON(http.StatusCreated, book)
}

// UpdateBook handles PUT /books/:isbn. The path ISBN wins over the body.
//
//	@Summary	Update a book
//	@Tags		books
//	@Accept		json
//	@Produce	json
//	@Param		isbn	path		string			true	"ISBN-13"
//	@Param		book	body		entities.Book	true	"Replacement fields"
//	@Success	200		{object}	entities.Book
//	@Failure	400		{array}		validation.FieldError
//	@Failure	401		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	503		{object}	ErrorResponse
//	@Security	ApiKey
//	@Router		/books/{isbn} [put]
func (controller *BooksController) UpdateBook(c *gin.Context) {
	var book entities.Book
	if err := c.ShouldBindJSON(&book); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	book.ISBN = c.Param("isbn")

	if errs := controller.validator.ValidateBook(&book); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	updated, err := controller.books.Update(c.Request.Context(), &book)
	if err != nil {
		controller.record(c, entities.AuditActionBookUpdate, &book, err)
		respondStoreError(c, err, "update book")
		return
	}
	if !updated {
		respondNotFound(c, "book")
		return
	}

	controller.record(c, entities.AuditActionBookUpdate, &book, nil)
	c.JSON(http.StatusOK, book)
}

// GetBooks handles GET /books, optionally filtered by ?searchTerm=.
//
//	@Summary	List books
//	@Tags		books
//	@Produce	json
//	@Param		searchTerm	query		string	false	"Case-insensitive title substring"
//	@Success	200			{array}		entities.Book
//	@Failure	401			{object}	ErrorResponse
//	@Failure	503			{object}	ErrorResponse
//	@Security	ApiKey
//	@Router		/books [get]
func (controller *BooksController) GetBooks(c *gin.Context) {
	term := c.Query("searchTerm")

	var (
		books []entities.Book
		err   error
	)
	if strings.TrimSpace(term) == "" {
		books, err = controller.books.GetAll(c.Request.Context())
	} else {
		books, err = controller.books.SearchByTitle(c.Request.Context(), term)
	}
	if err != nil {
		respondStoreError(c, err, "list books")
		return
	}

	c.JSON(http.StatusOK, books)
}

// GetBook handles GET /books/:isbn.
//
//	@Summary	Get a book
//	@Tags		books
//	@Produce	json
//	@Param		isbn	path		string	true	"ISBN-13"
//	@Success	200		{object}	entities.Book
//	@Failure	401		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	503		{object}	ErrorResponse
//	@Security	ApiKey
//	@Router		/books/{isbn} [get]
func (controller *BooksController) GetBook(c *gin.Context) {
	book, err := controller.books.GetByISBN(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		respondStoreError(c, err, "get book")
		return
	}
	if book == nil {
		respondNotFound(c, "book")
		return
	}

	c.JSON(http.StatusOK, book)
}

// DeleteBook handles DELETE /books/:isbn.
//
//	@Summary	Delete a book
//	@Tags		books
//	@Produce	json
//	@Param		isbn	path	string	true	"ISBN-13"
//	@Success	204
//	@Failure	401	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	503	{object}	ErrorResponse
//	@Security	ApiKey
//	@Router		/books/{isbn} [delete]
func (controller *BooksController) DeleteBook(c *gin.Context) {
	isbn := c.Param("isbn")
	target := &entities.Book{ISBN: isbn}

	deleted, err := controller.books.Delete(c.Request.Context(), isbn)
	if err != nil {
		controller.record(c, entities.AuditActionBookDelete, target, err)
		respondStoreError(c, err, "delete book")
		return
	}
	if !deleted {
		respondNotFound(c, "book")
		return
	}

	controller.record(c, entities.AuditActionBookDelete, target, nil)
	c.Status(http.StatusNoContent)
}

// GetBookStats handles GET /api/books/stats.
//
//	@Summary	Count books
//	@Tags		books
//	@Produce	json
//	@Success	200	{object}	map[string]int64
//	@Failure	401	{object}	ErrorResponse
//	@Failure	503	{object}	ErrorResponse
//	@Security	ApiKey
//	@Router		/api/books/stats [get]
func (controller *BooksController) GetBookStats(c *gin.Context) {
	count, err := controller.books.Count(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "count books")
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"total_books": count})
}

func (controller *BooksController) record(c *gin.Context, action entities.AuditAction, book *entities.Book, err error) {
	if controller.audit == nil {
		return
	}

	var description string
	var metadata map[string]any
	switch action {
	case entities.AuditActionBookCreate:
		description = fmt.Sprintf("Created book %q", book.Title)
		metadata = map[string]any{"title": book.Title, "author": book.Author}
	case entities.AuditActionBookUpdate:
		description = fmt.Sprintf("Updated book %q", book.Title)
		metadata = map[string]any{"title": book.Title, "author": book.Author}
	default:
		description = "Deleted book " + book.ISBN
	}

	// The audit row must be written even if the client has gone away.
	ctx := context.WithoutCancel(c.Request.Context())
	controller.audit.LogBook(ctx, action, book.ISBN, description, requestMeta(c), metadata, err)
}

func requestMeta(c *gin.Context) audit.RequestMeta {
	return audit.RequestMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: requestID(c),
	}
}
