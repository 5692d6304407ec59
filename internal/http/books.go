package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tkoide/bookshelf/internal/audit"
	"github.com/tkoide/bookshelf/internal/database/books"
	"github.com/tkoide/bookshelf/internal/entities"
)

// BookStore defines database operations for book management.
type BookStore interface {
	Create(name string, authorID uint) (*entities.Book, error)
	GetByID(id uint) (*entities.Book, error)
	GetAll() ([]entities.Book, error)
	GetWithAuthor(id uint) (*entities.Book, error)
	Update(id uint, name *string, authorID *uint) (*entities.Book, error)
	Delete(id uint) error
}

type BooksController struct {
	store        BookStore
	auditService *audit.Service
}

func NewBooksController(store BookStore, auditService *audit.Service) *BooksController {
	return &BooksController{store: store, auditService: auditService}
}

// CreateBook creates a new book referencing an existing author
// POST /books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		AuthorID *uint  `json:"author_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name and author_id are required")
		return
	}

	book, err := bc.store.Create(req.Name, *req.AuthorID)
	if errors.Is(err, books.ErrAuthorNotFound) {
		respondNotFound(c, "Unknown author_id")
		return
	}
	if err != nil {
		respondInternalError(c, err, "create book")
		return
	}

	bc.auditService.LogCreate("book", book.ID, "Created book "+book.Name)
	c.JSON(http.StatusCreated, newBookResponse(book))
}

// ListBooks returns all books in insertion order
// GET /books
func (bc *BooksController) ListBooks(c *gin.Context) {
	all, err := bc.store.GetAll()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, newBookListResponse(all))
}

// GetBook returns a single book by ID
// GET /books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetByID(id)
	if errors.Is(err, books.ErrNotFound) {
		respondNotFound(c, "Unknown book_id")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, newBookResponse(book))
}

// GetBookDetails returns a book with its author eagerly loaded
// GET /books/:id/details
func (bc *BooksController) GetBookDetails(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetWithAuthor(id)
	if errors.Is(err, books.ErrNotFound) {
		respondNotFound(c, "Unknown book_id")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get book details")
		return
	}
	c.JSON(http.StatusOK, newBookDetailsResponse(book))
}

// UpdateBook applies a partial update; a supplied author_id is validated
// before any field changes
// PATCH /books
func (bc *BooksController) UpdateBook(c *gin.Context) {
	var req struct {
		ID       uint    `json:"id" binding:"required"`
		Name     *string `json:"name"`
		AuthorID *uint   `json:"author_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "id is required")
		return
	}

	book, err := bc.store.Update(req.ID, req.Name, req.AuthorID)
	if errors.Is(err, books.ErrNotFound) {
		respondNotFound(c, "Unknown book.id")
		return
	}
	if errors.Is(err, books.ErrAuthorNotFound) {
		respondNotFound(c, "Unknown book.author_id")
		return
	}
	if err != nil {
		respondInternalError(c, err, "update book")
		return
	}

	bc.auditService.LogUpdate("book", book.ID, "Updated book "+book.Name)
	c.JSON(http.StatusOK, newBookResponse(book))
}

// DeleteBook removes a book
// DELETE /books?book_id=
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseQueryID(c, "book_id")
	if !ok {
		return
	}

	err := bc.store.Delete(id)
	if errors.Is(err, books.ErrNotFound) {
		respondNotFound(c, "Unknown book_id")
		return
	}
	if err != nil {
		respondInternalError(c, err, "delete book")
		return
	}

	bc.auditService.LogDelete("book", id, "Deleted book")
	c.Status(http.StatusOK)
}
