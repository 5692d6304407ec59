package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tkoide/bookshelf/internal/audit"
	"github.com/tkoide/bookshelf/internal/database/authors"
	"github.com/tkoide/bookshelf/internal/entities"
)

// AuthorStore defines database operations for author management.
type AuthorStore interface {
	Create(name string) (*entities.Author, error)
	GetByID(id uint) (*entities.Author, error)
	GetAll() ([]entities.Author, error)
	GetWithBooks(id uint) (*entities.Author, error)
	Update(id uint, name *string) (*entities.Author, error)
	Delete(id uint) error
}

type AuthorsController struct {
	store        AuthorStore
	auditService *audit.Service
}

func NewAuthorsController(store AuthorStore, auditService *audit.Service) *AuthorsController {
	return &AuthorsController{store: store, auditService: auditService}
}

// CreateAuthor creates a new author
// POST /authors
func (ac *AuthorsController) CreateAuthor(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	author, err := ac.store.Create(req.Name)
	if err != nil {
		respondInternalError(c, err, "create author")
		return
	}

	ac.auditService.LogCreate("author", author.ID, "Created author "+author.Name)
	c.JSON(http.StatusCreated, newAuthorResponse(author))
}

// ListAuthors returns all authors in insertion order
// GET /authors
func (ac *AuthorsController) ListAuthors(c *gin.Context) {
	all, err := ac.store.GetAll()
	if err != nil {
		respondInternalError(c, err, "list authors")
		return
	}
	c.JSON(http.StatusOK, newAuthorListResponse(all))
}

// GetAuthor returns a single author by ID
// GET /authors/:id
func (ac *AuthorsController) GetAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.store.GetByID(id)
	if errors.Is(err, authors.ErrNotFound) {
		respondNotFound(c, "Unknown author_id")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get author")
		return
	}
	c.JSON(http.StatusOK, newAuthorResponse(author))
}

// GetAuthorDetails returns an author with all of its books eagerly loaded
// GET /authors/:id/details
func (ac *AuthorsController) GetAuthorDetails(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.store.GetWithBooks(id)
	if errors.Is(err, authors.ErrNotFound) {
		respondNotFound(c, "Unknown author_id")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get author details")
		return
	}
	c.JSON(http.StatusOK, newAuthorDetailsResponse(author))
}

// UpdateAuthor applies a partial update; only supplied fields change
// PATCH /authors
func (ac *AuthorsController) UpdateAuthor(c *gin.Context) {
	var req struct {
		ID   uint    `json:"id" binding:"required"`
		Name *string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "id is required")
		return
	}

	author, err := ac.store.Update(req.ID, req.Name)
	if errors.Is(err, authors.ErrNotFound) {
		respondNotFound(c, "Unknown author.id")
		return
	}
	if err != nil {
		respondInternalError(c, err, "update author")
		return
	}

	ac.auditService.LogUpdate("author", author.ID, "Updated author "+author.Name)
	c.JSON(http.StatusOK, newAuthorResponse(author))
}

// DeleteAuthor removes an author and cascades to its books
// DELETE /authors?author_id=
func (ac *AuthorsController) DeleteAuthor(c *gin.Context) {
	id, ok := parseQueryID(c, "author_id")
	if !ok {
		return
	}

	err := ac.store.Delete(id)
	if errors.Is(err, authors.ErrNotFound) {
		respondNotFound(c, "Unknown author_id")
		return
	}
	if err != nil {
		respondInternalError(c, err, "delete author")
		return
	}

	ac.auditService.LogDelete("author", id, "Deleted author and its books")
	c.Status(http.StatusOK)
}
