package http

import (
	"github.com/gin-gonic/gin"

	"github.com/tkoide/bookshelf/internal/audit"
	"github.com/tkoide/bookshelf/internal/database"
)

// RouterConfig holds all dependencies needed to build the HTTP router.
type RouterConfig struct {
	Database     *database.Database
	AuthorStore  AuthorStore
	BookStore    BookStore
	AuditStore   AuditStore
	AuditService *audit.Service
	Version      string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	authorsController := NewAuthorsController(cfg.AuthorStore, cfg.AuditService)
	booksController := NewBooksController(cfg.BookStore, cfg.AuditService)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Author endpoints
	router.POST("/authors", authorsController.CreateAuthor)
	router.GET("/authors", authorsController.ListAuthors)
	router.GET("/authors/:id", authorsController.GetAuthor)
	router.GET("/authors/:id/details", authorsController.GetAuthorDetails)
	router.PATCH("/authors", authorsController.UpdateAuthor)
	router.DELETE("/authors", authorsController.DeleteAuthor)

	// Book endpoints
	router.POST("/books", booksController.CreateBook)
	router.GET("/books", booksController.ListBooks)
	router.GET("/books/:id", booksController.GetBook)
	router.GET("/books/:id/details", booksController.GetBookDetails)
	router.PATCH("/books", booksController.UpdateBook)
	router.DELETE("/books", booksController.DeleteBook)

	// Audit trail endpoint
	if cfg.AuditStore != nil {
		auditController := NewAuditController(cfg.AuditStore)
		router.GET("/api/audit/events", auditController.ListEvents)
	}

	return router
}
