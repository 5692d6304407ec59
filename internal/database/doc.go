// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, catalog seeding
//	├── authors/         # Author CRUD and cascade delete
//	├── books/           # Book CRUD with author referential checks
//	└── audit/           # Audit trail of catalog writes
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./bookshelf.db")
//
//	// Create domain-specific repositories
//	authorsRepo := authors.NewRepository(db.DB)
//	booksRepo := books.NewRepository(db.DB)
//
//	// Use repositories
//	author, err := authorsRepo.GetWithBooks(1)
//	book, err := booksRepo.Create("坊っちゃん", author.ID)
//
// # Interface Implementations
//
//   - authors.Repository: implements http.AuthorStore
//   - books.Repository: implements http.BookStore
//   - audit.Repository: implements http.AuditStore
//
// Write operations run inside a single transaction, so referential checks
// (the author existence check before a book write, the cascade delete of an
// author's books) cannot race with a concurrent delete of the checked row.
package database
