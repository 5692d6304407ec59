// Package books provides database operations for book management.
//
// This package implements the BookStore interface defined in internal/http/books.go.
// Referential checks against the author table run inside the same transaction
// as the write they guard.
package books

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tkoide/bookshelf/internal/entities"
)

var (
	// ErrNotFound is returned when the requested book does not exist.
	ErrNotFound = errors.New("book not found")
	// ErrAuthorNotFound is returned when a supplied author_id does not
	// reference an existing author.
	ErrAuthorNotFound = errors.New("author not found")
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new book after verifying the referenced author exists.
// The check and the insert share one transaction.
func (r *Repository) Create(name string, authorID uint) (*entities.Book, error) {
	book := &entities.Book{Name: name, AuthorID: &authorID}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var author entities.Author
		if err := tx.First(&author, authorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAuthorNotFound
			}
			return err
		}
		return tx.Create(book).Error
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

// GetByID retrieves a book by ID.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetAll retrieves all books in insertion order.
func (r *Repository) GetAll() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Order("id ASC").Find(&books).Error
	return books, err
}

// GetWithAuthor retrieves a book together with its author. Author stays nil
// when the book's author_id column is null.
func (r *Repository) GetWithAuthor(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Author").First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Update applies the supplied fields to a book and returns the record re-read
// after the write. A nil field is left untouched. A supplied author_id is
// validated before any field changes so a failed check leaves the row intact.
func (r *Repository) Update(id uint, name *string, authorID *uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&book, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if authorID != nil {
			var author entities.Author
			if err := tx.First(&author, *authorID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrAuthorNotFound
				}
				return err
			}
		}
		updates := map[string]any{}
		if name != nil {
			updates["name"] = *name
		}
		if authorID != nil {
			updates["author_id"] = *authorID
		}
		if len(updates) > 0 {
			if err := tx.Model(&book).Updates(updates).Error; err != nil {
				return err
			}
		}
		return tx.First(&book, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Delete removes a book.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.Delete(&entities.Book{}, id).Error
	})
}
