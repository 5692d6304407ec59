// Package authors provides database operations for author management.
//
// This package implements the AuthorStore interface defined in internal/http/authors.go.
package authors

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tkoide/bookshelf/internal/entities"
)

// ErrNotFound is returned when the requested author does not exist.
var ErrNotFound = errors.New("author not found")

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new author and returns it with its assigned ID.
func (r *Repository) Create(name string) (*entities.Author, error) {
	author := &entities.Author{Name: name}
	if err := r.db.Create(author).Error; err != nil {
		return nil, err
	}
	return author, nil
}

// GetByID retrieves an author by ID.
func (r *Repository) GetByID(id uint) (*entities.Author, error) {
	var author entities.Author
	err := r.db.First(&author, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// GetAll retrieves all authors in insertion order.
func (r *Repository) GetAll() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Order("id ASC").Find(&authors).Error
	return authors, err
}

// GetWithBooks retrieves an author together with all of its books.
func (r *Repository) GetWithBooks(id uint) (*entities.Author, error) {
	var author entities.Author
	err := r.db.Preload("Books", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).First(&author, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// Update applies the supplied fields to an author and returns the record
// re-read after the write. A nil field is left untouched.
func (r *Repository) Update(id uint, name *string) (*entities.Author, error) {
	var author entities.Author
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&author, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if name != nil {
			if err := tx.Model(&author).Update("name", *name).Error; err != nil {
				return err
			}
		}
		return tx.First(&author, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// Delete removes an author and all of its books in a single transaction.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var author entities.Author
		if err := tx.First(&author, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("author_id = ?", id).Delete(&entities.Book{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Author{}, id).Error
	})
}
