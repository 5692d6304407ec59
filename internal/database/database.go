package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tkoide/bookshelf/internal/entities"
)

// seedAuthor and seedBook form the fixed demo catalog inserted when the
// author table is empty at startup.
var (
	seedAuthor = entities.Author{Name: "夏目漱石"}
	seedBook   = entities.Book{Name: "坊っちゃん"}
)

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate all entities
	err = db.AutoMigrate(
		&entities.Author{},
		&entities.Book{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.seedCatalog(); err != nil {
		return nil, fmt.Errorf("failed to seed catalog: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// seedCatalog inserts the demo author and its book once, only when the
// author table is empty.
func (d *Database) seedCatalog() error {
	var count int64
	if err := d.DB.Model(&entities.Author{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return d.DB.Transaction(func(tx *gorm.DB) error {
		author := seedAuthor
		if err := tx.Create(&author).Error; err != nil {
			return err
		}
		book := seedBook
		book.AuthorID = &author.ID
		if err := tx.Create(&book).Error; err != nil {
			return err
		}
		log.Printf("Seeded catalog with author %q and book %q", author.Name, book.Name)
		return nil
	})
}

// ResetCatalog wipes all authors and books and restores the seed rows.
// Used by the demo reset scheduler.
func (d *Database) ResetCatalog() error {
	err := d.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entities.Book{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&entities.Author{}).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return d.seedCatalog()
}
