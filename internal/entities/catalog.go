package entities

// Author is a writer owning zero or more books. Deleting an author removes
// its books in the same transaction.
type Author struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:256;not null" json:"name"`
	Books []Book `gorm:"foreignKey:AuthorID" json:"books,omitempty"`
}

// Book references its author through AuthorID. The column is nullable at the
// storage level but creation always requires a value.
type Book struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"size:512" json:"name"`
	AuthorID *uint   `gorm:"index" json:"author_id"`
	Author   *Author `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (Author) TableName() string {
	return "author"
}

func (Book) TableName() string {
	return "book"
}
