package http

import "github.com/tkoide/bookshelf/internal/entities"

// Wire shapes for catalog resources. Kept separate from the gorm entities so
// the response contract stays exact: list endpoints return bare records,
// detail endpoints always carry the related rows ("books" is never omitted,
// "author" is null when the foreign key is).

type AuthorResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type BookResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	AuthorID *uint  `json:"author_id"`
}

type AuthorDetailsResponse struct {
	ID    uint           `json:"id"`
	Name  string         `json:"name"`
	Books []BookResponse `json:"books"`
}

type BookDetailsResponse struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	AuthorID *uint           `json:"author_id"`
	Author   *AuthorResponse `json:"author"`
}

func newAuthorResponse(author *entities.Author) AuthorResponse {
	return AuthorResponse{ID: author.ID, Name: author.Name}
}

func newAuthorListResponse(authors []entities.Author) []AuthorResponse {
	resp := make([]AuthorResponse, 0, len(authors))
	for i := range authors {
		resp = append(resp, newAuthorResponse(&authors[i]))
	}
	return resp
}

func newBookResponse(book *entities.Book) BookResponse {
	return BookResponse{ID: book.ID, Name: book.Name, AuthorID: book.AuthorID}
}

func newBookListResponse(books []entities.Book) []BookResponse {
	resp := make([]BookResponse, 0, len(books))
	for i := range books {
		resp = append(resp, newBookResponse(&books[i]))
	}
	return resp
}

func newAuthorDetailsResponse(author *entities.Author) AuthorDetailsResponse {
	return AuthorDetailsResponse{
		ID:    author.ID,
		Name:  author.Name,
		Books: newBookListResponse(author.Books),
	}
}

func newBookDetailsResponse(book *entities.Book) BookDetailsResponse {
	resp := BookDetailsResponse{
		ID:       book.ID,
		Name:     book.Name,
		AuthorID: book.AuthorID,
	}
	if book.Author != nil {
		author := newAuthorResponse(book.Author)
		resp.Author = &author
	}
	return resp
}
