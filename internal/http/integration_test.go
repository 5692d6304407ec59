package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkoide/bookshelf/internal/audit"
	"github.com/tkoide/bookshelf/internal/database"
	auditdb "github.com/tkoide/bookshelf/internal/database/audit"
	"github.com/tkoide/bookshelf/internal/database/authors"
	"github.com/tkoide/bookshelf/internal/database/books"
)

// setupIntegrationRouter wires the full router against a real seeded
// sqlite database, mirroring the production assembly in entrypoint.
func setupIntegrationRouter(t *testing.T) (*gin.Engine, *database.Database, *auditdb.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := filepath.Join(t.TempDir(), "integration.db")
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	auditRepo := auditdb.NewRepository(db.DB)

	router := NewRouter(RouterConfig{
		Database:     db,
		AuthorStore:  authors.NewRepository(db.DB),
		BookStore:    books.NewRepository(db.DB),
		AuditStore:   auditRepo,
		AuditService: audit.NewService(auditRepo),
		Version:      "test",
	})
	return router, db, auditRepo
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSeededCatalogScenario(t *testing.T) {
	router, _, _ := setupIntegrationRouter(t)

	// Seed state: author 夏目漱石 (id=1) owns book 坊っちゃん (id=1)
	w := doJSON(t, router, "GET", "/authors/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var author AuthorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &author))
	assert.Equal(t, uint(1), author.ID)
	assert.Equal(t, "夏目漱石", author.Name)

	w = doJSON(t, router, "GET", "/books/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var book BookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &book))
	assert.Equal(t, "坊っちゃん", book.Name)
	require.NotNil(t, book.AuthorID)
	assert.Equal(t, uint(1), *book.AuthorID)

	// Creating a book for an unknown author fails and persists nothing
	w = doJSON(t, router, "POST", "/books", `{"name": "坊っちゃん2", "author_id": 99}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "Unknown author_id", errResp.Detail)

	w = doJSON(t, router, "GET", "/books", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []BookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	// Deleting the author cascades to its book
	w = doJSON(t, router, "DELETE", "/authors?author_id=1", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", "/books/1", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "Unknown book_id", errResp.Detail)

	w = doJSON(t, router, "GET", "/books", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 0)
}

func TestAuthorLifecycle(t *testing.T) {
	router, _, _ := setupIntegrationRouter(t)

	// Create
	w := doJSON(t, router, "POST", "/authors", `{"name": "author1"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created AuthorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "author1", created.Name)
	assert.NotZero(t, created.ID)

	// Round-trip read
	w = doJSON(t, router, "GET", "/authors/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got AuthorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, created, got)

	// Details with zero books returns an empty array, not an error
	w = doJSON(t, router, "GET", "/authors/2/details", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"books":[]`)

	// Partial update: no name field leaves the record untouched
	w = doJSON(t, router, "PATCH", "/authors", `{"id": 2}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "author1", got.Name)

	// Supplying name overwrites it
	w = doJSON(t, router, "PATCH", "/authors", `{"id": 2, "name": "test1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "test1", got.Name)
}

func TestBookLifecycle(t *testing.T) {
	router, _, _ := setupIntegrationRouter(t)

	// The seeded author carries id 1
	w := doJSON(t, router, "POST", "/books", `{"name": "book1", "author_id": 1}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created BookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotNil(t, created.AuthorID)
	assert.Equal(t, uint(1), *created.AuthorID)

	// Details carries the eagerly loaded author
	w = doJSON(t, router, "GET", "/books/2/details", "")
	require.Equal(t, http.StatusOK, w.Code)
	var details BookDetailsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &details))
	require.NotNil(t, details.Author)
	assert.Equal(t, "夏目漱石", details.Author.Name)

	// Partial update keeps the author reference
	w = doJSON(t, router, "PATCH", "/books", `{"id": 2, "name": "test2"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated BookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "test2", updated.Name)
	require.NotNil(t, updated.AuthorID)
	assert.Equal(t, uint(1), *updated.AuthorID)

	// Update with an unknown author_id rolls everything back
	w = doJSON(t, router, "PATCH", "/books", `{"id": 2, "name": "mutated", "author_id": 99}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "Unknown book.author_id", errResp.Detail)

	w = doJSON(t, router, "GET", "/books/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "test2", updated.Name)

	// Delete
	w = doJSON(t, router, "DELETE", "/books?book_id=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, "GET", "/books/2", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthorDetailsIncludesBooks(t *testing.T) {
	router, _, _ := setupIntegrationRouter(t)

	w := doJSON(t, router, "GET", "/authors/1/details", "")
	require.Equal(t, http.StatusOK, w.Code)
	var details AuthorDetailsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &details))
	assert.Equal(t, "夏目漱石", details.Name)
	require.Len(t, details.Books, 1)
	assert.Equal(t, "坊っちゃん", details.Books[0].Name)
}

func TestWritesAreAudited(t *testing.T) {
	router, _, auditRepo := setupIntegrationRouter(t)

	w := doJSON(t, router, "POST", "/authors", `{"name": "tracked"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	// Audit writes are asynchronous
	assert.Eventually(t, func() bool {
		events, total, err := auditRepo.GetEvents(10, 0)
		return err == nil && total == 1 && len(events) == 1 &&
			events[0].EntityType == "author"
	}, 2*time.Second, 10*time.Millisecond)

	w = doJSON(t, router, "GET", "/api/audit/events", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp PaginatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Total)
}

func TestHealthEndpoint(t *testing.T) {
	router, _, _ := setupIntegrationRouter(t)

	w := doJSON(t, router, "GET", "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status": "healthy"`)
}
