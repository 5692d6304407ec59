package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	auditdb "github.com/tkoide/bookshelf/internal/database/audit"
	"github.com/tkoide/bookshelf/internal/entities"
)

func setupService(t *testing.T) (*Service, *auditdb.Repository) {
	dbPath := filepath.Join(t.TempDir(), "audit_service_test.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.AuditEvent{}))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	repo := auditdb.NewRepository(db)
	return NewService(repo), repo
}

func TestService_Log(t *testing.T) {
	service, repo := setupService(t)

	err := service.Log(&entities.AuditEvent{
		EventType:  entities.AuditEventCreate,
		EntityType: "author",
		Status:     entities.AuditStatusSuccess,
	})
	require.NoError(t, err)

	_, total, err := repo.GetEvents(10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestService_LogCreateAsync(t *testing.T) {
	service, repo := setupService(t)

	service.LogCreate("book", 3, "Created book")

	assert.Eventually(t, func() bool {
		events, total, err := repo.GetEvents(10, 0)
		if err != nil || total != 1 {
			return false
		}
		event := events[0]
		return event.EventType == entities.AuditEventCreate &&
			event.EntityType == "book" &&
			event.EntityID != nil && *event.EntityID == 3 &&
			event.Status == entities.AuditStatusSuccess
	}, 2*time.Second, 10*time.Millisecond)
}

func TestService_NilServiceIsNoOp(t *testing.T) {
	var service *Service

	// Must not panic
	service.LogCreate("author", 1, "ignored")
	service.LogUpdate("author", 1, "ignored")
	service.LogDelete("author", 1, "ignored")
	assert.NoError(t, service.Log(&entities.AuditEvent{}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}
