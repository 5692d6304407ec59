package audit

import (
	"log"

	"github.com/tkoide/bookshelf/internal/database/audit"
	"github.com/tkoide/bookshelf/internal/entities"
)

// Service provides high-level audit logging for catalog write operations.
// A nil *Service is a no-op, so callers never have to guard their calls.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	if s == nil {
		return nil
	}
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	if s == nil {
		return
	}
	go func() {
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// LogCreate records a create event for an author or book.
func (s *Service) LogCreate(entityType string, entityID uint, description string) {
	s.logWrite(entities.AuditEventCreate, entityType, &entityID, description, nil)
}

// LogUpdate records an update event for an author or book.
func (s *Service) LogUpdate(entityType string, entityID uint, description string) {
	s.logWrite(entities.AuditEventUpdate, entityType, &entityID, description, nil)
}

// LogDelete records a delete event for an author or book.
func (s *Service) LogDelete(entityType string, entityID uint, description string) {
	s.logWrite(entities.AuditEventDelete, entityType, &entityID, description, nil)
}

func (s *Service) logWrite(eventType entities.AuditEventType, entityType string, entityID *uint, description string, err error) {
	if s == nil {
		return
	}
	event := &entities.AuditEvent{
		EventType:   eventType,
		EntityType:  entityType,
		EntityID:    entityID,
		Description: truncate(description, 500),
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	s.LogAsync(event)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
