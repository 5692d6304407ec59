package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tkoide/bookshelf/internal/entities"
)

// AuditStore defines database operations for reading the audit trail.
type AuditStore interface {
	GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error)
}

type AuditController struct {
	store AuditStore
}

func NewAuditController(store AuditStore) *AuditController {
	return &AuditController{store: store}
}

// ListEvents returns recent audit events, newest first
// GET /api/audit/events?limit=&offset=
func (ac *AuditController) ListEvents(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	events, total, err := ac.store.GetEvents(limit, offset)
	if err != nil {
		respondInternalError(c, err, "list audit events")
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:   events,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}
