package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
// Detail names the offending field, e.g. "Unknown author_id".
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// PaginatedResponse wraps paginated data with metadata.
type PaginatedResponse struct {
	Data   any   `json:"data"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Detail: detail})
}

// respondNotFound sends a 404 Not Found response naming the unknown field.
func respondNotFound(c *gin.Context, detail string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Detail: detail})
}

// respondInternalError logs the error and sends a 500 Internal Server Error
// response. The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "internal server error"})
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseQueryID extracts and validates an unsigned integer ID from query parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseQueryID(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Query(paramName)
	if idStr == "" {
		respondBadRequest(c, paramName+" is required")
		return 0, false
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}
