package http

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ekurtoglu/guidance/internal/auth"
)

// GetUserID extracts the authenticated user's ID from the Gin context.
func GetUserID(c *gin.Context) uint {
	return auth.GetUserID(c)
}

// APIResponse is the envelope for every JSON API response. Success
// responses carry Data, failures carry Error.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// --- Success Response Helpers ---

// respondData sends a 200 OK response with data.
func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, APIResponse{Success: false, Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, APIResponse{Success: false, Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 response. The
// actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, APIResponse{Success: false, Error: "internal server error"})
}

// respondError sends an error response with the given status code.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, APIResponse{Success: false, Error: message})
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL
// parameters. Responds with a 400 error and returns false on failure.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseUintQuery parses an unsigned integer query value.
func parseUintQuery(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	return uint(id), err
}

// dateLayout is the wire format for date query parameters and payloads.
const dateLayout = "2006-01-02"

// parseDateQuery parses an optional YYYY-MM-DD query parameter. An
// absent parameter yields the zero time. Responds with a 400 error and
// returns false on a malformed value.
func parseDateQuery(c *gin.Context, paramName string) (time.Time, bool) {
	value := c.Query(paramName)
	if value == "" {
		return time.Time{}, true
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName+": expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return parsed, true
}

// parseDate parses a required YYYY-MM-DD payload field.
func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}
