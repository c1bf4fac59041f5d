package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/daybookhq/daybook/internal/services"
)

// parseDateQuery reads an optional ?date=YYYY-MM-DD query parameter.
func parseDateQuery(c *gin.Context) (*time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return nil, true
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return nil, false
	}
	return &t, true
}

// respondServiceError maps service errors onto HTTP statuses. Not-found
// and no-ongoing-activity are soft rejections; everything else is a server
// failure surfaced as-is.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, services.ErrNoOngoingActivity):
		c.JSON(http.StatusNotFound, gin.H{"error": "no ongoing activity found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
