package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// parseDay accepts YYYY-MM-DD or RFC3339 timestamps
func parseDay(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	return t.UTC(), err
}

// reportRange reads from/to query params; defaults to the last 30 days.
// "to" is exclusive.
func reportRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now

	if s := c.Query("from"); s != "" {
		t, err := parseDay(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date. Use YYYY-MM-DD"})
			return from, to, false
		}
		from = t
	}
	if s := c.Query("to"); s != "" {
		t, err := parseDay(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date. Use YYYY-MM-DD"})
			return from, to, false
		}
		to = t
	}
	if !from.Before(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be before to"})
		return from, to, false
	}
	return from, to, true
}

// ReportSummary returns order counts and revenue for a date range —
// staff or admin only
func ReportSummary(c *gin.Context) {
	from, to, ok := reportRange(c)
	if !ok {
		return
	}

	summary, err := engine().Report(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// ReportTopItems ranks menu items by ordered quantity for a date range —
// staff or admin only
func ReportTopItems(c *gin.Context) {
	from, to, ok := reportRange(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	items, err := engine().TopItems(from, to, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "top_items": items})
}
