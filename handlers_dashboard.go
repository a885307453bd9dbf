package main

import (
	"net/http"
	"strconv"

	"github.com/avanibrahim/dashnusa/models"
	"github.com/avanibrahim/dashnusa/pkg/aggregate"

	"github.com/gin-gonic/gin"
)

// fetchAggregateEntries loads the caller's (optionally date-filtered)
// entries sorted ascending and maps them to the shape the aggregation
// engine consumes. Category names are resolved here so a deleted category
// shows up as an empty name and lands in the Uncategorized bucket.
func fetchAggregateEntries(c *gin.Context, userID uint) ([]aggregate.Entry, bool) {
	q, ok := entryQuery(c, userID)
	if !ok {
		return nil, false
	}
	var items []models.Entry
	if err := q.Preload("Category").Order("date asc, id asc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return nil, false
	}
	rows := make([]aggregate.Entry, 0, len(items))
	for _, e := range items {
		name := ""
		if e.Category != nil {
			name = e.Category.Name
		}
		rows = append(rows, aggregate.Entry{
			Kind:         aggregate.Kind(e.Kind),
			Amount:       e.Amount,
			CategoryName: name,
			Date:         e.Date,
		})
	}
	return rows, true
}

// dashboardSummaryHandler returns overall income, expense and balance for
// the summary cards. Accepts the same from/to filters as /entries.
func dashboardSummaryHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	rows, ok := fetchAggregateEntries(c, user.ID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, aggregate.ComputeTotals(rows))
}

// dashboardTrendHandler returns the per-month income/expense trend. Rows
// come back from the store sorted ascending by date, so the engine's
// first-encounter grouping yields a chronological series.
func dashboardTrendHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	rows, ok := fetchAggregateEntries(c, user.ID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, aggregate.ComputeMonthlyTrend(rows))
}

// dashboardBreakdownHandler returns the per-category distribution. Defaults
// to expenses with the dashboard's top-6 cut; limit=0 disables truncation
// for the analysis page.
func dashboardBreakdownHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	kind := models.KindExpense
	if v := c.Query("kind"); v != "" {
		if !models.ValidEntryKind(v) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be income or expense"})
			return
		}
		kind = v
	}
	limit := 6
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	rows, ok := fetchAggregateEntries(c, user.ID)
	if !ok {
		return
	}
	buckets := aggregate.ComputeCategoryBreakdown(rows, aggregate.Kind(kind))
	c.JSON(http.StatusOK, aggregate.TopN(buckets, limit))
}
