package main

import (
	"net/http"
	"time"

	"github.com/avanibrahim/dashnusa/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// parseDate parses a YYYY-MM-DD value into a midnight-UTC time.
func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

type entryRequest struct {
	Kind       string          `json:"kind" binding:"required"`
	Amount     decimal.Decimal `json:"amount"`
	CategoryID *uint           `json:"category_id"`
	Note       string          `json:"note"`
	Date       string          `json:"date" binding:"required"` // YYYY-MM-DD
}

// validateEntryRequest checks the request against the rules the frontend
// forms used to enforce: valid kind, positive amount, valid date, and a
// category that exists, belongs to the user and matches the entry kind.
func validateEntryRequest(c *gin.Context, userID uint, req *entryRequest) (models.Entry, bool) {
	if !models.ValidEntryKind(req.Kind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be income or expense"})
		return models.Entry{}, false
	}
	if !req.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return models.Entry{}, false
	}
	date, ok := parseDate(req.Date)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return models.Entry{}, false
	}
	if req.CategoryID != nil {
		var cat models.Category
		if err := db.Where("id = ? AND user_id = ?", *req.CategoryID, userID).First(&cat).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category not found"})
			return models.Entry{}, false
		}
		if cat.Kind != req.Kind {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category kind does not match entry kind"})
			return models.Entry{}, false
		}
	}
	return models.Entry{
		UserID:     userID,
		Kind:       req.Kind,
		Amount:     req.Amount,
		CategoryID: req.CategoryID,
		Note:       req.Note,
		Date:       date,
	}, true
}

func createEntryHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, ok := validateEntryRequest(c, user.ID, &req)
	if !ok {
		return
	}
	if err := db.Create(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": entry.ID})
}

// entryQuery builds the user-scoped, optionally filtered entry query shared
// by the list and dashboard handlers. Admin sees all rows.
func entryQuery(c *gin.Context, userID uint) (*gorm.DB, bool) {
	q := db.Model(&models.Entry{})
	if !isAdmin(c) {
		q = q.Where("user_id = ?", userID)
	}
	if v := c.Query("from"); v != "" {
		t, ok := parseDate(v)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
			return nil, false
		}
		q = q.Where("date >= ?", t)
	}
	if v := c.Query("to"); v != "" {
		t, ok := parseDate(v)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
			return nil, false
		}
		q = q.Where("date <= ?", t)
	}
	if v := c.Query("kind"); v != "" {
		if !models.ValidEntryKind(v) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be income or expense"})
			return nil, false
		}
		q = q.Where("kind = ?", v)
	}
	if v := c.Query("category_id"); v != "" {
		q = q.Where("category_id = ?", v)
	}
	return q, true
}

func listEntriesHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	q, ok := entryQuery(c, user.ID)
	if !ok {
		return
	}
	var items []models.Entry
	if err := q.Preload("Category").Order("date asc, id asc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// findOwnedEntry loads an entry by path id and checks ownership (admin exempt).
func findOwnedEntry(c *gin.Context, userID uint) (*models.Entry, bool) {
	var entry models.Entry
	if err := db.First(&entry, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return nil, false
	}
	if !isAdmin(c) && entry.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return nil, false
	}
	return &entry, true
}

func updateEntryHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	entry, ok := findOwnedEntry(c, user.ID)
	if !ok {
		return
	}
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, ok := validateEntryRequest(c, entry.UserID, &req)
	if !ok {
		return
	}
	entry.Kind = updated.Kind
	entry.Amount = updated.Amount
	entry.CategoryID = updated.CategoryID
	entry.Note = updated.Note
	entry.Date = updated.Date
	if err := db.Save(entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": entry.ID})
}

func deleteEntryHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	entry, ok := findOwnedEntry(c, user.ID)
	if !ok {
		return
	}
	if err := db.Delete(entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "entry deleted"})
}
