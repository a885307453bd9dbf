package main

import (
	"net/http"
	"strings"

	"github.com/avanibrahim/dashnusa/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
	Kind string `json:"kind" binding:"required"`
}

func (r *categoryRequest) validate(c *gin.Context) bool {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return false
	}
	if !models.ValidEntryKind(r.Kind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be income or expense"})
		return false
	}
	return true
}

func createCategoryHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.validate(c) {
		return
	}
	cat := models.Category{UserID: user.ID, Name: req.Name, Kind: req.Kind}
	if err := db.Create(&cat).Error; err != nil {
		if isUniqueConstraintError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "category already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": cat.ID})
}

func listCategoriesHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	q := db.Model(&models.Category{})
	if !isAdmin(c) {
		q = q.Where("user_id = ?", user.ID)
	}
	if v := c.Query("kind"); v != "" {
		if !models.ValidEntryKind(v) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be income or expense"})
			return
		}
		q = q.Where("kind = ?", v)
	}
	var cats []models.Category
	if err := q.Order("kind asc, name asc").Find(&cats).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, cats)
}

func findOwnedCategory(c *gin.Context, userID uint) (*models.Category, bool) {
	var cat models.Category
	if err := db.First(&cat, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return nil, false
	}
	if !isAdmin(c) && cat.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return nil, false
	}
	return &cat, true
}

// updateCategoryHandler renames a category or changes its kind. Existing
// entries keep pointing at it either way; kind consistency with entries
// already written is not re-validated.
func updateCategoryHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	cat, ok := findOwnedCategory(c, user.ID)
	if !ok {
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.validate(c) {
		return
	}
	cat.Name = req.Name
	cat.Kind = req.Kind
	if err := db.Save(cat).Error; err != nil {
		if isUniqueConstraintError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "category already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": cat.ID})
}

// deleteCategoryHandler removes a category. Referencing entries are kept and
// their reference is cleared in the same transaction, so they fall back to
// "uncategorized" instead of being deleted.
func deleteCategoryHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	cat, ok := findOwnedCategory(c, user.ID)
	if !ok {
		return
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Entry{}).
			Where("category_id = ?", cat.ID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(cat).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}
