package handlers

import (
	"net/http"

	"crickstore/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryHandler struct {
	db     *gorm.DB
	logger interface{}
}

func NewCategoryHandler(db *gorm.DB, logger interface{}) *CategoryHandler {
	return &CategoryHandler{
		db:     db,
		logger: logger,
	}
}

func (h *CategoryHandler) List(c *gin.Context) {
	var categories []models.Category

	query := h.db.Model(&models.Category{}).Where("is_active = ?", true).Order("name")

	if parent := c.Query("parent"); parent != "" {
		query = query.Where("parent_id = ?", parent)
	} else if c.Query("roots") == "true" {
		query = query.Where("parent_id IS NULL")
	}

	if err := query.Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": categories})
}

func (h *CategoryHandler) Get(c *gin.Context) {
	slug := c.Param("slug")

	var category models.Category
	if err := h.db.First(&category, "slug = ?", slug).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": category})
}
