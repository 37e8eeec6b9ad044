package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fathy2028/shopeklopek/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func preloadCategory(db *gorm.DB) *gorm.DB {
	return db.Select(models.CategoryListColumns)
}

// GetProduct returns a single product with its category.
// URL param: /get-product/:id, where id is the numeric id or the slug.
func GetProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("id")
		query := db.Select(models.ProductListColumns).Preload("Category", preloadCategory)

		var product models.Product
		var err error
		if id, convErr := strconv.ParseUint(key, 10, 64); convErr == nil {
			err = query.First(&product, id).Error
		} else {
			err = query.Where("slug = ?", key).First(&product).Error
		}
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while getting single product", "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Single product fetched", "product": product})
	}
}

func GetProductPhoto(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		var product models.Product
		if err := db.Select("id", "photo", "photo_content_type").First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while getting photo", "error": err.Error()})
			return
		}
		servePhoto(c, product.Photo, product.PhotoContentType)
	}
}
