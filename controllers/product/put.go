package productcontroller

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/fathy2028/shopeklopek/config"
	"github.com/fathy2028/shopeklopek/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UpdateProduct updates an existing product by ID.
// Accepts the same fields as CreateProduct, all optional, plus an optional photo.
func UpdateProduct(db *gorm.DB, store config.StoreConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error in updating product", "error": err.Error()})
			return
		}

		if err := applyProductForm(c, db, &product, true); err != nil {
			if errors.Is(err, errInvalidProductForm) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error in updating product", "error": err.Error()})
			return
		}

		photo, contentType, err := readPhoto(c, "photo", store.MaxPhotoBytes)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Photo is required to be less than 1mb", "error": err.Error()})
			return
		}
		if photo != nil {
			product.Photo = photo
			product.PhotoContentType = contentType
		}

		if err := db.Save(&product).Error; err != nil {
			log.Printf("❌ Failed to update product %d: %v", product.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error in updating product", "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product updated successfully", "product": product})
	}
}
