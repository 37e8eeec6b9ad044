package productcontroller

import (
	"errors"
	"log"
	"net/http"

	"github.com/fathy2028/shopeklopek/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			var product models.Product
			if err := tx.Select("id").First(&product, id).Error; err != nil {
				return err
			}
			// carts must not keep pointing at the product
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&product).Error
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
				return
			}
			log.Printf("❌ Failed to delete product %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while deleting product", "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted successfully"})
	}
}
