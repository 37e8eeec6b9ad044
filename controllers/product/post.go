package productcontroller

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/fathy2028/shopeklopek/config"
	"github.com/fathy2028/shopeklopek/models"
	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var errInvalidProductForm = errors.New("invalid product form")

func formError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errInvalidProductForm, fmt.Sprintf(format, args...))
}

// applyProductForm copies multipart fields onto product. With partial set,
// absent fields keep their current value; otherwise every field is required.
func applyProductForm(c *gin.Context, db *gorm.DB, product *models.Product, partial bool) error {
	field := func(name string) (string, bool) {
		v, ok := c.GetPostForm(name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	for _, name := range []string{"name", "description", "price", "category", "quantity"} {
		if _, ok := field(name); !ok && !partial {
			return formError("%s is required", name)
		}
	}

	if v, ok := field("name"); ok {
		product.Name = v
		product.Slug = slug.Make(v)
	}
	if v, ok := field("description"); ok {
		product.Description = v
	}
	if v, ok := field("price"); ok {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil || price < 0 {
			return formError("invalid price %q", v)
		}
		product.Price = price
	}
	if v, ok := field("quantity"); ok {
		quantity, err := strconv.Atoi(v)
		if err != nil || quantity < 0 {
			return formError("invalid quantity %q", v)
		}
		product.Quantity = quantity
	}
	if v, ok := field("shipping"); ok {
		shipping, err := strconv.ParseBool(v)
		if err != nil {
			return formError("invalid shipping %q", v)
		}
		product.Shipping = shipping
	}
	if v, ok := field("category"); ok {
		categoryID, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return formError("invalid category %q", v)
		}
		var category models.Category
		if err := db.Select("id").First(&category, categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return formError("category %d does not exist", categoryID)
			}
			return err
		}
		product.CategoryID = category.ID
		product.Category = nil
	}
	return nil
}

// CreateProduct creates a product from a multipart form with an optional photo.
func CreateProduct(db *gorm.DB, store config.StoreConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := applyProductForm(c, db, &product, false); err != nil {
			if errors.Is(err, errInvalidProductForm) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error in creating product", "error": err.Error()})
			return
		}

		photo, contentType, err := readPhoto(c, "photo", store.MaxPhotoBytes)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Photo is required to be less than 1mb", "error": err.Error()})
			return
		}
		product.Photo = photo
		product.PhotoContentType = contentType

		if err := db.Create(&product).Error; err != nil {
			log.Printf("❌ Failed to create product %q: %v", product.Name, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error in creating product", "error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Product created successfully", "product": product})
	}
}
