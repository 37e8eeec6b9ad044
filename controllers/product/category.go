package productcontroller

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/fathy2028/shopeklopek/config"
	"github.com/fathy2028/shopeklopek/delivery"
	"github.com/fathy2028/shopeklopek/models"
	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// parseDuration reads a whole number of minutes from a form value.
func parseDuration(v string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// paramID reads a numeric id path parameter. Anything else cannot match a row.
func paramID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil
}

// findCategory looks a category up by numeric id or by slug.
func findCategory(db *gorm.DB, key string) (*models.Category, error) {
	var category models.Category
	if id, err := strconv.ParseUint(key, 10, 64); err == nil {
		err = db.First(&category, id).Error
		return &category, err
	}
	err := db.Where("slug = ?", key).First(&category).Error
	return &category, err
}

func CreateCategory(db *gorm.DB, store config.StoreConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimSpace(c.PostForm("name"))
		if name == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Name is required"})
			return
		}
		duration, ok := parseDuration(c.PostForm("deliveryDuration"))
		if !ok || !delivery.ValidDuration(duration) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Delivery duration is required and must be between 30 and 10080 minutes"})
			return
		}

		var existing models.Category
		err := db.Select("id").Where("name = ?", name).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category already exists"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("❌ Failed to look up category %q: %v", name, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error in creating category", "error": err.Error()})
			return
		}

		photo, contentType, err := readPhoto(c, "photo", store.MaxPhotoBytes)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid photo", "error": err.Error()})
			return
		}

		category := models.Category{
			Name:             name,
			Slug:             slug.Make(name),
			DeliveryDuration: duration,
			Photo:            photo,
			PhotoContentType: contentType,
		}
		if err := db.Create(&category).Error; err != nil {
			log.Printf("❌ Failed to create category %q: %v", name, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error in creating category", "error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Category created successfully", "category": category})
	}
}

func UpdateCategory(db *gorm.DB, store config.StoreConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
			return
		}

		var category models.Category
		if err := db.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while updating the category", "error": err.Error()})
			return
		}

		name := strings.TrimSpace(c.PostForm("name"))
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Name is required"})
			return
		}
		if name != category.Name {
			var count int64
			if err := db.Model(&models.Category{}).Where("name = ? AND id <> ?", name, category.ID).Count(&count).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while updating the category", "error": err.Error()})
				return
			}
			if count > 0 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Another category already uses this name"})
				return
			}
		}
		category.Name = name
		category.Slug = slug.Make(name)

		if v, present := c.GetPostForm("deliveryDuration"); present && strings.TrimSpace(v) != "" {
			duration, ok := parseDuration(v)
			if !ok || !delivery.ValidDuration(duration) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Delivery duration must be between 30 and 10080 minutes"})
				return
			}
			category.DeliveryDuration = duration
		}

		photo, contentType, err := readPhoto(c, "photo", store.MaxPhotoBytes)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid photo", "error": err.Error()})
			return
		}
		if photo != nil {
			category.Photo = photo
			category.PhotoContentType = contentType
		}

		if err := db.Save(&category).Error; err != nil {
			log.Printf("❌ Failed to update category %d: %v", category.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while updating the category", "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category updated successfully", "category": category})
	}
}

// GetAllCategories returns every category without photo blobs.
func GetAllCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories := []models.Category{}
		if err := db.Select(models.CategoryListColumns).Order("name").Find(&categories).Error; err != nil {
			log.Printf("❌ Failed to fetch categories: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success":    false,
				"message":    "Error in fetching categories",
				"error":      err.Error(),
				"categories": []models.Category{},
			})
			return
		}

		message := "Categories fetched successfully"
		if len(categories) == 0 {
			message = "No categories found"
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "categories": categories})
	}
}

func GetCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		category, err := findCategory(db.Select(models.CategoryListColumns), c.Param("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error in fetching this category", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category fetched successfully", "category": category})
	}
}

func GetCategoryPhoto(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
			return
		}
		var category models.Category
		if err := db.Select("id", "photo", "photo_content_type").First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while getting category photo", "error": err.Error()})
			return
		}
		servePhoto(c, category.Photo, category.PhotoContentType)
	}
}

// DeleteCategory removes the category together with its products and any
// cart lines that point at them.
func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			var category models.Category
			if err := tx.Select("id").First(&category, id).Error; err != nil {
				return err
			}

			productIDs := tx.Model(&models.Product{}).Select("id").Where("category_id = ?", category.ID)
			if err := tx.Where("product_id IN (?)", productIDs).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("category_id = ?", category.ID).Delete(&models.Product{}).Error; err != nil {
				return err
			}
			return tx.Delete(&category).Error
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
				return
			}
			log.Printf("❌ Failed to delete category %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete category and related products", "error": err.Error()})
			return
		}

		log.Printf("🗑️ Category %d deleted with its products", id)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category and related products deleted successfully"})
	}
}
