package productcontroller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/fathy2028/shopeklopek/config"
	"github.com/fathy2028/shopeklopek/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func listQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Product{}).
		Select(models.ProductListColumns).
		Preload("Category", preloadCategory)
}

func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		products := []models.Product{}
		if err := listQuery(db).Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error in getting products", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "countTotal": len(products), "message": "All products", "products": products})
	}
}

func ProductCount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var total int64
		if err := db.Model(&models.Product{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Error in product count", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "total": total})
	}
}

// ProductList serves one page of the catalogue, newest first.
func ProductList(db *gorm.DB, store config.StoreConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := strconv.Atoi(c.Param("page"))
		if err != nil || page < 1 {
			page = 1
		}

		products := []models.Product{}
		if err := listQuery(db).
			Order("created_at DESC").
			Offset((page - 1) * store.ProductsPerPage).
			Limit(store.ProductsPerPage).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Error in per page ctrl", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "page": page, "products": products})
	}
}

// SearchProducts matches the keyword against name and description, ignoring case.
func SearchProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		keyword := strings.ToLower(strings.TrimSpace(c.Param("keyword")))
		if keyword == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Keyword is required"})
			return
		}
		pattern := "%" + keyword + "%"

		products := []models.Product{}
		if err := listQuery(db).
			Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
			Order("created_at DESC").
			Find(&products).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Error in search product API", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
	}
}

type FilterRequest struct {
	Checked []uint    `json:"checked"` // category ids
	Radio   []float64 `json:"radio"`   // [min, max] price
}

func FilterProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FilterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Error while filtering products", "error": err.Error()})
			return
		}
		if len(req.Radio) != 0 && len(req.Radio) != 2 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "radio must be [min, max]"})
			return
		}

		query := listQuery(db)
		if len(req.Checked) > 0 {
			query = query.Where("category_id IN ?", req.Checked)
		}
		if len(req.Radio) == 2 {
			query = query.Where("price >= ? AND price <= ?", req.Radio[0], req.Radio[1])
		}

		products := []models.Product{}
		if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Error while filtering products", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
	}
}

// RelatedProducts returns up to three other products from the same category.
func RelatedProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		products := []models.Product{}
		cid, errC := strconv.ParseUint(c.Param("cid"), 10, 64)
		pid, errP := strconv.ParseUint(c.Param("pid"), 10, 64)
		if errC != nil || errP != nil {
			c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
			return
		}
		if err := listQuery(db).
			Where("category_id = ? AND id <> ?", cid, pid).
			Limit(3).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Error while getting related products", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
	}
}

// ProductsByCategory lists a category's products. An unknown category yields
// an empty list.
func ProductsByCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		products := []models.Product{}

		category, err := findCategory(db.Select(models.CategoryListColumns), c.Param("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, gin.H{"success": true, "category": nil, "products": products})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Error while getting products", "error": err.Error()})
			return
		}

		if err := listQuery(db).Where("category_id = ?", category.ID).Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Error while getting products", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "category": category, "products": products})
	}
}
