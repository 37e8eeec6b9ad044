package routes

import (
	"github.com/fathy2028/shopeklopek/config"
	productcontroller "github.com/fathy2028/shopeklopek/controllers/product"
	"github.com/fathy2028/shopeklopek/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupCategoryRoutes registers all “/category/*” endpoints. Writes are admin only.
func SetupCategoryRoutes(api *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	admin := []gin.HandlerFunc{middleware.RequireSignIn(cfg.JWTSecret), middleware.IsAdmin}

	category := api.Group("/category")
	{
		category.POST("/create-category", append(admin, productcontroller.CreateCategory(db, cfg.Store))...)
		category.PUT("/update-category/:id", append(admin, productcontroller.UpdateCategory(db, cfg.Store))...)
		category.DELETE("/deletecategory/:id", append(admin, productcontroller.DeleteCategory(db))...)

		category.GET("/getcategories", productcontroller.GetAllCategories(db))
		category.GET("/getcategory/:id", productcontroller.GetCategory(db))
		category.GET("/get-category-photo/:id", productcontroller.GetCategoryPhoto(db))
	}
}

// SetupProductRoutes registers all “/product/*” endpoints. Writes are admin only.
func SetupProductRoutes(api *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	admin := []gin.HandlerFunc{middleware.RequireSignIn(cfg.JWTSecret), middleware.IsAdmin}

	product := api.Group("/product")
	{
		// ─────────── Product Management ───────────
		product.POST("/create-product", append(admin, productcontroller.CreateProduct(db, cfg.Store))...)
		product.PUT("/update-product/:id", append(admin, productcontroller.UpdateProduct(db, cfg.Store))...)
		product.DELETE("/delete-product/:id", append(admin, productcontroller.DeleteProduct(db))...)
		product.POST("/import-excel", append(admin, productcontroller.ImportProductsFromExcel(db))...)
		product.GET("/export-excel", append(admin, productcontroller.ExportProductsToExcel(db))...)

		// ─────────── Browse Products ───────────
		product.GET("/getall-products", productcontroller.GetProducts(db))
		product.GET("/get-product/:id", productcontroller.GetProduct(db))
		product.GET("/get-product-photo/:id", productcontroller.GetProductPhoto(db))
		product.GET("/product-count", productcontroller.ProductCount(db))
		product.GET("/product-list/:page", productcontroller.ProductList(db, cfg.Store))
		product.GET("/search/:keyword", productcontroller.SearchProducts(db))
		product.POST("/product-filters", productcontroller.FilterProducts(db))
		product.GET("/related-product/:pid/:cid", productcontroller.RelatedProducts(db))
		product.GET("/productsbycategory/:id", productcontroller.ProductsByCategory(db))
	}
}
