package routes

import (
	"github.com/fathy2028/shopeklopek/config"
	cartControllers "github.com/fathy2028/shopeklopek/controllers/cart"
	orderControllers "github.com/fathy2028/shopeklopek/controllers/order"
	userControllers "github.com/fathy2028/shopeklopek/controllers/user"
	"github.com/fathy2028/shopeklopek/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all “/user/*” and “/cart/*” endpoints. Requires a token.
func SetupUserRoutes(api *gin.RouterGroup, db *gorm.DB, cfg *config.Config, hub *orderControllers.Hub) {
	userGroup := api.Group("/user")
	userGroup.Use(middleware.RequireSignIn(cfg.JWTSecret))
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("/profile", userControllers.GetProfile(db))
		userGroup.PUT("/profile", userControllers.UpdateProfile(db))
		userGroup.GET("/all", middleware.IsAdmin, userControllers.GetAllUsers(db))
	}

	// ──────────────── Shopping Cart ────────────────
	cartGroup := api.Group("/cart")
	cartGroup.Use(middleware.RequireSignIn(cfg.JWTSecret))
	{
		cartGroup.GET("", cartControllers.GetCart(db, cfg.Store))
		cartGroup.POST("/add", cartControllers.AddCartItem(db, cfg.Store))
		cartGroup.PUT("/item/:productId", cartControllers.SetCartItemQuantity(db, cfg.Store))
		cartGroup.DELETE("/item/:productId", cartControllers.DeleteCartItem(db, cfg.Store))
		cartGroup.DELETE("", cartControllers.ClearCart(db, cfg.Store))
		cartGroup.POST("/checkout", cartControllers.CheckoutHandler(db, cfg.Store, hub))
	}
}
