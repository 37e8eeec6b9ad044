package routes

import (
	"github.com/fathy2028/shopeklopek/config"
	userControllers "github.com/fathy2028/shopeklopek/controllers/user"
	"github.com/fathy2028/shopeklopek/middleware"
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes registers all “/auth/*” endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, cfg *config.Config) {
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RequireSignIn(cfg.JWTSecret))
	{
		authGroup.GET("/user-auth", userControllers.AuthCheck)
		authGroup.GET("/admin-auth", middleware.IsAdmin, userControllers.AuthCheck)
	}
}
