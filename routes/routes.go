package routes

import (
	"time"

	"github.com/fathy2028/shopeklopek/config"
	orderControllers "github.com/fathy2028/shopeklopek/controllers/order"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewRouter builds the gin engine with CORS and every /api/v1 route group.
func NewRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// photos are held in memory before they are size checked
	r.MaxMultipartMemory = 8 << 20

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: !allowsAll(cfg.CORSOrigins),
		MaxAge:           12 * time.Hour,
	}))

	SetupRoutes(r, db, cfg, orderControllers.NewHub())
	return r
}

// wildcard origins cannot be combined with credentials
func allowsAll(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

// SetupRoutes is the single entry‐point that wires up every route group under /api/v1.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, hub *orderControllers.Hub) {
	api := r.Group("/api/v1")

	// 1️⃣ Token checks used by the storefront's route guards
	SetupAuthRoutes(api, cfg)

	// 2️⃣ Catalogue: categories and products
	SetupCategoryRoutes(api, db, cfg)
	SetupProductRoutes(api, db, cfg)

	// 3️⃣ Signed-in user: profile and cart
	SetupUserRoutes(api, db, cfg, hub)

	// 4️⃣ Orders and the admin live feed
	SetupOrderRoutes(api, db, cfg, hub)
}
