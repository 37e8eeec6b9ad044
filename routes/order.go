package routes

import (
	"github.com/fathy2028/shopeklopek/config"
	orderControllers "github.com/fathy2028/shopeklopek/controllers/order"
	"github.com/fathy2028/shopeklopek/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB, cfg *config.Config, hub *orderControllers.Hub) {
	orders := api.Group("/order")
	orders.Use(middleware.RequireSignIn(cfg.JWTSecret))
	{
		// Create a new order
		orders.POST("/create", orderControllers.CreateOrderHandler(db, hub))

		// Orders of the signed-in customer
		orders.GET("/user-orders", orderControllers.GetUserOrdersHandler(db))
		orders.DELETE("/user-order/:orderId", orderControllers.DeleteUserOrderHandler(db))

		// Fetch all orders (admin)
		orders.GET("/allorders", middleware.IsAdmin, orderControllers.GetAllOrdersHandler(db))

		// Update order status (e.g., Shipped, Delivered)
		orders.PUT("/update-status/:orderId", middleware.IsAdmin, orderControllers.UpdateOrderStatusHandler(db, hub))

		// Delete an order (admin)
		orders.DELETE("/delete-order/:orderId", middleware.IsAdmin, orderControllers.DeleteOrderHandler(db))

		// websocket endpoint for real-time order updates
		orders.GET("/ws", middleware.IsAdmin, hub.ServeWS)
	}
}
