package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/raheelanjum786/carvercraft-sub001/controllers/order"
	"github.com/raheelanjum786/carvercraft-sub001/middleware"
)

// SetupOrderRoutes registers the /api/productOrder endpoints.
func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB) {
	orders := api.Group("/productOrder")
	orders.Use(middleware.RequireAuth(db))
	{
		orders.POST("", orderControllers.CreateOrders(db))
		orders.GET("/my", orderControllers.GetMyOrders(db))
		orders.GET("/:id", orderControllers.GetOrderByID(db))
		orders.PUT("/:id/cancel", orderControllers.CancelOrder(db))

		// Live feed of newly placed orders for the admin dashboard.
		orders.GET("/ws", orderControllers.OrderFeedHandler)
	}

	adminOrders := api.Group("/productOrder")
	adminOrders.Use(middleware.RequireAdmin(db))
	{
		adminOrders.GET("", orderControllers.GetAllOrders(db))
		adminOrders.PUT("/:id/status", orderControllers.UpdateOrderStatus(db))
		adminOrders.DELETE("/:id", orderControllers.DeleteOrder(db))
	}
}
