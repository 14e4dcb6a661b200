package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cardControllers "github.com/raheelanjum786/carvercraft-sub001/controllers/card"
	"github.com/raheelanjum786/carvercraft-sub001/middleware"
)

// SetupCardRoutes registers card types and custom card orders.
func SetupCardRoutes(api *gin.RouterGroup, db *gorm.DB) {
	cardTypes := api.Group("/cardTypes")
	{
		cardTypes.GET("", cardControllers.GetAllCardTypes(db))

		admin := cardTypes.Group("")
		admin.Use(middleware.RequireAdmin(db))
		{
			admin.POST("", cardControllers.CreateCardType(db))
			admin.PUT("/:id", cardControllers.UpdateCardType(db))
			admin.DELETE("/:id", cardControllers.DeleteCardType(db))
		}
	}

	cardOrders := api.Group("/cardOrders")
	cardOrders.Use(middleware.RequireAuth(db))
	{
		cardOrders.POST("", cardControllers.CreateCardOrder(db))
		cardOrders.GET("/my", cardControllers.GetMyCardOrders(db))
	}

	adminCardOrders := api.Group("/cardOrders")
	adminCardOrders.Use(middleware.RequireAdmin(db))
	{
		adminCardOrders.GET("", cardControllers.GetAllCardOrders(db))
		adminCardOrders.PUT("/:id/status", cardControllers.UpdateCardOrderStatus(db))
		adminCardOrders.DELETE("/:id", cardControllers.DeleteCardOrder(db))
	}
}
