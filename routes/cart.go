package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/raheelanjum786/carvercraft-sub001/controllers/cart"
	"github.com/raheelanjum786/carvercraft-sub001/middleware"
)

// SetupCartRoutes registers the /api/cart endpoints.
func SetupCartRoutes(api *gin.RouterGroup, db *gorm.DB) {
	cart := api.Group("/cart")
	cart.Use(middleware.RequireAuth(db))
	{
		cart.GET("", cartControllers.GetCart(db))
		cart.POST("", cartControllers.AddToCart(db))
		cart.PUT("/:item_id", cartControllers.UpdateCartItem(db))
		cart.DELETE("/:item_id", cartControllers.DeleteCartItem(db))
		cart.DELETE("", cartControllers.ClearCart(db))
	}

	adminCart := api.Group("/cart/user")
	adminCart.Use(middleware.RequireAdmin(db))
	{
		adminCart.GET("/:user_id", cartControllers.GetUserCart(db))
	}
}
