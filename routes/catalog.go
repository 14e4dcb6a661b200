package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	categoryControllers "github.com/raheelanjum786/carvercraft-sub001/controllers/category"
	giftControllers "github.com/raheelanjum786/carvercraft-sub001/controllers/gift"
	productControllers "github.com/raheelanjum786/carvercraft-sub001/controllers/product"
	"github.com/raheelanjum786/carvercraft-sub001/middleware"
)

// SetupCatalogRoutes registers categories, products and gifts. Reads are
// public, mutations are admin-gated.
func SetupCatalogRoutes(api *gin.RouterGroup, db *gorm.DB) {
	categories := api.Group("/categories")
	{
		categories.GET("", categoryControllers.GetAllCategories(db))
		categories.GET("/:id", categoryControllers.GetCategory(db))

		admin := categories.Group("")
		admin.Use(middleware.RequireAdmin(db))
		{
			admin.POST("", categoryControllers.CreateCategory(db))
			admin.PUT("/:id", categoryControllers.UpdateCategory(db))
			admin.DELETE("/:id", categoryControllers.DeleteCategory(db))
		}
	}

	products := api.Group("/products")
	{
		products.GET("", productControllers.GetProducts(db))
		products.GET("/:id", productControllers.GetProductByID(db))

		admin := products.Group("")
		admin.Use(middleware.RequireAdmin(db))
		{
			admin.POST("", productControllers.CreateProduct(db))
			admin.PUT("/:id", productControllers.UpdateProduct(db))
			admin.DELETE("/:id", productControllers.DeleteProduct(db))
			admin.GET("/export-excel", productControllers.ExportProductsToExcel(db))
		}
	}

	gifts := api.Group("/gifts")
	{
		gifts.GET("", giftControllers.GetAllGifts(db))

		admin := gifts.Group("")
		admin.Use(middleware.RequireAdmin(db))
		{
			admin.POST("", giftControllers.CreateGift(db))
			admin.PUT("/:id", giftControllers.UpdateGift(db))
			admin.DELETE("/:id", giftControllers.DeleteGift(db))
		}
	}
}
