package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	newsletterControllers "github.com/raheelanjum786/carvercraft-sub001/controllers/newsletter"
	"github.com/raheelanjum786/carvercraft-sub001/mailer"
	"github.com/raheelanjum786/carvercraft-sub001/middleware"
)

// SetupNewsletterRoutes registers the /api/newsletter endpoints.
func SetupNewsletterRoutes(api *gin.RouterGroup, db *gorm.DB, m *mailer.Mailer) {
	newsletter := api.Group("/newsletter")
	{
		newsletter.POST("/subscribe", newsletterControllers.Subscribe(db))
		newsletter.POST("/unsubscribe", newsletterControllers.Unsubscribe(db))

		admin := newsletter.Group("")
		admin.Use(middleware.RequireAdmin(db))
		{
			admin.GET("/subscribers", newsletterControllers.GetSubscribers(db))
			admin.POST("/send", newsletterControllers.SendNewsletter(db, m))
			admin.GET("/logs", newsletterControllers.GetNewsletterLogs(db))
		}
	}
}
