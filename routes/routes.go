package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/raheelanjum786/carvercraft-sub001/mailer"
)

// SetupRoutes is the single entry-point wiring every route group under /api.
func SetupRoutes(r *gin.Engine, db *gorm.DB, m *mailer.Mailer) {
	api := r.Group("/api")

	SetupUserRoutes(api, db, m)
	SetupCatalogRoutes(api, db)
	SetupCartRoutes(api, db)
	SetupOrderRoutes(api, db)
	SetupCardRoutes(api, db)
	SetupFinanceRoutes(api, db)
	SetupNewsletterRoutes(api, db, m)
	SetupPaymentRoutes(api, db)
}
