package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	paymentControllers "github.com/raheelanjum786/carvercraft-sub001/controllers/payment"
	"github.com/raheelanjum786/carvercraft-sub001/middleware"
)

// SetupPaymentRoutes registers the /api/stripe endpoints.
func SetupPaymentRoutes(api *gin.RouterGroup, db *gorm.DB) {
	payment := api.Group("/stripe")
	{
		payment.POST("/intent",
			middleware.RequireAuth(db),
			paymentControllers.CreateIntentHandler(db),
		)

		// Signature verification happens in the middleware; the handler
		// assumes a trusted payload.
		payment.POST("/webhook",
			middleware.StripeWebhookAuth(),
			paymentControllers.WebhookHandler(db),
		)
	}
}
