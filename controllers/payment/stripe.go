package paymentControllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/raheelanjum786/carvercraft-sub001/middleware"
	"github.com/raheelanjum786/carvercraft-sub001/models"
)

type CreateIntentInput struct {
	OrderRef string `json:"order_ref" binding:"required"`
}

// webhookEvent is the gateway event envelope.
type webhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string `json:"id"`
			Amount   int64  `json:"amount"`
			Metadata struct {
				OrderRef string `json:"order_ref"`
			} `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// POST /api/stripe/intent
//
// The amount always comes from the stored order total, never from the
// request body.
func CreateIntentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input CreateIntentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var order models.Order
		if err := db.Where("order_ref = ?", input.OrderRef).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if order.UserID != userID && !middleware.IsAdmin(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not your order"})
			return
		}
		if order.PaymentStatus == models.PaymentStatusPaid {
			c.JSON(http.StatusConflict, gin.H{"error": "Order is already paid"})
			return
		}

		currency := os.Getenv("STRIPE_CURRENCY")
		if currency == "" {
			currency = "usd"
		}

		intent, err := CreatePaymentIntent(order.Total, currency, order.OrderRef, "order-"+order.OrderRef)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		if err := db.Model(&order).Update("payment_ref", intent.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store payment reference"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"client_secret": intent.ClientSecret,
			"payment_ref":   intent.ID,
		})
	}
}

// POST /api/stripe/webhook (signature verified by middleware)
//
// payment_intent.succeeded marks the order paid and records one Sale row per
// order product. Event ids are persisted so replays are no-ops.
func WebhookHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var event webhookEvent
		if err := json.NewDecoder(c.Request.Body).Decode(&event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse webhook payload"})
			return
		}
		if event.ID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing event id"})
			return
		}

		var seen models.WebhookEvent
		if err := db.First(&seen, "event_id = ?", event.ID).Error; err == nil {
			c.JSON(http.StatusOK, gin.H{"message": "Event already processed"})
			return
		}

		if event.Type != "payment_intent.succeeded" {
			// Record and ignore everything else.
			_ = db.Create(&models.WebhookEvent{
				EventID:     event.ID,
				EventType:   event.Type,
				ProcessedAt: time.Now(),
			}).Error
			c.JSON(http.StatusOK, gin.H{"message": "Event ignored"})
			return
		}

		orderRef := event.Data.Object.Metadata.OrderRef
		if orderRef == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing order_ref metadata"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			var order models.Order
			if err := tx.Preload("Products").Where("order_ref = ?", orderRef).First(&order).Error; err != nil {
				return err
			}

			if err := tx.Model(&order).Updates(map[string]interface{}{
				"payment_status": models.PaymentStatusPaid,
				"status":         models.OrderStatusProcessing,
				"payment_ref":    event.Data.Object.ID,
			}).Error; err != nil {
				return err
			}

			for _, op := range order.Products {
				sale := models.Sale{
					Amount:     op.UnitPrice * float64(op.Quantity),
					Source:     "stripe",
					CustomerID: order.UserID,
					ProductID:  op.ProductID,
					Quantity:   op.Quantity,
					SoldAt:     time.Now(),
				}
				if err := tx.Create(&sale).Error; err != nil {
					return err
				}
			}

			return tx.Create(&models.WebhookEvent{
				EventID:     event.ID,
				EventType:   event.Type,
				ProcessedAt: time.Now(),
			}).Error
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found for event"})
				return
			}
			log.Printf("webhook processing failed for event %s: %v", event.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process event"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order marked as paid"})
	}
}
