package newsletterControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/raheelanjum786/carvercraft-sub001/mailer"
	"github.com/raheelanjum786/carvercraft-sub001/models"
)

type SubscribeInput struct {
	Email string `json:"email" binding:"required,email"`
}

type SendInput struct {
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// POST /api/newsletter/subscribe
func Subscribe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SubscribeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var subscriber models.Subscriber
		result := db.Where(models.Subscriber{Email: input.Email}).FirstOrCreate(&subscriber)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusOK, gin.H{"message": "Already subscribed"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Subscribed"})
	}
}

// POST /api/newsletter/unsubscribe
func Unsubscribe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SubscribeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		result := db.Where("email = ?", input.Email).Delete(&models.Subscriber{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unsubscribe"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Email is not subscribed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Unsubscribed"})
	}
}

// GET /api/newsletter/subscribers (admin)
func GetSubscribers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var subscribers []models.Subscriber
		if err := db.Order("created_at DESC").Find(&subscribers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscribers"})
			return
		}

		c.JSON(http.StatusOK, subscribers)
	}
}

// POST /api/newsletter/send (admin)
//
// Sends the newsletter to every subscriber and records a log row with the
// sent/failed counts.
func SendNewsletter(db *gorm.DB, m *mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SendInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var subscribers []models.Subscriber
		if err := db.Find(&subscribers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscribers"})
			return
		}
		if len(subscribers) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No subscribers"})
			return
		}

		recipients := make([]string, len(subscribers))
		for i, s := range subscribers {
			recipients[i] = s.Email
		}

		sent, failed := m.SendNewsletter(input.Subject, input.Body, recipients)

		logEntry := models.NewsletterLog{
			Subject:    input.Subject,
			Body:       input.Body,
			Recipients: sent,
			Failed:     failed,
			SentAt:     time.Now(),
		}
		if err := db.Create(&logEntry).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Newsletter sent but logging failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Newsletter sent",
			"sent":    sent,
			"failed":  failed,
		})
	}
}

// GET /api/newsletter/logs (admin)
func GetNewsletterLogs(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var logs []models.NewsletterLog
		if err := db.Order("sent_at DESC").Find(&logs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch logs"})
			return
		}

		c.JSON(http.StatusOK, logs)
	}
}
