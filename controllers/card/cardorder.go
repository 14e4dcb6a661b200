package cardControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/raheelanjum786/carvercraft-sub001/middleware"
	"github.com/raheelanjum786/carvercraft-sub001/models"
	"github.com/raheelanjum786/carvercraft-sub001/uploads"
)

func mapCardOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusProcessing):
		return models.OrderStatusProcessing, nil
	case string(models.OrderStatusShipped):
		return models.OrderStatusShipped, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// POST /api/cardOrders (multipart: card_type_id, quantity, customer fields,
// design file)
func CreateCardOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		cardTypeID, err := strconv.ParseUint(c.PostForm("card_type_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card_type_id"})
			return
		}
		quantity, err := strconv.Atoi(c.PostForm("quantity"))
		if err != nil || quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
			return
		}

		var cardType models.CardType
		if err := db.First(&cardType, cardTypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Card type does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		file, err := c.FormFile("design")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Design file is required"})
			return
		}
		designURL, err := uploads.SaveImage(c, file, "designs")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order := models.CardOrder{
			UserID:          userID,
			CardTypeID:      cardType.ID,
			DesignImage:     designURL,
			Quantity:        quantity,
			Total:           cardType.Price * float64(quantity),
			CustomerName:    c.PostForm("customer_name"),
			CustomerEmail:   c.PostForm("customer_email"),
			CustomerPhone:   c.PostForm("customer_phone"),
			CustomerAddress: c.PostForm("customer_address"),
			Status:          models.OrderStatusPending,
		}
		if err := db.Create(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create card order"})
			return
		}

		c.JSON(http.StatusCreated, order)
	}
}

// GET /api/cardOrders/my
func GetMyCardOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var orders []models.CardOrder
		if err := db.
			Where("user_id = ?", userID).
			Preload("CardType").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch card orders"})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/cardOrders?status= (admin)
func GetAllCardOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("CardType").Order("created_at DESC")

		if status := c.Query("status"); status != "" {
			mapped, err := mapCardOrderStatus(status)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			query = query.Where("status = ?", mapped)
		}

		var orders []models.CardOrder
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch card orders"})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

// PUT /api/cardOrders/:id/status (admin)
func UpdateCardOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		newStatus, err := mapCardOrderStatus(input.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result := db.Model(&models.CardOrder{}).Where("id = ?", c.Param("id")).Update("status", newStatus)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update card order"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Card order status updated"})
	}
}

// DELETE /api/cardOrders/:id (admin)
func DeleteCardOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.CardOrder
		if err := db.First(&order, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Card order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		if err := db.Delete(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete card order"})
			return
		}
		if order.DesignImage != "" {
			_ = uploads.Remove(order.DesignImage)
		}

		c.JSON(http.StatusOK, gin.H{"message": "Card order deleted"})
	}
}
