package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/raheelanjum786/carvercraft-sub001/middleware"
	"github.com/raheelanjum786/carvercraft-sub001/models"
)

// OrderSpec is one entry of the order-creation payload. Each spec produces
// one Order with exactly one OrderProduct.
type OrderSpec struct {
	ProductID       uint   `json:"product_id" binding:"required"`
	Quantity        int    `json:"quantity" binding:"required,min=1"`
	CustomerName    string `json:"customer_name" binding:"required"`
	CustomerEmail   string `json:"customer_email" binding:"required,email"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerAddress string `json:"customer_address" binding:"required"`
}

type CreateOrdersInput struct {
	Orders []OrderSpec `json:"orders" binding:"required,min=1,dive"`
}

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

var errInsufficientStock = errors.New("insufficient stock")

func mapOrderStatus(status string) (models.OrderStatus, error) {
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

func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// lockForUpdate adds row locking on dialects that support it. The sqlite
// test database rejects FOR UPDATE.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// createOrder writes one order with its single order product atomically.
// The total is unit price x quantity from the server-side price, computed
// and persisted in the same transaction, so no zero-total order is ever
// visible. Stock is decremented under a row lock.
func createOrder(db *gorm.DB, userID uint, spec OrderSpec) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := lockForUpdate(tx).First(&product, spec.ProductID).Error; err != nil {
			return err
		}

		if product.Stock < spec.Quantity {
			return errInsufficientStock
		}
		product.Stock -= spec.Quantity
		if err := tx.Save(&product).Error; err != nil {
			return err
		}

		order = models.Order{
			OrderRef:        generateOrderRef(),
			UserID:          userID,
			CustomerName:    spec.CustomerName,
			CustomerEmail:   spec.CustomerEmail,
			CustomerPhone:   spec.CustomerPhone,
			CustomerAddress: spec.CustomerAddress,
			Total:           product.Price * float64(spec.Quantity),
			Status:          models.OrderStatusPending,
			PaymentStatus:   models.PaymentStatusPending,
			Products: []models.OrderProduct{{
				ProductID: product.ID,
				Quantity:  spec.Quantity,
				UnitPrice: product.Price,
			}},
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// POST /api/productOrder
func CreateOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input CreateOrdersInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		created := make([]models.Order, 0, len(input.Orders))
		for _, spec := range input.Orders {
			order, err := createOrder(db, userID, spec)
			if err != nil {
				resp := gin.H{"error": "Failed to create order", "created": created}
				switch {
				case errors.Is(err, errInsufficientStock):
					resp["error"] = "Insufficient stock"
					c.JSON(http.StatusConflict, resp)
				case errors.Is(err, gorm.ErrRecordNotFound):
					resp["error"] = "Product does not exist"
					c.JSON(http.StatusNotFound, resp)
				default:
					c.JSON(http.StatusInternalServerError, resp)
				}
				return
			}
			created = append(created, *order)
			broadcastNewOrder(*order)
		}

		c.JSON(http.StatusCreated, gin.H{"orders": created})
	}
}

// GET /api/productOrder?status=&search= (admin)
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Products.Product").Order("created_at DESC")

		if status := c.Query("status"); status != "" {
			mapped, err := mapOrderStatus(status)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			query = query.Where("status = ?", mapped)
		}
		if search := c.Query("search"); search != "" {
			pattern := "%" + strings.ToLower(search) + "%"
			query = query.Where(
				"LOWER(customer_name) LIKE ? OR LOWER(customer_email) LIKE ? OR order_ref LIKE ?",
				pattern, pattern, "%"+search+"%",
			)
		}

		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/productOrder/my
func GetMyOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Products.Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/productOrder/:id (numeric id or order ref; owners only unless admin)
func GetOrderByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id := c.Param("id")

		// The path accepts either a numeric id or an order ref.
		query := db.Preload("Products.Product")
		if _, err := strconv.Atoi(id); err == nil {
			query = query.Where("id = ?", id)
		} else {
			query = query.Where("order_ref = ?", id)
		}

		var order models.Order
		if err := query.First(&order).Error; err != nil {
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

		c.JSON(http.StatusOK, order)
	}
}

// PUT /api/productOrder/:id/status (admin)
func UpdateOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		newStatus, err := mapOrderStatus(input.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result := db.Model(&models.Order{}).Where("id = ?", c.Param("id")).Update("status", newStatus)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order status updated"})
	}
}

// PUT /api/productOrder/:id/cancel
//
// Owners may cancel their own pending orders. Admins may cancel any order
// that has not reached a terminal status. Stock is restored.
func CancelOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		admin := middleware.IsAdmin(c)

		var order models.Order
		if err := db.Preload("Products").First(&order, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		if order.UserID != userID && !admin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not your order"})
			return
		}
		if order.Status.Terminal() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order can no longer be cancelled"})
			return
		}
		if !admin && order.Status != models.OrderStatusPending {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only pending orders can be cancelled"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			for _, op := range order.Products {
				if err := tx.Model(&models.Product{}).
					Where("id = ?", op.ProductID).
					Update("stock", gorm.Expr("stock + ?", op.Quantity)).Error; err != nil {
					return err
				}
			}
			return tx.Model(&order).Update("status", models.OrderStatusCancelled).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order cancelled"})
	}
}

// DELETE /api/productOrder/:id (admin)
func DeleteOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("id")

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderProduct{}).Error; err != nil {
				return err
			}
			result := tx.Where("id = ?", orderID).Delete(&models.Order{})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
	}
}
