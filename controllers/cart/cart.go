package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/raheelanjum786/carvercraft-sub001/middleware"
	"github.com/raheelanjum786/carvercraft-sub001/models"
)

type AddItemInput struct {
	ProductID *uint `json:"product_id"`
	GiftID    *uint `json:"gift_id"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

type UpdateItemInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// POST /api/cart
//
// Adds a product or gift to the user's cart. Re-adding an item already in
// the cart increments its quantity instead of inserting a second row. Stock
// is checked but not reserved; it is decremented at order time.
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if (input.ProductID == nil) == (input.GiftID == nil) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Exactly one of product_id or gift_id is required"})
			return
		}

		// Resolve the catalog item and its current stock.
		var stock int
		if input.ProductID != nil {
			var product models.Product
			if err := db.First(&product, *input.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					c.JSON(http.StatusNotFound, gin.H{"error": "Product does not exist"})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
				return
			}
			stock = product.Stock
		} else {
			var gift models.Gift
			if err := db.First(&gift, *input.GiftID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					c.JSON(http.StatusNotFound, gin.H{"error": "Gift does not exist"})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate gift"})
				return
			}
			stock = gift.Stock
		}

		var item models.CartItem
		status := http.StatusOK

		err := db.Transaction(func(tx *gorm.DB) error {
			// One cart per user: unique index on user_id plus FirstOrCreate.
			var cart models.Cart
			if err := tx.Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error; err != nil {
				return err
			}

			lookup := tx.Where("cart_id = ?", cart.ID)
			if input.ProductID != nil {
				lookup = lookup.Where("product_id = ?", *input.ProductID)
			} else {
				lookup = lookup.Where("gift_id = ?", *input.GiftID)
			}

			err := lookup.First(&item).Error
			switch {
			case err == nil:
				newQuantity := item.Quantity + input.Quantity
				if stock < newQuantity {
					return errInsufficientStock
				}
				item.Quantity = newQuantity
				item.AddedAt = time.Now()
				return tx.Save(&item).Error
			case errors.Is(err, gorm.ErrRecordNotFound):
				if stock < input.Quantity {
					return errInsufficientStock
				}
				item = models.CartItem{
					CartID:    cart.ID,
					ProductID: input.ProductID,
					GiftID:    input.GiftID,
					Quantity:  input.Quantity,
					AddedAt:   time.Now(),
				}
				status = http.StatusCreated
				return tx.Create(&item).Error
			default:
				return err
			}
		})

		if err != nil {
			if errors.Is(err, errInsufficientStock) {
				c.JSON(http.StatusConflict, gin.H{"error": "Insufficient stock"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}

		c.JSON(status, item)
	}
}

var errInsufficientStock = errors.New("insufficient stock")

// GET /api/cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var cart models.Cart
		err := db.Preload("Items.Product").Preload("Items.Gift").
			Where("user_id = ?", userID).First(&cart).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Cart is created lazily on first add.
				c.JSON(http.StatusOK, gin.H{"items": []models.CartItem{}})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": cart.Items})
	}
}

// PUT /api/cart/:item_id (set quantity)
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input UpdateItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			return
		}

		var item models.CartItem
		if err := db.Where("id = ? AND cart_id = ?", c.Param("item_id"), cart.ID).First(&item).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		if item.ProductID != nil {
			var product models.Product
			if err := db.First(&product, *item.ProductID).Error; err == nil && product.Stock < input.Quantity {
				c.JSON(http.StatusConflict, gin.H{"error": "Insufficient stock"})
				return
			}
		} else if item.GiftID != nil {
			var gift models.Gift
			if err := db.First(&gift, *item.GiftID).Error; err == nil && gift.Stock < input.Quantity {
				c.JSON(http.StatusConflict, gin.H{"error": "Insufficient stock"})
				return
			}
		}

		item.Quantity = input.Quantity
		item.AddedAt = time.Now()
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}

		c.JSON(http.StatusOK, item)
	}
}

// DELETE /api/cart/:item_id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			return
		}

		result := db.Where("id = ? AND cart_id = ?", c.Param("item_id"), cart.ID).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /api/cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		if err := db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// GET /api/cart/user/:user_id (admin)
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cart models.Cart
		err := db.Preload("Items.Product").Preload("Items.Gift").
			Where("user_id = ?", c.Param("user_id")).First(&cart).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, gin.H{"items": []models.CartItem{}})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": cart.Items})
	}
}
