package cardControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/raheelanjum786/carvercraft-sub001/models"
	"github.com/raheelanjum786/carvercraft-sub001/uploads"
)

// POST /api/cardTypes (admin, multipart)
func CreateCardType(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		priceStr := c.PostForm("price")
		if name == "" || priceStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and price are required"})
			return
		}
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}

		imageURL := ""
		if file, err := c.FormFile("image"); err == nil {
			url, err := uploads.SaveImage(c, file, "cardtypes")
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			imageURL = url
		}

		cardType := models.CardType{
			Name:        name,
			Description: c.PostForm("description"),
			Price:       price,
			Image:       imageURL,
		}
		if err := db.Create(&cardType).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create card type"})
			return
		}

		c.JSON(http.StatusCreated, cardType)
	}
}

// GET /api/cardTypes
func GetAllCardTypes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cardTypes []models.CardType
		if err := db.Order("name ASC").Find(&cardTypes).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch card types"})
			return
		}

		c.JSON(http.StatusOK, cardTypes)
	}
}

// PUT /api/cardTypes/:id (admin, multipart)
func UpdateCardType(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cardType models.CardType
		if err := db.First(&cardType, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Card type not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		updates := make(map[string]interface{})
		if name := c.PostForm("name"); name != "" {
			updates["name"] = name
		}
		if description := c.PostForm("description"); description != "" {
			updates["description"] = description
		}
		if priceStr := c.PostForm("price"); priceStr != "" {
			price, err := strconv.ParseFloat(priceStr, 64)
			if err != nil || price < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
				return
			}
			updates["price"] = price
		}

		if file, err := c.FormFile("image"); err == nil {
			url, err := uploads.SaveImage(c, file, "cardtypes")
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if cardType.Image != "" {
				_ = uploads.Remove(cardType.Image)
			}
			updates["image"] = url
		}

		if len(updates) > 0 {
			if err := db.Model(&cardType).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update card type"})
				return
			}
		}

		c.JSON(http.StatusOK, cardType)
	}
}

// DELETE /api/cardTypes/:id (admin). Rejected while card orders still
// reference the type.
func DeleteCardType(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var orderCount int64
		if err := db.Model(&models.CardOrder{}).Where("card_type_id = ?", id).Count(&orderCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if orderCount > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Card type has associated orders and cannot be deleted"})
			return
		}

		result := db.Delete(&models.CardType{}, "id = ?", id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete card type"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card type not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Card type deleted"})
	}
}
