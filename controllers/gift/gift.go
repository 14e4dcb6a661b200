package giftControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/raheelanjum786/carvercraft-sub001/models"
	"github.com/raheelanjum786/carvercraft-sub001/uploads"
)

// POST /api/gifts (admin, multipart)
func CreateGift(db *gorm.DB) gin.HandlerFunc {
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

		stock := 0
		if stockStr := c.PostForm("stock"); stockStr != "" {
			if stock, err = strconv.Atoi(stockStr); err != nil || stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock"})
				return
			}
		}

		imageURL := ""
		if file, err := c.FormFile("image"); err == nil {
			url, err := uploads.SaveImage(c, file, "gifts")
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			imageURL = url
		}

		gift := models.Gift{
			Name:        name,
			Description: c.PostForm("description"),
			Price:       price,
			Image:       imageURL,
			Stock:       stock,
		}
		if err := db.Create(&gift).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create gift"})
			return
		}

		c.JSON(http.StatusCreated, gift)
	}
}

// GET /api/gifts
func GetAllGifts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var gifts []models.Gift
		if err := db.Order("name ASC").Find(&gifts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch gifts"})
			return
		}

		c.JSON(http.StatusOK, gifts)
	}
}

// PUT /api/gifts/:id (admin, multipart)
func UpdateGift(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var gift models.Gift
		if err := db.First(&gift, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Gift not found"})
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
		if stockStr := c.PostForm("stock"); stockStr != "" {
			stock, err := strconv.Atoi(stockStr)
			if err != nil || stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock"})
				return
			}
			updates["stock"] = stock
		}

		if file, err := c.FormFile("image"); err == nil {
			url, err := uploads.SaveImage(c, file, "gifts")
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if gift.Image != "" {
				_ = uploads.Remove(gift.Image)
			}
			updates["image"] = url
		}

		if len(updates) > 0 {
			if err := db.Model(&gift).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update gift"})
				return
			}
		}

		c.JSON(http.StatusOK, gift)
	}
}

// DELETE /api/gifts/:id (admin)
func DeleteGift(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Gift{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete gift"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Gift not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Gift deleted"})
	}
}
