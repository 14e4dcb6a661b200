package employerControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/raheelanjum786/carvercraft-sub001/models"
)

type EmployerInput struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Phone    string  `json:"phone"`
	Position string  `json:"position"`
	Salary   float64 `json:"salary"`
	HiredAt  string  `json:"hired_at"` // YYYY-MM-DD
}

// POST /api/employers (admin)
func CreateEmployer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input EmployerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		hiredAt := time.Now()
		if input.HiredAt != "" {
			t, err := time.Parse("2006-01-02", input.HiredAt)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "hired_at must be YYYY-MM-DD"})
				return
			}
			hiredAt = t
		}

		employer := models.Employer{
			Name:     input.Name,
			Email:    input.Email,
			Phone:    input.Phone,
			Position: input.Position,
			Salary:   input.Salary,
			HiredAt:  hiredAt,
		}
		if err := db.Create(&employer).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create employer"})
			return
		}

		c.JSON(http.StatusCreated, employer)
	}
}

// GET /api/employers (admin)
func GetAllEmployers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var employers []models.Employer
		if err := db.Order("name ASC").Find(&employers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch employers"})
			return
		}

		c.JSON(http.StatusOK, employers)
	}
}

// PUT /api/employers/:id (admin)
func UpdateEmployer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var employer models.Employer
		if err := db.First(&employer, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Employer not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		var input EmployerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updates := map[string]interface{}{
			"name":     input.Name,
			"email":    input.Email,
			"phone":    input.Phone,
			"position": input.Position,
			"salary":   input.Salary,
		}
		if input.HiredAt != "" {
			t, err := time.Parse("2006-01-02", input.HiredAt)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "hired_at must be YYYY-MM-DD"})
				return
			}
			updates["hired_at"] = t
		}

		if err := db.Model(&employer).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update employer"})
			return
		}

		c.JSON(http.StatusOK, employer)
	}
}

// DELETE /api/employers/:id (admin)
func DeleteEmployer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Employer{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete employer"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employer not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Employer deleted"})
	}
}
