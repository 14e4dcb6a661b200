package expenseControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/raheelanjum786/carvercraft-sub001/models"
)

type ExpenseInput struct {
	Title    string  `json:"title" binding:"required"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Note     string  `json:"note"`
	SpentAt  string  `json:"spent_at"` // YYYY-MM-DD, defaults to today
}

func parseSpentAt(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", s)
}

// POST /api/expenses (admin)
func CreateExpense(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ExpenseInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		spentAt, err := parseSpentAt(input.SpentAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "spent_at must be YYYY-MM-DD"})
			return
		}

		expense := models.Expense{
			Title:    input.Title,
			Category: input.Category,
			Amount:   input.Amount,
			Note:     input.Note,
			SpentAt:  spentAt,
		}
		if err := db.Create(&expense).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expense"})
			return
		}

		c.JSON(http.StatusCreated, expense)
	}
}

// GET /api/expenses?from=&to=&category= (admin)
func GetAllExpenses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("spent_at DESC")

		if from := c.Query("from"); from != "" {
			t, err := time.Parse("2006-01-02", from)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
				return
			}
			query = query.Where("spent_at >= ?", t)
		}
		if to := c.Query("to"); to != "" {
			t, err := time.Parse("2006-01-02", to)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
				return
			}
			query = query.Where("spent_at < ?", t.AddDate(0, 0, 1))
		}
		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}

		var expenses []models.Expense
		if err := query.Find(&expenses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expenses"})
			return
		}

		c.JSON(http.StatusOK, expenses)
	}
}

// PUT /api/expenses/:id (admin)
func UpdateExpense(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var expense models.Expense
		if err := db.First(&expense, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		var input ExpenseInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		spentAt, err := parseSpentAt(input.SpentAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "spent_at must be YYYY-MM-DD"})
			return
		}

		updates := map[string]interface{}{
			"title":    input.Title,
			"category": input.Category,
			"amount":   input.Amount,
			"note":     input.Note,
			"spent_at": spentAt,
		}
		if err := db.Model(&expense).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update expense"})
			return
		}

		c.JSON(http.StatusOK, expense)
	}
}

// DELETE /api/expenses/:id (admin)
func DeleteExpense(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Expense{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
	}
}

// GET /api/expenses/summary (admin)
//
// Trailing 6-month window, totals per month and per category, computed in
// memory over the fetched rows.
func GetExpenseSummary(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		windowStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -5, 0)

		var expenses []models.Expense
		if err := db.Where("spent_at >= ?", windowStart).Find(&expenses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expenses"})
			return
		}

		total := 0.0
		byMonth := make(map[string]float64)
		byCategory := make(map[string]float64)
		for _, e := range expenses {
			total += e.Amount
			byMonth[e.SpentAt.Format("Jan 2006")] += e.Amount
			category := e.Category
			if category == "" {
				category = "uncategorized"
			}
			byCategory[category] += e.Amount
		}

		c.JSON(http.StatusOK, gin.H{
			"total":       total,
			"by_month":    byMonth,
			"by_category": byCategory,
		})
	}
}

// GET /api/expenses/export-excel (admin)
func ExportExpensesToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var expenses []models.Expense
		if err := db.Order("spent_at DESC").Find(&expenses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expenses"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Expenses")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{"ID", "Title", "Category", "Amount", "Note", "SpentAt"}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, e := range expenses {
			row := sheet.AddRow()
			row.AddCell().SetValue(e.ID)
			row.AddCell().SetValue(e.Title)
			row.AddCell().SetValue(e.Category)
			row.AddCell().SetValue(e.Amount)
			row.AddCell().SetValue(e.Note)
			row.AddCell().SetValue(e.SpentAt.Format("2006-01-02"))
		}

		c.Header("Content-Disposition", "attachment; filename=expenses.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
