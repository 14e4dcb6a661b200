package salesControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/raheelanjum786/carvercraft-sub001/models"
)

type SaleInput struct {
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Source     string  `json:"source" binding:"required"`
	CustomerID uint    `json:"customer_id"`
	ProductID  uint    `json:"product_id"`
	Quantity   int     `json:"quantity"`
	SoldAt     string  `json:"sold_at"` // YYYY-MM-DD, defaults to now
}

// POST /api/sales (admin, manual entry; the payment webhook writes its own
// rows)
func CreateSale(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SaleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		soldAt := time.Now()
		if input.SoldAt != "" {
			t, err := time.Parse("2006-01-02", input.SoldAt)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "sold_at must be YYYY-MM-DD"})
				return
			}
			soldAt = t
		}

		sale := models.Sale{
			Amount:     input.Amount,
			Source:     input.Source,
			CustomerID: input.CustomerID,
			ProductID:  input.ProductID,
			Quantity:   input.Quantity,
			SoldAt:     soldAt,
		}
		if err := db.Create(&sale).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record sale"})
			return
		}

		c.JSON(http.StatusCreated, sale)
	}
}

// GET /api/sales (admin)
func GetAllSales(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("sold_at DESC")
		if source := c.Query("source"); source != "" {
			query = query.Where("source = ?", source)
		}

		var sales []models.Sale
		if err := query.Find(&sales).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
			return
		}

		c.JSON(http.StatusOK, sales)
	}
}

// DELETE /api/sales/:id (admin)
func DeleteSale(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Sale{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sale"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Sale deleted"})
	}
}

type monthBucket struct {
	Month    string             `json:"month"`
	Total    float64            `json:"total"`
	BySource map[string]float64 `json:"by_source"`
}

type topProduct struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

// GET /api/sales/overview (admin)
//
// Aggregates the trailing 6 calendar months (current month included): total
// revenue, per-month per-source buckets, unique-customer count (dedup by
// customer id) and the top 5 products by summed quantity. Sale rows in the
// window are pulled into memory in one pass; the shop's data volume is
// small.
func GetSalesOverview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		windowStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -5, 0)

		var sales []models.Sale
		if err := db.Where("sold_at >= ?", windowStart).Find(&sales).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
			return
		}

		// Fixed 6 buckets, oldest first, so empty months still show up.
		months := make([]monthBucket, 6)
		bucketIndex := make(map[string]int, 6)
		for i := 0; i < 6; i++ {
			label := windowStart.AddDate(0, i, 0).Format("Jan 2006")
			months[i] = monthBucket{Month: label, BySource: make(map[string]float64)}
			bucketIndex[label] = i
		}

		total := 0.0
		customers := make(map[uint]struct{})
		for _, s := range sales {
			total += s.Amount
			if s.CustomerID != 0 {
				customers[s.CustomerID] = struct{}{}
			}
			if i, ok := bucketIndex[s.SoldAt.Format("Jan 2006")]; ok {
				months[i].Total += s.Amount
				months[i].BySource[s.Source] += s.Amount
			}
		}

		// Top products: group-by in the database, then one product lookup
		// per row.
		var rows []struct {
			ProductID uint
			Quantity  int
		}
		if err := db.Model(&models.Sale{}).
			Select("product_id, SUM(quantity) AS quantity").
			Where("sold_at >= ? AND product_id <> 0", windowStart).
			Group("product_id").
			Order("quantity DESC").
			Limit(5).
			Scan(&rows).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate products"})
			return
		}

		topProducts := make([]topProduct, 0, len(rows))
		for _, row := range rows {
			entry := topProduct{ProductID: row.ProductID, Quantity: row.Quantity}
			var product models.Product
			if err := db.First(&product, row.ProductID).Error; err == nil {
				entry.Name = product.Name
			}
			topProducts = append(topProducts, entry)
		}

		c.JSON(http.StatusOK, gin.H{
			"total":            total,
			"unique_customers": len(customers),
			"months":           months,
			"top_products":     topProducts,
		})
	}
}
