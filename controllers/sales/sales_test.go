package salesControllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/raheelanjum786/carvercraft-sub001/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newSalesRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/sales/overview", GetSalesOverview(db))
	return r
}

type overviewResponse struct {
	Total           float64 `json:"total"`
	UniqueCustomers int     `json:"unique_customers"`
	Months          []struct {
		Month    string             `json:"month"`
		Total    float64            `json:"total"`
		BySource map[string]float64 `json:"by_source"`
	} `json:"months"`
	TopProducts []struct {
		ProductID uint   `json:"product_id"`
		Name      string `json:"name"`
		Quantity  int    `json:"quantity"`
	} `json:"top_products"`
}

func TestSalesOverview(t *testing.T) {
	db := setupTestDB(t)

	boxes := models.Product{Name: "Gift box", Price: 12, Stock: 100}
	frames := models.Product{Name: "Photo frame", Price: 20, Stock: 100}
	require.NoError(t, db.Create(&boxes).Error)
	require.NoError(t, db.Create(&frames).Error)

	now := time.Now()
	// Anchor on the first of the month so AddDate never skips a month.
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 12, 0, 0, 0, now.Location())
	lastMonth := firstOfMonth.AddDate(0, -1, 0)
	outside := firstOfMonth.AddDate(0, -8, 0)

	seed := []models.Sale{
		{Amount: 100, Source: "stripe", CustomerID: 1, ProductID: boxes.ID, Quantity: 3, SoldAt: now},
		{Amount: 50, Source: "stripe", CustomerID: 1, ProductID: boxes.ID, Quantity: 2, SoldAt: now},
		{Amount: 75, Source: "manual", CustomerID: 2, ProductID: frames.ID, Quantity: 4, SoldAt: lastMonth},
		{Amount: 25, Source: "manual", SoldAt: lastMonth}, // walk-in, no customer or product
		{Amount: 999, Source: "stripe", CustomerID: 3, ProductID: frames.ID, Quantity: 9, SoldAt: outside},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sales/overview", nil)
	newSalesRouter(db).ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp overviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// The sale 8 months back falls outside the 6-month window.
	assert.InDelta(t, 250, resp.Total, 0.001)
	assert.Equal(t, 2, resp.UniqueCustomers, "repeat customer counted once, walk-in not counted")

	require.Len(t, resp.Months, 6)
	current := resp.Months[5]
	assert.Equal(t, now.Format("Jan 2006"), current.Month)
	assert.InDelta(t, 150, current.Total, 0.001)
	assert.InDelta(t, 150, current.BySource["stripe"], 0.001)

	previous := resp.Months[4]
	assert.InDelta(t, 100, previous.Total, 0.001)
	assert.InDelta(t, 100, previous.BySource["manual"], 0.001)

	// Ranked by summed quantity inside the window: 5 boxes vs 4 frames.
	require.Len(t, resp.TopProducts, 2)
	assert.Equal(t, boxes.ID, resp.TopProducts[0].ProductID)
	assert.Equal(t, 5, resp.TopProducts[0].Quantity)
	assert.Equal(t, "Gift box", resp.TopProducts[0].Name)
	assert.Equal(t, frames.ID, resp.TopProducts[1].ProductID)
	assert.Equal(t, 4, resp.TopProducts[1].Quantity)
}

func TestCreateSaleParsesSoldAt(t *testing.T) {
	db := setupTestDB(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/sales", CreateSale(db))

	body := `{"amount": 42.5, "source": "manual", "sold_at": "2026-03-15"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var sale models.Sale
	require.NoError(t, db.First(&sale).Error)
	assert.Equal(t, "2026-03-15", sale.SoldAt.Format("2006-01-02"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(`{"amount": 1, "source": "manual", "sold_at": "15/03/2026"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
