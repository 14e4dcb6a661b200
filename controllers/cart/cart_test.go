package cartControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

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

func newCartRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("user_role", "user")
	})
	r.POST("/cart", AddToCart(db))
	r.GET("/cart", GetCart(db))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddToCartCreatesThenIncrements(t *testing.T) {
	db := setupTestDB(t)
	user := models.User{Name: "Amna", Email: "amna@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	product := models.Product{Name: "Walnut box", Price: 45, Stock: 10}
	require.NoError(t, db.Create(&product).Error)

	r := newCartRouter(db, user.ID)
	payload := gin.H{"product_id": product.ID, "quantity": 2}

	w := postJSON(t, r, "/cart", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Same product again: quantity increments, no second row.
	w = postJSON(t, r, "/cart", payload)
	assert.Equal(t, http.StatusOK, w.Code)

	var items []models.CartItem
	require.NoError(t, db.Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)

	var cartCount int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&cartCount).Error)
	assert.Equal(t, int64(1), cartCount, "one cart per user")
}

func TestAddToCartInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	user := models.User{Name: "Bilal", Email: "bilal@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	product := models.Product{Name: "Oak frame", Price: 30, Stock: 3}
	require.NoError(t, db.Create(&product).Error)

	r := newCartRouter(db, user.ID)

	w := postJSON(t, r, "/cart", gin.H{"product_id": product.ID, "quantity": 5})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Cart must not have been mutated.
	var itemCount int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&itemCount).Error)
	assert.Equal(t, int64(0), itemCount)
}

func TestAddToCartIncrementRespectsStock(t *testing.T) {
	db := setupTestDB(t)
	user := models.User{Name: "Dania", Email: "dania@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	product := models.Product{Name: "Pine coaster", Price: 8, Stock: 3}
	require.NoError(t, db.Create(&product).Error)

	r := newCartRouter(db, user.ID)

	w := postJSON(t, r, "/cart", gin.H{"product_id": product.ID, "quantity": 2})
	require.Equal(t, http.StatusCreated, w.Code)

	// 2 already in cart, 2 more would exceed the 3 in stock.
	w = postJSON(t, r, "/cart", gin.H{"product_id": product.ID, "quantity": 2})
	assert.Equal(t, http.StatusConflict, w.Code)

	var item models.CartItem
	require.NoError(t, db.First(&item).Error)
	assert.Equal(t, 2, item.Quantity)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	user := models.User{Name: "Eman", Email: "eman@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	r := newCartRouter(db, user.ID)

	w := postJSON(t, r, "/cart", gin.H{"product_id": 999, "quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddToCartRequiresExactlyOneReference(t *testing.T) {
	db := setupTestDB(t)
	user := models.User{Name: "Fahad", Email: "fahad@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	r := newCartRouter(db, user.ID)

	w := postJSON(t, r, "/cart", gin.H{"quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, r, "/cart", gin.H{"product_id": 1, "gift_id": 1, "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddGiftToCart(t *testing.T) {
	db := setupTestDB(t)
	user := models.User{Name: "Hira", Email: "hira@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	gift := models.Gift{Name: "Ribbon wrap", Price: 5, Stock: 20}
	require.NoError(t, db.Create(&gift).Error)

	r := newCartRouter(db, user.ID)

	w := postJSON(t, r, "/cart", gin.H{"gift_id": gift.ID, "quantity": 3})
	assert.Equal(t, http.StatusCreated, w.Code)

	var item models.CartItem
	require.NoError(t, db.First(&item).Error)
	require.NotNil(t, item.GiftID)
	assert.Equal(t, gift.ID, *item.GiftID)
	assert.Nil(t, item.ProductID)
}
