package orderControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
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

func newOrderRouter(db *gorm.DB, userID uint, admin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	role := "user"
	if admin {
		role = "admin"
	}
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("user_role", role)
	})
	r.POST("/orders", CreateOrders(db))
	r.GET("/orders/:id", GetOrderByID(db))
	r.PUT("/orders/:id/cancel", CancelOrder(db))
	r.PUT("/orders/:id/status", UpdateOrderStatus(db))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Name: "Test", Email: email, Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func orderPayload(productID uint, quantity int) gin.H {
	return gin.H{"orders": []gin.H{{
		"product_id":       productID,
		"quantity":         quantity,
		"customer_name":    "Sana Tariq",
		"customer_email":   "sana@example.com",
		"customer_address": "12 Canal Road, Lahore",
	}}}
}

func TestCreateOrderComputesTotalAndDecrementsStock(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "buyer@example.com")
	product := models.Product{Name: "Engraved plaque", Price: 24.5, Stock: 10}
	require.NoError(t, db.Create(&product).Error)

	r := newOrderRouter(db, user.ID, false)
	w := doJSON(t, r, http.MethodPost, "/orders", orderPayload(product.ID, 3))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var order models.Order
	require.NoError(t, db.Preload("Products").First(&order).Error)
	assert.InDelta(t, 24.5*3, order.Total, 0.001)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.NotEmpty(t, order.OrderRef)
	require.Len(t, order.Products, 1)
	assert.Equal(t, 3, order.Products[0].Quantity)
	assert.InDelta(t, 24.5, order.Products[0].UnitPrice, 0.001)

	require.NoError(t, db.First(&product, product.ID).Error)
	assert.Equal(t, 7, product.Stock)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "buyer2@example.com")
	product := models.Product{Name: "Cedar sign", Price: 60, Stock: 1}
	require.NoError(t, db.Create(&product).Error)

	r := newOrderRouter(db, user.ID, false)
	w := doJSON(t, r, http.MethodPost, "/orders", orderPayload(product.ID, 2))
	assert.Equal(t, http.StatusConflict, w.Code)

	// No order row and stock untouched.
	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
	require.NoError(t, db.First(&product, product.ID).Error)
	assert.Equal(t, 1, product.Stock)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "buyer3@example.com")

	r := newOrderRouter(db, user.ID, false)
	w := doJSON(t, r, http.MethodPost, "/orders", orderPayload(42, 1))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetOrderByRefOwnership(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")
	product := models.Product{Name: "Maple tray", Price: 15, Stock: 5}
	require.NoError(t, db.Create(&product).Error)

	w := doJSON(t, newOrderRouter(db, owner.ID, false), http.MethodPost, "/orders", orderPayload(product.ID, 1))
	require.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	require.NoError(t, db.First(&order).Error)

	// Owner fetches by ref.
	w = doJSON(t, newOrderRouter(db, owner.ID, false), http.MethodGet, "/orders/"+order.OrderRef, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Another user is rejected, an admin is not.
	w = doJSON(t, newOrderRouter(db, other.ID, false), http.MethodGet, "/orders/"+order.OrderRef, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(t, newOrderRouter(db, other.ID, true), http.MethodGet, "/orders/"+order.OrderRef, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func seedOrder(t *testing.T, db *gorm.DB, userID uint, productID uint, qty int, status models.OrderStatus) models.Order {
	t.Helper()
	order := models.Order{
		OrderRef:        generateOrderRef(),
		UserID:          userID,
		CustomerName:    "Seeded",
		CustomerEmail:   "seeded@example.com",
		CustomerAddress: "somewhere",
		Total:           10,
		Status:          status,
		PaymentStatus:   models.PaymentStatusPending,
		Products:        []models.OrderProduct{{ProductID: productID, Quantity: qty, UnitPrice: 10}},
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func cancelPath(order models.Order) string {
	return "/orders/" + strconv.Itoa(int(order.ID)) + "/cancel"
}

func TestCancelOrderRestoresStock(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "cancel1@example.com")
	product := models.Product{Name: "Birch stand", Price: 10, Stock: 2}
	require.NoError(t, db.Create(&product).Error)
	order := seedOrder(t, db, owner.ID, product.ID, 3, models.OrderStatusPending)

	w := doJSON(t, newOrderRouter(db, owner.ID, false), http.MethodPut, cancelPath(order), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.First(&order, order.ID).Error)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)
	require.NoError(t, db.First(&product, product.ID).Error)
	assert.Equal(t, 5, product.Stock)
}

func TestCancelOrderPermissions(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "cancel2@example.com")
	stranger := seedUser(t, db, "cancel3@example.com")
	product := models.Product{Name: "Ash board", Price: 10, Stock: 5}
	require.NoError(t, db.Create(&product).Error)

	// Strangers cannot cancel someone else's order.
	pending := seedOrder(t, db, owner.ID, product.ID, 1, models.OrderStatusPending)
	w := doJSON(t, newOrderRouter(db, stranger.ID, false), http.MethodPut, cancelPath(pending), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Owners cannot cancel once processing has started.
	processing := seedOrder(t, db, owner.ID, product.ID, 1, models.OrderStatusProcessing)
	w = doJSON(t, newOrderRouter(db, owner.ID, false), http.MethodPut, cancelPath(processing), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admins can, as long as the order is not terminal.
	w = doJSON(t, newOrderRouter(db, stranger.ID, true), http.MethodPut, cancelPath(processing), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	delivered := seedOrder(t, db, owner.ID, product.ID, 1, models.OrderStatusDelivered)
	w = doJSON(t, newOrderRouter(db, stranger.ID, true), http.MethodPut, cancelPath(delivered), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderStatusValidation(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "status@example.com")
	product := models.Product{Name: "Teak block", Price: 10, Stock: 5}
	require.NoError(t, db.Create(&product).Error)
	order := seedOrder(t, db, owner.ID, product.ID, 1, models.OrderStatusPending)

	r := newOrderRouter(db, owner.ID, true)

	w := doJSON(t, r, http.MethodPut, "/orders/"+strconv.Itoa(int(order.ID))+"/status", gin.H{"status": "teleported"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, "/orders/"+strconv.Itoa(int(order.ID))+"/status", gin.H{"status": "Shipped"})
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.First(&order, order.ID).Error)
	assert.Equal(t, models.OrderStatusShipped, order.Status)

	w = doJSON(t, r, http.MethodPut, "/orders/99999/status", gin.H{"status": "shipped"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
