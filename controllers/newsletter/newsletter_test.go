package newsletterControllers

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/raheelanjum786/carvercraft-sub001/mailer"
	"github.com/raheelanjum786/carvercraft-sub001/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newNewsletterRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := mailer.New() // disabled without SMTP config
	r := gin.New()
	r.POST("/subscribe", Subscribe(db))
	r.POST("/unsubscribe", Unsubscribe(db))
	r.POST("/send", SendNewsletter(db, m))
	r.GET("/logs", GetNewsletterLogs(db))
	return r
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubscribeUnsubscribe(t *testing.T) {
	db := setupTestDB(t)
	r := newNewsletterRouter(db)

	w := post(r, "/subscribe", `{"email": "fan@example.com"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Subscribing twice is not an error and does not duplicate.
	w = post(r, "/subscribe", `{"email": "fan@example.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Already subscribed")

	var count int64
	require.NoError(t, db.Model(&models.Subscriber{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	w = post(r, "/subscribe", `{"email": "not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(r, "/unsubscribe", `{"email": "fan@example.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = post(r, "/unsubscribe", `{"email": "fan@example.com"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSendNewsletterLogsCounts(t *testing.T) {
	db := setupTestDB(t)
	r := newNewsletterRouter(db)

	// No subscribers yet.
	w := post(r, "/send", `{"subject": "August drop", "body": "<p>New cards</p>"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	require.NoError(t, db.Create(&models.Subscriber{Email: "a@example.com"}).Error)
	require.NoError(t, db.Create(&models.Subscriber{Email: "b@example.com"}).Error)

	w = post(r, "/send", `{"subject": "August drop", "body": "<p>New cards</p>"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var logs []models.NewsletterLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "August drop", logs[0].Subject)
	assert.Equal(t, 2, logs[0].Recipients)
	assert.Equal(t, 0, logs[0].Failed)
}
