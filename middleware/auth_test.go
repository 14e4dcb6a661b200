package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
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

func signToken(t *testing.T, secret string, userID uint, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(expiresIn).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newAuthRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireAuth(db), func(c *gin.Context) {
		id, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id, "admin": IsAdmin(c)})
	})
	r.GET("/admin", RequireAdmin(db), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	user := models.User{Name: "Nadia", Email: "nadia@example.com", Password: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)

	r := newAuthRouter(db)

	w := get(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(r, "/me", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(r, "/me", signToken(t, "wrong-secret", user.ID, time.Hour))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(r, "/me", signToken(t, "test-secret", user.ID, -time.Hour))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(r, "/me", signToken(t, "test-secret", user.ID, time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"admin":false`)

	// Token for a deleted account is rejected.
	w = get(r, "/me", signToken(t, "test-secret", user.ID+1, time.Hour))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	user := models.User{Name: "Omar", Email: "omar@example.com", Password: "x", Role: models.RoleUser}
	admin := models.User{Name: "Rabia", Email: "rabia@example.com", Password: "x", Role: models.RoleAdmin}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&admin).Error)

	r := newAuthRouter(db)

	w := get(r, "/admin", signToken(t, "test-secret", user.ID, time.Hour))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = get(r, "/admin", signToken(t, "test-secret", admin.ID, time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
}
