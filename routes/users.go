package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	userControllers "github.com/raheelanjum786/carvercraft-sub001/controllers/user"
	"github.com/raheelanjum786/carvercraft-sub001/mailer"
	"github.com/raheelanjum786/carvercraft-sub001/middleware"
)

// SetupUserRoutes registers the /api/auth/users endpoints.
func SetupUserRoutes(api *gin.RouterGroup, db *gorm.DB, m *mailer.Mailer) {
	users := api.Group("/auth/users")
	{
		users.POST("/register", userControllers.Register(db, m))
		users.POST("/login", userControllers.Login(db))
		users.POST("/otp/request", userControllers.RequestOTP(db, m))
		users.POST("/otp/verify", userControllers.VerifyOTP(db))

		authed := users.Group("")
		authed.Use(middleware.RequireAuth(db))
		{
			authed.GET("/me", userControllers.GetProfile(db))
			authed.PUT("/me", userControllers.UpdateProfile(db))
		}

		admin := users.Group("")
		admin.Use(middleware.RequireAdmin(db))
		{
			admin.GET("", userControllers.GetAllUsers(db))
			admin.DELETE("/:id", userControllers.DeleteUser(db))
		}
	}
}
