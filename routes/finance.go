package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	employerControllers "github.com/raheelanjum786/carvercraft-sub001/controllers/employer"
	expenseControllers "github.com/raheelanjum786/carvercraft-sub001/controllers/expense"
	salesControllers "github.com/raheelanjum786/carvercraft-sub001/controllers/sales"
	"github.com/raheelanjum786/carvercraft-sub001/middleware"
)

// SetupFinanceRoutes registers expenses, sales and employers. All of it is
// admin-only.
func SetupFinanceRoutes(api *gin.RouterGroup, db *gorm.DB) {
	expenses := api.Group("/expenses")
	expenses.Use(middleware.RequireAdmin(db))
	{
		expenses.GET("", expenseControllers.GetAllExpenses(db))
		expenses.POST("", expenseControllers.CreateExpense(db))
		expenses.PUT("/:id", expenseControllers.UpdateExpense(db))
		expenses.DELETE("/:id", expenseControllers.DeleteExpense(db))
		expenses.GET("/summary", expenseControllers.GetExpenseSummary(db))
		expenses.GET("/export-excel", expenseControllers.ExportExpensesToExcel(db))
	}

	sales := api.Group("/sales")
	sales.Use(middleware.RequireAdmin(db))
	{
		sales.GET("", salesControllers.GetAllSales(db))
		sales.POST("", salesControllers.CreateSale(db))
		sales.DELETE("/:id", salesControllers.DeleteSale(db))
		sales.GET("/overview", salesControllers.GetSalesOverview(db))
	}

	employers := api.Group("/employers")
	employers.Use(middleware.RequireAdmin(db))
	{
		employers.GET("", employerControllers.GetAllEmployers(db))
		employers.POST("", employerControllers.CreateEmployer(db))
		employers.PUT("/:id", employerControllers.UpdateEmployer(db))
		employers.DELETE("/:id", employerControllers.DeleteEmployer(db))
	}
}
