package route

import (
	"github.com/gin-gonic/gin"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/adapter/api/controller"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/middleware"
)

// RegisterFinanceRoutes registra lançamentos e relatórios
func RegisterFinanceRoutes(r *gin.RouterGroup, transactions *controller.TransactionController, reports *controller.ReportController, authSecret string) {
	auth := middleware.AuthMiddleware(authSecret)

	transactionsGroup := r.Group("/transactions")
	transactionsGroup.Use(auth)
	{
		transactionsGroup.POST("", transactions.Create)
		transactionsGroup.GET("", transactions.List)
		transactionsGroup.GET("/:id", transactions.Get)
		transactionsGroup.DELETE("/:id", transactions.Delete)
	}

	reportsGroup := r.Group("/reports")
	reportsGroup.Use(auth)
	{
		reportsGroup.GET("/monthly", reports.Monthly)
		reportsGroup.GET("/monthly/export", reports.Export)
	}
}
