package route

import (
	"github.com/gin-gonic/gin"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/adapter/api/controller"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/middleware"
)

// RegisterProcurementRoutes registra as rotas das sessões de compra
func RegisterProcurementRoutes(r *gin.RouterGroup, procurementController *controller.ProcurementController, authSecret string) {
	sessions := r.Group("/procurement/sessions")
	sessions.Use(middleware.AuthMiddleware(authSecret))
	{
		sessions.POST("", procurementController.Create)
		sessions.GET("", procurementController.List)
		sessions.GET("/:id", procurementController.Get)
		sessions.PATCH("/:id/items/:itemId", procurementController.UpdateItem)
		sessions.POST("/:id/expenses", procurementController.AddExpense)
		sessions.DELETE("/:id/expenses/:expenseId", procurementController.RemoveExpense)
		sessions.POST("/:id/start", procurementController.Start)
		sessions.POST("/:id/complete", procurementController.Complete)
	}
}
