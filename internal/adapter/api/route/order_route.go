package route

import (
	"github.com/gin-gonic/gin"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/adapter/api/controller"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/middleware"
)

// RegisterOrderRoutes registra as rotas de pedidos do painel
func RegisterOrderRoutes(r *gin.RouterGroup, orderController *controller.OrderController, authSecret string) {
	orders := r.Group("/orders")
	orders.Use(middleware.AuthMiddleware(authSecret))
	{
		orders.POST("", orderController.Create)
		orders.GET("", orderController.List)
		orders.GET("/:id", orderController.Get)
		orders.PUT("/:id", orderController.Update)
		orders.PATCH("/:id/items/:index", orderController.UpdateItem)
		orders.PATCH("/:id/status", orderController.UpdateStatus)
		orders.DELETE("/:id", orderController.Delete)
	}
}
