package route

import (
	"github.com/gin-gonic/gin"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/adapter/api/controller"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/middleware"
)

// RegisterCustomerRoutes registra as rotas do módulo de clientes
func RegisterCustomerRoutes(r *gin.RouterGroup, customerController *controller.CustomerController, authSecret string) {
	customers := r.Group("/customers")
	customers.Use(middleware.AuthMiddleware(authSecret))
	{
		customers.POST("", customerController.Create)
		customers.GET("", customerController.List)
		customers.GET("/:id", customerController.Get)
		customers.PUT("/:id", customerController.Update)
		customers.DELETE("/:id", customerController.Delete)
		customers.PATCH("/:id/status", customerController.UpdateStatus)
	}
}
