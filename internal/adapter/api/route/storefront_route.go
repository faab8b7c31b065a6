package route

import (
	"github.com/gin-gonic/gin"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/adapter/api/controller"
)

// RegisterStorefrontRoutes registra as rotas públicas da loja online
func RegisterStorefrontRoutes(r *gin.RouterGroup, storefrontController *controller.StorefrontController) {
	storefront := r.Group("/storefront")
	{
		storefront.GET("/products", storefrontController.ListProducts)
		storefront.POST("/orders", storefrontController.CreateOrder)
	}
}
