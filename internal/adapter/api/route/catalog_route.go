package route

import (
	"github.com/gin-gonic/gin"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/adapter/api/controller"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/middleware"
)

// RegisterCatalogRoutes registra componentes de custo, calculadora de HPP e produtos
func RegisterCatalogRoutes(r *gin.RouterGroup, components *controller.CostComponentController, hpp *controller.HPPController, products *controller.ProductController, authSecret string) {
	auth := middleware.AuthMiddleware(authSecret)

	componentsGroup := r.Group("/cost-components")
	componentsGroup.Use(auth)
	{
		componentsGroup.POST("", components.Create)
		componentsGroup.GET("", components.List)
		componentsGroup.DELETE("/:id", components.Delete)
	}

	hppGroup := r.Group("/hpp")
	hppGroup.Use(auth)
	{
		hppGroup.POST("/calculate", hpp.Calculate)
		hppGroup.POST("/save", hpp.Save)
	}

	productsGroup := r.Group("/products")
	productsGroup.Use(auth)
	{
		productsGroup.POST("", products.Create)
		productsGroup.GET("", products.List)
		productsGroup.GET("/:id", products.Get)
		productsGroup.PUT("/:id", products.Update)
		productsGroup.DELETE("/:id", products.Delete)
		productsGroup.POST("/:id/restock", products.Restock)
	}
}
