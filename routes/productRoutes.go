package routes

import (
	"github.com/Kariqs/amexan-commerce/controllers"
	"github.com/Kariqs/amexan-commerce/middlewares"
	"github.com/Kariqs/amexan-commerce/services"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(api *gin.RouterGroup, h *controllers.Handler, requireAuth gin.HandlerFunc) {
	api.GET("/products", h.GetProducts)
	api.GET("/products/:id", h.GetProduct)
	api.GET("/products/:id/reviews", h.GetProductReviews)

	manage := api.Group("/products", requireAuth, middlewares.RequireRoles(services.AllowedRoles(services.OpManageCatalog)...))
	{
		manage.POST("", h.CreateProduct)
		manage.PUT("/:id", h.UpdateProduct)
		manage.DELETE("/:id", h.DeleteProduct)
		manage.POST("/:id/images", h.UploadProductImages)
	}
}

func CategoryRoutes(api *gin.RouterGroup, h *controllers.Handler, requireAuth gin.HandlerFunc) {
	api.GET("/categories", h.GetCategories)

	manage := api.Group("/categories", requireAuth, middlewares.RequireRoles(services.AllowedRoles(services.OpManageCatalog)...))
	{
		manage.POST("", h.CreateCategory)
		manage.PUT("/:id", h.UpdateCategory)
		manage.DELETE("/:id", h.DeleteCategory)
	}
}

func ReviewRoutes(api *gin.RouterGroup, h *controllers.Handler, requireAuth gin.HandlerFunc) {
	api.POST("/reviews", requireAuth, h.CreateReview)
}
