package routes

import (
	"github.com/Kariqs/amexan-commerce/controllers"
	"github.com/Kariqs/amexan-commerce/middlewares"
	"github.com/Kariqs/amexan-commerce/services"
	"github.com/gin-gonic/gin"
)

func SellerRoutes(api *gin.RouterGroup, h *controllers.Handler, requireAuth gin.HandlerFunc) {
	seller := api.Group("/seller", requireAuth, middlewares.RequireRoles(services.AllowedRoles(services.OpSellerDashboard)...))
	{
		seller.GET("/stats", h.GetSellerStats)
		seller.GET("/products", h.GetSellerProducts)
		seller.GET("/orders", h.GetSellerOrders)
	}
}

func AdminRoutes(api *gin.RouterGroup, h *controllers.Handler, requireAuth gin.HandlerFunc) {
	admin := api.Group("/admin", requireAuth, middlewares.RequireAdmin())
	{
		admin.GET("/dashboard", h.GetAdminDashboard)
		admin.GET("/orders", h.GetAllOrders)
		admin.GET("/users", h.GetUsers)
		admin.GET("/users/:id", h.GetUser)
		admin.DELETE("/users/:id", h.DeleteUser)
	}
}

func BusinessRoutes(api *gin.RouterGroup, h *controllers.Handler, requireAuth gin.HandlerFunc) {
	business := api.Group("/business", requireAuth)
	{
		business.GET("", h.GetBusinesses)
		business.POST("", middlewares.RequireRoles(services.AllowedRoles(services.OpManageBusiness)...), h.CreateBusiness)
		business.PUT("/:id", middlewares.RequireRoles(services.AllowedRoles(services.OpManageBusiness)...), h.UpdateBusiness)
	}
}
