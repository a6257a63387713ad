package routes

import (
	"github.com/Kariqs/amexan-commerce/controllers"
	"github.com/Kariqs/amexan-commerce/middlewares"
	"github.com/Kariqs/amexan-commerce/services"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(api *gin.RouterGroup, h *controllers.Handler, requireAuth, throttle gin.HandlerFunc) {
	orders := api.Group("/orders", requireAuth)
	{
		orders.POST("", throttle, h.CreateOrder)
		orders.GET("", h.GetOrders)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id/status", middlewares.RequireRoles(services.AllowedRoles(services.OpUpdateOrderStatus)...), h.UpdateOrderStatus)
	}
}

func PaymentRoutes(api *gin.RouterGroup, h *controllers.Handler, requireAuth, throttle gin.HandlerFunc) {
	payments := api.Group("/payments", requireAuth)
	{
		payments.POST("/process", throttle, h.ProcessPayment)
		payments.GET("", h.GetPayments)
		payments.GET("/:id", h.GetPayment)
		payments.GET("/order/:orderId", h.GetOrderPayment)
	}
}
