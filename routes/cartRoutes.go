package routes

import (
	"github.com/Kariqs/amexan-commerce/controllers"
	"github.com/gin-gonic/gin"
)

func CartRoutes(api *gin.RouterGroup, h *controllers.Handler, requireAuth gin.HandlerFunc) {
	cart := api.Group("/cart", requireAuth)
	{
		cart.GET("", h.GetCart)
		cart.POST("", h.AddToCart)
		cart.PUT("/:id", h.UpdateCartItem)
		cart.DELETE("/:id", h.RemoveCartItem)
	}
}

func AddressRoutes(api *gin.RouterGroup, h *controllers.Handler, requireAuth gin.HandlerFunc) {
	addresses := api.Group("/addresses", requireAuth)
	{
		addresses.GET("", h.GetAddresses)
		addresses.POST("", h.CreateAddress)
	}
}
