package routes

import (
	"github.com/Kariqs/amexan-commerce/controllers"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(api *gin.RouterGroup, h *controllers.Handler, requireAuth gin.HandlerFunc) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Signup)
		auth.POST("/login", h.Login)
		auth.GET("/me", requireAuth, h.Me)
		auth.POST("/verify-email/:activationToken", h.ActivateAccount)
		auth.POST("/forgot-password", h.SendPasswordResetLink)
		auth.POST("/reset-password/:resetToken", h.ResetPassword)
	}
}

func UserRoutes(api *gin.RouterGroup, h *controllers.Handler, requireAuth gin.HandlerFunc) {
	api.PUT("/users/:id", requireAuth, h.UpdateUser)
}
