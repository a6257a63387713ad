package middlewares

import (
	"net/http"

	"github.com/Kariqs/amexan-commerce/models"
	"github.com/gin-gonic/gin"
)

// RequireRoles must run after RequireAuth.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		identity := CurrentIdentity(ctx)
		if identity.UserID == 0 {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
			return
		}
		if !identity.Is(roles...) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Insufficient permissions"})
			return
		}
		ctx.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(models.RoleAdmin)
}
