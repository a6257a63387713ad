package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/Kariqs/amexan-commerce/services"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (services.Identity, error)
}

// RequireAuth resolves the bearer token and stores the caller's identity on the context.
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing authorization token"})
			return
		}

		identity, err := auth.Authenticate(ctx.Request.Context(), token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}
		ctx.Set(identityKey, identity)
		ctx.Next()
	}
}

// CurrentIdentity returns the identity stored by RequireAuth. Anonymous requests get the zero
// Identity, which every service operation rejects.
func CurrentIdentity(ctx *gin.Context) services.Identity {
	value, ok := ctx.Get(identityKey)
	if !ok {
		return services.Identity{}
	}
	identity, _ := value.(services.Identity)
	return identity
}
