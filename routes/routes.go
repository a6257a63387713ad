package routes

import (
	"github.com/Kariqs/amexan-commerce/controllers"
	"github.com/Kariqs/amexan-commerce/middlewares"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps carries what the route groups need besides the handler.
type Deps struct {
	DB            *gorm.DB
	Authenticator middlewares.Authenticator
	Limiter       *middlewares.RateLimiter
}

// Register mounts the whole API on server.
func Register(server *gin.Engine, h *controllers.Handler, deps Deps) {
	DefaultRoutes(server, deps.DB)

	api := server.Group("/api")
	requireAuth := middlewares.RequireAuth(deps.Authenticator)
	var throttle gin.HandlerFunc = func(ctx *gin.Context) { ctx.Next() }
	if deps.Limiter != nil {
		throttle = middlewares.RateLimit(deps.Limiter)
	}

	AuthRoutes(api, h, requireAuth)
	UserRoutes(api, h, requireAuth)
	ProductRoutes(api, h, requireAuth)
	CategoryRoutes(api, h, requireAuth)
	CartRoutes(api, h, requireAuth)
	AddressRoutes(api, h, requireAuth)
	OrderRoutes(api, h, requireAuth, throttle)
	PaymentRoutes(api, h, requireAuth, throttle)
	ReviewRoutes(api, h, requireAuth)
	SellerRoutes(api, h, requireAuth)
	AdminRoutes(api, h, requireAuth)
	BusinessRoutes(api, h, requireAuth)
}
