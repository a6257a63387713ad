package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to Amexan API ❤️. Enjoy seamless interaction with this API.

The following are the endpoints for this API (all under /api):

AUTH
- POST "/auth/register" - Create user account
- POST "/auth/login" - Access user account
- GET "/auth/me" - Current user profile
- POST "/auth/verify-email/:token" - Activate user account
- POST "/auth/forgot-password" - Request password reset
- POST "/auth/reset-password/:token" - Reset user password

CATALOG
- GET "/products" - List products (page, limit, search, category)
- GET "/products/:id" - Get product by ID
- GET "/products/:id/reviews" - Reviews for a product
- POST|PUT|DELETE "/products[/:id]" - Manage products (seller, admin)
- POST "/products/:id/images" - Add product images
- GET|POST|PUT|DELETE "/categories[/:id]" - Categories

SHOPPING
- GET|POST "/cart", PUT|DELETE "/cart/:id" - Cart
- GET|POST "/addresses" - Shipping addresses
- POST "/orders" - Place an order from the cart
- GET "/orders", GET "/orders/:id" - Orders
- PUT "/orders/:id/status" - Update order status (seller, admin)
- POST "/payments/process" - Pay for an order
- GET "/payments", "/payments/:id", "/payments/order/:orderId" - Payments
- POST "/reviews" - Review a purchased product

ACCOUNTS
- PUT "/users/:id" - Update full name and phone (self or admin)
- GET "/business" - List seller businesses
- POST "/business", PUT "/business/:id" - Open or edit your business (seller)

DASHBOARDS
- GET "/seller/stats", "/seller/products", "/seller/orders"
- GET "/admin/dashboard", "/admin/orders", "/admin/users", "/admin/users/:id"
- DELETE "/admin/users/:id"`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

// HealthCheck reports whether the database is reachable.
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx.Request.Context())
		}
		if err != nil {
			respondWithError(ctx, http.StatusServiceUnavailable, "database unavailable", err)
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "ok"})
	}
}
