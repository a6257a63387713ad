package services

import (
	"time"

	"github.com/Kariqs/amexan-commerce/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	JWTSecret        string
	TokenTTL         time.Duration
	CheckoutAttempts int
}

// Services bundles every domain service behind the HTTP layer.
type Services struct {
	Auth      *AuthService
	Catalog   *CatalogService
	Cart      *CartService
	Addresses *AddressService
	Checkout  *CheckoutService
	Payments  *PaymentService
	Reviews   *ReviewService
	Dashboard *DashboardService
	Business  *BusinessService
}

func New(db *gorm.DB, notifier Notifier, images ImageStore, m *metrics.ShopMetrics, logger *zap.Logger, opts Options) *Services {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	addresses := NewAddressService(db)
	return &Services{
		Auth:      NewAuthService(db, notifier, logger.Named("auth"), opts.JWTSecret, opts.TokenTTL),
		Catalog:   NewCatalogService(db, images, logger.Named("catalog")),
		Cart:      NewCartService(db, logger.Named("cart")),
		Addresses: addresses,
		Checkout:  NewCheckoutService(db, addresses, notifier, m, logger.Named("checkout"), opts.CheckoutAttempts),
		Payments:  NewPaymentService(db, notifier, m, logger.Named("payments")),
		Reviews:   NewReviewService(db, m, logger.Named("reviews")),
		Dashboard: NewDashboardService(db, logger.Named("dashboard")),
		Business:  NewBusinessService(db, logger.Named("business")),
	}
}
