package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Kariqs/amexan-commerce/metrics"
	"github.com/Kariqs/amexan-commerce/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	minRating = 1
	maxRating = 5
)

type ReviewService struct {
	db      *gorm.DB
	metrics *metrics.ShopMetrics
	logger  *zap.Logger
}

func NewReviewService(db *gorm.DB, m *metrics.ShopMetrics, logger *zap.Logger) *ReviewService {
	return &ReviewService{db: db, metrics: m, logger: logger}
}

// SubmitReview records a rating for a product the caller has ordered at least once.
func (s *ReviewService) SubmitReview(ctx context.Context, caller Identity, productID uint, rating int, comment string) (*models.Review, error) {
	if err := authorize(caller, OpSubmitReview); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	var product models.Product
	if err := db.Select("id").First(&product, productID).Error; err != nil {
		return nil, lookupErr(err, "product", productID)
	}
	if rating < minRating || rating > maxRating {
		return nil, invalid("rating must be between %d and %d", minRating, maxRating)
	}

	purchased, err := s.hasPurchased(ctx, caller.UserID, productID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, fmt.Errorf("%w: product %d", ErrPurchaseRequired, productID)
	}

	var existing int64
	if err := db.Model(&models.Review{}).
		Where("product_id = ? AND user_id = ?", productID, caller.UserID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: product %d", ErrDuplicateReview, productID)
	}

	review := models.Review{
		ProductID: productID,
		UserID:    caller.UserID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
	}
	if err := db.Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: product %d", ErrDuplicateReview, productID)
		}
		return nil, err
	}

	s.metrics.ReviewSubmitted()
	s.logger.Info("review submitted",
		zap.Uint("review_id", review.ID),
		zap.Uint("product_id", productID),
		zap.Uint("user_id", caller.UserID),
		zap.Int("rating", rating))
	return &review, nil
}

// hasPurchased reports whether any order placed by userID contains productID, whatever its status.
func (s *ReviewService) hasPurchased(ctx context.Context, userID, productID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id AND orders.deleted_at IS NULL").
		Where("orders.customer_id = ? AND order_items.product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, err
}

func (s *ReviewService) ListProductReviews(ctx context.Context, productID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error
	return reviews, err
}
