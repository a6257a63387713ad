package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kariqs/amexan-commerce/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CartService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewCartService(db *gorm.DB, logger *zap.Logger) *CartService {
	return &CartService{db: db, logger: logger}
}

// AddToCart puts quantity units of a product in the caller's cart. Adding a product that is
// already there increases the existing entry.
func (s *CartService) AddToCart(ctx context.Context, caller Identity, productID uint, quantity int) (*models.CartItem, error) {
	if err := authorize(caller, OpManageCart); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, invalid("quantity must be at least 1")
	}

	db := s.db.WithContext(ctx)
	var product models.Product
	if err := db.Select("id", "active").First(&product, productID).Error; err != nil {
		return nil, lookupErr(err, "product", productID)
	}
	if !product.Active {
		return nil, notFound("product", productID)
	}

	item, err := s.increment(db, caller.UserID, productID, quantity)
	if err != nil {
		return nil, err
	}
	if item != nil {
		return item, nil
	}

	item = &models.CartItem{UserID: caller.UserID, ProductID: productID, Quantity: quantity}
	if err := db.Create(item).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		// Lost a race with a concurrent add for the same product.
		item, err = s.increment(db, caller.UserID, productID, quantity)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, fmt.Errorf("%w: cart entry for product %d", ErrConflict, productID)
		}
	}
	return item, nil
}

// increment returns nil, nil when the caller has no entry for the product.
func (s *CartService) increment(db *gorm.DB, userID, productID uint, quantity int) (*models.CartItem, error) {
	result := db.Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", gorm.Expr("quantity + ?", quantity))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	var item models.CartItem
	if err := db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *CartService) GetCart(ctx context.Context, caller Identity) ([]models.CartItem, error) {
	if err := authorize(caller, OpManageCart); err != nil {
		return nil, err
	}
	var items []models.CartItem
	err := s.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Images").
		Where("user_id = ?", caller.UserID).
		Order("id").
		Find(&items).Error
	return items, err
}

func (s *CartService) UpdateCartItem(ctx context.Context, caller Identity, itemID uint, quantity int) (*models.CartItem, error) {
	if err := authorize(caller, OpManageCart); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, invalid("quantity must be at least 1")
	}
	db := s.db.WithContext(ctx)
	var item models.CartItem
	if err := db.Where("id = ? AND user_id = ?", itemID, caller.UserID).First(&item).Error; err != nil {
		return nil, lookupErr(err, "cart item", itemID)
	}
	if err := db.Model(&item).Update("quantity", quantity).Error; err != nil {
		return nil, err
	}
	item.Quantity = quantity
	return &item, nil
}

func (s *CartService) RemoveCartItem(ctx context.Context, caller Identity, itemID uint) error {
	if err := authorize(caller, OpManageCart); err != nil {
		return err
	}
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, caller.UserID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("cart item", itemID)
	}
	return nil
}
