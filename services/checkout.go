package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Kariqs/amexan-commerce/metrics"
	"github.com/Kariqs/amexan-commerce/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultCheckoutAttempts = 3

// errStockContention aborts a checkout attempt whose guarded stock update found the row changed.
var errStockContention = errors.New("product stock changed during checkout")

type CheckoutService struct {
	db          *gorm.DB
	addresses   AddressBook
	notifier    Notifier
	metrics     *metrics.ShopMetrics
	logger      *zap.Logger
	maxAttempts int
}

func NewCheckoutService(db *gorm.DB, addresses AddressBook, notifier Notifier, m *metrics.ShopMetrics, logger *zap.Logger, maxAttempts int) *CheckoutService {
	if maxAttempts < 1 {
		maxAttempts = defaultCheckoutAttempts
	}
	return &CheckoutService{
		db:          db,
		addresses:   addresses,
		notifier:    notifier,
		metrics:     m,
		logger:      logger,
		maxAttempts: maxAttempts,
	}
}

// PlaceOrder turns the caller's selected cart entries into a pending order. Entry ids that are
// missing or belong to someone else are ignored. Stock, order, line items and cart rows change
// together or not at all.
func (s *CheckoutService) PlaceOrder(ctx context.Context, caller Identity, shippingAddressID uint, cartItemIDs []uint) (*models.Order, error) {
	if err := authorize(caller, OpPlaceOrder); err != nil {
		return nil, err
	}

	entries, err := ownedCartItems(s.db.WithContext(ctx), caller.UserID, cartItemIDs)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrEmptyOrder
	}
	if err := s.addresses.Owned(ctx, caller.UserID, shippingAddressID); err != nil {
		return nil, err
	}

	var order *models.Order
	for attempt := 1; ; attempt++ {
		order, err = s.placeOrderOnce(ctx, caller.UserID, shippingAddressID, cartItemIDs)
		if !errors.Is(err, errStockContention) || attempt == s.maxAttempts {
			break
		}
		s.metrics.CheckoutRetried()
		s.logger.Warn("checkout stock contention, retrying",
			zap.Uint("user_id", caller.UserID),
			zap.Int("attempt", attempt))
	}
	if errors.Is(err, errStockContention) {
		s.metrics.CheckoutConflicted()
		return nil, fmt.Errorf("%w: checkout gave up after %d attempts", ErrConflict, s.maxAttempts)
	}
	if err != nil {
		return nil, err
	}

	s.metrics.OrderPlaced()
	s.logger.Info("order placed",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", caller.UserID),
		zap.String("total_amount", order.TotalAmount.StringFixed(2)),
		zap.Int("items", len(order.OrderItems)))

	s.notifyCustomer(ctx, caller.UserID, Notification{
		Kind:    NotifyOrderPlaced,
		OrderID: order.ID,
		Amount:  order.TotalAmount.StringFixed(2),
		Status:  string(order.Status),
	})
	return order, nil
}

func (s *CheckoutService) placeOrderOnce(ctx context.Context, userID, shippingAddressID uint, cartItemIDs []uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entries, err := ownedCartItems(tx, userID, cartItemIDs)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return ErrEmptyOrder
		}

		productIDs := make([]uint, 0, len(entries))
		for _, entry := range entries {
			productIDs = append(productIDs, entry.ProductID)
		}
		var products []models.Product
		if err := tx.Where("id IN ?", productIDs).Find(&products).Error; err != nil {
			return err
		}
		snapshot := make(map[uint]models.Product, len(products))
		for _, p := range products {
			snapshot[p.ID] = p
		}

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(entries))
		for _, entry := range entries {
			product, ok := snapshot[entry.ProductID]
			if !ok || !product.Active {
				return notFound("product", entry.ProductID)
			}
			if entry.Quantity > product.Stock {
				return &InsufficientStockError{
					ProductID: product.ID,
					Name:      product.Name,
					Requested: entry.Quantity,
					Available: product.Stock,
				}
			}
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(entry.Quantity))))
			items = append(items, models.OrderItem{
				ProductID: product.ID,
				Quantity:  entry.Quantity,
				Price:     product.Price,
			})
		}

		order = models.Order{
			CustomerID:        userID,
			TotalAmount:       total,
			Status:            models.OrderStatusPending,
			ShippingAddressID: shippingAddressID,
			OrderItems:        items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, entry := range entries {
			product := snapshot[entry.ProductID]
			if err := decrementStock(tx, product.ID, product.Stock, entry.Quantity); err != nil {
				return err
			}
		}

		consumed := make([]uint, 0, len(entries))
		for _, entry := range entries {
			consumed = append(consumed, entry.ID)
		}
		return tx.Where("id IN ?", consumed).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// decrementStock takes quantity units only if stock still equals the value read earlier in the
// transaction, and reports errStockContention otherwise.
func decrementStock(tx *gorm.DB, productID uint, expected, quantity int) error {
	result := tx.Model(&models.Product{}).
		Where("id = ? AND stock = ?", productID, expected).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errStockContention
	}
	return nil
}

func ownedCartItems(db *gorm.DB, userID uint, ids []uint) ([]models.CartItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var entries []models.CartItem
	err := db.Where("id IN ? AND user_id = ?", ids, userID).
		Order("id").
		Find(&entries).Error
	return entries, err
}

func (s *CheckoutService) ListOrders(ctx context.Context, caller Identity) ([]models.Order, error) {
	if err := authorize(caller, OpReadOrders); err != nil {
		return nil, err
	}
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("OrderItems").
		Where("customer_id = ?", caller.UserID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	return orders, err
}

// GetOrder returns an order to its owner, or to any seller or admin.
func (s *CheckoutService) GetOrder(ctx context.Context, caller Identity, orderID uint) (*models.Order, error) {
	if err := authorize(caller, OpReadOrders); err != nil {
		return nil, err
	}
	var order models.Order
	if err := s.db.WithContext(ctx).Preload("OrderItems").First(&order, orderID).Error; err != nil {
		return nil, lookupErr(err, "order", orderID)
	}
	if order.CustomerID != caller.UserID && !caller.Is(models.RoleSeller, models.RoleAdmin) {
		return nil, fmt.Errorf("%w: order %d belongs to another customer", ErrForbidden, orderID)
	}
	return &order, nil
}

// UpdateOrderStatus moves an order along the status machine. Cancelling returns the ordered
// quantities to stock in the same transaction.
func (s *CheckoutService) UpdateOrderStatus(ctx context.Context, caller Identity, orderID uint, status string) (*models.Order, error) {
	if err := authorize(caller, OpUpdateOrderStatus); err != nil {
		return nil, err
	}
	next := models.OrderStatus(strings.ToLower(strings.TrimSpace(status)))
	if !next.Valid() {
		return nil, invalid("unknown order status %q", status)
	}

	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("OrderItems").First(&order, orderID).Error; err != nil {
			return lookupErr(err, "order", orderID)
		}
		if !order.Status.CanTransitionTo(next) {
			return &InvalidTransitionError{From: order.Status, To: next}
		}

		result := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Update("status", next)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: order %d changed status concurrently", ErrConflict, order.ID)
		}

		if next == models.OrderStatusCancelled {
			for _, item := range order.OrderItems {
				if err := tx.Model(&models.Product{}).
					Where("id = ?", item.ProductID).
					Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
					return err
				}
			}
		}
		order.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order status updated",
		zap.Uint("order_id", order.ID),
		zap.String("status", string(next)),
		zap.Uint("by_user_id", caller.UserID))
	s.notifyCustomer(ctx, order.CustomerID, Notification{
		Kind:    NotifyOrderStatusChanged,
		OrderID: order.ID,
		Status:  string(next),
	})
	return &order, nil
}

type OrderFilter struct {
	Status string
	Sort   string
	Page   Page
}

// ListAllOrders is the admin view over every order.
func (s *CheckoutService) ListAllOrders(ctx context.Context, caller Identity, filter OrderFilter) ([]models.Order, PageMeta, error) {
	if err := authorize(caller, OpListAllOrders); err != nil {
		return nil, PageMeta{}, err
	}
	page := filter.Page.normalize(15)

	var status models.OrderStatus
	if filter.Status != "" {
		status = models.OrderStatus(strings.ToLower(filter.Status))
		if !status.Valid() {
			return nil, PageMeta{}, invalid("unknown order status %q", filter.Status)
		}
	}
	byStatus := func(db *gorm.DB) *gorm.DB {
		if status == "" {
			return db
		}
		return db.Where("status = ?", status)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Order{}).Scopes(byStatus).Count(&count).Error; err != nil {
		return nil, PageMeta{}, err
	}

	sortOrder := "desc"
	if filter.Sort == "asc" {
		sortOrder = "asc"
	}
	var orders []models.Order
	if err := s.db.WithContext(ctx).
		Scopes(byStatus).
		Preload("OrderItems").
		Order("created_at " + sortOrder).
		Limit(page.Limit).
		Offset(page.offset()).
		Find(&orders).Error; err != nil {
		return nil, PageMeta{}, err
	}
	return orders, newPageMeta(page, count), nil
}

// notifyCustomer looks up the recipient and hands n to the notifier. Failures are only logged.
func (s *CheckoutService) notifyCustomer(ctx context.Context, userID uint, n Notification) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		s.logger.Warn("notification recipient lookup failed", zap.Uint("user_id", userID), zap.Error(err))
		return
	}
	n.Email = user.Email
	n.Name = user.Username
	notify(ctx, s.logger, s.notifier, n)
}
