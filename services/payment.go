package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Kariqs/amexan-commerce/metrics"
	"github.com/Kariqs/amexan-commerce/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PaymentService struct {
	db       *gorm.DB
	notifier Notifier
	metrics  *metrics.ShopMetrics
	logger   *zap.Logger
}

func NewPaymentService(db *gorm.DB, notifier Notifier, m *metrics.ShopMetrics, logger *zap.Logger) *PaymentService {
	return &PaymentService{db: db, notifier: notifier, metrics: m, logger: logger}
}

// CapturePayment settles an order in full. The amount always comes from the order, never from
// the caller, and an order is paid at most once.
func (s *PaymentService) CapturePayment(ctx context.Context, caller Identity, orderID uint, method string) (*models.Payment, error) {
	if err := authorize(caller, OpCapturePayment); err != nil {
		return nil, err
	}
	method = strings.TrimSpace(method)
	if method == "" {
		return nil, invalid("payment method is required")
	}

	var (
		payment models.Payment
		order   models.Order
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			return lookupErr(err, "order", orderID)
		}
		if order.CustomerID != caller.UserID && !caller.Is(models.RoleAdmin) {
			return fmt.Errorf("%w: order %d belongs to another customer", ErrForbidden, orderID)
		}

		var existing int64
		if err := tx.Model(&models.Payment{}).Where("order_id = ?", order.ID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return fmt.Errorf("%w: order %d", ErrDuplicatePayment, order.ID)
		}
		if !order.Status.CanTransitionTo(models.OrderStatusProcessing) {
			return &InvalidTransitionError{From: order.Status, To: models.OrderStatusProcessing}
		}

		payment = models.Payment{
			OrderID:       order.ID,
			Amount:        order.TotalAmount,
			Method:        method,
			Status:        models.PaymentStatusCompleted,
			TransactionID: uuid.NewString(),
		}
		if err := tx.Create(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: order %d", ErrDuplicatePayment, order.ID)
			}
			return err
		}

		result := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, models.OrderStatusPending).
			Update("status", models.OrderStatusProcessing)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: order %d changed status concurrently", ErrConflict, order.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.PaymentCaptured(method)
	s.logger.Info("payment captured",
		zap.Uint("order_id", order.ID),
		zap.Uint("payment_id", payment.ID),
		zap.String("transaction_id", payment.TransactionID),
		zap.String("amount", payment.Amount.StringFixed(2)))

	var customer models.User
	if err := s.db.WithContext(ctx).First(&customer, order.CustomerID).Error; err != nil {
		s.logger.Warn("receipt recipient lookup failed", zap.Uint("user_id", order.CustomerID), zap.Error(err))
		return &payment, nil
	}
	notify(ctx, s.logger, s.notifier, Notification{
		Kind:      NotifyPaymentCaptured,
		Email:     customer.Email,
		Name:      customer.Username,
		OrderID:   order.ID,
		Amount:    payment.Amount.StringFixed(2),
		Status:    string(payment.Status),
		Reference: payment.TransactionID,
	})
	return &payment, nil
}

func (s *PaymentService) GetPayment(ctx context.Context, caller Identity, paymentID uint) (*models.Payment, error) {
	if err := authorize(caller, OpReadPayments); err != nil {
		return nil, err
	}
	var payment models.Payment
	if err := s.db.WithContext(ctx).First(&payment, paymentID).Error; err != nil {
		return nil, lookupErr(err, "payment", paymentID)
	}
	if err := s.checkOrderOwner(ctx, caller, payment.OrderID); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *PaymentService) GetPaymentByOrder(ctx context.Context, caller Identity, orderID uint) (*models.Payment, error) {
	if err := authorize(caller, OpReadPayments); err != nil {
		return nil, err
	}
	if err := s.checkOrderOwner(ctx, caller, orderID); err != nil {
		return nil, err
	}
	var payment models.Payment
	if err := s.db.WithContext(ctx).Where("order_id = ?", orderID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: payment for order %d", ErrNotFound, orderID)
		}
		return nil, err
	}
	return &payment, nil
}

// ListPayments returns every payment to admins and the caller's own payments to everyone else.
func (s *PaymentService) ListPayments(ctx context.Context, caller Identity) ([]models.Payment, error) {
	if err := authorize(caller, OpReadPayments); err != nil {
		return nil, err
	}
	query := s.db.WithContext(ctx).Model(&models.Payment{})
	if !caller.Is(models.RoleAdmin) {
		query = query.Joins("JOIN orders ON orders.id = payments.order_id").
			Where("orders.customer_id = ?", caller.UserID)
	}
	var payments []models.Payment
	err := query.Order("payments.created_at DESC, payments.id DESC").Find(&payments).Error
	return payments, err
}

func (s *PaymentService) checkOrderOwner(ctx context.Context, caller Identity, orderID uint) error {
	var order models.Order
	if err := s.db.WithContext(ctx).Select("id", "customer_id").First(&order, orderID).Error; err != nil {
		return lookupErr(err, "order", orderID)
	}
	if order.CustomerID != caller.UserID && !caller.Is(models.RoleAdmin) {
		return fmt.Errorf("%w: order %d belongs to another customer", ErrForbidden, orderID)
	}
	return nil
}
