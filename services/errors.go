package services

import (
	"errors"
	"fmt"

	"github.com/Kariqs/amexan-commerce/models"
	"gorm.io/gorm"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrAlreadyExists     = errors.New("already exists")
	ErrEmptyOrder        = errors.New("no cart entries to convert into an order")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDuplicatePayment  = errors.New("payment already processed")
	ErrPurchaseRequired  = errors.New("only purchased products can be reviewed")
	ErrDuplicateReview   = errors.New("product already reviewed")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrConflict          = errors.New("concurrent update conflict")
)

type InsufficientStockError struct {
	ProductID uint
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d (%s): requested %d, available %d",
		e.ProductID, e.Name, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("order status cannot change from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

func notFound(entity string, id uint) error {
	return fmt.Errorf("%w: %s %d", ErrNotFound, entity, id)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// lookupErr turns gorm's missing-row error into ErrNotFound and leaves everything else alone.
func lookupErr(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entity, id)
	}
	return err
}
