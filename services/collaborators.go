package services

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"
)

type NotificationKind string

const (
	NotifyAccountCreated     NotificationKind = "account.created"
	NotifyOrderPlaced        NotificationKind = "order.placed"
	NotifyPaymentCaptured    NotificationKind = "payment.captured"
	NotifyOrderStatusChanged NotificationKind = "order.status_changed"
	NotifyPasswordReset      NotificationKind = "account.password_reset"
)

type Notification struct {
	Kind       NotificationKind `json:"kind"`
	Email      string           `json:"email"`
	Name       string           `json:"name"`
	OrderID    uint             `json:"orderId,omitempty"`
	Amount     string           `json:"amount,omitempty"`
	Status     string           `json:"status,omitempty"`
	Reference  string           `json:"reference,omitempty"`
	Token      string           `json:"-"`
	OccurredAt time.Time        `json:"occurredAt"`
}

// Notifier delivers confirmations and receipts. Callers never act on the result beyond logging it.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Notification) error { return nil }

// ImageStore persists an uploaded file and returns its public URL.
type ImageStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// AddressBook validates that a shipping address belongs to a user.
type AddressBook interface {
	Owned(ctx context.Context, userID, addressID uint) error
}

func notify(ctx context.Context, logger *zap.Logger, notifier Notifier, n Notification) {
	if notifier == nil {
		return
	}
	if n.OccurredAt.IsZero() {
		n.OccurredAt = time.Now().UTC()
	}
	if err := notifier.Notify(ctx, n); err != nil {
		logger.Warn("notification failed",
			zap.String("kind", string(n.Kind)),
			zap.Uint("order_id", n.OrderID),
			zap.Error(err))
	}
}
