package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kariqs/amexan-commerce/services"
	"github.com/go-resty/resty/v2"
)

// WebhookNotifier posts every notification as JSON to an external endpoint.
type WebhookNotifier struct {
	url    string
	client *resty.Client
}

func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: resty.New().SetTimeout(timeout).SetRetryCount(2),
	}
}

func (w *WebhookNotifier) Notify(ctx context.Context, n services.Notification) error {
	resp, err := w.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(n).
		Post(w.url)
	if err != nil {
		return fmt.Errorf("webhook %s: %w", n.Kind, err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook %s failed with status %d: %s", n.Kind, resp.StatusCode(), string(resp.Body()))
	}
	return nil
}

// MultiNotifier fans a notification out to every notifier and joins their errors.
type MultiNotifier []services.Notifier

func (m MultiNotifier) Notify(ctx context.Context, n services.Notification) error {
	var errs []error
	for _, notifier := range m {
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
