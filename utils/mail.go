package utils

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/smtp"
	"net/url"

	"github.com/Kariqs/amexan-commerce/services"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const defaultLogoURL = "https://www.amexan.store/images/logo.jpg"

type EmailData struct {
	Name            string
	Message         string
	VerificationURL string
	LogoURL         string
	OrderID         uint
	Amount          string
	Status          string
	Reference       string
}

type MailConfig struct {
	From        string
	Password    string
	Host        string
	Address     string
	FrontendURL string
}

type sendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends account and order emails over SMTP.
type Mailer struct {
	cfg  MailConfig
	send sendFunc
}

func NewMailer(cfg MailConfig) *Mailer {
	return &Mailer{cfg: cfg, send: smtp.SendMail}
}

type email struct {
	subject  string
	template string
	data     EmailData
}

func (m *Mailer) compose(n services.Notification) (email, error) {
	data := EmailData{
		Name:      n.Name,
		LogoURL:   defaultLogoURL,
		OrderID:   n.OrderID,
		Amount:    n.Amount,
		Status:    n.Status,
		Reference: n.Reference,
	}
	switch n.Kind {
	case services.NotifyAccountCreated:
		data.Message = "Thank you for signing up! Click the button below to verify your account."
		data.VerificationURL = m.cfg.FrontendURL + "/auth/verify-email?token=" + url.QueryEscape(n.Token)
		return email{"Account Verification", "verify_email.html", data}, nil
	case services.NotifyPasswordReset:
		data.Message = "You requested a password reset. Click the button below to reset your password."
		data.VerificationURL = m.cfg.FrontendURL + "/auth/reset-password?token=" + url.QueryEscape(n.Token)
		return email{"Amexan Account Password Reset", "reset_password.html", data}, nil
	case services.NotifyOrderPlaced:
		data.Message = "Thank you for your order. We will let you know when it ships."
		return email{fmt.Sprintf("Order #%d received", n.OrderID), "order_update.html", data}, nil
	case services.NotifyPaymentCaptured:
		data.Message = "We have received your payment. Keep this receipt for your records."
		return email{fmt.Sprintf("Payment receipt for order #%d", n.OrderID), "order_update.html", data}, nil
	case services.NotifyOrderStatusChanged:
		data.Message = "The status of your order has changed."
		return email{fmt.Sprintf("Order #%d is now %s", n.OrderID, n.Status), "order_update.html", data}, nil
	}
	return email{}, fmt.Errorf("no email for notification kind %q", n.Kind)
}

func (m *Mailer) Notify(_ context.Context, n services.Notification) error {
	if n.Email == "" {
		return fmt.Errorf("notification %s has no recipient", n.Kind)
	}
	mail, err := m.compose(n)
	if err != nil {
		return err
	}
	return m.SendEmail(n.Email, mail.subject, mail.data, mail.template)
}

func (m *Mailer) SendEmail(emailTo string, emailSubject string, data EmailData, templateName string) error {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		m.cfg.From,
		emailTo,
		emailSubject,
		body.String(),
	)

	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)
	if err := m.send(m.cfg.Address, auth, m.cfg.From, []string{emailTo}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
