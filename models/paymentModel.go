package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type Payment struct {
	gorm.Model
	OrderID       uint            `json:"orderId" gorm:"uniqueIndex;not null"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Method        string          `json:"paymentMethod" gorm:"size:64;not null"`
	Status        PaymentStatus   `json:"paymentStatus" gorm:"type:varchar(16);not null"`
	TransactionID string          `json:"transactionId" gorm:"size:64;uniqueIndex;not null"`
}

type PaymentData struct {
	OrderID       uint   `json:"orderId" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}
