package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	gorm.Model
	CustomerID        uint            `json:"customerId" gorm:"index;not null"`
	TotalAmount       decimal.Decimal `json:"totalAmount" gorm:"type:decimal(12,2);not null"`
	Status            OrderStatus     `json:"status" gorm:"type:varchar(16);index;not null"`
	ShippingAddressID uint            `json:"shippingAddressId" gorm:"not null"`
	OrderItems        []OrderItem     `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem.Price is the unit price copied from the product when the order was placed.
type OrderItem struct {
	gorm.Model
	OrderID   uint            `json:"orderId" gorm:"index;not null"`
	ProductID uint            `json:"productId" gorm:"index;not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
}

type OrderData struct {
	ShippingAddressID uint   `json:"shippingAddressId" binding:"required"`
	CartItemIDs       []uint `json:"cartItemIds"`
}

type OrderStatusData struct {
	Status string `json:"status" binding:"required"`
}
