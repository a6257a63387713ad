package models

import "time"

// CartItem rows are hard-deleted once consumed, so the (user, product) pair stays unique.
type CartItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_cart_user_product"`
	ProductID uint      `json:"productId" gorm:"not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CartItemData struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  *int `json:"quantity"`
}

type CartQuantityData struct {
	Quantity int `json:"quantity" binding:"required"`
}
