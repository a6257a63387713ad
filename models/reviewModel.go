package models

import "time"

type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"productId" gorm:"not null;uniqueIndex:idx_review_product_user"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_review_product_user"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ReviewData struct {
	ProductID uint   `json:"productId" binding:"required"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}
