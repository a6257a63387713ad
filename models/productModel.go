package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name        string `json:"name" gorm:"size:191;uniqueIndex;not null"`
	Description string `json:"description"`
}

type CategoryData struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type ProductImage struct {
	gorm.Model
	Url       string `json:"url" gorm:"not null"`
	ProductID uint   `json:"productId" gorm:"index;not null"`
}

type Product struct {
	gorm.Model
	Name        string          `json:"name" gorm:"size:191;index;not null"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Stock       int             `json:"stock" gorm:"not null"`
	SellerID    uint            `json:"sellerId" gorm:"index;not null"`
	CategoryID  *uint           `json:"categoryId" gorm:"index"`
	Active      bool            `json:"isActive" gorm:"index;not null"`
	Attributes  datatypes.JSON  `json:"attributes"`
	Images      []ProductImage  `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// ProductData is the writable part of a product. Active is only honoured on update.
type ProductData struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" binding:"gte=0"`
	CategoryID  *uint           `json:"categoryId"`
	Active      *bool           `json:"isActive"`
	Attributes  datatypes.JSON  `json:"attributes"`
}
