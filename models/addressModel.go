package models

import "gorm.io/gorm"

type Address struct {
	gorm.Model
	UserID     uint   `json:"userId" gorm:"index;not null"`
	Street     string `json:"street" gorm:"not null"`
	City       string `json:"city" gorm:"not null"`
	State      string `json:"state" gorm:"not null"`
	PostalCode string `json:"postalCode" gorm:"not null"`
	Country    string `json:"country" gorm:"not null"`
	IsDefault  bool   `json:"isDefault" gorm:"not null"`
}

type AddressData struct {
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	Country    string `json:"country" binding:"required"`
	IsDefault  bool   `json:"isDefault"`
}
