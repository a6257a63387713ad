package models

import "gorm.io/gorm"

// Business is a seller's storefront profile. Each seller owns at most one.
type Business struct {
	gorm.Model
	Name        string `json:"businessName" gorm:"size:191;uniqueIndex;not null"`
	City        string `json:"city" gorm:"size:100;not null;default:Unspecified"`
	Region      string `json:"region" gorm:"size:100;not null;default:Unspecified"`
	Description string `json:"businessDescription"`
	Logo        string `json:"logo" gorm:"not null;default:default.jpg"`
	OwnerID     uint   `json:"ownerId" gorm:"uniqueIndex;not null"`
}

type BusinessData struct {
	Name        string `json:"businessName" binding:"required"`
	City        string `json:"city"`
	Region      string `json:"region"`
	Description string `json:"businessDescription"`
}

// BusinessUpdate carries only the fields the client sent.
type BusinessUpdate struct {
	Name        *string `json:"businessName"`
	City        *string `json:"city"`
	Region      *string `json:"region"`
	Description *string `json:"businessDescription"`
}

func (u BusinessUpdate) Empty() bool {
	return u.Name == nil && u.City == nil && u.Region == nil && u.Description == nil
}
