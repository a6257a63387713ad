package services

import (
	"context"
	"strings"

	"github.com/Kariqs/amexan-commerce/models"
	"gorm.io/gorm"
)

type AddressService struct {
	db *gorm.DB
}

func NewAddressService(db *gorm.DB) *AddressService {
	return &AddressService{db: db}
}

// CreateAddress stores a shipping address. A new default address clears the previous default.
func (s *AddressService) CreateAddress(ctx context.Context, caller Identity, data models.AddressData) (*models.Address, error) {
	if err := authorize(caller, OpManageAddresses); err != nil {
		return nil, err
	}
	address := models.Address{
		UserID:     caller.UserID,
		Street:     strings.TrimSpace(data.Street),
		City:       strings.TrimSpace(data.City),
		State:      strings.TrimSpace(data.State),
		PostalCode: strings.TrimSpace(data.PostalCode),
		Country:    strings.TrimSpace(data.Country),
		IsDefault:  data.IsDefault,
	}
	if address.Street == "" || address.City == "" || address.Country == "" {
		return nil, invalid("street, city and country are required")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ? AND is_default = ?", caller.UserID, true).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (s *AddressService) ListAddresses(ctx context.Context, caller Identity) ([]models.Address, error) {
	if err := authorize(caller, OpManageAddresses); err != nil {
		return nil, err
	}
	var addresses []models.Address
	err := s.db.WithContext(ctx).
		Where("user_id = ?", caller.UserID).
		Order("is_default DESC, id").
		Find(&addresses).Error
	return addresses, err
}

// Owned returns ErrNotFound unless addressID exists and belongs to userID.
func (s *AddressService) Owned(ctx context.Context, userID, addressID uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Address{}).
		Where("id = ? AND user_id = ?", addressID, userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound("shipping address", addressID)
	}
	return nil
}
