package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Kariqs/amexan-commerce/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const unspecifiedLocation = "Unspecified"

type BusinessService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewBusinessService(db *gorm.DB, logger *zap.Logger) *BusinessService {
	return &BusinessService{db: db, logger: logger}
}

func (s *BusinessService) ListBusinesses(ctx context.Context, caller Identity) ([]models.Business, error) {
	if err := authorize(caller, OpReadBusinesses); err != nil {
		return nil, err
	}
	var businesses []models.Business
	err := s.db.WithContext(ctx).Order("id").Find(&businesses).Error
	return businesses, err
}

// CreateBusiness opens the caller's storefront. A seller has at most one.
func (s *BusinessService) CreateBusiness(ctx context.Context, caller Identity, data models.BusinessData) (*models.Business, error) {
	if err := authorize(caller, OpManageBusiness); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(data.Name)
	if name == "" {
		return nil, invalid("business name is required")
	}

	db := s.db.WithContext(ctx)
	var owned int64
	if err := db.Model(&models.Business{}).Where("owner_id = ?", caller.UserID).Count(&owned).Error; err != nil {
		return nil, err
	}
	if owned > 0 {
		return nil, fmt.Errorf("%w: seller %d already has a business", ErrAlreadyExists, caller.UserID)
	}
	if err := businessNameFree(db, name, 0); err != nil {
		return nil, err
	}

	business := models.Business{
		Name:        name,
		City:        orUnspecified(data.City),
		Region:      orUnspecified(data.Region),
		Description: data.Description,
		Logo:        "default.jpg",
		OwnerID:     caller.UserID,
	}
	if err := db.Create(&business).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: business %q", ErrAlreadyExists, name)
		}
		return nil, err
	}
	s.logger.Info("business created", zap.Uint("business_id", business.ID), zap.Uint("owner_id", caller.UserID))
	return &business, nil
}

// UpdateBusiness applies the sent fields to the caller's own business.
func (s *BusinessService) UpdateBusiness(ctx context.Context, caller Identity, businessID uint, update models.BusinessUpdate) (*models.Business, error) {
	if err := authorize(caller, OpManageBusiness); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	var business models.Business
	if err := db.Where("owner_id = ?", caller.UserID).First(&business).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: business for user %d", ErrNotFound, caller.UserID)
		}
		return nil, err
	}
	if business.ID != businessID {
		return nil, fmt.Errorf("%w: business %d belongs to another seller", ErrForbidden, businessID)
	}
	if update.Empty() {
		return nil, invalid("no fields to update")
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, invalid("business name cannot be blank")
		}
		if err := businessNameFree(db, name, business.ID); err != nil {
			return nil, err
		}
		business.Name = name
	}
	if update.City != nil {
		business.City = orUnspecified(*update.City)
	}
	if update.Region != nil {
		business.Region = orUnspecified(*update.Region)
	}
	if update.Description != nil {
		business.Description = *update.Description
	}
	if err := db.Save(&business).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: business %q", ErrAlreadyExists, business.Name)
		}
		return nil, err
	}
	return &business, nil
}

func businessNameFree(db *gorm.DB, name string, exceptID uint) error {
	var count int64
	if err := db.Model(&models.Business{}).
		Where("name = ? AND id <> ?", name, exceptID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: business %q", ErrAlreadyExists, name)
	}
	return nil
}

func orUnspecified(value string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return unspecifiedLocation
}
