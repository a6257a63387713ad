package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/Kariqs/amexan-commerce/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const MaxImageSize = 5 << 20

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type CatalogService struct {
	db     *gorm.DB
	images ImageStore
	logger *zap.Logger
}

func NewCatalogService(db *gorm.DB, images ImageStore, logger *zap.Logger) *CatalogService {
	return &CatalogService{db: db, images: images, logger: logger}
}

func validateProduct(data models.ProductData) error {
	if strings.TrimSpace(data.Name) == "" {
		return invalid("product name is required")
	}
	if !data.Price.IsPositive() {
		return invalid("price must be greater than zero")
	}
	if data.Stock < 0 {
		return invalid("stock cannot be negative")
	}
	return nil
}

func (s *CatalogService) checkCategory(db *gorm.DB, categoryID *uint) error {
	if categoryID == nil {
		return nil
	}
	var count int64
	if err := db.Model(&models.Category{}).Where("id = ?", *categoryID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound("category", *categoryID)
	}
	return nil
}

// CreateProduct lists a new active product owned by the caller.
func (s *CatalogService) CreateProduct(ctx context.Context, caller Identity, data models.ProductData) (*models.Product, error) {
	if err := authorize(caller, OpManageCatalog); err != nil {
		return nil, err
	}
	if err := validateProduct(data); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	if err := s.checkCategory(db, data.CategoryID); err != nil {
		return nil, err
	}

	product := models.Product{
		Name:        strings.TrimSpace(data.Name),
		Description: data.Description,
		Price:       data.Price.Round(2),
		Stock:       data.Stock,
		SellerID:    caller.UserID,
		CategoryID:  data.CategoryID,
		Active:      true,
		Attributes:  data.Attributes,
	}
	if err := db.Create(&product).Error; err != nil {
		return nil, err
	}
	s.logger.Info("product created", zap.Uint("product_id", product.ID), zap.Uint("seller_id", caller.UserID))
	return &product, nil
}

type ProductFilter struct {
	Search     string
	CategoryID uint
	Page       Page
}

// ListProducts is the public, paginated view of active products.
func (s *CatalogService) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, PageMeta, error) {
	page := filter.Page.normalize(12)
	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Where("active = ?", true)
		if search := strings.TrimSpace(filter.Search); search != "" {
			db = db.Where("name LIKE ?", "%"+search+"%")
		}
		if filter.CategoryID != 0 {
			db = db.Where("category_id = ?", filter.CategoryID)
		}
		return db
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Scopes(scope).Count(&count).Error; err != nil {
		return nil, PageMeta{}, err
	}
	var products []models.Product
	if err := s.db.WithContext(ctx).
		Scopes(scope).
		Preload("Images").
		Order("id").
		Limit(page.Limit).
		Offset(page.offset()).
		Find(&products).Error; err != nil {
		return nil, PageMeta{}, err
	}
	return products, newPageMeta(page, count), nil
}

func (s *CatalogService) GetProduct(ctx context.Context, productID uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).Preload("Images").First(&product, productID).Error; err != nil {
		return nil, lookupErr(err, "product", productID)
	}
	return &product, nil
}

// ownedProduct loads a product the caller may modify: their own, or any product for an admin.
func (s *CatalogService) ownedProduct(db *gorm.DB, caller Identity, productID uint) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		return nil, lookupErr(err, "product", productID)
	}
	if product.SellerID != caller.UserID && !caller.Is(models.RoleAdmin) {
		return nil, fmt.Errorf("%w: product %d belongs to another seller", ErrForbidden, productID)
	}
	return &product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, caller Identity, productID uint, data models.ProductData) (*models.Product, error) {
	if err := authorize(caller, OpManageCatalog); err != nil {
		return nil, err
	}
	if err := validateProduct(data); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	product, err := s.ownedProduct(db, caller, productID)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(db, data.CategoryID); err != nil {
		return nil, err
	}

	product.Name = strings.TrimSpace(data.Name)
	product.Description = data.Description
	product.Price = data.Price.Round(2)
	product.Stock = data.Stock
	product.CategoryID = data.CategoryID
	product.Attributes = data.Attributes
	if data.Active != nil {
		product.Active = *data.Active
	}
	if err := db.Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct hides a product from the catalog. Rows stay for order history.
func (s *CatalogService) DeleteProduct(ctx context.Context, caller Identity, productID uint) error {
	if err := authorize(caller, OpManageCatalog); err != nil {
		return err
	}
	db := s.db.WithContext(ctx)
	product, err := s.ownedProduct(db, caller, productID)
	if err != nil {
		return err
	}
	if err := db.Model(product).Update("active", false).Error; err != nil {
		return err
	}
	s.logger.Info("product deactivated", zap.Uint("product_id", productID), zap.Uint("by_user_id", caller.UserID))
	return nil
}

type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

type ImageUploadResult struct {
	Urls   []string `json:"urls"`
	Failed []string `json:"failed,omitempty"`
}

// AddProductImages validates every file before storing any. Storage failures for individual
// files are reported in Failed rather than aborting the batch.
func (s *CatalogService) AddProductImages(ctx context.Context, caller Identity, productID uint, uploads []ImageUpload) (*ImageUploadResult, error) {
	if err := authorize(caller, OpManageCatalog); err != nil {
		return nil, err
	}
	if len(uploads) == 0 {
		return nil, invalid("no files uploaded")
	}
	for _, upload := range uploads {
		ext := strings.ToLower(filepath.Ext(upload.Filename))
		if !allowedImageExtensions[ext] {
			return nil, invalid("file %q has an unsupported type", upload.Filename)
		}
		if upload.Size > MaxImageSize {
			return nil, invalid("file %q exceeds the %d MB limit", upload.Filename, MaxImageSize>>20)
		}
	}

	db := s.db.WithContext(ctx)
	if _, err := s.ownedProduct(db, caller, productID); err != nil {
		return nil, err
	}
	if s.images == nil {
		return nil, errors.New("image storage is not configured")
	}

	result := &ImageUploadResult{Urls: []string{}}
	for _, upload := range uploads {
		url, err := s.storeImage(ctx, productID, upload)
		if err != nil {
			s.logger.Warn("image upload failed",
				zap.Uint("product_id", productID),
				zap.String("filename", upload.Filename),
				zap.Error(err))
			result.Failed = append(result.Failed, upload.Filename)
			continue
		}
		if err := db.Create(&models.ProductImage{Url: url, ProductID: productID}).Error; err != nil {
			s.logger.Error("saving product image failed", zap.Uint("product_id", productID), zap.Error(err))
			result.Failed = append(result.Failed, upload.Filename)
			continue
		}
		result.Urls = append(result.Urls, url)
	}
	return result, nil
}

func (s *CatalogService) storeImage(ctx context.Context, productID uint, upload ImageUpload) (string, error) {
	body, err := upload.Open()
	if err != nil {
		return "", err
	}
	defer body.Close()

	key := fmt.Sprintf("products/%d/%s-%s%s",
		productID,
		time.Now().UTC().Format("20060102150405"),
		uuid.NewString()[:8],
		strings.ToLower(filepath.Ext(upload.Filename)))
	return s.images.Upload(ctx, key, upload.ContentType, body)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).Order("name").Find(&categories).Error
	return categories, err
}

func (s *CatalogService) CreateCategory(ctx context.Context, caller Identity, data models.CategoryData) (*models.Category, error) {
	if err := authorize(caller, OpManageCatalog); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(data.Name)
	if name == "" {
		return nil, invalid("category name is required")
	}
	db := s.db.WithContext(ctx)
	if err := categoryNameFree(db, name, 0); err != nil {
		return nil, err
	}
	category := models.Category{Name: name, Description: data.Description}
	if err := db.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: category %q", ErrAlreadyExists, name)
		}
		return nil, err
	}
	return &category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, caller Identity, categoryID uint, data models.CategoryData) (*models.Category, error) {
	if err := authorize(caller, OpManageCatalog); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(data.Name)
	if name == "" {
		return nil, invalid("category name is required")
	}
	db := s.db.WithContext(ctx)
	var category models.Category
	if err := db.First(&category, categoryID).Error; err != nil {
		return nil, lookupErr(err, "category", categoryID)
	}
	if err := categoryNameFree(db, name, categoryID); err != nil {
		return nil, err
	}
	category.Name = name
	category.Description = data.Description
	if err := db.Save(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: category %q", ErrAlreadyExists, name)
		}
		return nil, err
	}
	return &category, nil
}

func categoryNameFree(db *gorm.DB, name string, exceptID uint) error {
	var count int64
	if err := db.Model(&models.Category{}).
		Where("name = ? AND id <> ?", name, exceptID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: category %q", ErrAlreadyExists, name)
	}
	return nil
}

// DeleteCategory removes a category and leaves its products uncategorised.
func (s *CatalogService) DeleteCategory(ctx context.Context, caller Identity, categoryID uint) error {
	if err := authorize(caller, OpManageCatalog); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, categoryID).Error; err != nil {
			return lookupErr(err, "category", categoryID)
		}
		if err := tx.Model(&models.Product{}).
			Where("category_id = ?", categoryID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&category).Error
	})
}
