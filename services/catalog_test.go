package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/Kariqs/amexan-commerce/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func productData(name, price string, stock int) models.ProductData {
	return models.ProductData{
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	}
}

func upload(name, body string) ImageUpload {
	return ImageUpload{
		Filename:    name,
		ContentType: "image/png",
		Size:        int64(len(body)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}

func TestProductLifecycle(t *testing.T) {
	s := newCheckoutScene(t)
	ctx := context.Background()
	rival := s.user(t, "rival-shop", models.RoleSeller)

	created, err := s.svc.Catalog.CreateProduct(ctx, s.seller, productData("Soapstone", "15.00", 4))
	require.NoError(t, err)
	assert.True(t, created.Active)
	assert.Equal(t, s.seller.UserID, created.SellerID)

	_, err = s.svc.Catalog.CreateProduct(ctx, s.customer, productData("Nope", "1.00", 1))
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = s.svc.Catalog.CreateProduct(ctx, s.seller, productData("Free", "0", 1))
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.svc.Catalog.CreateProduct(ctx, s.seller, productData("Negative", "1.00", -1))
	assert.ErrorIs(t, err, ErrValidation)

	update := productData("Soapstone bowl", "17.50", 6)
	_, err = s.svc.Catalog.UpdateProduct(ctx, rival, created.ID, update)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := s.svc.Catalog.UpdateProduct(ctx, s.seller, created.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "Soapstone bowl", updated.Name)
	assert.Equal(t, 6, updated.Stock)

	_, err = s.svc.Catalog.UpdateProduct(ctx, s.admin, created.ID, update)
	assert.NoError(t, err)

	require.NoError(t, s.svc.Catalog.DeleteProduct(ctx, s.seller, created.ID))
	stored, err := s.svc.Catalog.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)

	products, meta, err := s.svc.Catalog.ListProducts(ctx, ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Zero(t, meta.Total)
}

func TestListProductsFilters(t *testing.T) {
	s := newCheckoutScene(t)
	ctx := context.Background()
	crafts, err := s.svc.Catalog.CreateCategory(ctx, s.admin, models.CategoryData{Name: "Crafts"})
	require.NoError(t, err)

	for _, name := range []string{"Wood carving", "Wood spoon", "Clay pot"} {
		data := productData(name, "5.00", 3)
		if strings.HasPrefix(name, "Wood") {
			data.CategoryID = &crafts.ID
		}
		_, err := s.svc.Catalog.CreateProduct(ctx, s.seller, data)
		require.NoError(t, err)
	}

	found, meta, err := s.svc.Catalog.ListProducts(ctx, ProductFilter{Search: "Wood"})
	require.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Equal(t, int64(2), meta.Total)

	found, _, err = s.svc.Catalog.ListProducts(ctx, ProductFilter{CategoryID: crafts.ID, Page: Page{Page: 2, Limit: 1}})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Wood spoon", found[0].Name)

	_, err = s.svc.Catalog.GetProduct(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	missing := uint(9999)
	data := productData("Orphan", "1.00", 1)
	data.CategoryID = &missing
	_, err = s.svc.Catalog.CreateProduct(ctx, s.seller, data)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryManagement(t *testing.T) {
	s := newCheckoutScene(t)
	ctx := context.Background()

	category, err := s.svc.Catalog.CreateCategory(ctx, s.seller, models.CategoryData{Name: "Textiles"})
	require.NoError(t, err)
	_, err = s.svc.Catalog.CreateCategory(ctx, s.seller, models.CategoryData{Name: "Textiles"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
	_, err = s.svc.Catalog.CreateCategory(ctx, s.customer, models.CategoryData{Name: "Mine"})
	assert.ErrorIs(t, err, ErrForbidden)

	renamed, err := s.svc.Catalog.UpdateCategory(ctx, s.admin, category.ID, models.CategoryData{Name: "Fabrics"})
	require.NoError(t, err)
	assert.Equal(t, "Fabrics", renamed.Name)

	data := productData("Kanga", "7.00", 2)
	data.CategoryID = &category.ID
	product, err := s.svc.Catalog.CreateProduct(ctx, s.seller, data)
	require.NoError(t, err)

	require.NoError(t, s.svc.Catalog.DeleteCategory(ctx, s.admin, category.ID))
	stored, err := s.svc.Catalog.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.CategoryID)

	categories, err := s.svc.Catalog.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)
	assert.ErrorIs(t, s.svc.Catalog.DeleteCategory(ctx, s.admin, category.ID), ErrNotFound)
}

func TestAddProductImages(t *testing.T) {
	s := newCheckoutScene(t)
	ctx := context.Background()
	store := &memoryImageStore{failOn: "broken"}
	catalog := NewCatalogService(s.db, store, zap.NewNop())
	product := s.product(t, s.seller, "Painting", "80.00", 1)

	result, err := catalog.AddProductImages(ctx, s.seller, product.ID, []ImageUpload{
		upload("front.PNG", "front"),
		upload("back.jpg", "broken"),
	})
	require.NoError(t, err)
	require.Len(t, result.Urls, 1)
	assert.True(t, strings.HasPrefix(result.Urls[0], "https://images.example.com/products/"))
	assert.True(t, strings.HasSuffix(result.Urls[0], ".png"))
	assert.Equal(t, []string{"back.jpg"}, result.Failed)

	stored, err := catalog.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, stored.Images, 1)
	assert.Equal(t, result.Urls[0], stored.Images[0].Url)
}

func TestAddProductImagesValidatesBeforeUploading(t *testing.T) {
	s := newCheckoutScene(t)
	ctx := context.Background()
	store := &memoryImageStore{}
	catalog := NewCatalogService(s.db, store, zap.NewNop())
	product := s.product(t, s.seller, "Print", "8.00", 1)
	other := s.user(t, "other-shop", models.RoleSeller)

	oversized := upload("huge.jpg", "x")
	oversized.Size = MaxImageSize + 1

	tests := []struct {
		name    string
		caller  Identity
		uploads []ImageUpload
		want    error
	}{
		{"no files", s.seller, nil, ErrValidation},
		{"bad extension", s.seller, []ImageUpload{upload("ok.png", "a"), upload("script.exe", "b")}, ErrValidation},
		{"too large", s.seller, []ImageUpload{oversized}, ErrValidation},
		{"not the owner", other, []ImageUpload{upload("ok.png", "a")}, ErrForbidden},
		{"customer", s.customer, []ImageUpload{upload("ok.png", "a")}, ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.AddProductImages(ctx, tt.caller, product.ID, tt.uploads)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, store.objects)
	assert.Zero(t, s.count(t, &models.ProductImage{}))
}
