package services

import (
	"context"
	"testing"

	"github.com/Kariqs/amexan-commerce/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartMergesRepeatedProduct(t *testing.T) {
	s := newCheckoutScene(t)
	ctx := context.Background()
	product := s.product(t, s.seller, "Scarf", "9.00", 10)

	first, err := s.svc.Cart.AddToCart(ctx, s.customer, product.ID, 2)
	require.NoError(t, err)
	second, err := s.svc.Cart.AddToCart(ctx, s.customer, product.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)
	assert.Equal(t, int64(1), s.count(t, &models.CartItem{}))

	cart, err := s.svc.Cart.GetCart(ctx, s.customer)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	require.NotNil(t, cart[0].Product)
	assert.Equal(t, "Scarf", cart[0].Product.Name)
}

func TestAddToCartRejections(t *testing.T) {
	s := newCheckoutScene(t)
	ctx := context.Background()
	product := s.product(t, s.seller, "Hat", "4.00", 10)
	hidden := s.product(t, s.seller, "Hidden", "4.00", 10)
	require.NoError(t, s.db.Model(&hidden).Update("active", false).Error)

	_, err := s.svc.Cart.AddToCart(ctx, s.customer, product.ID, 0)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.svc.Cart.AddToCart(ctx, s.customer, 9999, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.svc.Cart.AddToCart(ctx, s.customer, hidden.ID, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.svc.Cart.AddToCart(ctx, s.seller, product.ID, 1)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateAndRemoveCartItem(t *testing.T) {
	s := newCheckoutScene(t)
	ctx := context.Background()
	product := s.product(t, s.seller, "Belt", "11.00", 10)
	item := s.cartItem(t, s.customer, product.ID, 1)
	stranger := s.user(t, "stranger", models.RoleCustomer)

	updated, err := s.svc.Cart.UpdateCartItem(ctx, s.customer, item.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)

	_, err = s.svc.Cart.UpdateCartItem(ctx, s.customer, item.ID, 0)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.svc.Cart.UpdateCartItem(ctx, stranger, item.ID, 2)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.svc.Cart.RemoveCartItem(ctx, stranger, item.ID), ErrNotFound)
	require.NoError(t, s.svc.Cart.RemoveCartItem(ctx, s.customer, item.ID))
	assert.ErrorIs(t, s.svc.Cart.RemoveCartItem(ctx, s.customer, item.ID), ErrNotFound)
	assert.Zero(t, s.count(t, &models.CartItem{}))
}

func TestCreateAddressKeepsSingleDefault(t *testing.T) {
	s := newCheckoutScene(t)
	ctx := context.Background()
	data := models.AddressData{
		Street:     "12 Moi Avenue",
		City:       "Mombasa",
		State:      "Mombasa",
		PostalCode: "80100",
		Country:    "Kenya",
		IsDefault:  true,
	}

	created, err := s.svc.Addresses.CreateAddress(ctx, s.customer, data)
	require.NoError(t, err)
	assert.True(t, created.IsDefault)

	addresses, err := s.svc.Addresses.ListAddresses(ctx, s.customer)
	require.NoError(t, err)
	require.Len(t, addresses, 2)
	var defaults int
	for _, a := range addresses {
		if a.IsDefault {
			defaults++
			assert.Equal(t, created.ID, a.ID)
		}
	}
	assert.Equal(t, 1, defaults)

	_, err = s.svc.Addresses.CreateAddress(ctx, s.customer, models.AddressData{Street: " "})
	assert.ErrorIs(t, err, ErrValidation)

	assert.NoError(t, s.svc.Addresses.Owned(ctx, s.customer.UserID, created.ID))
	assert.ErrorIs(t, s.svc.Addresses.Owned(ctx, s.seller.UserID, created.ID), ErrNotFound)
}
