package services

import (
	"context"
	"testing"

	"github.com/Kariqs/amexan-commerce/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminOverview(t *testing.T) {
	s := newCheckoutScene(t)
	ctx := context.Background()
	lamp := s.product(t, s.seller, "Lamp", "10.00", 12)
	stool := s.product(t, s.seller, "Stool", "4.00", 50)

	kept, err := s.place(t, s.cartItem(t, s.customer, lamp.ID, 3))
	require.NoError(t, err)
	dropped, err := s.place(t, s.cartItem(t, s.customer, stool.ID, 2))
	require.NoError(t, err)
	_, err = s.svc.Checkout.UpdateOrderStatus(ctx, s.admin, dropped.ID, "cancelled")
	require.NoError(t, err)

	overview, err := s.svc.Dashboard.AdminOverview(ctx, s.admin)
	require.NoError(t, err)
	assert.Equal(t, int64(3), overview.Stats.TotalUsers)
	assert.Equal(t, int64(1), overview.Stats.TotalSellers)
	assert.Equal(t, int64(1), overview.Stats.TotalCustomers)
	assert.Equal(t, int64(2), overview.Stats.TotalProducts)
	assert.Equal(t, int64(2), overview.Stats.TotalOrders)
	assert.True(t, overview.Stats.TotalRevenue.Equal(decimal.NewFromInt(30)), "revenue %s", overview.Stats.TotalRevenue)
	assert.Equal(t, int64(1), overview.Stats.PendingOrders)
	assert.Equal(t, int64(1), overview.OrdersByStatus[models.OrderStatusCancelled])
	assert.Equal(t, int64(0), overview.OrdersByStatus[models.OrderStatusShipped])

	require.Len(t, overview.LowStockProducts, 1)
	assert.Equal(t, lamp.ID, overview.LowStockProducts[0].ID)
	assert.Len(t, overview.Alerts, 2)
	assert.Equal(t, kept.ID, overview.RecentOrders[len(overview.RecentOrders)-1].ID)

	_, err = s.svc.Dashboard.AdminOverview(ctx, s.seller)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSellerDashboard(t *testing.T) {
	s := newCheckoutScene(t)
	ctx := context.Background()
	other := s.user(t, "other-shop", models.RoleSeller)
	mine := s.product(t, s.seller, "Mine", "5.00", 10)
	theirs := s.product(t, other, "Theirs", "7.00", 10)
	hidden := s.product(t, s.seller, "Hidden", "1.00", 10)
	require.NoError(t, s.db.Model(&hidden).Update("active", false).Error)

	mixed, err := s.place(t,
		s.cartItem(t, s.customer, mine.ID, 2),
		s.cartItem(t, s.customer, theirs.ID, 1))
	require.NoError(t, err)
	_, err = s.place(t, s.cartItem(t, s.customer, theirs.ID, 1))
	require.NoError(t, err)
	cancelled, err := s.place(t, s.cartItem(t, s.customer, mine.ID, 1))
	require.NoError(t, err)
	_, err = s.svc.Checkout.UpdateOrderStatus(ctx, s.seller, cancelled.ID, "cancelled")
	require.NoError(t, err)

	stats, err := s.svc.Dashboard.SellerStats(ctx, s.seller)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalProducts)
	assert.Equal(t, int64(1), stats.ActiveProducts)
	assert.True(t, stats.TotalRevenue.Equal(decimal.NewFromInt(10)), "revenue %s", stats.TotalRevenue)

	orders, err := s.svc.Dashboard.SellerOrders(ctx, s.seller)
	require.NoError(t, err)
	ids := make([]uint, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	assert.ElementsMatch(t, []uint{mixed.ID, cancelled.ID}, ids)

	products, err := s.svc.Dashboard.SellerProducts(ctx, s.seller)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	_, err = s.svc.Dashboard.SellerStats(ctx, s.customer)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUserManagement(t *testing.T) {
	s := newCheckoutScene(t)
	ctx := context.Background()

	users, err := s.svc.Dashboard.ListUsers(ctx, s.admin)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	got, err := s.svc.Dashboard.GetUser(ctx, s.admin, s.customer.UserID)
	require.NoError(t, err)
	assert.Equal(t, "wanjiru", got.Username)
	_, err = s.svc.Dashboard.GetUser(ctx, s.admin, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.svc.Dashboard.DeleteUser(ctx, s.admin, s.admin.UserID), ErrValidation)
	assert.ErrorIs(t, s.svc.Dashboard.DeleteUser(ctx, s.seller, s.customer.UserID), ErrForbidden)
	require.NoError(t, s.svc.Dashboard.DeleteUser(ctx, s.admin, s.customer.UserID))
	assert.ErrorIs(t, s.svc.Dashboard.DeleteUser(ctx, s.admin, s.customer.UserID), ErrNotFound)

	users, err = s.svc.Dashboard.ListUsers(ctx, s.admin)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
