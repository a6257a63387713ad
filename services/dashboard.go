package services

import (
	"context"
	"fmt"

	"github.com/Kariqs/amexan-commerce/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	lowStockThreshold = 10
	recentLimit       = 5
)

type DashboardService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewDashboardService(db *gorm.DB, logger *zap.Logger) *DashboardService {
	return &DashboardService{db: db, logger: logger}
}

type AdminStats struct {
	TotalUsers     int64           `json:"totalUsers"`
	TotalSellers   int64           `json:"totalSellers"`
	TotalCustomers int64           `json:"totalCustomers"`
	TotalProducts  int64           `json:"totalProducts"`
	TotalOrders    int64           `json:"totalOrders"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	PendingOrders  int64           `json:"pendingOrders"`
}

type Alert struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type AdminOverview struct {
	Stats            AdminStats                   `json:"stats"`
	OrdersByStatus   map[models.OrderStatus]int64 `json:"ordersByStatus"`
	RecentOrders     []models.Order               `json:"recentOrders"`
	RecentUsers      []models.User                `json:"recentUsers"`
	LowStockProducts []models.Product             `json:"lowStockProducts"`
	Alerts           []Alert                      `json:"alerts"`
}

func (s *DashboardService) AdminOverview(ctx context.Context, caller Identity) (*AdminOverview, error) {
	if err := authorize(caller, OpAdminDashboard); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	overview := &AdminOverview{
		OrdersByStatus: map[models.OrderStatus]int64{
			models.OrderStatusPending:    0,
			models.OrderStatusProcessing: 0,
			models.OrderStatusShipped:    0,
			models.OrderStatusDelivered:  0,
			models.OrderStatusCancelled:  0,
		},
		Alerts: []Alert{},
	}
	stats := &overview.Stats

	counts := []struct {
		dst   *int64
		model any
		where []any
	}{
		{&stats.TotalUsers, &models.User{}, nil},
		{&stats.TotalSellers, &models.User{}, []any{"role = ?", models.RoleSeller}},
		{&stats.TotalCustomers, &models.User{}, []any{"role = ?", models.RoleCustomer}},
		{&stats.TotalProducts, &models.Product{}, nil},
		{&stats.TotalOrders, &models.Order{}, nil},
	}
	for _, c := range counts {
		query := db.Model(c.model)
		if len(c.where) > 0 {
			query = query.Where(c.where[0], c.where[1:]...)
		}
		if err := query.Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	revenue, err := sumRevenue(db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("status <> ?", models.OrderStatusCancelled))
	if err != nil {
		return nil, err
	}
	stats.TotalRevenue = revenue

	var byStatus []struct {
		Status models.OrderStatus
		Count  int64
	}
	if err := db.Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, err
	}
	for _, row := range byStatus {
		overview.OrdersByStatus[row.Status] = row.Count
	}
	stats.PendingOrders = overview.OrdersByStatus[models.OrderStatusPending]

	if err := db.Order("created_at DESC, id DESC").Limit(recentLimit).Find(&overview.RecentOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Order("created_at DESC, id DESC").Limit(recentLimit).Find(&overview.RecentUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Where("stock < ?", lowStockThreshold).Order("stock, id").Find(&overview.LowStockProducts).Error; err != nil {
		return nil, err
	}

	if stats.PendingOrders > 0 {
		overview.Alerts = append(overview.Alerts, Alert{
			Type:    "warning",
			Message: fmt.Sprintf("%d orders pending review", stats.PendingOrders),
		})
	}
	if n := len(overview.LowStockProducts); n > 0 {
		overview.Alerts = append(overview.Alerts, Alert{
			Type:    "info",
			Message: fmt.Sprintf("%d products with low stock", n),
		})
	}
	return overview, nil
}

// sumRevenue scans a single SUM column. Drivers disagree on the type they return for it.
func sumRevenue(query *gorm.DB) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := query.Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total.Round(2), nil
}

type SellerStats struct {
	TotalProducts  int64           `json:"totalProducts"`
	ActiveProducts int64           `json:"activeProducts"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
}

// SellerStats summarises the caller's catalog and the revenue of their line items in
// orders that were not cancelled.
func (s *DashboardService) SellerStats(ctx context.Context, caller Identity) (*SellerStats, error) {
	if err := authorize(caller, OpSellerDashboard); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	var stats SellerStats
	if err := db.Model(&models.Product{}).Where("seller_id = ?", caller.UserID).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Product{}).
		Where("seller_id = ? AND active = ?", caller.UserID, true).
		Count(&stats.ActiveProducts).Error; err != nil {
		return nil, err
	}

	revenue, err := sumRevenue(db.Model(&models.OrderItem{}).
		Select("COALESCE(SUM(order_items.price * order_items.quantity), 0)").
		Joins("JOIN orders ON orders.id = order_items.order_id AND orders.deleted_at IS NULL").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("products.seller_id = ? AND orders.status <> ?", caller.UserID, models.OrderStatusCancelled))
	if err != nil {
		return nil, err
	}
	stats.TotalRevenue = revenue
	return &stats, nil
}

func (s *DashboardService) SellerProducts(ctx context.Context, caller Identity) ([]models.Product, error) {
	if err := authorize(caller, OpSellerDashboard); err != nil {
		return nil, err
	}
	var products []models.Product
	err := s.db.WithContext(ctx).
		Preload("Images").
		Where("seller_id = ?", caller.UserID).
		Order("id").
		Find(&products).Error
	return products, err
}

// SellerOrders lists every order containing at least one of the caller's products.
func (s *DashboardService) SellerOrders(ctx context.Context, caller Identity) ([]models.Order, error) {
	if err := authorize(caller, OpSellerDashboard); err != nil {
		return nil, err
	}
	sub := s.db.Model(&models.OrderItem{}).
		Select("order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("products.seller_id = ?", caller.UserID)

	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("OrderItems").
		Where("id IN (?)", sub).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	return orders, err
}

func (s *DashboardService) ListUsers(ctx context.Context, caller Identity) ([]models.User, error) {
	if err := authorize(caller, OpManageUsers); err != nil {
		return nil, err
	}
	var users []models.User
	err := s.db.WithContext(ctx).Order("id").Find(&users).Error
	return users, err
}

func (s *DashboardService) GetUser(ctx context.Context, caller Identity, userID uint) (*models.User, error) {
	if err := authorize(caller, OpManageUsers); err != nil {
		return nil, err
	}
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, lookupErr(err, "user", userID)
	}
	return &user, nil
}

// DeleteUser deactivates and soft deletes an account. Admins cannot delete themselves.
func (s *DashboardService) DeleteUser(ctx context.Context, caller Identity, userID uint) error {
	if err := authorize(caller, OpManageUsers); err != nil {
		return err
	}
	if userID == caller.UserID {
		return invalid("cannot delete your own account")
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return lookupErr(err, "user", userID)
		}
		if err := tx.Model(&user).Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.Uint("user_id", userID), zap.Uint("by_user_id", caller.UserID))
	return nil
}
