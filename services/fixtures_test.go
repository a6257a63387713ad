package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/Kariqs/amexan-commerce/metrics"
	"github.com/Kariqs/amexan-commerce/models"
	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []Notification
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, note Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, note)
	return n.err
}

func (n *recordingNotifier) kinds() []NotificationKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	kinds := make([]NotificationKind, 0, len(n.sent))
	for _, note := range n.sent {
		kinds = append(kinds, note.Kind)
	}
	return kinds
}

func (n *recordingNotifier) last() Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.sent) == 0 {
		return Notification{}
	}
	return n.sent[len(n.sent)-1]
}

type memoryImageStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	failOn  string
}

func (s *memoryImageStore) Upload(_ context.Context, key, _ string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	if s.failOn != "" && bytes.Equal(data, []byte(s.failOn)) {
		return "", errors.New("storage unavailable")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.objects[key] = data
	return "https://images.example.com/" + key, nil
}

type fixture struct {
	db       *gorm.DB
	svc      *Services
	notifier *recordingNotifier
	registry *prometheus.Registry
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to ":memory:" is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	notifier := &recordingNotifier{}
	registry := prometheus.NewRegistry()
	svc := New(db, notifier, nil, metrics.NewShopMetrics(registry), zap.NewNop(), Options{
		JWTSecret:        "test-secret",
		CheckoutAttempts: 3,
	})
	return &fixture{db: db, svc: svc, notifier: notifier, registry: registry}
}

func (f *fixture) user(t *testing.T, username string, role models.Role) Identity {
	t.Helper()
	user := models.User{
		Email:      username + "@example.com",
		Username:   username,
		Password:   "not-a-real-hash",
		Role:       role,
		IsActive:   true,
		IsVerified: true,
	}
	require.NoError(t, f.db.Create(&user).Error)
	return Identity{UserID: user.ID, Role: role}
}

func (f *fixture) product(t *testing.T, seller Identity, name, price string, stock int) models.Product {
	t.Helper()
	product := models.Product{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
		SellerID: seller.UserID,
		Active:   true,
	}
	require.NoError(t, f.db.Create(&product).Error)
	return product
}

func (f *fixture) address(t *testing.T, owner Identity) models.Address {
	t.Helper()
	address := models.Address{
		UserID:     owner.UserID,
		Street:     "1 Market Street",
		City:       "Nairobi",
		State:      "Nairobi",
		PostalCode: "00100",
		Country:    "Kenya",
		IsDefault:  true,
	}
	require.NoError(t, f.db.Create(&address).Error)
	return address
}

func (f *fixture) cartItem(t *testing.T, owner Identity, productID uint, quantity int) models.CartItem {
	t.Helper()
	item := models.CartItem{UserID: owner.UserID, ProductID: productID, Quantity: quantity}
	require.NoError(t, f.db.Create(&item).Error)
	return item
}

func (f *fixture) stock(t *testing.T, productID uint) int {
	t.Helper()
	var product models.Product
	require.NoError(t, f.db.First(&product, productID).Error)
	return product.Stock
}

func (f *fixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

// counter returns the summed value of every series of the named counter.
func (f *fixture) counter(t *testing.T, name string) float64 {
	t.Helper()
	families, err := f.registry.Gather()
	require.NoError(t, err)
	var total float64
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}
	return total
}
