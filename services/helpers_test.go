package services

import (
	"context"
	"testing"

	"foodcart/cart"
	"foodcart/checkout"
	"foodcart/configs"
	"foodcart/entity"
	"foodcart/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ---------------- mocks ----------------

type mockOrderWriter struct{ mock.Mock }

func (m *mockOrderWriter) InsertOrder(ctx context.Context, o *entity.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOrderWriter) InsertOrderItems(ctx context.Context, items []entity.OrderItem) error {
	return m.Called(ctx, items).Error(0)
}

func (m *mockOrderWriter) DeleteOrder(ctx context.Context, orderID uint) error {
	return m.Called(ctx, orderID).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishOrderPlaced(ctx context.Context, ev events.OrderPlaced) error {
	return m.Called(ctx, ev).Error(0)
}

func (m *mockPublisher) Close() error { return nil }

// ---------------- fixtures ----------------

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := configs.OpenDB("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, configs.SetupDatabase(db))
	return db
}

func menuItem(id uint, price int64) entity.MenuItem {
	m := entity.MenuItem{Name: "item", Price: price, IsAvailable: true}
	m.ID = id
	return m
}

func testAddress(id uint, deliveryPrice int64) *entity.Address {
	a := &entity.Address{Name: "home", Street: "1 Main", DeliveryZone: entity.DeliveryZone{City: "BKK", DeliveryPrice: deliveryPrice}}
	a.ID = id
	return a
}

func testBranch(id uint) *entity.Branch {
	b := &entity.Branch{Name: "Silom", IsActive: true}
	b.ID = id
	return b
}

// pickupDraft is a valid pickup order of one line, 2 x 20.
func pickupDraft(pieces ...entity.AdditionalPiece) checkout.Draft {
	c := cart.New()
	c.AddToCart(menuItem(1, 20), 2, nil, "no chili", pieces...)
	c.SetSelectedBranch(testBranch(3))
	return checkout.Draft{
		Cart:   c.Snapshot(),
		Totals: checkout.Totals{Subtotal: c.Subtotal(), FinalTotal: c.Subtotal()},
	}
}

// deliveryDraft is scenario B: 2 x 20, delivery 10, promo applied.
func deliveryDraft() checkout.Draft {
	c := cart.New()
	c.AddToCart(menuItem(1, 20), 2, nil, "")
	c.SetOrderType(entity.OrderTypeDelivery)
	c.SetSelectedAddress(testAddress(5, 10))
	c.SetDeliveryPrice(10)
	return checkout.Draft{
		Cart:      c.Snapshot(),
		Totals:    checkout.Totals{Subtotal: 40, DeliveryPrice: 10, Discount: 4, FinalTotal: 46},
		PromoCode: "WELCOME10",
	}
}
