package repository

import (
	"context"
	"time"

	"foodcart/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

// ---------------- Orders (write) ----------------

// InsertOrder writes the header only; items go through InsertOrderItems.
func (r *OrderRepository) InsertOrder(ctx context.Context, o *entity.Order) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(o).Error
}

func (r *OrderRepository) InsertOrderItems(ctx context.Context, items []entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(&items).Error
}

// DeleteOrder hard-deletes a header and anything already attached to it.
func (r *OrderRepository) DeleteOrder(ctx context.Context, orderID uint) error {
	db := r.DB.WithContext(ctx).Unscoped()
	if err := db.Where("order_id = ?", orderID).Delete(&entity.OrderItem{}).Error; err != nil {
		return err
	}
	return db.Delete(&entity.Order{}, orderID).Error
}

// WithinTx runs fn against a repository bound to one transaction.
func (r *OrderRepository) WithinTx(ctx context.Context, fn func(tx *OrderRepository) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&OrderRepository{DB: tx})
	})
}

// ---------------- Orders (read) ----------------

type OrderSummary struct {
	ID        uint               `json:"id"`
	OrderType entity.OrderType   `json:"orderType"`
	Total     int64              `json:"total"`
	Status    entity.OrderStatus `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
}

func (r *OrderRepository) ListForUser(ctx context.Context, userID uint, limit int) ([]OrderSummary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []OrderSummary
	err := r.DB.WithContext(ctx).Model(&entity.Order{}).
		Select("id, order_type, total, status, created_at").
		Where("user_id = ?", userID).
		Order("id DESC").Limit(limit).
		Scan(&out).Error
	return out, err
}

func (r *OrderRepository) FindForUser(ctx context.Context, userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}
