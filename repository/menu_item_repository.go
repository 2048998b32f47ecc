package repository

import (
	"context"

	"foodcart/entity"

	"gorm.io/gorm"
)

type MenuItemRepository struct{ DB *gorm.DB }

func NewMenuItemRepository(db *gorm.DB) *MenuItemRepository { return &MenuItemRepository{DB: db} }

// preload option groups/values/images ตามลำดับ sort_order
func withMenuDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("OptionGroups", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order, id") }).
		Preload("OptionGroups.Values", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order, id") }).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order, id") })
}

func (r *MenuItemRepository) ListCategories(ctx context.Context) ([]entity.Category, error) {
	var out []entity.Category
	err := r.DB.WithContext(ctx).Order("sort_order, id").Find(&out).Error
	return out, err
}

// List returns one page of available items and the total count. categoryID 0
// means every category.
func (r *MenuItemRepository) List(ctx context.Context, categoryID uint, limit, offset int) ([]entity.MenuItem, int64, error) {
	q := r.DB.WithContext(ctx).Model(&entity.MenuItem{}).Where("is_available = ?", true)
	if categoryID != 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	// reusable for both the count and the page
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []entity.MenuItem
	err := withMenuDetails(q).
		Order("category_id, id").
		Limit(limit).Offset(offset).
		Find(&items).Error
	return items, total, err
}

func (r *MenuItemRepository) FindByID(ctx context.Context, id uint) (*entity.MenuItem, error) {
	var m entity.MenuItem
	if err := withMenuDetails(r.DB.WithContext(ctx)).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}
