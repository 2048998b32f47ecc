package repository

import (
	"context"

	"foodcart/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository struct{ DB *gorm.DB }

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository { return &FavoriteRepository{DB: db} }

func (r *FavoriteRepository) ListForUser(ctx context.Context, userID uint) ([]entity.Favorite, error) {
	var out []entity.Favorite
	err := r.DB.WithContext(ctx).
		Preload("MenuItem").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&out).Error
	return out, err
}

// Add is idempotent: favoriting twice keeps one row.
func (r *FavoriteRepository) Add(ctx context.Context, userID, menuItemID uint) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.Favorite{UserID: userID, MenuItemID: menuItemID}).Error
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, menuItemID uint) error {
	return r.DB.WithContext(ctx).Unscoped().
		Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).
		Delete(&entity.Favorite{}).Error
}
