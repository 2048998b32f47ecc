package repository

import (
	"context"

	"foodcart/entity"

	"gorm.io/gorm"
)

type BranchRepository struct{ DB *gorm.DB }

func NewBranchRepository(db *gorm.DB) *BranchRepository { return &BranchRepository{DB: db} }

func (r *BranchRepository) ListActive(ctx context.Context) ([]entity.Branch, error) {
	var out []entity.Branch
	err := r.DB.WithContext(ctx).Where("is_active = ?", true).Order("name").Find(&out).Error
	return out, err
}

// FindActive returns gorm.ErrRecordNotFound for inactive branches too.
func (r *BranchRepository) FindActive(ctx context.Context, id uint) (*entity.Branch, error) {
	var b entity.Branch
	if err := r.DB.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}
