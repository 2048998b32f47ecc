package repository

import (
	"context"

	"foodcart/entity"

	"gorm.io/gorm"
)

type AddressRepository struct{ DB *gorm.DB }

func NewAddressRepository(db *gorm.DB) *AddressRepository { return &AddressRepository{DB: db} }

func (r *AddressRepository) ListForUser(ctx context.Context, userID uint) ([]entity.Address, error) {
	var out []entity.Address
	err := r.DB.WithContext(ctx).
		Preload("DeliveryZone").
		Where("user_id = ?", userID).
		Order("is_default DESC, id").
		Find(&out).Error
	return out, err
}

func (r *AddressRepository) FindForUser(ctx context.Context, userID, id uint) (*entity.Address, error) {
	var a entity.Address
	err := r.DB.WithContext(ctx).
		Preload("DeliveryZone").
		Where("id = ? AND user_id = ?", id, userID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AddressRepository) FindZone(ctx context.Context, id uint) (*entity.DeliveryZone, error) {
	var z entity.DeliveryZone
	if err := r.DB.WithContext(ctx).First(&z, id).Error; err != nil {
		return nil, err
	}
	return &z, nil
}

func (r *AddressRepository) ListZones(ctx context.Context) ([]entity.DeliveryZone, error) {
	var out []entity.DeliveryZone
	err := r.DB.WithContext(ctx).Order("city, area_name").Find(&out).Error
	return out, err
}

// clear defaults ของ user ก่อนตั้งอันใหม่ (index กันซ้ำอยู่แล้ว แต่ต้องเคลียร์ก่อนไม่งั้นชน)
func clearDefaults(tx *gorm.DB, userID uint) error {
	return tx.Model(&entity.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}

func (r *AddressRepository) Create(ctx context.Context, a *entity.Address) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if a.IsDefault {
			if err := clearDefaults(tx, a.UserID); err != nil {
				return err
			}
		}
		return tx.Create(a).Error
	})
}

func (r *AddressRepository) Update(ctx context.Context, userID, id uint, fields map[string]any) error {
	res := r.DB.WithContext(ctx).Model(&entity.Address{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AddressRepository) SetDefault(ctx context.Context, userID, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearDefaults(tx, userID); err != nil {
			return err
		}
		res := tx.Model(&entity.Address{}).
			Where("id = ? AND user_id = ?", id, userID).
			Update("is_default", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// SoftDelete drops the default flag too, so a deleted row never holds it.
func (r *AddressRepository) SoftDelete(ctx context.Context, userID, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Address{}).
			Where("id = ? AND user_id = ?", id, userID).
			Update("is_default", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Address{}).Error
	})
}
