package entity

import (
	"gorm.io/gorm"
)

type DeliveryZone struct {
	gorm.Model
	City          string `json:"city"`
	AreaName      string `json:"areaName"`
	DeliveryPrice int64  `json:"deliveryPrice"`
}

// Address belongs to one user. The partial unique index keeps at most one
// live default per user at the database level.
type Address struct {
	gorm.Model
	UserID    uint   `json:"userId" gorm:"index;uniqueIndex:idx_addresses_user_default,where:is_default = true AND deleted_at IS NULL"`
	User      User   `json:"-"`
	Name      string `json:"name"`
	Street    string `json:"street"`
	Notes     string `json:"notes"`
	IsDefault bool   `json:"isDefault" gorm:"not null;default:false"`

	DeliveryZoneID uint         `json:"deliveryZoneId"`
	DeliveryZone   DeliveryZone `json:"deliveryZone"`
}
