package entity

import (
	"gorm.io/gorm"
)

type Branch struct {
	gorm.Model
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	IsActive bool   `json:"isActive" gorm:"not null;default:true"`
}
