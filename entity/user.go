package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `json:"-"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`

	Addresses []Address  `json:"-"`
	Orders    []Order    `json:"-"`
	Favorites []Favorite `json:"-"`
}

type Favorite struct {
	gorm.Model
	UserID     uint     `json:"userId" gorm:"uniqueIndex:idx_favorites_user_item"`
	MenuItemID uint     `json:"menuItemId" gorm:"uniqueIndex:idx_favorites_user_item"`
	MenuItem   MenuItem `json:"menuItem"`
}
