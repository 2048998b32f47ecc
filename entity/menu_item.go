package entity

import (
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`

	MenuItems []MenuItem `json:"-"`
}

type MenuItem struct {
	gorm.Model
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	IsAvailable bool   `json:"isAvailable" gorm:"not null;default:true"`

	CategoryID uint     `json:"categoryId" gorm:"index"`
	Category   Category `json:"-"`

	// preload ตอนอ่านเมนูเสมอ
	OptionGroups []OptionGroup `json:"optionGroups" gorm:"constraint:OnDelete:CASCADE;"`
	Images       []MenuImage   `json:"images" gorm:"constraint:OnDelete:CASCADE;"`
}

// OptionGroup returns the group with id, or nil.
func (m *MenuItem) OptionGroup(id uint) *OptionGroup {
	for i := range m.OptionGroups {
		if m.OptionGroups[i].ID == id {
			return &m.OptionGroups[i]
		}
	}
	return nil
}

type MenuImage struct {
	gorm.Model
	MenuItemID uint   `json:"menuItemId" gorm:"index"`
	URL        string `json:"url"`
	SortOrder  int    `json:"sortOrder"`
}
