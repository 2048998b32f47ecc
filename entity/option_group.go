package entity

import (
	"gorm.io/gorm"
)

// OptionGroup is a set of choices on a menu item, e.g. "Size".
type OptionGroup struct {
	gorm.Model
	MenuItemID   uint   `json:"menuItemId" gorm:"index"`
	Name         string `json:"name"`
	SingleSelect bool   `json:"singleSelect"`
	IsRequired   bool   `json:"isRequired"`
	SortOrder    int    `json:"sortOrder"`

	Values []OptionValue `json:"values" gorm:"constraint:OnDelete:CASCADE;"`
}

// DefaultValue is the first value in load order; single-select groups fall
// back to it when the caller picked nothing.
func (g *OptionGroup) DefaultValue() (OptionValue, bool) {
	if len(g.Values) == 0 {
		return OptionValue{}, false
	}
	return g.Values[0], true
}

func (g *OptionGroup) Value(id uint) (OptionValue, bool) {
	for _, v := range g.Values {
		if v.ID == id {
			return v, true
		}
	}
	return OptionValue{}, false
}

type OptionValue struct {
	gorm.Model
	OptionGroupID uint   `json:"optionGroupId" gorm:"index"`
	Name          string `json:"name"`
	PriceModifier int64  `json:"priceModifier"`
	SortOrder     int    `json:"sortOrder"`
}
