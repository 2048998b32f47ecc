package entity

import (
	"gorm.io/gorm"
)

type OrderType string

const (
	OrderTypeDelivery OrderType = "delivery"
	OrderTypePickup   OrderType = "pickup"
)

func (t OrderType) Valid() bool {
	return t == OrderTypeDelivery || t == OrderTypePickup
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	gorm.Model
	UserID uint `json:"userId" gorm:"index"`
	User   User `json:"-"`

	OrderType OrderType `json:"orderType" gorm:"size:16;not null"`
	// ใช้ได้อย่างใดอย่างหนึ่ง: delivery → AddressID, pickup → BranchID
	AddressID *uint    `json:"addressId"`
	Address   *Address `json:"-"`
	BranchID  *uint    `json:"branchId"`
	Branch    *Branch  `json:"-"`

	Subtotal      int64  `json:"subtotal"`
	DeliveryPrice int64  `json:"deliveryPrice"`
	Discount      int64  `json:"discount"`
	Total         int64  `json:"total"`
	PromoCode     string `json:"promoCode,omitempty"`
	Notes         string `json:"notes"`

	Status OrderStatus `json:"status" gorm:"size:16;not null;default:pending"`

	Items []OrderItem `json:"items,omitempty" gorm:"constraint:OnDelete:CASCADE;"`
}

type OrderItem struct {
	gorm.Model
	OrderID uint  `json:"orderId" gorm:"index"`
	Order   Order `json:"-"`

	MenuItemID uint     `json:"menuItemId"`
	MenuItem   MenuItem `json:"-"`
	Name       string   `json:"name"`

	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
	Total     int64  `json:"total"`
	Notes     string `json:"notes"`

	SelectedOptions map[uint]uint `json:"selectedOptions" gorm:"type:text;serializer:json"`
	// NULL when the line had no add-ons, never "[]"
	AdditionalPieces []AdditionalPiece `json:"additionalPieces" gorm:"type:text;serializer:json"`
}

// AdditionalPiece is an ad-hoc add-on priced per unit of its cart line.
type AdditionalPiece struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}
