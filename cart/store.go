// Package cart holds the in-memory cart of one user session. A Store is not
// safe for concurrent use; the owning session serializes access.
package cart

import (
	"foodcart/entity"

	"github.com/google/uuid"
)

type Store struct {
	items         []*Item
	orderType     entity.OrderType
	address       *entity.Address
	branch        *entity.Branch
	deliveryPrice int64

	newID func() string
}

func New() *Store {
	return &Store{orderType: entity.OrderTypePickup, newID: uuid.NewString}
}

// AddToCart merges into an existing line with the same product and options,
// otherwise appends a new line. quantity below 1 counts as 1.
func (s *Store) AddToCart(product entity.MenuItem, quantity int, options map[uint]uint, notes string, pieces ...entity.AdditionalPiece) Item {
	if quantity < 1 {
		quantity = 1
	}
	if len(pieces) == 0 {
		pieces = nil
	}
	resolved, modifiers := resolveOptions(product, options)
	key := lineKey(product.ID, resolved, pieces)

	for _, it := range s.items {
		if lineKey(it.MenuItem.ID, it.Options, it.AdditionalPieces) == key {
			it.Quantity += quantity
			return it.clone()
		}
	}

	it := &Item{
		ID:               s.newID(),
		MenuItem:         product,
		Quantity:         quantity,
		Options:          resolved,
		Notes:            notes,
		AdditionalPieces: pieces,
		UnitPrice:        product.Price + modifiers + piecesPrice(pieces),
	}
	s.items = append(s.items, it)
	return it.clone()
}

// UpdateQuantity moves a line's quantity by delta. It never takes a line
// below 1; removing a line is RemoveFromCart's job. Unknown ids are ignored.
func (s *Store) UpdateQuantity(itemID string, delta int) bool {
	it := s.find(itemID)
	if it == nil || delta == 0 {
		return false
	}
	next := it.Quantity + delta
	if next < 1 {
		return false
	}
	it.Quantity = next
	return true
}

func (s *Store) RemoveFromCart(itemID string) bool {
	for i, it := range s.items {
		if it.ID == itemID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// SetOrderType keeps the destinations exclusive: delivery drops the branch,
// pickup drops the address and the delivery price.
func (s *Store) SetOrderType(t entity.OrderType) {
	s.orderType = t
	switch t {
	case entity.OrderTypeDelivery:
		s.branch = nil
	case entity.OrderTypePickup:
		s.address = nil
		s.deliveryPrice = 0
	}
}

func (s *Store) SetSelectedAddress(a *entity.Address) {
	if a == nil {
		s.address = nil
		return
	}
	cp := *a
	s.address = &cp
}

func (s *Store) SetSelectedBranch(b *entity.Branch) {
	if b == nil {
		s.branch = nil
		return
	}
	cp := *b
	s.branch = &cp
}

func (s *Store) SetDeliveryPrice(price int64) {
	if price < 0 {
		price = 0
	}
	s.deliveryPrice = price
}

// ClearCart empties the cart and returns it to the pickup default.
func (s *Store) ClearCart() {
	s.items = nil
	s.address = nil
	s.branch = nil
	s.deliveryPrice = 0
	s.orderType = entity.OrderTypePickup
}

func (s *Store) Items() []Item {
	out := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it.clone())
	}
	return out
}

func (s *Store) Item(itemID string) (Item, bool) {
	it := s.find(itemID)
	if it == nil {
		return Item{}, false
	}
	return it.clone(), true
}

func (s *Store) Len() int                    { return len(s.items) }
func (s *Store) IsEmpty() bool               { return len(s.items) == 0 }
func (s *Store) OrderType() entity.OrderType { return s.orderType }
func (s *Store) DeliveryPrice() int64        { return s.deliveryPrice }

func (s *Store) SelectedAddress() *entity.Address {
	if s.address == nil {
		return nil
	}
	cp := *s.address
	return &cp
}

func (s *Store) SelectedBranch() *entity.Branch {
	if s.branch == nil {
		return nil
	}
	cp := *s.branch
	return &cp
}

func (s *Store) Subtotal() int64 {
	var sum int64
	for _, it := range s.items {
		sum += it.TotalPrice()
	}
	return sum
}

// TotalPrice is the cart-level total: subtotal plus delivery, before promos.
func (s *Store) TotalPrice() int64 {
	return s.Subtotal() + s.deliveryPrice
}

// Snapshot is a copy of the cart taken right before an order is placed.
type Snapshot struct {
	Items         []Item           `json:"items"`
	OrderType     entity.OrderType `json:"orderType"`
	Address       *entity.Address  `json:"address"`
	Branch        *entity.Branch   `json:"branch"`
	DeliveryPrice int64            `json:"deliveryPrice"`
	Subtotal      int64            `json:"subtotal"`
	TotalPrice    int64            `json:"totalPrice"`
}

func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Items:         s.Items(),
		OrderType:     s.orderType,
		Address:       s.SelectedAddress(),
		Branch:        s.SelectedBranch(),
		DeliveryPrice: s.deliveryPrice,
		Subtotal:      s.Subtotal(),
		TotalPrice:    s.TotalPrice(),
	}
}

func (s *Store) find(itemID string) *Item {
	for _, it := range s.items {
		if it.ID == itemID {
			return it
		}
	}
	return nil
}
