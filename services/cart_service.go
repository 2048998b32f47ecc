package services

import (
	"context"
	"strings"

	"foodcart/cart"
	"foodcart/checkout"
	"foodcart/entity"
	"foodcart/pkg/apperr"
	"foodcart/repository"
)

var (
	ErrUnavailable    = apperr.Invalid("this item is not available right now")
	ErrInvalidPiece   = apperr.Invalid("additional pieces need a name, a price of 0 or more and a quantity of at least 1")
	ErrInvalidType    = apperr.Invalid("order type must be delivery or pickup")
	ErrNotDelivery    = apperr.Invalid("switch the order to delivery before choosing an address")
	ErrNotPickupOrder = apperr.Invalid("switch the order to pickup before choosing a branch")
	ErrItemNotInCart  = apperr.New(apperr.NotFound, "cart item not found")
	ErrQuantityDelta  = apperr.Invalid("delta must be 1 or -1")
)

type CartService struct {
	Sessions  *SessionStore
	Menu      *repository.MenuItemRepository
	Addresses *repository.AddressRepository
	Branches  *repository.BranchRepository
}

func NewCartService(sessions *SessionStore, menu *repository.MenuItemRepository, addresses *repository.AddressRepository, branches *repository.BranchRepository) *CartService {
	return &CartService{Sessions: sessions, Menu: menu, Addresses: addresses, Branches: branches}
}

// ----- DTOs from Controller -----
type AddItemReq struct {
	MenuItemID       uint                     `json:"menuItemId" binding:"required"`
	Quantity         int                      `json:"quantity"`
	Options          map[uint]uint            `json:"options"`
	Notes            string                   `json:"notes"`
	AdditionalPieces []entity.AdditionalPiece `json:"additionalPieces"`
}

// mutate runs fn on the user's cart unless a submission is in flight; a
// successful submit clears the cart, so edits made meanwhile would be lost.
func (s *CartService) mutate(userID uint, fn func(c *cart.Store) error) (cart.Snapshot, error) {
	var snap cart.Snapshot
	err := s.Sessions.Do(userID, func(c *cart.Store, w *checkout.Wizard) error {
		if w.Submitting() {
			return checkout.ErrSubmitting
		}
		if err := fn(c); err != nil {
			return err
		}
		snap = c.Snapshot()
		return nil
	})
	return snap, err
}

func (s *CartService) View(userID uint) cart.Snapshot {
	var snap cart.Snapshot
	_ = s.Sessions.Do(userID, func(c *cart.Store, _ *checkout.Wizard) error {
		snap = c.Snapshot()
		return nil
	})
	return snap
}

// AddItem loads the product first, outside the session lock.
func (s *CartService) AddItem(ctx context.Context, userID uint, req AddItemReq) (cart.Item, error) {
	for _, p := range req.AdditionalPieces {
		if strings.TrimSpace(p.Name) == "" || p.Price < 0 || p.Quantity < 1 {
			return cart.Item{}, ErrInvalidPiece
		}
	}
	product, err := s.Menu.FindByID(ctx, req.MenuItemID)
	if err != nil {
		return cart.Item{}, apperr.FromRead("menu item", err)
	}
	if !product.IsAvailable {
		return cart.Item{}, ErrUnavailable
	}

	var added cart.Item
	_, err = s.mutate(userID, func(c *cart.Store) error {
		added = c.AddToCart(*product, req.Quantity, req.Options, strings.TrimSpace(req.Notes), req.AdditionalPieces...)
		return nil
	})
	return added, err
}

func (s *CartService) UpdateQuantity(userID uint, itemID string, delta int) (cart.Snapshot, error) {
	if delta != 1 && delta != -1 {
		return cart.Snapshot{}, ErrQuantityDelta
	}
	return s.mutate(userID, func(c *cart.Store) error {
		if _, ok := c.Item(itemID); !ok {
			return ErrItemNotInCart
		}
		// at quantity 1 a decrement is a no-op
		c.UpdateQuantity(itemID, delta)
		return nil
	})
}

func (s *CartService) RemoveItem(userID uint, itemID string) (cart.Snapshot, error) {
	return s.mutate(userID, func(c *cart.Store) error {
		if !c.RemoveFromCart(itemID) {
			return ErrItemNotInCart
		}
		return nil
	})
}

func (s *CartService) Clear(userID uint) (cart.Snapshot, error) {
	return s.mutate(userID, func(c *cart.Store) error {
		c.ClearCart()
		return nil
	})
}

func (s *CartService) SetOrderType(userID uint, t entity.OrderType) (cart.Snapshot, error) {
	if !t.Valid() {
		return cart.Snapshot{}, ErrInvalidType
	}
	return s.mutate(userID, func(c *cart.Store) error {
		c.SetOrderType(t)
		return nil
	})
}

// SelectAddress sets the address and takes the delivery price from its zone.
func (s *CartService) SelectAddress(ctx context.Context, userID, addressID uint) (cart.Snapshot, error) {
	addr, err := s.Addresses.FindForUser(ctx, userID, addressID)
	if err != nil {
		return cart.Snapshot{}, apperr.FromRead("address", err)
	}
	return s.UseAddress(userID, addr)
}

// CanUseAddress reports whether UseAddress would accept an address right
// now, so callers can refuse before creating one.
func (s *CartService) CanUseAddress(userID uint) error {
	return s.Sessions.Do(userID, func(c *cart.Store, w *checkout.Wizard) error {
		if w.Submitting() {
			return checkout.ErrSubmitting
		}
		if c.OrderType() != entity.OrderTypeDelivery {
			return ErrNotDelivery
		}
		return nil
	})
}

// UseAddress is SelectAddress for an address the caller already loaded.
func (s *CartService) UseAddress(userID uint, addr *entity.Address) (cart.Snapshot, error) {
	return s.mutate(userID, func(c *cart.Store) error {
		if c.OrderType() != entity.OrderTypeDelivery {
			return ErrNotDelivery
		}
		c.SetSelectedAddress(addr)
		c.SetDeliveryPrice(addr.DeliveryZone.DeliveryPrice)
		return nil
	})
}

func (s *CartService) SelectBranch(ctx context.Context, userID, branchID uint) (cart.Snapshot, error) {
	b, err := s.Branches.FindActive(ctx, branchID)
	if err != nil {
		return cart.Snapshot{}, apperr.FromRead("branch", err)
	}
	return s.mutate(userID, func(c *cart.Store) error {
		if c.OrderType() != entity.OrderTypePickup {
			return ErrNotPickupOrder
		}
		c.SetSelectedBranch(b)
		return nil
	})
}
