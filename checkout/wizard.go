// Package checkout is the three step checkout flow over a cart: pick the
// order type, pick where it goes, review and pay.
package checkout

import (
	"strings"

	"foodcart/cart"
	"foodcart/entity"
	"foodcart/pkg/apperr"
)

type Step int

const (
	OrderTypeSelection Step = iota + 1
	DestinationSelection
	ReviewAndPayment
)

func (s Step) String() string {
	switch s {
	case OrderTypeSelection:
		return "order_type"
	case DestinationSelection:
		return "destination"
	case ReviewAndPayment:
		return "review"
	default:
		return "closed"
	}
}

var (
	ErrNotOpen      = apperr.Invalid("checkout is not open")
	ErrConfirmClose = apperr.Invalid("cancel order? confirm to discard checkout progress")
	ErrSubmitting   = apperr.Invalid("order is already being submitted")
	ErrPromoApplied = apperr.Invalid("a promo code is already applied")
	ErrInvalidPromo = apperr.Invalid("invalid promo code")
	ErrNoOrderType  = apperr.Invalid("choose delivery or pickup")
	ErrNoAddress    = apperr.Invalid("choose a delivery address")
	ErrNoBranch     = apperr.Invalid("choose a pickup branch")
	ErrUnknownStep  = apperr.Invalid("unknown checkout step")
)

type Totals struct {
	Subtotal      int64 `json:"subtotal"`
	DeliveryPrice int64 `json:"deliveryPrice"`
	Discount      int64 `json:"discount"`
	FinalTotal    int64 `json:"finalTotal"`
}

// Draft is everything order submission needs, captured at submit time.
type Draft struct {
	Cart      cart.Snapshot
	Totals    Totals
	Notes     string
	PromoCode string
}

// Wizard drives checkout for one cart. Like the cart it is not safe for
// concurrent use.
type Wizard struct {
	cart  *cart.Store
	promo Promo

	open       bool
	step       Step
	promoCode  string
	notes      string
	submitting bool
}

func New(c *cart.Store, promo Promo) *Wizard {
	return &Wizard{cart: c, promo: promo}
}

// Open starts checkout at the first step. Opening an open wizard keeps its
// progress.
func (w *Wizard) Open() {
	if w.open {
		return
	}
	w.open = true
	w.step = OrderTypeSelection
}

func (w *Wizard) IsOpen() bool     { return w.open }
func (w *Wizard) Submitting() bool { return w.submitting }
func (w *Wizard) Notes() string    { return w.notes }

func (w *Wizard) Step() Step {
	if !w.open {
		return 0
	}
	return w.step
}

func (w *Wizard) PromoApplied() bool { return w.promoCode != "" }

// Ready reports whether the current step may continue. It never picks a
// selection on the user's behalf.
func (w *Wizard) Ready() error {
	if !w.open {
		return ErrNotOpen
	}
	switch w.step {
	case OrderTypeSelection:
		if !w.cart.OrderType().Valid() {
			return ErrNoOrderType
		}
		return nil
	case DestinationSelection:
		return destinationReady(w.cart)
	case ReviewAndPayment:
		if w.submitting {
			return ErrSubmitting
		}
		// the cart can still change after step 2 was passed
		return destinationReady(w.cart)
	default:
		return ErrUnknownStep
	}
}

func destinationReady(c *cart.Store) error {
	switch c.OrderType() {
	case entity.OrderTypeDelivery:
		if c.SelectedAddress() == nil {
			return ErrNoAddress
		}
	case entity.OrderTypePickup:
		if c.SelectedBranch() == nil {
			return ErrNoBranch
		}
	default:
		return ErrNoOrderType
	}
	return nil
}

// Continue advances one step. At the review step there is no next step:
// it returns submit=true and the caller places the order.
func (w *Wizard) Continue() (submit bool, err error) {
	if err := w.Ready(); err != nil {
		return false, err
	}
	if w.step == ReviewAndPayment {
		return true, nil
	}
	w.step++
	return false, nil
}

// Back is always allowed and keeps every selection made so far.
func (w *Wizard) Back() {
	if w.open && w.step > OrderTypeSelection {
		w.step--
	}
}

// Close ends checkout. It needs confirmed=true because the progress is lost.
// The cart itself is kept.
func (w *Wizard) Close(confirmed bool) error {
	if !w.open {
		return nil
	}
	if w.submitting {
		return ErrSubmitting
	}
	if !confirmed {
		return ErrConfirmClose
	}
	w.reset()
	return nil
}

// ApplyPromo is one-shot: after a code is accepted it cannot be changed.
func (w *Wizard) ApplyPromo(code string) error {
	if w.promoCode != "" {
		return ErrPromoApplied
	}
	if !w.promo.Matches(code) {
		return ErrInvalidPromo
	}
	w.promoCode = strings.ToUpper(strings.TrimSpace(code))
	return nil
}

func (w *Wizard) SetNotes(notes string) {
	w.notes = strings.TrimSpace(notes)
}

// Totals prices the review step. The discount is taken from the subtotal,
// not from subtotal plus delivery.
func (w *Wizard) Totals() Totals {
	subtotal := w.cart.Subtotal()
	var delivery int64
	if w.cart.OrderType() == entity.OrderTypeDelivery {
		delivery = w.cart.DeliveryPrice()
	}
	var discount int64
	if w.promoCode != "" {
		discount = w.promo.DiscountOf(subtotal)
	}
	final := subtotal + delivery - discount
	if final < 0 {
		final = 0
	}
	return Totals{Subtotal: subtotal, DeliveryPrice: delivery, Discount: discount, FinalTotal: final}
}

// BeginSubmit marks the wizard as submitting and captures the draft. Every
// successful call must be paired with FinishSubmit.
func (w *Wizard) BeginSubmit() (Draft, error) {
	if w.submitting {
		return Draft{}, ErrSubmitting
	}
	if !w.open || w.step != ReviewAndPayment {
		return Draft{}, apperr.Invalid("finish the checkout steps before placing the order")
	}
	w.submitting = true
	return Draft{
		Cart:      w.cart.Snapshot(),
		Totals:    w.Totals(),
		Notes:     w.notes,
		PromoCode: w.promoCode,
	}, nil
}

// FinishSubmit clears the submitting flag. On success it empties the cart
// and closes checkout; on failure everything is left for a retry.
func (w *Wizard) FinishSubmit(placed bool) {
	w.submitting = false
	if !placed {
		return
	}
	w.cart.ClearCart()
	w.reset()
}

func (w *Wizard) reset() {
	w.open = false
	w.step = 0
	w.promoCode = ""
	w.notes = ""
	w.submitting = false
}
