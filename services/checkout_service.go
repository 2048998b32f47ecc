package services

import (
	"context"
	"errors"

	"foodcart/cart"
	"foodcart/checkout"
	"foodcart/entity"
	"foodcart/pkg/apperr"
	"foodcart/pkg/lock"
	"foodcart/repository"

	"go.uber.org/zap"
)

// CheckoutService drives the wizard of each session and hands the draft to
// OrderService when the review step continues.
type CheckoutService struct {
	Sessions  *SessionStore
	Orders    *OrderService
	Addresses *repository.AddressRepository
	Lock      lock.SubmitLock
	Log       *zap.Logger
}

func NewCheckoutService(sessions *SessionStore, orders *OrderService, addresses *repository.AddressRepository, l lock.SubmitLock, log *zap.Logger) *CheckoutService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CheckoutService{Sessions: sessions, Orders: orders, Addresses: addresses, Lock: l, Log: log}
}

type CheckoutState struct {
	Open         bool             `json:"open"`
	Step         int              `json:"step"`
	StepName     string           `json:"stepName"`
	Ready        bool             `json:"ready"`
	Blocker      string           `json:"blocker,omitempty"`
	OrderType    entity.OrderType `json:"orderType"`
	Address      *entity.Address  `json:"address"`
	Branch       *entity.Branch   `json:"branch"`
	NeedsAddress bool             `json:"needsAddress"`
	PromoApplied bool             `json:"promoApplied"`
	Notes        string           `json:"notes"`
	Submitting   bool             `json:"submitting"`
	Totals       checkout.Totals  `json:"totals"`
	Cart         cart.Snapshot    `json:"cart"`
}

type SubmitResult struct {
	OrderID uint `json:"orderId"`
}

// NextResult is what a Continue produced: either a new state, or a placed
// order when the review step was continued.
type NextResult struct {
	State  CheckoutState `json:"state"`
	Placed *SubmitResult `json:"placed,omitempty"`
}

func stateOf(c *cart.Store, w *checkout.Wizard) CheckoutState {
	st := CheckoutState{
		Open:         w.IsOpen(),
		Step:         int(w.Step()),
		StepName:     w.Step().String(),
		OrderType:    c.OrderType(),
		Address:      c.SelectedAddress(),
		Branch:       c.SelectedBranch(),
		PromoApplied: w.PromoApplied(),
		Notes:        w.Notes(),
		Submitting:   w.Submitting(),
		Totals:       w.Totals(),
		Cart:         c.Snapshot(),
	}
	if err := w.Ready(); err != nil {
		st.Blocker = apperr.Message(err)
	} else {
		st.Ready = true
	}
	return st
}

// State reports the wizard plus needsAddress, which is true when a delivery
// order has no saved address to pick from.
func (s *CheckoutService) State(ctx context.Context, userID uint) (CheckoutState, error) {
	st := s.read(userID)
	if st.OrderType == entity.OrderTypeDelivery && st.Address == nil {
		list, err := s.Addresses.ListForUser(ctx, userID)
		if err != nil {
			return st, apperr.FromRead("addresses", err)
		}
		st.NeedsAddress = len(list) == 0
	}
	return st, nil
}

func (s *CheckoutService) read(userID uint) CheckoutState {
	var st CheckoutState
	_ = s.Sessions.Do(userID, func(c *cart.Store, w *checkout.Wizard) error {
		st = stateOf(c, w)
		return nil
	})
	return st
}

func (s *CheckoutService) apply(userID uint, fn func(c *cart.Store, w *checkout.Wizard) error) (CheckoutState, error) {
	var st CheckoutState
	err := s.Sessions.Do(userID, func(c *cart.Store, w *checkout.Wizard) error {
		err := fn(c, w)
		// the state is returned on errors too, so the caller can show the blocker
		st = stateOf(c, w)
		return err
	})
	return st, err
}

func (s *CheckoutService) Open(userID uint) (CheckoutState, error) {
	return s.apply(userID, func(_ *cart.Store, w *checkout.Wizard) error {
		w.Open()
		return nil
	})
}

func (s *CheckoutService) Back(userID uint) (CheckoutState, error) {
	return s.apply(userID, func(_ *cart.Store, w *checkout.Wizard) error {
		if !w.IsOpen() {
			return checkout.ErrNotOpen
		}
		w.Back()
		return nil
	})
}

func (s *CheckoutService) Cancel(userID uint, confirmed bool) (CheckoutState, error) {
	return s.apply(userID, func(_ *cart.Store, w *checkout.Wizard) error {
		return w.Close(confirmed)
	})
}

func (s *CheckoutService) ApplyPromo(userID uint, code string) (CheckoutState, error) {
	return s.apply(userID, func(_ *cart.Store, w *checkout.Wizard) error {
		if !w.IsOpen() {
			return checkout.ErrNotOpen
		}
		return w.ApplyPromo(code)
	})
}

func (s *CheckoutService) SetNotes(userID uint, notes string) (CheckoutState, error) {
	return s.apply(userID, func(_ *cart.Store, w *checkout.Wizard) error {
		if !w.IsOpen() {
			return checkout.ErrNotOpen
		}
		w.SetNotes(notes)
		return nil
	})
}

// Next continues the wizard. Continuing the review step places the order.
func (s *CheckoutService) Next(ctx context.Context, userID uint) (NextResult, error) {
	var submit bool
	st, err := s.apply(userID, func(_ *cart.Store, w *checkout.Wizard) error {
		var err error
		submit, err = w.Continue()
		return err
	})
	if err != nil || !submit {
		return NextResult{State: st}, err
	}

	placed, err := s.Submit(ctx, userID)
	if err != nil {
		return NextResult{State: s.read(userID)}, err
	}
	return NextResult{State: s.read(userID), Placed: &placed}, nil
}

// Submit places the order for the session's draft. The session lock is not
// held during the write; the wizard's submitting flag and the submit lock
// keep a second submit out meanwhile.
func (s *CheckoutService) Submit(ctx context.Context, userID uint) (SubmitResult, error) {
	if userID == 0 {
		return SubmitResult{}, ErrNotSignedIn
	}
	var draft checkout.Draft
	err := s.Sessions.Do(userID, func(_ *cart.Store, w *checkout.Wizard) error {
		d, err := w.BeginSubmit()
		if err != nil {
			return err
		}
		if err := ValidateDraft(userID, d); err != nil {
			w.FinishSubmit(false)
			return err
		}
		draft = d
		return nil
	})
	if err != nil {
		return SubmitResult{}, err
	}

	// End refuses while submitting, so this reaches the same session
	placed := false
	defer func() {
		_ = s.Sessions.Do(userID, func(_ *cart.Store, w *checkout.Wizard) error {
			w.FinishSubmit(placed)
			return nil
		})
	}()

	release, err := s.Lock.Acquire(ctx, userID)
	if errors.Is(err, lock.ErrHeld) {
		return SubmitResult{}, checkout.ErrSubmitting
	}
	if err != nil {
		s.Log.Warn("submit lock unavailable", zap.Uint("user_id", userID), zap.Error(err))
		return SubmitResult{}, apperr.Wrap(apperr.NetworkFailure, "could not start order submission, please try again", err)
	}
	defer release()

	id, err := s.Orders.Submit(ctx, userID, draft)
	if err != nil {
		return SubmitResult{}, err
	}
	placed = true
	return SubmitResult{OrderID: id}, nil
}
