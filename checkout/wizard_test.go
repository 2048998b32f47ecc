package checkout

import (
	"errors"
	"testing"

	"foodcart/cart"
	"foodcart/entity"
	"foodcart/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPromo = Promo{Code: "WELCOME10", Percent: 10}

func product(id uint, price int64) entity.MenuItem {
	m := entity.MenuItem{Name: "p", Price: price}
	m.ID = id
	return m
}

func zonedAddress(price int64) *entity.Address {
	a := &entity.Address{Name: "home", DeliveryZone: entity.DeliveryZone{City: "BKK", DeliveryPrice: price}}
	a.ID = 5
	return a
}

func activeBranch() *entity.Branch {
	b := &entity.Branch{Name: "central", IsActive: true}
	b.ID = 9
	return b
}

func openAtDestination(t *testing.T, c *cart.Store) *Wizard {
	t.Helper()
	w := New(c, testPromo)
	w.Open()
	submit, err := w.Continue()
	require.NoError(t, err)
	require.False(t, submit)
	require.Equal(t, DestinationSelection, w.Step())
	return w
}

func TestWizard_StepOneAlwaysReadyWithDefault(t *testing.T) {
	w := New(cart.New(), testPromo)
	assert.ErrorIs(t, w.Ready(), ErrNotOpen)

	w.Open()
	assert.Equal(t, OrderTypeSelection, w.Step())
	assert.NoError(t, w.Ready())
}

func TestWizard_DestinationGate(t *testing.T) {
	tests := []struct {
		name      string
		orderType entity.OrderType
		selectFn  func(c *cart.Store)
		wantErr   error
	}{
		{
			name:      "delivery without address",
			orderType: entity.OrderTypeDelivery,
			selectFn:  func(c *cart.Store) {},
			wantErr:   ErrNoAddress,
		},
		{
			name:      "delivery with address",
			orderType: entity.OrderTypeDelivery,
			selectFn:  func(c *cart.Store) { c.SetSelectedAddress(zonedAddress(10)) },
		},
		{
			name:      "delivery with only a branch",
			orderType: entity.OrderTypeDelivery,
			selectFn:  func(c *cart.Store) { c.SetSelectedBranch(activeBranch()) },
			wantErr:   ErrNoAddress,
		},
		{
			name:      "pickup without branch",
			orderType: entity.OrderTypePickup,
			selectFn:  func(c *cart.Store) {},
			wantErr:   ErrNoBranch,
		},
		{
			name:      "pickup with branch",
			orderType: entity.OrderTypePickup,
			selectFn:  func(c *cart.Store) { c.SetSelectedBranch(activeBranch()) },
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			c := cart.New()
			c.SetOrderType(testCase.orderType)
			w := openAtDestination(t, c)
			testCase.selectFn(c)

			_, err := w.Continue()
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				assert.Equal(t, DestinationSelection, w.Step())
				assert.Equal(t, apperr.Validation, apperr.KindOf(err))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, ReviewAndPayment, w.Step())
		})
	}
}

func TestWizard_ScenarioPickupUnblocksOnBranch(t *testing.T) {
	c := cart.New()
	c.SetOrderType(entity.OrderTypePickup)
	w := openAtDestination(t, c)

	assert.ErrorIs(t, w.Ready(), ErrNoBranch)

	c.SetSelectedBranch(activeBranch())
	assert.NoError(t, w.Ready())
}

func TestWizard_BackKeepsSelections(t *testing.T) {
	c := cart.New()
	c.SetOrderType(entity.OrderTypeDelivery)
	w := openAtDestination(t, c)
	c.SetSelectedAddress(zonedAddress(10))
	c.SetDeliveryPrice(10)
	_, err := w.Continue()
	require.NoError(t, err)

	w.Back()
	w.Back()
	w.Back()
	assert.Equal(t, OrderTypeSelection, w.Step())
	assert.Equal(t, entity.OrderTypeDelivery, c.OrderType())
	require.NotNil(t, c.SelectedAddress())

	_, err = w.Continue()
	require.NoError(t, err)
	_, err = w.Continue()
	require.NoError(t, err)
	assert.Equal(t, ReviewAndPayment, w.Step())
}

func TestWizard_ContinueAtReviewRequestsSubmit(t *testing.T) {
	c := cart.New()
	w := openAtDestination(t, c)
	c.SetSelectedBranch(activeBranch())
	_, err := w.Continue()
	require.NoError(t, err)

	submit, err := w.Continue()
	assert.NoError(t, err)
	assert.True(t, submit)
	assert.Equal(t, ReviewAndPayment, w.Step())
}

func TestWizard_ReviewRechecksDestination(t *testing.T) {
	c := cart.New()
	c.AddToCart(product(1, 20), 1, nil, "")
	w := openAtDestination(t, c)
	c.SetSelectedBranch(activeBranch())
	_, err := w.Continue()
	require.NoError(t, err)
	require.NoError(t, w.Ready())

	// switching to delivery at review drops the branch and has no address yet
	c.SetOrderType(entity.OrderTypeDelivery)
	assert.ErrorIs(t, w.Ready(), ErrNoAddress)

	submit, err := w.Continue()
	assert.ErrorIs(t, err, ErrNoAddress)
	assert.False(t, submit)
	assert.Equal(t, ReviewAndPayment, w.Step())

	c.SetSelectedAddress(zonedAddress(10))
	assert.NoError(t, w.Ready())
}

func TestWizard_CloseNeedsConfirmation(t *testing.T) {
	c := cart.New()
	c.AddToCart(product(1, 20), 1, nil, "")
	w := New(c, testPromo)
	w.Open()
	require.NoError(t, w.ApplyPromo("welcome10"))

	err := w.Close(false)
	assert.ErrorIs(t, err, ErrConfirmClose)
	assert.True(t, w.IsOpen())

	require.NoError(t, w.Close(true))
	assert.False(t, w.IsOpen())
	assert.False(t, w.PromoApplied())
	assert.Equal(t, 1, c.Len())

	// closing a closed wizard is a no-op
	assert.NoError(t, w.Close(false))
}

func TestWizard_PromoIsOneShot(t *testing.T) {
	w := New(cart.New(), testPromo)

	assert.ErrorIs(t, w.ApplyPromo("nope"), ErrInvalidPromo)
	assert.ErrorIs(t, w.ApplyPromo(""), ErrInvalidPromo)
	assert.False(t, w.PromoApplied())

	assert.NoError(t, w.ApplyPromo("  Welcome10 "))
	assert.True(t, w.PromoApplied())
	assert.ErrorIs(t, w.ApplyPromo("WELCOME10"), ErrPromoApplied)
}

func TestWizard_ScenarioDeliveryTotalsWithPromo(t *testing.T) {
	c := cart.New()
	c.AddToCart(product(1, 20), 2, nil, "")
	c.SetOrderType(entity.OrderTypeDelivery)
	addr := zonedAddress(10)
	c.SetSelectedAddress(addr)
	c.SetDeliveryPrice(addr.DeliveryZone.DeliveryPrice)

	assert.Equal(t, int64(50), c.TotalPrice())

	w := New(c, testPromo)
	require.NoError(t, w.ApplyPromo("welcome10"))

	got := w.Totals()
	assert.Equal(t, Totals{Subtotal: 40, DeliveryPrice: 10, Discount: 4, FinalTotal: 46}, got)
}

func TestWizard_PickupHasNoDeliveryPrice(t *testing.T) {
	c := cart.New()
	c.AddToCart(product(1, 20), 2, nil, "")
	c.SetDeliveryPrice(10)
	c.SetOrderType(entity.OrderTypePickup)

	w := New(c, testPromo)
	assert.Equal(t, int64(0), w.Totals().DeliveryPrice)
	assert.Equal(t, int64(40), w.Totals().FinalTotal)
}

func TestWizard_SubmitLifecycle(t *testing.T) {
	c := cart.New()
	c.AddToCart(product(1, 20), 2, nil, "")
	w := openAtDestination(t, c)
	c.SetSelectedBranch(activeBranch())
	_, err := w.Continue()
	require.NoError(t, err)
	w.SetNotes("  ring twice ")

	draft, err := w.BeginSubmit()
	require.NoError(t, err)
	assert.Equal(t, "ring twice", draft.Notes)
	assert.Len(t, draft.Cart.Items, 1)
	assert.True(t, w.Submitting())

	_, err = w.BeginSubmit()
	assert.ErrorIs(t, err, ErrSubmitting)
	assert.ErrorIs(t, w.Close(true), ErrSubmitting)

	// failed attempt: cart and progress stay
	w.FinishSubmit(false)
	assert.False(t, w.Submitting())
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, ReviewAndPayment, w.Step())

	_, err = w.BeginSubmit()
	require.NoError(t, err)
	w.FinishSubmit(true)
	assert.True(t, c.IsEmpty())
	assert.False(t, w.IsOpen())
	assert.Equal(t, "", w.Notes())
}

func TestWizard_BeginSubmitBeforeReview(t *testing.T) {
	w := New(cart.New(), testPromo)
	w.Open()

	_, err := w.BeginSubmit()
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	assert.False(t, w.Submitting())
}

func TestPromo_DiscountOf(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		want     int64
	}{
		{name: "ten percent of forty", subtotal: 40, want: 4},
		{name: "rounds half up", subtotal: 45, want: 5},
		{name: "rounds down", subtotal: 44, want: 4},
		{name: "zero", subtotal: 0, want: 0},
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, testPromo.DiscountOf(testCase.subtotal))
		})
	}
}
