package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"foodcart/checkout"
	"foodcart/configs"
	"foodcart/entity"
	"foodcart/pkg/apperr"
	"foodcart/pkg/lock"
	"foodcart/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type checkoutFixture struct {
	db       *gorm.DB
	sessions *SessionStore
	cart     *CartService
	checkout *CheckoutService
	lock     *lock.Local
}

func newCheckoutFixture(t *testing.T) checkoutFixture {
	t.Helper()
	db := newTestDB(t)
	require.NoError(t, configs.SeedCatalog(db))

	menuRepo := repository.NewMenuItemRepository(db)
	addrRepo := repository.NewAddressRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	orders := NewOrderService(repository.NewOrderRepository(db), true, time.Second, nil, nil, nil)

	sessions := NewSessionStore(checkout.Promo{Code: "WELCOME10", Percent: 10})
	l := lock.NewLocal(time.Minute)
	return checkoutFixture{
		db:       db,
		sessions: sessions,
		cart:     NewCartService(sessions, menuRepo, addrRepo, branchRepo),
		checkout: NewCheckoutService(sessions, orders, addrRepo, l, nil),
		lock:     l,
	}
}

func (f checkoutFixture) addAddress(t *testing.T, userID, zoneID uint) *entity.Address {
	t.Helper()
	a := &entity.Address{UserID: userID, Name: "home", Street: "1 Sathorn Rd", DeliveryZoneID: zoneID}
	require.NoError(t, repository.NewAddressRepository(f.db).Create(context.Background(), a))
	return a
}

// toReview opens checkout and walks to the review step.
func (f checkoutFixture) toReview(t *testing.T, userID uint) {
	t.Helper()
	ctx := context.Background()
	_, err := f.checkout.Open(userID)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		res, err := f.checkout.Next(ctx, userID)
		require.NoError(t, err)
		require.Nil(t, res.Placed)
	}
}

func TestCheckout_PickupFlowPlacesOrder(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	const uid = 1

	item, err := f.cart.AddItem(ctx, uid, AddItemReq{MenuItemID: 1, Quantity: 2})
	require.NoError(t, err)
	// Protein defaults to Pork
	assert.Equal(t, int64(60), item.UnitPrice)

	_, err = f.cart.SelectBranch(ctx, uid, 1)
	require.NoError(t, err)

	f.toReview(t, uid)
	res, err := f.checkout.Next(ctx, uid)
	require.NoError(t, err)
	require.NotNil(t, res.Placed)
	assert.NotZero(t, res.Placed.OrderID)

	assert.False(t, res.State.Open)
	assert.Empty(t, res.State.Cart.Items)
	assert.Equal(t, entity.OrderTypePickup, res.State.OrderType)

	var o entity.Order
	require.NoError(t, f.db.Preload("Items").First(&o, res.Placed.OrderID).Error)
	assert.Equal(t, int64(120), o.Total)
	require.Len(t, o.Items, 1)
}

func TestCheckout_DeliveryWithPromo(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	const uid = 2

	_, err := f.cart.AddItem(ctx, uid, AddItemReq{MenuItemID: 2, Quantity: 1})
	require.NoError(t, err)
	_, err = f.cart.SetOrderType(uid, entity.OrderTypeDelivery)
	require.NoError(t, err)

	st, err := f.checkout.State(ctx, uid)
	require.NoError(t, err)
	assert.True(t, st.NeedsAddress)

	addr := f.addAddress(t, uid, 1)
	snap, err := f.cart.SelectAddress(ctx, uid, addr.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), snap.DeliveryPrice)

	f.toReview(t, uid)
	st, err = f.checkout.ApplyPromo(uid, "welcome10")
	require.NoError(t, err)
	assert.Equal(t, checkout.Totals{Subtotal: 55, DeliveryPrice: 10, Discount: 6, FinalTotal: 59}, st.Totals)

	placed, err := f.checkout.Submit(ctx, uid)
	require.NoError(t, err)

	var o entity.Order
	require.NoError(t, f.db.First(&o, placed.OrderID).Error)
	assert.Equal(t, "WELCOME10", o.PromoCode)
	assert.Equal(t, int64(59), o.Total)
	require.NotNil(t, o.AddressID)
	assert.Equal(t, addr.ID, *o.AddressID)
}

func TestCheckout_StepGateBlocksWithoutBranch(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	const uid = 3

	_, err := f.cart.AddItem(ctx, uid, AddItemReq{MenuItemID: 3})
	require.NoError(t, err)
	_, err = f.checkout.Open(uid)
	require.NoError(t, err)
	_, err = f.checkout.Next(ctx, uid)
	require.NoError(t, err)

	res, err := f.checkout.Next(ctx, uid)
	assert.ErrorIs(t, err, checkout.ErrNoBranch)
	assert.Equal(t, int(checkout.DestinationSelection), res.State.Step)
	assert.False(t, res.State.Ready)
	assert.NotEmpty(t, res.State.Blocker)
}

func TestCheckout_SubmitRequiresReviewStep(t *testing.T) {
	f := newCheckoutFixture(t)
	_, err := f.checkout.Submit(context.Background(), 4)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = f.checkout.Submit(context.Background(), 0)
	assert.ErrorIs(t, err, ErrNotSignedIn)
}

func TestCheckout_EmptyCartAtReviewIsRejected(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	const uid = 5

	_, err := f.cart.SelectBranch(ctx, uid, 2)
	require.NoError(t, err)
	f.toReview(t, uid)

	_, err = f.checkout.Submit(ctx, uid)
	assert.ErrorIs(t, err, ErrEmptyCart)

	st, err := f.checkout.State(ctx, uid)
	require.NoError(t, err)
	assert.False(t, st.Submitting)
	assert.True(t, st.Open)
}

func TestCheckout_HeldLockRejectsAndKeepsCart(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	const uid = 6

	_, err := f.cart.AddItem(ctx, uid, AddItemReq{MenuItemID: 2})
	require.NoError(t, err)
	_, err = f.cart.SelectBranch(ctx, uid, 1)
	require.NoError(t, err)
	f.toReview(t, uid)

	// another instance is mid-submit for this user
	release, err := f.lock.Acquire(ctx, uid)
	require.NoError(t, err)

	_, err = f.checkout.Submit(ctx, uid)
	assert.ErrorIs(t, err, checkout.ErrSubmitting)
	assert.Len(t, f.cart.View(uid).Items, 1)

	release()
	_, err = f.checkout.Submit(ctx, uid)
	require.NoError(t, err)
	assert.Empty(t, f.cart.View(uid).Items)
}

func TestCheckout_FailedWriteKeepsCart(t *testing.T) {
	tests := []struct {
		name  string
		setup func(w *mockOrderWriter)
	}{
		{
			name: "header insert fails",
			setup: func(w *mockOrderWriter) {
				w.On("InsertOrder", mock.Anything, mock.Anything).Return(errors.New("connection reset"))
			},
		},
		{
			name: "items insert fails and header is undone",
			setup: func(w *mockOrderWriter) {
				w.On("InsertOrder", mock.Anything, mock.Anything).
					Run(func(args mock.Arguments) { args.Get(1).(*entity.Order).ID = 77 }).
					Return(nil)
				w.On("InsertOrderItems", mock.Anything, mock.Anything).Return(errors.New("constraint failed"))
				w.On("DeleteOrder", mock.Anything, uint(77)).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCheckoutFixture(t)
			ctx := context.Background()
			const uid = 10

			_, err := f.cart.AddItem(ctx, uid, AddItemReq{MenuItemID: 1, Quantity: 2})
			require.NoError(t, err)
			_, err = f.cart.AddItem(ctx, uid, AddItemReq{MenuItemID: 3})
			require.NoError(t, err)
			_, err = f.cart.SelectBranch(ctx, uid, 1)
			require.NoError(t, err)
			f.toReview(t, uid)
			before := f.cart.View(uid)

			gormWriter := f.checkout.Orders.Writer
			w := &mockOrderWriter{}
			tt.setup(w)
			f.checkout.Orders.Writer = w

			_, err = f.checkout.Submit(ctx, uid)
			require.Error(t, err)
			assert.Equal(t, apperr.RemoteWriteFailure, apperr.KindOf(err))
			w.AssertExpectations(t)

			after := f.cart.View(uid)
			assert.Len(t, after.Items, len(before.Items))
			assert.Equal(t, before.TotalPrice, after.TotalPrice)
			assert.Equal(t, before.Branch, after.Branch)

			st, err := f.checkout.State(ctx, uid)
			require.NoError(t, err)
			assert.False(t, st.Submitting)
			assert.True(t, st.Open)
			assert.Equal(t, int(checkout.ReviewAndPayment), st.Step)

			var count int64
			require.NoError(t, f.db.Model(&entity.Order{}).Count(&count).Error)
			assert.Zero(t, count)

			// the retry goes through with the same cart
			f.checkout.Orders.Writer = gormWriter
			placed, err := f.checkout.Submit(ctx, uid)
			require.NoError(t, err)
			assert.NotZero(t, placed.OrderID)
			assert.Empty(t, f.cart.View(uid).Items)
		})
	}
}

func TestCheckout_CancelKeepsCart(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	const uid = 7

	_, err := f.cart.AddItem(ctx, uid, AddItemReq{MenuItemID: 2})
	require.NoError(t, err)
	_, err = f.checkout.Open(uid)
	require.NoError(t, err)

	_, err = f.checkout.Cancel(uid, false)
	assert.ErrorIs(t, err, checkout.ErrConfirmClose)

	st, err := f.checkout.Cancel(uid, true)
	require.NoError(t, err)
	assert.False(t, st.Open)
	assert.Len(t, st.Cart.Items, 1)
}

func TestCart_SelectionRules(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	const uid = 8

	// pickup is the default, so an address is refused
	addr := f.addAddress(t, uid, 2)
	_, err := f.cart.SelectAddress(ctx, uid, addr.ID)
	assert.ErrorIs(t, err, ErrNotDelivery)

	// inactive branch
	_, err = f.cart.SelectBranch(ctx, uid, 3)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// someone else's address
	_, err = f.cart.SetOrderType(uid, entity.OrderTypeDelivery)
	require.NoError(t, err)
	_, err = f.cart.SelectAddress(ctx, uid+1, addr.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = f.cart.SetOrderType(uid, "drone")
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestCart_ItemEdits(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	const uid = 9

	item, err := f.cart.AddItem(ctx, uid, AddItemReq{MenuItemID: 3, Options: map[uint]uint{}})
	require.NoError(t, err)

	snap, err := f.cart.UpdateQuantity(uid, item.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Items[0].Quantity)
	assert.Equal(t, int64(70), snap.Subtotal)

	_, err = f.cart.UpdateQuantity(uid, item.ID, 3)
	assert.ErrorIs(t, err, ErrQuantityDelta)
	_, err = f.cart.UpdateQuantity(uid, "missing", 1)
	assert.ErrorIs(t, err, ErrItemNotInCart)

	_, err = f.cart.AddItem(ctx, uid, AddItemReq{MenuItemID: 3, AdditionalPieces: []entity.AdditionalPiece{{Name: "", Price: 5, Quantity: 1}}})
	assert.ErrorIs(t, err, ErrInvalidPiece)
	_, err = f.cart.AddItem(ctx, uid, AddItemReq{MenuItemID: 999})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	snap, err = f.cart.RemoveItem(uid, item.ID)
	require.NoError(t, err)
	assert.Empty(t, snap.Items)
	_, err = f.cart.RemoveItem(uid, item.ID)
	assert.ErrorIs(t, err, ErrItemNotInCart)
}
