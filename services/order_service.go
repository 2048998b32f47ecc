package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodcart/cart"
	"foodcart/checkout"
	"foodcart/entity"
	"foodcart/pkg/apperr"
	"foodcart/pkg/events"
	"foodcart/pkg/metrics"
	"foodcart/repository"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

var (
	ErrNotSignedIn = apperr.Invalid("please sign in to place an order")
	ErrEmptyCart   = apperr.Invalid("your cart is empty")
	ErrNotPickup   = apperr.Invalid("only pickup orders have a pickup code")
)

// submit outcomes, used as the metrics label
const (
	outcomePlaced   = "placed"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
	outcomeTimeout  = "timeout"
)

// OrderWriter is the remote order store: a header insert, a bulk item
// insert and a header delete used to undo a half-written order.
type OrderWriter interface {
	InsertOrder(ctx context.Context, o *entity.Order) error
	InsertOrderItems(ctx context.Context, items []entity.OrderItem) error
	DeleteOrder(ctx context.Context, orderID uint) error
}

// Transactor is implemented by writers that can run both inserts atomically.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(w OrderWriter) error) error
}

// GormOrderWriter adapts the repository to OrderWriter and Transactor.
type GormOrderWriter struct{ *repository.OrderRepository }

func (w GormOrderWriter) WithinTx(ctx context.Context, fn func(w OrderWriter) error) error {
	return w.OrderRepository.WithinTx(ctx, func(tx *repository.OrderRepository) error {
		return fn(GormOrderWriter{tx})
	})
}

type OrderService struct {
	Writer  OrderWriter
	Repo    *repository.OrderRepository
	Events  events.Publisher
	Metrics *metrics.ServerMetrics
	Log     *zap.Logger

	// Atomic runs header and items in one transaction when Writer supports it.
	Atomic  bool
	Timeout time.Duration

	now func() time.Time
}

func NewOrderService(repo *repository.OrderRepository, atomic bool, timeout time.Duration, pub events.Publisher, m *metrics.ServerMetrics, log *zap.Logger) *OrderService {
	if pub == nil {
		pub = events.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderService{
		Writer:  GormOrderWriter{repo},
		Repo:    repo,
		Events:  pub,
		Metrics: m,
		Log:     log,
		Atomic:  atomic,
		Timeout: timeout,
		now:     time.Now,
	}
}

// ----- Submit -----

// Submit validates the draft and writes the order. The caller owns the cart:
// it is cleared only after Submit returns a nil error.
func (s *OrderService) Submit(ctx context.Context, userID uint, d checkout.Draft) (uint, error) {
	if err := ValidateDraft(userID, d); err != nil {
		s.Metrics.ObserveSubmit(outcomeRejected)
		return 0, err
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	log := s.Log.With(zap.Uint("user_id", userID), zap.String("order_type", string(d.Cart.OrderType)))
	header := buildOrder(userID, d)
	items := buildItems(d.Cart.Items)

	var err error
	if tx, ok := s.Writer.(Transactor); ok && s.Atomic {
		err = tx.WithinTx(ctx, func(w OrderWriter) error {
			return writeOrder(ctx, w, header, items)
		})
	} else {
		err = s.writeWithCompensation(ctx, log, header, items)
	}
	if err != nil {
		return 0, s.failed(ctx, log, err)
	}

	log.Info("order placed", zap.Uint("order_id", header.ID), zap.Int64("total", header.Total))
	s.Metrics.ObserveSubmit(outcomePlaced)
	s.publish(header, len(items))
	return header.ID, nil
}

// ValidateDraft checks the submission preconditions in order: signed in,
// cart not empty, then the destination the order type needs.
func ValidateDraft(userID uint, d checkout.Draft) error {
	if userID == 0 {
		return ErrNotSignedIn
	}
	if len(d.Cart.Items) == 0 {
		return ErrEmptyCart
	}
	switch d.Cart.OrderType {
	case entity.OrderTypeDelivery:
		if d.Cart.Address == nil {
			return checkout.ErrNoAddress
		}
	case entity.OrderTypePickup:
		if d.Cart.Branch == nil {
			return checkout.ErrNoBranch
		}
	default:
		return checkout.ErrNoOrderType
	}
	return nil
}

func writeOrder(ctx context.Context, w OrderWriter, header *entity.Order, items []entity.OrderItem) error {
	if err := w.InsertOrder(ctx, header); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	for i := range items {
		items[i].OrderID = header.ID
	}
	if err := w.InsertOrderItems(ctx, items); err != nil {
		return fmt.Errorf("insert order items: %w", err)
	}
	return nil
}

// header ลงแล้วแต่ items พัง → ลบ header ทิ้ง (ไม่ให้มี order ค้างไม่มีรายการ)
func (s *OrderService) writeWithCompensation(ctx context.Context, log *zap.Logger, header *entity.Order, items []entity.OrderItem) error {
	if err := s.Writer.InsertOrder(ctx, header); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	for i := range items {
		items[i].OrderID = header.ID
	}
	itemsErr := s.Writer.InsertOrderItems(ctx, items)
	if itemsErr == nil {
		return nil
	}

	// the submit context may already be done; the undo gets its own deadline
	undoCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Writer.DeleteOrder(undoCtx, header.ID); err != nil {
		log.Error("orphaned order header", zap.Uint("order_id", header.ID), zap.Error(err))
	} else {
		log.Warn("order header rolled back", zap.Uint("order_id", header.ID))
	}
	header.ID = 0
	return fmt.Errorf("insert order items: %w", itemsErr)
}

func (s *OrderService) failed(ctx context.Context, log *zap.Logger, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		log.Warn("order submission timed out", zap.Error(err))
		s.Metrics.ObserveSubmit(outcomeTimeout)
		return apperr.Wrap(apperr.NetworkFailure, "placing the order timed out, please try again", err)
	}
	log.Error("order submission failed", zap.Error(err))
	s.Metrics.ObserveSubmit(outcomeFailed)
	return apperr.Wrap(apperr.RemoteWriteFailure, "could not place your order, please try again", err)
}

// publish never fails the submission; the order is already committed.
func (s *OrderService) publish(o *entity.Order, itemCount int) {
	ev := events.OrderPlaced{
		OrderID:       o.ID,
		UserID:        o.UserID,
		OrderType:     string(o.OrderType),
		AddressID:     o.AddressID,
		BranchID:      o.BranchID,
		ItemCount:     itemCount,
		Subtotal:      o.Subtotal,
		DeliveryPrice: o.DeliveryPrice,
		Discount:      o.Discount,
		Total:         o.Total,
		PlacedAt:      s.now(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.Events.PublishOrderPlaced(ctx, ev); err != nil {
		s.Log.Warn("publish order.placed", zap.Uint("order_id", o.ID), zap.Error(err))
	}
}

func buildOrder(userID uint, d checkout.Draft) *entity.Order {
	o := &entity.Order{
		UserID:        userID,
		OrderType:     d.Cart.OrderType,
		Subtotal:      d.Totals.Subtotal,
		DeliveryPrice: d.Totals.DeliveryPrice,
		Discount:      d.Totals.Discount,
		Total:         d.Totals.FinalTotal,
		PromoCode:     d.PromoCode,
		Notes:         d.Notes,
		Status:        entity.OrderStatusPending,
	}
	if d.Cart.OrderType == entity.OrderTypeDelivery {
		id := d.Cart.Address.ID
		o.AddressID = &id
	} else {
		id := d.Cart.Branch.ID
		o.BranchID = &id
	}
	return o
}

func buildItems(lines []cart.Item) []entity.OrderItem {
	out := make([]entity.OrderItem, 0, len(lines))
	for _, it := range lines {
		var pieces []entity.AdditionalPiece
		if len(it.AdditionalPieces) > 0 {
			pieces = append(pieces, it.AdditionalPieces...)
		}
		out = append(out, entity.OrderItem{
			MenuItemID:       it.MenuItem.ID,
			Name:             it.MenuItem.Name,
			Quantity:         it.Quantity,
			UnitPrice:        it.UnitPrice,
			Total:            it.TotalPrice(),
			Notes:            it.Notes,
			SelectedOptions:  it.Options,
			AdditionalPieces: pieces,
		})
	}
	return out
}

// ----- Read -----

func (s *OrderService) ListForUser(ctx context.Context, userID uint, limit int) ([]repository.OrderSummary, error) {
	out, err := s.Repo.ListForUser(ctx, userID, limit)
	if err != nil {
		return nil, apperr.FromRead("orders", err)
	}
	return out, nil
}

func (s *OrderService) GetForUser(ctx context.Context, userID, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.FindForUser(ctx, userID, orderID)
	if err != nil {
		return nil, apperr.FromRead("order", err)
	}
	return o, nil
}

// PickupQR renders the code shown at the branch counter.
func (s *OrderService) PickupQR(ctx context.Context, userID, orderID uint, size int) ([]byte, error) {
	o, err := s.GetForUser(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if o.OrderType != entity.OrderTypePickup || o.BranchID == nil {
		return nil, ErrNotPickup
	}
	if size < 64 || size > 1024 {
		size = 256
	}
	png, err := qrcode.Encode(PickupCode(o.ID, *o.BranchID), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode pickup qr: %w", err)
	}
	return png, nil
}

func PickupCode(orderID, branchID uint) string {
	return fmt.Sprintf("order:%d:branch:%d", orderID, branchID)
}
