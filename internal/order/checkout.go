package order

import (
	"context"
	"fmt"
	"log"

	"github.com/ojha-sweta/ShopVault/internal/cart"
	"github.com/ojha-sweta/ShopVault/internal/catalog"
	"github.com/ojha-sweta/ShopVault/internal/clock"
	"github.com/ojha-sweta/ShopVault/internal/identity"
)

// StockSource is what checkout needs from the catalog: price lookup and
// the atomic decrement-and-clamp.
type StockSource interface {
	FindByID(id int64) (*catalog.Product, error)
	DecrementStock(ctx context.Context, id int64, amount int) error
}

// Publisher receives the completed order after checkout. Failures are
// logged, never propagated: the purchase stands.
type Publisher interface {
	OrderPlaced(ctx context.Context, o *Order) error
}

type CheckoutRequest struct {
	Cart           *cart.Store
	User           *identity.Identity
	Shipping       ShippingInfo
	Payment        PaymentInfo
	IdempotencyKey string
}

// CheckoutService turns a validated cart into a ledger entry and
// decrements catalog stock.
type CheckoutService struct {
	ledger    *Ledger
	stock     StockSource
	publisher Publisher
	clock     clock.Clock
}

func NewCheckoutService(ledger *Ledger, stock StockSource, publisher Publisher, clk clock.Clock) *CheckoutService {
	return &CheckoutService{
		ledger:    ledger,
		stock:     stock,
		publisher: publisher,
		clock:     clk,
	}
}

// Checkout runs the full purchase flow. The cart is re-validated against
// current stock first; if anything was corrected the checkout stops with
// ErrStockChanged so the caller re-confirms the corrected cart instead of
// being silently charged for it. Stock decrement failures after the order
// is recorded are logged anomalies, not rollbacks: everything runs in one
// process, so there is no distributed transaction to unwind.
func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest) (*Order, error) {
	if req.User == nil {
		return nil, ErrNotAuthenticated
	}

	// A repeated idempotency key returns the order already placed. This
	// runs before the cart checks: the first success cleared the cart, and
	// a retry with the same key must still get the prior order back.
	if existing, err := s.ledger.FindByKey(ctx, req.User.UID, req.IdempotencyKey); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	if req.Cart == nil || len(req.Cart.Lines()) == 0 {
		return nil, ErrEmptyCart
	}
	if err := validateForms(req.Shipping, req.Payment); err != nil {
		return nil, err
	}

	corrected, err := req.Cart.ValidateAgainstStock(ctx)
	if err != nil {
		return nil, err
	}
	if corrected {
		return nil, ErrStockChanged
	}

	lines := req.Cart.Lines()
	var subtotal float64
	for _, line := range lines {
		product, err := s.stock.FindByID(line.ProductID)
		if err != nil {
			continue
		}
		subtotal += product.Price * float64(line.Quantity)
	}
	totals := ComputeTotals(subtotal)

	now := s.clock.Now()
	o := &Order{
		ID:       fmt.Sprintf("ORD-%d", now.UnixMilli()),
		UserID:   req.User.UID,
		Items:    lines,
		Subtotal: totals.Subtotal,
		Tax:      totals.Tax,
		Shipping: totals.Shipping,
		Total:    totals.Total,
		ShippingInfo: req.Shipping,
		PaymentInfo: PaymentInfo{
			CardNumber: maskCard(req.Payment.CardNumber),
			ExpiryDate: req.Payment.ExpiryDate,
		},
		Status:         StatusProcessing,
		Date:           now,
		IdempotencyKey: req.IdempotencyKey,
	}

	if err := s.ledger.Append(ctx, o); err != nil {
		return nil, err
	}

	for _, line := range o.Items {
		if err := s.stock.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
			// Possible only under external catalog modification between
			// validation and here. The purchase stands regardless.
			log.Printf("stock decrement anomaly: order=%s product=%d qty=%d: %v",
				o.ID, line.ProductID, line.Quantity, err)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.OrderPlaced(ctx, o); err != nil {
			log.Printf("failed to publish order %s: %v", o.ID, err)
		}
	}

	if err := req.Cart.Clear(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

func validateForms(shipping ShippingInfo, payment PaymentInfo) error {
	if shipping.FullName == "" || shipping.Address == "" || shipping.City == "" || shipping.ZipCode == "" {
		return ErrInvalidForm
	}
	if payment.CardNumber == "" || payment.ExpiryDate == "" || payment.CVV == "" {
		return ErrInvalidForm
	}
	return nil
}
