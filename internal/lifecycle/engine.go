// Package lifecycle creates orders and moves them through their status machine.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bazaar/internal/apperr"
	"bazaar/internal/auth"
	"bazaar/internal/authz"
	"bazaar/internal/domain/inbox"
	"bazaar/internal/domain/orders"
	"bazaar/internal/domain/products"
	"bazaar/internal/notifications"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Notifier receives the best-effort side effects of order writes.
type Notifier interface {
	Notify(ctx context.Context, recipientID int64, category inbox.Category, message, link string)
}

type CreateInput struct {
	Items           []orders.Item
	TotalAmount     decimal.Decimal
	ShippingAddress string
	Contact         string
}

type Page struct {
	Limit  int
	Offset int
}

type Engine struct {
	orders   orders.Store
	products products.Store
	resolver *authz.Resolver
	notifier Notifier
	numbers  *orders.NumberGenerator
	refs     *orders.ReferenceEncoder
	logger   *zap.SugaredLogger
}

func NewEngine(
	ordersStore orders.Store,
	productsStore products.Store,
	resolver *authz.Resolver,
	notifier Notifier,
	numbers *orders.NumberGenerator,
	refs *orders.ReferenceEncoder,
	logger *zap.SugaredLogger,
) *Engine {
	return &Engine{
		orders:   ordersStore,
		products: productsStore,
		resolver: resolver,
		notifier: notifier,
		numbers:  numbers,
		refs:     refs,
		logger:   logger,
	}
}

func validateCreate(in CreateInput) error {
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: order has no items", apperr.ErrInvalidArgument)
	}
	for i, it := range in.Items {
		switch {
		case it.ProductID <= 0:
			return fmt.Errorf("%w: item %d: product_id is required", apperr.ErrInvalidArgument, i)
		case it.Quantity < 1:
			return fmt.Errorf("%w: item %d: quantity must be at least 1", apperr.ErrInvalidArgument, i)
		case !it.PriceAtPurchase.IsPositive():
			return fmt.Errorf("%w: item %d: price_at_purchase must be positive", apperr.ErrInvalidArgument, i)
		}
	}
	if !in.TotalAmount.IsPositive() {
		return fmt.Errorf("%w: total_amount must be positive", apperr.ErrInvalidArgument)
	}
	if strings.TrimSpace(in.ShippingAddress) == "" {
		return fmt.Errorf("%w: shipping_address is required", apperr.ErrInvalidArgument)
	}
	if strings.TrimSpace(in.Contact) == "" {
		return fmt.Errorf("%w: contact is required", apperr.ErrInvalidArgument)
	}
	return nil
}

// Create places a Pending order for the customer. Prices come from the caller
// and are not re-checked against the catalogue.
func (e *Engine) Create(ctx context.Context, customerID int64, in CreateInput) (*orders.Order, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	o := &orders.Order{
		OrderNumber:     e.numbers.Generate(customerID),
		CustomerID:      customerID,
		Items:           append([]orders.Item(nil), in.Items...),
		TotalAmount:     in.TotalAmount,
		Status:          orders.StatusPending,
		ShippingAddress: strings.TrimSpace(in.ShippingAddress),
		Contact:         strings.TrimSpace(in.Contact),
	}
	e.fillProductNames(ctx, o)

	if sum := o.ItemsTotal(); !sum.Equal(o.TotalAmount) {
		e.logger.Warnw("order total does not match items",
			"customer", customerID,
			"total_amount", o.TotalAmount.String(),
			"items_total", sum.String(),
		)
	}

	if err := e.orders.Create(ctx, o); err != nil {
		return nil, err
	}

	e.notifySellers(ctx, o)
	return o, nil
}

func (e *Engine) fillProductNames(ctx context.Context, o *orders.Order) {
	for i := range o.Items {
		if o.Items[i].ProductName != "" {
			continue
		}
		p, err := e.products.GetByID(ctx, o.Items[i].ProductID)
		if err != nil {
			continue
		}
		o.Items[i].ProductName = p.Name
	}
}

func (e *Engine) notifySellers(ctx context.Context, o *orders.Order) {
	sellers, err := e.products.SellerAccountIDs(ctx, o.ProductIDs())
	if err != nil {
		e.logger.Warnw("new order notification skipped", "order", o.ID, "error", err.Error())
		return
	}

	msg, link := notifications.OrderMessage(notifications.OrderPlaced, e.refs.Encode(o.ID), "")
	for _, id := range sellers {
		e.notifier.Notify(ctx, id, inbox.CategoryNewOrder, msg, link)
	}
}

// Transition moves the order to rawStatus. The caller must own at least one
// product in the order. When expectedRevision is set it must match the stored
// revision; otherwise the revision read here is used for the compare-and-swap.
func (e *Engine) Transition(ctx context.Context, claims *auth.Claims, orderID int64, rawStatus string, expectedRevision *int) (*orders.Order, error) {
	o, err := e.resolver.RequireOrderOwner(ctx, claims, orderID)
	if err != nil {
		return nil, err
	}

	next, err := orders.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	if err := orders.CheckTransition(o.Status, next); err != nil {
		return nil, err
	}

	revision := o.Revision
	if expectedRevision != nil {
		if *expectedRevision != o.Revision {
			return nil, orders.ErrStaleRevision
		}
		revision = *expectedRevision
	}

	newRevision, updatedAt, err := e.orders.UpdateStatus(ctx, o.ID, next, revision)
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			e.logger.Infow("order status write lost race", "order", o.ID, "revision", revision)
		}
		return nil, err
	}

	o.Status = next
	o.Revision = newRevision
	o.UpdatedAt = updatedAt

	msg, link := notifications.OrderMessage(notifications.OrderStatusChanged, e.refs.Encode(o.ID), string(next))
	e.notifier.Notify(ctx, o.CustomerID, inbox.CategoryOrderUpdate, msg, link)

	return o, nil
}

func (e *Engine) ListForCustomer(ctx context.Context, customerID int64, page Page) ([]*orders.Order, int, error) {
	return e.orders.ListByCustomer(ctx, customerID, page.Limit, page.Offset)
}

// ListForSeller lists orders that contain at least one of the seller's products.
func (e *Engine) ListForSeller(ctx context.Context, accountID int64, page Page) ([]*orders.Order, int, error) {
	profile, err := e.resolver.RequireSellerProfile(ctx, accountID)
	if err != nil {
		return nil, 0, err
	}
	return e.orders.ListBySellerProfile(ctx, profile.ID, page.Limit, page.Offset)
}

// Reference is the short code shown to users for an order.
func (e *Engine) Reference(orderID int64) string {
	return e.refs.Encode(orderID)
}
