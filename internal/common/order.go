package common

import (
	"errors"
	"fmt"
)

// ErrOverfill is a core invariant violation (spec §7): the matcher must
// never request a fill larger than an order's remaining quantity. Seeing
// this error means the book is in an undefined state.
var ErrOverfill = errors.New("fill exceeds remaining quantity")

// Order is a single order's state plus its fill/cancel transitions.
//
// Invariants: 0 <= FilledQuantity <= OrderQuantity; Status == Completed iff
// FilledQuantity == OrderQuantity; once Status.IsTerminal(), no further
// mutation is permitted.
type Order struct {
	ID              OrderId
	Side            Side
	Type            OrderType
	OrderQuantity   Quantity
	FilledQuantity  Quantity
	Status          OrderStatus
}

// NewLimitOrder builds an Open, unfilled Limit order with the default
// (GoodTilCancel, not post-only) time in force.
func NewLimitOrder(id OrderId, side Side, quantity Quantity, price Price) Order {
	return Order{
		ID:             id,
		Side:           side,
		Type:           NewLimitType(price, DefaultTimeInForce()),
		OrderQuantity:  quantity,
		FilledQuantity: zero(),
		Status:         Open,
	}
}

// NewLimitOrderWithTIF builds an Open, unfilled Limit order with an explicit
// time in force (GTC post-only, or IOC/FOK).
func NewLimitOrderWithTIF(id OrderId, side Side, quantity Quantity, price Price, tif TimeInForce) Order {
	o := NewLimitOrder(id, side, quantity, price)
	o.Type.tif = tif
	return o
}

// NewMarketOrder builds an Open, unfilled Market order.
func NewMarketOrder(id OrderId, side Side, quantity Quantity, fillOrKill bool) Order {
	return Order{
		ID:             id,
		Side:           side,
		Type:           NewMarketType(fillOrKill),
		OrderQuantity:  quantity,
		FilledQuantity: zero(),
		Status:         Open,
	}
}

func zero() Quantity { return Quantity{} }

// Remaining returns OrderQuantity - FilledQuantity.
func (o Order) Remaining() Quantity {
	return o.OrderQuantity.Sub(o.FilledQuantity)
}

// LimitPrice returns the order's resting price, or (zero, false) for a
// market order.
func (o Order) LimitPrice() (Price, bool) {
	if !o.Type.IsLimit() {
		return Price{}, false
	}
	return o.Type.price, true
}

// IsBookable reports whether this order type may ever rest in the book
// (true iff Limit).
func (o Order) IsBookable() bool {
	return o.Type.IsLimit()
}

// IsClosed reports whether the order has reached a terminal status.
func (o Order) IsClosed() bool {
	return o.Status.IsTerminal()
}

// IsFillOrKill is true for Market orders with fill_or_kill set, and for
// Limit IOC orders with fill_or_kill set.
func (o Order) IsFillOrKill() bool {
	if o.Type.IsLimit() {
		return !o.Type.tif.isGTC() && o.Type.tif.fok
	}
	return o.Type.fok
}

// IsPostOnly is true only for Limit GTC orders with post_only set.
func (o Order) IsPostOnly() bool {
	return o.Type.IsLimit() && o.Type.tif.isGTC() && o.Type.tif.postOnly
}

// IsImmediateOrCancel is true for all Market orders and for Limit orders
// with an IOC time in force.
func (o Order) IsImmediateOrCancel() bool {
	if o.Type.IsLimit() {
		return !o.Type.tif.isGTC()
	}
	return true
}

// CanTrade returns the tradeable quantity between o and other:
// min(o.Remaining(), other.Remaining()).
func (o Order) CanTrade(other Order) Quantity {
	r1, r2 := o.Remaining(), other.Remaining()
	if r1.LessThan(r2) {
		return r1
	}
	return r2
}

// Matches reports whether o (the taker) may trade against maker. A market
// order as maker never matches (market orders never rest); this is a
// defensive check, and the matcher adds no separate assertion for it, since
// the book never admits market orders to begin with.
func (taker Order) Matches(maker Order) bool {
	if taker.IsClosed() || maker.IsClosed() {
		return false
	}
	makerPrice, ok := maker.LimitPrice()
	if !ok {
		return false
	}
	if !taker.Type.IsLimit() {
		return true
	}
	takerPrice, _ := taker.LimitPrice()
	switch {
	case taker.Side == Ask && maker.Side == Bid:
		return takerPrice.LessThanOrEqual(makerPrice)
	case taker.Side == Bid && maker.Side == Ask:
		return takerPrice.GreaterThanOrEqual(makerPrice)
	default:
		return false
	}
}

// Fill increases FilledQuantity by qty. It fails with ErrOverfill when
// qty > Remaining(). On success, Status becomes Completed if the order is
// now fully filled, otherwise Partial.
func (o *Order) Fill(qty Quantity) error {
	if qty.GreaterThan(o.Remaining()) {
		return fmt.Errorf("%w: fill=%s remaining=%s", ErrOverfill, qty, o.Remaining())
	}
	o.FilledQuantity = o.FilledQuantity.Add(qty)
	if o.FilledQuantity.Equal(o.OrderQuantity) {
		o.Status = Completed
	} else {
		o.Status = Partial
	}
	return nil
}

// Cancel transitions Open -> Cancelled, Partial -> Closed. Any other status
// is a no-op.
func (o *Order) Cancel() {
	switch o.Status {
	case Open:
		o.Status = Cancelled
	case Partial:
		o.Status = Closed
	}
}

// SameID compares two orders by identity only. Deliberately kept separate
// from price comparison (see book.PriceCmp) per spec.md §9: Order exposes no
// single "comparison" operator, since Eq-by-id and Ord-by-price disagree
// whenever two distinct orders share a price.
func (o Order) SameID(other Order) bool {
	return o.ID == other.ID
}

func (o Order) String() string {
	price, ok := o.LimitPrice()
	if !ok {
		return fmt.Sprintf("ORDER[%d] %s %s@MARKET", o.ID, o.Side, o.OrderQuantity)
	}
	return fmt.Sprintf("ORDER[%d] %s %s@%s", o.ID, o.Side, o.OrderQuantity, price)
}
