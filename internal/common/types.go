// Package common holds the value types and the Order entity shared across
// the book, matcher, and engine packages.
package common

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// OrderId uniquely identifies an order across the engine's lifetime.
type OrderId uint64

func (id OrderId) String() string {
	return fmt.Sprintf("order_id:%d", uint64(id))
}

// Price and Quantity are exact fixed-point decimals. decimal.Decimal carries
// an arbitrary-precision mantissa plus scale, so arithmetic on either never
// loses precision the way float64 would.
type Price = decimal.Decimal
type Quantity = decimal.Decimal

// Side is one of Ask or Bid.
type Side int

const (
	Ask Side = iota
	Bid
)

// Opposite is an involution: Opposite(Opposite(s)) == s.
func (s Side) Opposite() Side {
	if s == Ask {
		return Bid
	}
	return Ask
}

func (s Side) String() string {
	switch s {
	case Ask:
		return "SELL"
	case Bid:
		return "BUY"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}
