package common

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// convention for order ids, carried from original_source/src/order.rs's test
// fixtures: 3-digit side (bid = 900, ask = 901), 3-digit quantity, 3-digit
// price (999 for market orders).

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func askAt(id OrderId, qty, price int64) Order {
	return NewLimitOrder(id, Ask, d(qty), d(price))
}

func bidAt(id OrderId, qty, price int64) Order {
	return NewLimitOrder(id, Bid, d(qty), d(price))
}

func TestSideOpposite(t *testing.T) {
	assert.Equal(t, Bid, Ask.Opposite())
	assert.Equal(t, Ask, Bid.Opposite())
	assert.Equal(t, Ask, Ask.Opposite().Opposite())
}

func TestMatchesSamePrice(t *testing.T) {
	ask := askAt(901_070_014, 70, 14)
	bid := bidAt(900_020_014, 20, 14)
	assert.True(t, ask.Matches(bid))
	assert.True(t, bid.Matches(ask))
}

func TestMatchesCrossingPrice(t *testing.T) {
	ask := askAt(901_050_013, 50, 13)
	bid := bidAt(900_020_014, 20, 14)
	assert.True(t, ask.Matches(bid))
}

func TestNoMatch(t *testing.T) {
	ask := askAt(901_070_014, 70, 14)
	bid := bidAt(900_040_013, 40, 13)
	assert.False(t, ask.Matches(bid))
}

func TestMarketTakerMatchesLimitMaker(t *testing.T) {
	ask := askAt(901_070_014, 70, 14)
	marketBid := NewMarketOrder(900_040_999, Bid, d(40), false)
	assert.True(t, marketBid.Matches(ask))
	// A market order as maker never matches: it carries no price.
	assert.False(t, ask.Matches(marketBid))
}

func TestFillPartialThenComplete(t *testing.T) {
	o := askAt(901_100_010, 100, 10)
	require.NoError(t, o.Fill(d(40)))
	assert.Equal(t, Partial, o.Status)
	assert.True(t, o.Remaining().Equal(d(60)))

	require.NoError(t, o.Fill(d(60)))
	assert.Equal(t, Completed, o.Status)
	assert.True(t, o.Remaining().IsZero())
}

func TestFillOverfillRejected(t *testing.T) {
	o := askAt(901_010_010, 10, 10)
	err := o.Fill(d(11))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOverfill)
	assert.Equal(t, Open, o.Status, "status must not change on a failed fill")
}

func TestCancelTransitions(t *testing.T) {
	openOrder := askAt(1, 10, 10)
	openOrder.Cancel()
	assert.Equal(t, Cancelled, openOrder.Status)

	partial := askAt(2, 10, 10)
	require.NoError(t, partial.Fill(d(4)))
	partial.Cancel()
	assert.Equal(t, Closed, partial.Status)

	terminal := askAt(3, 10, 10)
	require.NoError(t, terminal.Fill(d(10)))
	assert.Equal(t, Completed, terminal.Status)
	terminal.Cancel()
	assert.Equal(t, Completed, terminal.Status, "cancel on a terminal order is a no-op")
}

func TestOrderFeatureFlags(t *testing.T) {
	market := NewMarketOrder(1, Ask, d(10), false)
	assert.False(t, market.IsFillOrKill())
	assert.True(t, market.IsImmediateOrCancel())
	assert.False(t, market.IsPostOnly())

	marketFOK := NewMarketOrder(2, Ask, d(10), true)
	assert.True(t, marketFOK.IsFillOrKill())

	limitGTC := NewLimitOrderWithTIF(3, Bid, d(10), d(10), GoodTilCancel(false))
	assert.False(t, limitGTC.IsFillOrKill())
	assert.False(t, limitGTC.IsImmediateOrCancel())
	assert.False(t, limitGTC.IsPostOnly())

	limitPostOnly := NewLimitOrderWithTIF(4, Bid, d(10), d(10), GoodTilCancel(true))
	assert.True(t, limitPostOnly.IsPostOnly())

	limitIOC := NewLimitOrderWithTIF(5, Bid, d(10), d(10), ImmediateOrCancel(false))
	assert.True(t, limitIOC.IsImmediateOrCancel())
	assert.False(t, limitIOC.IsFillOrKill())

	limitFOK := NewLimitOrderWithTIF(6, Bid, d(10), d(10), ImmediateOrCancel(true))
	assert.True(t, limitFOK.IsFillOrKill())
	assert.True(t, limitFOK.IsImmediateOrCancel())
}

func TestSameIDNotPriceComparison(t *testing.T) {
	a := askAt(1, 10, 10)
	b := askAt(1, 999, 999) // same id, different price/qty
	c := askAt(2, 10, 10)   // different id, same price/qty as a

	assert.True(t, a.SameID(b))
	assert.False(t, a.SameID(c))
}

func TestOrderString(t *testing.T) {
	limit := askAt(1, 10, 5)
	assert.Equal(t, "ORDER[1] SELL 10@5", limit.String())

	market := NewMarketOrder(2, Bid, d(10), false)
	assert.Equal(t, "ORDER[2] BUY 10@MARKET", market.String())
}
