package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fenrir/internal/common"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
func pp(v int64) *common.Price  { p := d(v); return &p }

func TestEngineInvalidPairRejected(t *testing.T) {
	e := New("ETH/USDT")
	err := e.Create(CreateRequest{
		Pair:       "BTC/USDT",
		OrderID:    1,
		Side:       common.Bid,
		LimitPrice: pp(10),
		Quantity:   d(1),
		TIF:        common.DefaultTimeInForce(),
	})
	require.Error(t, err)
	var invalidPair *InvalidPairError
	assert.ErrorAs(t, err, &invalidPair)
}

func TestEngineCreateAndDrainTrades(t *testing.T) {
	e := New("ETH/USDT")
	require.NoError(t, e.Create(CreateRequest{
		Pair: "ETH/USDT", OrderID: 901_070_014, Side: common.Ask,
		LimitPrice: pp(14), Quantity: d(70), TIF: common.DefaultTimeInForce(),
	}))
	require.NoError(t, e.Create(CreateRequest{
		Pair: "ETH/USDT", OrderID: 900_020_014, Side: common.Bid,
		LimitPrice: pp(14), Quantity: d(20), TIF: common.DefaultTimeInForce(),
	}))

	trades := e.DrainTrades()
	require.Len(t, trades, 1)
	assert.True(t, trades[0].Quantity.Equal(d(20)))

	// A second drain with no new activity returns nothing.
	assert.Empty(t, e.DrainTrades())
}

func TestEngineBookViewAggregatesQuantity(t *testing.T) {
	e := New("ETH/USDT")
	for _, id := range []common.OrderId{1, 2, 3} {
		require.NoError(t, e.Create(CreateRequest{
			Pair: "ETH/USDT", OrderID: id, Side: common.Ask,
			LimitPrice: pp(10), Quantity: d(5), TIF: common.DefaultTimeInForce(),
		}))
	}
	view := e.BookView()
	require.Len(t, view.Asks, 1)
	assert.True(t, view.Asks[0].Quantity.Equal(d(15)))
	assert.Equal(t, 3, view.Asks[0].OrderCount)
	assert.Empty(t, view.Bids)
}

func TestEngineCancelUnknownIsNoOp(t *testing.T) {
	e := New("ETH/USDT")
	err := e.Cancel(CancelRequest{OrderID: 12345})
	assert.NoError(t, err)
}

func TestEngineCancelResting(t *testing.T) {
	e := New("ETH/USDT")
	require.NoError(t, e.Create(CreateRequest{
		Pair: "ETH/USDT", OrderID: 900_040_013, Side: common.Bid,
		LimitPrice: pp(13), Quantity: d(40), TIF: common.DefaultTimeInForce(),
	}))
	require.NoError(t, e.Cancel(CancelRequest{OrderID: 900_040_013}))

	view := e.BookView()
	assert.Empty(t, view.Bids)

	// Cancelling the same id again is a no-op, not an error.
	assert.NoError(t, e.Cancel(CancelRequest{OrderID: 900_040_013}))
}

func TestEngineSequenceMonotonic(t *testing.T) {
	e := New("ETH/USDT")
	require.NoError(t, e.Create(CreateRequest{
		Pair: "ETH/USDT", OrderID: 1, Side: common.Ask,
		LimitPrice: pp(10), Quantity: d(100), TIF: common.DefaultTimeInForce(),
	}))
	require.NoError(t, e.Create(CreateRequest{
		Pair: "ETH/USDT", OrderID: 2, Side: common.Bid,
		LimitPrice: pp(10), Quantity: d(30), TIF: common.DefaultTimeInForce(),
	}))
	require.NoError(t, e.Create(CreateRequest{
		Pair: "ETH/USDT", OrderID: 3, Side: common.Bid,
		LimitPrice: pp(10), Quantity: d(30), TIF: common.DefaultTimeInForce(),
	}))

	trades := e.DrainTrades()
	require.Len(t, trades, 2)
	assert.Less(t, trades[0].Sequence, trades[1].Sequence)
}
