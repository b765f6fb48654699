package book

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fenrir/internal/common"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestAskSideOrdersAscending(t *testing.T) {
	side := NewSide(common.Ask)
	for _, price := range []int64{14, 12, 13} {
		level := side.GetOrCreate(d(price))
		level.PushBack(common.NewLimitOrder(common.OrderId(price), common.Ask, d(1), d(price)))
	}
	levels := side.Levels()
	require.Len(t, levels, 3)
	assert.True(t, levels[0].Price.Equal(d(12)))
	assert.True(t, levels[1].Price.Equal(d(13)))
	assert.True(t, levels[2].Price.Equal(d(14)))
}

func TestBidSideOrdersDescending(t *testing.T) {
	side := NewSide(common.Bid)
	for _, price := range []int64{98, 100, 99} {
		level := side.GetOrCreate(d(price))
		level.PushBack(common.NewLimitOrder(common.OrderId(price), common.Bid, d(1), d(price)))
	}
	levels := side.Levels()
	require.Len(t, levels, 3)
	assert.True(t, levels[0].Price.Equal(d(100)))
	assert.True(t, levels[1].Price.Equal(d(99)))
	assert.True(t, levels[2].Price.Equal(d(98)))
}

func TestEvictIfEmptyRemovesLevel(t *testing.T) {
	side := NewSide(common.Ask)
	level := side.GetOrCreate(d(10))
	level.PushBack(common.NewLimitOrder(1, common.Ask, d(5), d(10)))
	_, _ = level.PopFront()
	side.EvictIfEmpty(level)
	assert.Equal(t, 0, side.Len())
	_, ok := side.Best()
	assert.False(t, ok)
}

func TestLevelFIFOOrder(t *testing.T) {
	level := newLevel(common.Ask, d(10))
	level.PushBack(common.NewLimitOrder(1, common.Ask, d(5), d(10)))
	level.PushBack(common.NewLimitOrder(2, common.Ask, d(5), d(10)))

	head, ok := level.PeekFront()
	require.True(t, ok)
	assert.Equal(t, common.OrderId(1), head.ID)

	removed, ok := level.RemoveByID(2)
	require.True(t, ok)
	assert.Equal(t, common.OrderId(2), removed.ID)
	assert.Len(t, level.Orders, 1)
}
