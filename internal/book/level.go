// Package book implements the price-level queues and per-side ordered maps
// that make up the resting order book (spec.md §4.3, §4.4).
package book

import (
	"sync"

	"fenrir/internal/common"
)

// PriceLevel is a FIFO queue of orders sharing one limit price on one side.
// The head of Orders is always the oldest order at this price — the maker
// candidate for the next match.
type PriceLevel struct {
	Price  common.Price
	Side   common.Side
	Orders []common.Order
}

// levelPool recycles evicted PriceLevels instead of letting the garbage
// collector reclaim them, the Go-idiomatic equivalent of a free-list for
// level nodes (spec.md §5's "free-list / object pool ... recommended").
var levelPool = sync.Pool{
	New: func() any { return &PriceLevel{} },
}

func newLevel(side common.Side, price common.Price) *PriceLevel {
	l := levelPool.Get().(*PriceLevel)
	l.Side = side
	l.Price = price
	l.Orders = l.Orders[:0]
	return l
}

// release returns an evicted, empty level to the pool. Callers must not
// touch l again afterward.
func (l *PriceLevel) release() {
	l.Price = common.Price{}
	l.Orders = l.Orders[:0]
	levelPool.Put(l)
}

// PushBack appends an order to the tail of the level.
func (l *PriceLevel) PushBack(o common.Order) {
	l.Orders = append(l.Orders, o)
}

// PeekFront returns the head order without removing it.
func (l *PriceLevel) PeekFront() (common.Order, bool) {
	if len(l.Orders) == 0 {
		return common.Order{}, false
	}
	return l.Orders[0], true
}

// PopFront removes and returns the head order.
func (l *PriceLevel) PopFront() (common.Order, bool) {
	if len(l.Orders) == 0 {
		return common.Order{}, false
	}
	head := l.Orders[0]
	l.Orders = l.Orders[1:]
	return head, true
}

// ReplaceFront overwrites the head order in place, used after a partial
// fill that leaves the maker resting at the front of the queue.
func (l *PriceLevel) ReplaceFront(o common.Order) {
	l.Orders[0] = o
}

// RemoveByID scans the level for an order by id and removes it, preserving
// the relative order of the remaining orders. Linear in level size, which
// spec.md §4.3/§9 calls acceptable since cancels are guided here by the
// Index and never have to scan more than one level.
func (l *PriceLevel) RemoveByID(id common.OrderId) (common.Order, bool) {
	for i, o := range l.Orders {
		if o.ID == id {
			removed := o
			l.Orders = append(l.Orders[:i], l.Orders[i+1:]...)
			return removed, true
		}
	}
	return common.Order{}, false
}

// Empty reports whether the level holds no more orders and should be
// evicted from its BookSide.
func (l *PriceLevel) Empty() bool {
	return len(l.Orders) == 0
}
