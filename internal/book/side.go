package book

import (
	"github.com/tidwall/btree"

	"fenrir/internal/common"
)

// PriceCmp compares two prices. Kept as a free function, distinct from any
// per-order comparison, per spec.md §9's note that Order should never expose
// a single overloaded "compare".
func PriceCmp(a, b common.Price) int {
	return a.Cmp(b)
}

// Side is an ordered map from price to PriceLevel for one side of the book.
// Asks iterate ascending (lowest first), bids iterate descending (highest
// first) — implemented, like the teacher's internal/engine/orderbook.go,
// as a single btree.BTreeG with a side-specific comparator rather than two
// separate container types.
type Side struct {
	side   common.Side
	levels *btree.BTreeG[*PriceLevel]
}

// NewSide builds an empty BookSide for the given side.
func NewSide(side common.Side) *Side {
	var less func(a, b *PriceLevel) bool
	if side == common.Ask {
		less = func(a, b *PriceLevel) bool { return PriceCmp(a.Price, b.Price) < 0 }
	} else {
		less = func(a, b *PriceLevel) bool { return PriceCmp(a.Price, b.Price) > 0 }
	}
	return &Side{side: side, levels: btree.NewBTreeG(less)}
}

// Best returns the best (first-priority) level on this side, if any.
func (s *Side) Best() (*PriceLevel, bool) {
	return s.levels.Min()
}

// GetOrCreate returns the level at price, creating an empty one if absent.
func (s *Side) GetOrCreate(price common.Price) *PriceLevel {
	probe := &PriceLevel{Side: s.side, Price: price}
	if level, ok := s.levels.Get(probe); ok {
		return level
	}
	level := newLevel(s.side, price)
	s.levels.Set(level)
	return level
}

// Get returns the level at price without creating one.
func (s *Side) Get(price common.Price) (*PriceLevel, bool) {
	probe := &PriceLevel{Side: s.side, Price: price}
	return s.levels.Get(probe)
}

// EvictIfEmpty removes level from the side if it holds no more orders,
// returning it to the level pool. Mandatory bookkeeping per spec.md §4.4: an
// empty level left behind would corrupt best-price queries.
func (s *Side) EvictIfEmpty(level *PriceLevel) {
	if level.Empty() {
		s.levels.Delete(level)
		level.release()
	}
}

// Len returns the number of non-empty price levels on this side.
func (s *Side) Len() int {
	return s.levels.Len()
}

// Levels returns every level on this side in priority order (best first).
func (s *Side) Levels() []*PriceLevel {
	out := make([]*PriceLevel, 0, s.levels.Len())
	s.levels.Scan(func(l *PriceLevel) bool {
		out = append(out, l)
		return true
	})
	return out
}
