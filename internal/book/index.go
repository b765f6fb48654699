package book

import "fenrir/internal/common"

// Location is where a resting order lives: which side, and at which price
// level.
type Location struct {
	Side  common.Side
	Price common.Price
}

// Index maps an OrderId to its resting location for O(1) cancel-by-id. It
// must hold an entry for every resting (Open/Partial) limit order and no
// others — kept in lockstep with BookSide by the matcher and the cancel
// path (spec.md §3, invariant 4 in §8).
type Index map[common.OrderId]Location
