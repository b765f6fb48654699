// Package matching implements the matcher (spec.md §4.5): it pairs an
// incoming taker against the opposing BookSide following TIF/FOK/post-only
// rules and reports the trades produced. It is synchronous and
// single-threaded — no goroutines, no channels, no blocking I/O.
package matching

import (
	"fenrir/internal/book"
	"fenrir/internal/common"
)

// Outcome is everything a single Match call produced: the taker's final
// state, the trades emitted in the order they occurred, and whether the
// taker now rests in the book.
type Outcome struct {
	Taker  common.Order
	Trades []common.Trade
	Rested bool
}

// NextSequence hands out the next trade sequence number. It is the only
// caller-supplied time source the matcher needs (spec.md §9).
type NextSequence func() uint64

// Match runs taker against the opposite BookSide, mutating both the book
// side and the index as it goes, and returns the resulting Outcome. taker
// must not already be booked.
func Match(taker common.Order, opposite *book.Side, own *book.Side, index book.Index, nextSeq NextSequence) Outcome {
	if taker.IsPostOnly() {
		if best, ok := opposite.Best(); ok {
			if maker, ok := best.PeekFront(); ok && taker.Matches(maker) {
				taker.Cancel()
				return Outcome{Taker: taker}
			}
		}
		return rest(taker, own, index)
	}

	if taker.IsFillOrKill() {
		if !enoughLiquidity(taker, opposite) {
			taker.Cancel()
			return Outcome{Taker: taker}
		}
	}

	trades := sweep(&taker, opposite, index, nextSeq)

	if taker.Remaining().IsZero() {
		return Outcome{Taker: taker, Trades: trades}
	}

	switch {
	case !taker.Type.IsLimit():
		// Market orders never rest.
		taker.Cancel()
		return Outcome{Taker: taker, Trades: trades}
	case taker.IsImmediateOrCancel():
		taker.Cancel()
		return Outcome{Taker: taker, Trades: trades}
	default:
		outcome := rest(taker, own, index)
		outcome.Trades = trades
		return outcome
	}
}

// enoughLiquidity walks the opposite side in best-first order, summing
// remaining quantity at prices the taker can cross, without mutating the
// book, and reports whether that sum meets the taker's full quantity. This
// is the fill-or-kill precheck (spec.md §4.5).
func enoughLiquidity(taker common.Order, opposite *book.Side) bool {
	needed := taker.OrderQuantity
	available := common.Quantity{}
	for _, level := range opposite.Levels() {
		probe, ok := level.PeekFront()
		if !ok || !taker.Matches(probe) {
			break
		}
		for _, o := range level.Orders {
			if !taker.Matches(o) {
				break
			}
			available = available.Add(o.Remaining())
			if available.GreaterThanOrEqual(needed) {
				return true
			}
		}
	}
	return available.GreaterThanOrEqual(needed)
}

// sweep runs the matching loop (spec.md §4.5 steps 1-6): while the taker has
// remaining quantity and the opposite side is non-empty and crosses, trade
// against the best level's head order, evicting makers and levels as they
// terminate.
func sweep(taker *common.Order, opposite *book.Side, index book.Index, nextSeq NextSequence) []common.Trade {
	var trades []common.Trade
	for !taker.Remaining().IsZero() {
		level, ok := opposite.Best()
		if !ok {
			break
		}
		maker, ok := level.PeekFront()
		if !ok || !taker.Matches(maker) {
			break
		}

		qty := taker.CanTrade(maker)
		makerPrice, _ := maker.LimitPrice()

		if err := taker.Fill(qty); err != nil {
			panic(err)
		}
		if err := maker.Fill(qty); err != nil {
			panic(err)
		}

		trades = append(trades, common.Trade{
			TakerID:  taker.ID,
			MakerID:  maker.ID,
			Price:    makerPrice,
			Quantity: qty,
			Sequence: nextSeq(),
		})

		if maker.IsClosed() {
			level.PopFront()
			delete(index, maker.ID)
		} else {
			level.ReplaceFront(maker)
		}
		opposite.EvictIfEmpty(level)
	}
	return trades
}

// rest books a GTC limit taker as a new resting maker at its own limit
// price, appended to the tail of that level, and records it in the index.
func rest(taker common.Order, own *book.Side, index book.Index) Outcome {
	price, _ := taker.LimitPrice()
	level := own.GetOrCreate(price)
	level.PushBack(taker)
	index[taker.ID] = book.Location{Side: taker.Side, Price: price}
	return Outcome{Taker: taker, Rested: true}
}
