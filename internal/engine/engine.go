// Package engine is the facade (spec.md §4.7): it accepts order requests,
// dispatches them to the matcher or the cancel path, and collects the trade
// events produced. It owns both BookSides and the Index exclusively.
package engine

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"fenrir/internal/book"
	"fenrir/internal/common"
	"fenrir/internal/matching"
)

// InvalidPairError is returned when a Create request addresses a pair other
// than the one this engine was built for. No state mutates.
type InvalidPairError struct {
	Expected string
	Found    string
}

func (e *InvalidPairError) Error() string {
	return fmt.Sprintf("invalid pair (expected=%s, found=%s)", e.Expected, e.Found)
}

// CreateRequest asks the engine to book a new order. LimitPrice == nil
// means a market order (spec.md §6).
type CreateRequest struct {
	Pair       string
	OrderID    common.OrderId
	Side       common.Side
	LimitPrice *common.Price
	Quantity   common.Quantity
	TIF        common.TimeInForce
	FillOrKill bool
}

// String renders a CreateRequest the way original_source/src/order.rs's
// Display impl for OrderRequest::Create does.
func (r CreateRequest) String() string {
	if r.LimitPrice == nil {
		return fmt.Sprintf("ORDER[%d] %s %s@MARKET", r.OrderID, r.Side, r.Quantity)
	}
	return fmt.Sprintf("ORDER[%d] %s %s@%s", r.OrderID, r.Side, r.Quantity, *r.LimitPrice)
}

// CancelRequest asks the engine to cancel a resting order. Unknown ids are
// silently tolerated (spec.md §7).
type CancelRequest struct {
	OrderID common.OrderId
}

// String renders a CancelRequest the way original_source/src/order.rs's
// Display impl for OrderRequest::Cancel does.
func (r CancelRequest) String() string {
	return fmt.Sprintf("[CANCEL] order_id: %d", r.OrderID)
}

// LevelView is one row of a read-only book snapshot.
type LevelView struct {
	Price      common.Price
	Quantity   common.Quantity
	OrderCount int
}

// BookView is a read-only snapshot of both sides, best price first.
type BookView struct {
	Asks []LevelView
	Bids []LevelView
}

// Engine is a single-pair matching engine core: pure, synchronous, and
// single-threaded. It must only be driven by one goroutine at a time; any
// concurrency is the host's responsibility (spec.md §5).
type Engine struct {
	pair string

	asks  *book.Side
	bids  *book.Side
	index book.Index

	sequence uint64

	mu     sync.Mutex // guards trades; Create and Cancel themselves are not reentrant-safe
	trades []common.Trade
}

// New builds an Engine for the given pair. The engine does not interpret
// the pair string beyond equality checks on Create (spec.md §9 resolves the
// "drop or enforce" open question in favor of enforcing it).
func New(pair string) *Engine {
	return &Engine{
		pair:  pair,
		asks:  book.NewSide(common.Ask),
		bids:  book.NewSide(common.Bid),
		index: make(book.Index),
	}
}

func (e *Engine) nextSequence() uint64 {
	e.sequence++
	return e.sequence
}

// Create books a new order from req and runs the matcher, returning
// InvalidPairError if req.Pair does not match this engine's pair.
func (e *Engine) Create(req CreateRequest) error {
	if req.Pair != "" && req.Pair != e.pair {
		return &InvalidPairError{Expected: e.pair, Found: req.Pair}
	}

	var taker common.Order
	if req.LimitPrice != nil {
		taker = common.NewLimitOrderWithTIF(req.OrderID, req.Side, req.Quantity, *req.LimitPrice, req.TIF)
	} else {
		taker = common.NewMarketOrder(req.OrderID, req.Side, req.Quantity, req.FillOrKill)
	}

	own, opposite := e.sidesFor(req.Side)
	outcome := matching.Match(taker, opposite, own, e.index, e.nextSequence)

	e.mu.Lock()
	e.trades = append(e.trades, outcome.Trades...)
	e.mu.Unlock()

	log.Debug().
		Uint64("order_id", uint64(req.OrderID)).
		Str("side", req.Side.String()).
		Int("trades", len(outcome.Trades)).
		Bool("rested", outcome.Rested).
		Str("status", outcome.Taker.Status.String()).
		Msg("processed create request")

	return nil
}

// Cancel runs the cancel path (spec.md §4.6). Unknown ids are not an error.
func (e *Engine) Cancel(req CancelRequest) error {
	loc, ok := e.index[req.OrderID]
	if !ok {
		return nil
	}

	own := e.sideNamed(loc.Side)

	level, ok := own.Get(loc.Price)
	if !ok {
		panic(fmt.Sprintf("index/book inconsistency: level missing for order %d", req.OrderID))
	}

	order, ok := level.RemoveByID(req.OrderID)
	if !ok {
		panic(fmt.Sprintf("index/book inconsistency: order %d missing from its level", req.OrderID))
	}

	order.Cancel()
	delete(e.index, req.OrderID)
	own.EvictIfEmpty(level)

	log.Debug().Uint64("order_id", uint64(req.OrderID)).Msg("cancelled order")
	return nil
}

// sideNamed returns the BookSide that owns resting orders of the given
// side (Ask orders rest on the ask side, etc).
func (e *Engine) sideNamed(side common.Side) *book.Side {
	if side == common.Ask {
		return e.asks
	}
	return e.bids
}

// sidesFor returns (own, opposite) for a taker of the given side: a Bid
// taker's own side is bids and it matches against asks, and vice versa.
func (e *Engine) sidesFor(side common.Side) (own, opposite *book.Side) {
	if side == common.Bid {
		return e.bids, e.asks
	}
	return e.asks, e.bids
}

// BookView returns a read-only snapshot of the book. Only safe to call
// between Create/Cancel calls (spec.md §5) — the engine exposes no locks over
// the book itself.
func (e *Engine) BookView() BookView {
	return BookView{
		Asks: levelViews(e.asks),
		Bids: levelViews(e.bids),
	}
}

func levelViews(side *book.Side) []LevelView {
	levels := side.Levels()
	views := make([]LevelView, 0, len(levels))
	for _, l := range levels {
		qty := common.Quantity{}
		for _, o := range l.Orders {
			qty = qty.Add(o.Remaining())
		}
		views = append(views, LevelView{Price: l.Price, Quantity: qty, OrderCount: len(l.Orders)})
	}
	return views
}

// DrainTrades returns and clears the trades produced since the last drain.
// No trade is ever lost or duplicated across drains.
func (e *Engine) DrainTrades() []common.Trade {
	e.mu.Lock()
	defer e.mu.Unlock()
	drained := e.trades
	e.trades = nil
	return drained
}

// Pair returns the pair this engine was constructed for.
func (e *Engine) Pair() string {
	return e.pair
}
