package common

import "fmt"

// Trade is the event emitted each time a taker crosses a maker. Price is
// always the maker's resting price (spec.md §6). Sequence is a strictly
// monotonically increasing counter assigned at emission time — the only
// time source the engine has, since spec.md §1 forbids wall-clock
// timestamps.
type Trade struct {
	TakerID  OrderId
	MakerID  OrderId
	Price    Price
	Quantity Quantity
	Sequence uint64
}

func (t Trade) String() string {
	return fmt.Sprintf(
		"TRADE[seq=%d] taker=%d maker=%d qty=%s @ %s",
		t.Sequence, t.TakerID, t.MakerID, t.Quantity, t.Price,
	)
}
