// Package net hosts the engine behind a TCP line-protocol: JSON requests in,
// JSON trade/error reports out. This replaces the teacher's fixed-width
// binary wire format (see DESIGN.md) since spec.md §6 specifies JSON as the
// canonical wire schema and a binary float64 price can't carry
// decimal.Decimal losslessly.
package net

import (
	"encoding/json"
	"errors"
	"fmt"

	"fenrir/internal/common"
	"fenrir/internal/engine"
)

// ErrMalformed is a boundary error from the request parser — never an
// engine-core error (spec.md §7).
var ErrMalformed = errors.New("malformed order request")

type wireEnvelope struct {
	OrderRequest string `json:"order_request"`
}

// ParseRequest decodes a raw JSON message into either a CreateRequest or a
// CancelRequest.
func ParseRequest(raw []byte) (any, error) {
	var env wireEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch env.OrderRequest {
	case "CREATE":
		return parseCreate(raw)
	case "CANCEL":
		return parseCancel(raw)
	default:
		return nil, fmt.Errorf("%w: unknown order_request %q", ErrMalformed, env.OrderRequest)
	}
}

type wireCreate struct {
	AccountID  string           `json:"account_id"`
	OrderID    uint64           `json:"order_id"`
	Pair       string           `json:"pair"`
	Side       string           `json:"side"`
	LimitPrice *common.Price    `json:"limit_price"`
	Quantity   common.Quantity  `json:"quantity"`
}

func parseCreate(raw []byte) (engine.CreateRequest, error) {
	var w wireCreate
	if err := json.Unmarshal(raw, &w); err != nil {
		return engine.CreateRequest{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if w.OrderID == 0 || w.Pair == "" || w.Side == "" {
		return engine.CreateRequest{}, fmt.Errorf("%w: missing required field", ErrMalformed)
	}

	var side common.Side
	switch w.Side {
	case "ASK":
		side = common.Ask
	case "BID":
		side = common.Bid
	default:
		return engine.CreateRequest{}, fmt.Errorf("%w: unknown side %q", ErrMalformed, w.Side)
	}

	return engine.CreateRequest{
		Pair:       w.Pair,
		OrderID:    common.OrderId(w.OrderID),
		Side:       side,
		LimitPrice: w.LimitPrice,
		Quantity:   w.Quantity,
		TIF:        common.DefaultTimeInForce(),
	}, nil
}

type wireCancel struct {
	OrderID uint64 `json:"order_id"`
}

func parseCancel(raw []byte) (engine.CancelRequest, error) {
	var w wireCancel
	if err := json.Unmarshal(raw, &w); err != nil {
		return engine.CancelRequest{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if w.OrderID == 0 {
		return engine.CancelRequest{}, fmt.Errorf("%w: missing order_id", ErrMalformed)
	}
	return engine.CancelRequest{OrderID: common.OrderId(w.OrderID)}, nil
}

// TradeReport is the wire form of a common.Trade (spec.md §6).
type TradeReport struct {
	TakerID  uint64 `json:"taker_id"`
	MakerID  uint64 `json:"maker_id"`
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
	Sequence uint64 `json:"sequence"`
}

// NewTradeReport converts a trade into its wire form.
func NewTradeReport(t common.Trade) TradeReport {
	return TradeReport{
		TakerID:  uint64(t.TakerID),
		MakerID:  uint64(t.MakerID),
		Price:    t.Price.String(),
		Quantity: t.Quantity.String(),
		Sequence: t.Sequence,
	}
}
