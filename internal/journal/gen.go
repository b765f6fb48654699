package journal

import (
	"encoding/json"
	"fmt"
	"math/rand"
)

// generatedCreate mirrors the CREATE wire schema (spec.md §6) closely
// enough to round-trip through internal/net.ParseRequest.
type generatedCreate struct {
	OrderRequest string  `json:"order_request"`
	AccountID    string  `json:"account_id"`
	OrderID      uint64  `json:"order_id"`
	Pair         string  `json:"pair"`
	Side         string  `json:"side"`
	LimitPrice   *string `json:"limit_price"`
	Quantity     string  `json:"quantity"`
}

type generatedCancel struct {
	OrderRequest string `json:"order_request"`
	OrderID      uint64 `json:"order_id"`
}

// Generate produces n synthetic journal lines for pair, grounded on
// original_source/src/order.rs's util::generate: mostly CREATE requests
// with an occasional CANCEL whose order id is drawn from the earlier line
// numbers (which may be an id no CREATE used), reimplemented
// with a seeded math/rand.Rand so load journals are reproducible across
// runs (this repo has no wall-clock time source to begin with — spec.md
// §1 — so unseeded randomness in a generated fixture would be the only
// source of nondeterminism in an otherwise deterministic engine).
func Generate(pair string, n int, seed int64) [][]byte {
	rng := rand.New(rand.NewSource(seed))
	lines := make([][]byte, 0, n)

	for i := 1; i <= n; i++ {
		var raw []byte
		if i > 1 && rng.Float64() < 1.0/1000.0 {
			cancel := generatedCancel{
				OrderRequest: "CANCEL",
				OrderID:      uint64(rng.Intn(i-1) + 1),
			}
			raw, _ = json.Marshal(cancel)
		} else {
			side := "ASK"
			if rng.Float64() < 0.5 {
				side = "BID"
			}
			var limitPrice *string
			if rng.Float64() < 0.8 {
				p := randomDecimal(rng)
				limitPrice = &p
			}
			create := generatedCreate{
				OrderRequest: "CREATE",
				AccountID:    fmt.Sprintf("%d", rng.Intn(9)+1),
				OrderID:      uint64(i),
				Pair:         pair,
				Side:         side,
				LimitPrice:   limitPrice,
				Quantity:     randomDecimal(rng),
			}
			raw, _ = json.Marshal(create)
		}
		lines = append(lines, raw)
	}
	return lines
}

// randomDecimal mirrors Decimal::new(rng.gen_range(10000..1_000_000), 2):
// a two-decimal value between 100.00 and 9999.99.
func randomDecimal(rng *rand.Rand) string {
	cents := rng.Intn(1_000_000-10_000) + 10_000
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
