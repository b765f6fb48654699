// Package metrics exposes Prometheus instrumentation for the engine host,
// grounded on VictorVVedtion-perp-dex/metrics/prometheus.go's Collector
// shape — scaled down to the handful of series a single-pair matching
// engine actually produces.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds every metric series this engine host publishes.
type Collector struct {
	OrdersTotal    *prometheus.CounterVec
	TradesTotal    prometheus.Counter
	TradeVolume    prometheus.Counter
	OrderbookDepth *prometheus.GaugeVec
	MatchLatency   prometheus.Histogram
}

var (
	collector     *Collector
	collectorOnce sync.Once
)

// Default returns the process-wide Collector singleton, constructing it on
// first use.
func Default() *Collector {
	collectorOnce.Do(func() {
		collector = newCollector()
	})
	return collector
}

func newCollector() *Collector {
	c := &Collector{
		OrdersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fenrir",
			Name:      "orders_total",
			Help:      "Total number of order requests processed, by side and outcome.",
		}, []string{"side", "outcome"}),
		TradesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fenrir",
			Name:      "trades_total",
			Help:      "Total number of trades emitted.",
		}),
		TradeVolume: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fenrir",
			Name:      "trade_volume_total",
			Help:      "Total traded quantity, summed across trades.",
		}),
		OrderbookDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "fenrir",
			Name:      "orderbook_depth",
			Help:      "Resting quantity per side of the book.",
		}, []string{"side"}),
		MatchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fenrir",
			Name:      "match_latency_seconds",
			Help:      "Wall-clock time spent inside a single Create call.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	prometheus.MustRegister(c.OrdersTotal, c.TradesTotal, c.TradeVolume, c.OrderbookDepth, c.MatchLatency)
	return c
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
