package inventory

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	labelOp      = "op"
	labelOutcome = "outcome"

	outcomeCommitted = "committed"
	outcomeAborted   = "aborted"
)

// Metrics holds the engine's prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	Purchases  *prometheus.CounterVec
	CopiesSold prometheus.Counter
	SaleMisses prometheus.Counter
	Books      prometheus.Gauge
	Duration   *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Purchases: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookstock_purchases_total",
				Help: "Purchase batches by outcome",
			},
			[]string{labelOutcome},
		),
		CopiesSold: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bookstock_copies_sold_total",
			Help: "Copies sold by committed purchases",
		}),
		SaleMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bookstock_sale_misses_total",
			Help: "Purchase entries that could not be covered by stock",
		}),
		Books: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bookstock_books",
			Help: "Books currently in the inventory",
		}),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "bookstock_operation_duration_seconds",
				Help: "Inventory operation latency, lock waits included",
			},
			[]string{labelOp},
		),
	}

	reg.MustRegister(m.Purchases, m.CopiesSold, m.SaleMisses, m.Books, m.Duration)
	return m
}

func (m *Metrics) observe(op string, start time.Time) {
	if m == nil {
		return
	}
	m.Duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (m *Metrics) purchaseCommitted(copies int) {
	if m == nil {
		return
	}
	m.Purchases.WithLabelValues(outcomeCommitted).Inc()
	m.CopiesSold.Add(float64(copies))
}

func (m *Metrics) purchaseAborted(misses int) {
	if m == nil {
		return
	}
	m.Purchases.WithLabelValues(outcomeAborted).Inc()
	m.SaleMisses.Add(float64(misses))
}

func (m *Metrics) setBooks(n int) {
	if m == nil {
		return
	}
	m.Books.Set(float64(n))
}
