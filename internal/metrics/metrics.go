// Package metrics exposes RPC, persistence and household figures to
// Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/cosmocash/internal/household"
	"github.com/mmynk/cosmocash/internal/models"
)

const namespace = "cosmocash"

// Metrics holds the instruments updated by the server.
type Metrics struct {
	RPCRequests   *prometheus.CounterVec
	RPCDuration   *prometheus.HistogramVec
	FlushFailures *prometheus.CounterVec
}

// New creates the instruments and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "Connect RPCs handled, by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "Connect RPC latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		FlushFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flush_failures_total",
			Help:      "Failed writes of a persisted collection.",
		}, []string{"key"}),
	}
	reg.MustRegister(m.RPCRequests, m.RPCDuration, m.FlushFailures)
	return m
}

// FlushFailed counts a failed write. It has the shape of persist.ErrorHandler.
func (m *Metrics) FlushFailed(key string, _ error) {
	m.FlushFailures.WithLabelValues(key).Inc()
}

// HouseholdCollector reports gauges derived from the household on every
// scrape.
type HouseholdCollector struct {
	h *household.Household

	roommates   *prometheus.Desc
	expenses    *prometheus.Desc
	spending    *prometheus.Desc
	outstanding *prometheus.Desc
	wishlist    *prometheus.Desc
	saved       *prometheus.Desc
	messages    *prometheus.Desc
}

var _ prometheus.Collector = (*HouseholdCollector)(nil)

// NewHouseholdCollector creates a collector over h.
func NewHouseholdCollector(h *household.Household) *HouseholdCollector {
	name := func(n string) string { return prometheus.BuildFQName(namespace, "household", n) }
	return &HouseholdCollector{
		h:           h,
		roommates:   prometheus.NewDesc(name("roommates"), "Roommates in the household.", nil, nil),
		expenses:    prometheus.NewDesc(name("expenses"), "Expenses in the ledger, by tag.", []string{"tag"}, nil),
		spending:    prometheus.NewDesc(name("spending_amount"), "Sum of expense amounts, by tag.", []string{"tag"}, nil),
		outstanding: prometheus.NewDesc(name("outstanding_amount"), "Unpaid contributions, by roommate.", []string{"roommate_id"}, nil),
		wishlist:    prometheus.NewDesc(name("wishlist_items"), "Wishlist items, by funded state.", []string{"funded"}, nil),
		saved:       prometheus.NewDesc(name("wishlist_saved_amount"), "Amount saved across the wishlist.", nil, nil),
		messages:    prometheus.NewDesc(name("chat_messages"), "Messages in the household chat.", nil, nil),
	}
}

func (c *HouseholdCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.roommates
	ch <- c.expenses
	ch <- c.spending
	ch <- c.outstanding
	ch <- c.wishlist
	ch <- c.saved
	ch <- c.messages
}

func (c *HouseholdCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.h.Snapshot()

	ch <- prometheus.MustNewConstMetric(c.roommates, prometheus.GaugeValue, float64(len(s.Roommates)))
	ch <- prometheus.MustNewConstMetric(c.messages, prometheus.GaugeValue, float64(len(s.Chat)))

	counts := map[models.ExpenseTag]int{models.TagShared: 0, models.TagPersonal: 0}
	amounts := map[models.ExpenseTag]float64{models.TagShared: 0, models.TagPersonal: 0}
	for _, e := range s.Expenses {
		counts[e.Tag]++
		amounts[e.Tag] += e.Amount
	}
	for tag, n := range counts {
		ch <- prometheus.MustNewConstMetric(c.expenses, prometheus.GaugeValue, float64(n), string(tag))
		ch <- prometheus.MustNewConstMetric(c.spending, prometheus.GaugeValue, amounts[tag], string(tag))
	}

	for _, b := range c.h.Insights().Balances {
		ch <- prometheus.MustNewConstMetric(c.outstanding, prometheus.GaugeValue, b.Outstanding, b.RoommateID)
	}

	var funded, open int
	var saved float64
	for _, item := range s.Wishlist {
		if item.Funded() {
			funded++
		} else {
			open++
		}
		saved += item.CurrentAmount
	}
	ch <- prometheus.MustNewConstMetric(c.wishlist, prometheus.GaugeValue, float64(funded), "true")
	ch <- prometheus.MustNewConstMetric(c.wishlist, prometheus.GaugeValue, float64(open), "false")
	ch <- prometheus.MustNewConstMetric(c.saved, prometheus.GaugeValue, saved)
}
