// Package metrics exposes the Prometheus collectors for scan activity.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector registers and updates all sectorscan metrics on a dedicated
// registry so the HTTP surface can serve them without touching the default
// global registry.
type Collector struct {
	registry *prometheus.Registry

	ScansTotal      *prometheus.CounterVec
	ExclusionsTotal *prometheus.CounterVec
	ScanDuration    *prometheus.HistogramVec
	EligibleCount   *prometheus.GaugeVec
}

// NewCollector creates and registers the scan metrics.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),

		ScansTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sectorscan_scans_total",
				Help: "Total number of snapshot scans by analysis mode",
			},
			[]string{"mode"},
		),

		ExclusionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sectorscan_exclusions_total",
				Help: "Entities excluded from ranking by reason",
			},
			[]string{"mode", "reason"},
		),

		ScanDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sectorscan_scan_duration_seconds",
				Help:    "Duration of a single snapshot scan",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"mode"},
		),

		EligibleCount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sectorscan_eligible_entities",
				Help: "Eligible entities in the most recent scan",
			},
			[]string{"mode"},
		),
	}

	c.registry.MustRegister(c.ScansTotal, c.ExclusionsTotal, c.ScanDuration, c.EligibleCount)
	return c
}

// Registry returns the backing registry for the /metrics handler.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveScan records one completed snapshot scan.
func (c *Collector) ObserveScan(mode string, elapsed time.Duration, eligible int) {
	c.ScansTotal.WithLabelValues(mode).Inc()
	c.ScanDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
	c.EligibleCount.WithLabelValues(mode).Set(float64(eligible))
}

// ObserveExclusion records one excluded entity.
func (c *Collector) ObserveExclusion(mode, reason string) {
	c.ExclusionsTotal.WithLabelValues(mode, reason).Inc()
}
