// Package metrics exposes tracker counters and gauges to Prometheus.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the tracker metrics. A nil *Collector is valid and
// records nothing.
type Collector struct {
	gatherer prometheus.Gatherer

	FeedFetches   *prometheus.CounterVec
	FeedRecords   prometheus.Counter
	Bodies        *prometheus.GaugeVec
	DangerBodies  prometheus.Gauge
	FrameDuration prometheus.Histogram
	Picks         *prometheus.CounterVec
	ScaleToggles  prometheus.Counter
	StateWrites   *prometheus.CounterVec
}

// New registers the tracker metrics on reg. A nil reg gets a private
// registry so several collectors can coexist in one process.
func New(reg *prometheus.Registry) (*Collector, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	c := &Collector{
		gatherer: reg,
		FeedFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_feed_fetches_total",
			Help: "NeoWs feed fetches by result.",
		}, []string{"result"}),
		FeedRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracker_feed_records_total",
			Help: "Near-Earth-object records ingested from the feed.",
		}),
		Bodies: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tracker_bodies",
			Help: "Bodies in the registry by kind.",
		}, []string{"kind"}),
		DangerBodies: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tracker_danger_bodies",
			Help: "Asteroids currently inside the Earth danger radius.",
		}),
		FrameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tracker_frame_duration_seconds",
			Help:    "Time spent in one per-frame update.",
			Buckets: []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
		}),
		Picks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_picks_total",
			Help: "Pointer clicks that selected a body, by kind.",
		}, []string{"kind"}),
		ScaleToggles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracker_scale_toggles_total",
			Help: "Asteroid scale mode toggles.",
		}),
		StateWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_state_writes_total",
			Help: "Body state rows handed to sinks, by result.",
		}, []string{"result"}),
	}
	for _, col := range []prometheus.Collector{
		c.FeedFetches, c.FeedRecords, c.Bodies, c.DangerBodies,
		c.FrameDuration, c.Picks, c.ScaleToggles, c.StateWrites,
	} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}
	return c, nil
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	if c == nil || c.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

func (c *Collector) FeedFetched(err error, records int) {
	if c == nil {
		return
	}
	if err != nil {
		c.FeedFetches.WithLabelValues("error").Inc()
		return
	}
	c.FeedFetches.WithLabelValues("ok").Inc()
	c.FeedRecords.Add(float64(records))
}

// SetBodies replaces the per-kind body gauges.
func (c *Collector) SetBodies(byKind map[string]int) {
	if c == nil {
		return
	}
	for kind, n := range byKind {
		c.Bodies.WithLabelValues(kind).Set(float64(n))
	}
}

func (c *Collector) ObserveFrame(d time.Duration, danger int) {
	if c == nil {
		return
	}
	c.FrameDuration.Observe(d.Seconds())
	c.DangerBodies.Set(float64(danger))
}

func (c *Collector) Picked(kind string) {
	if c == nil {
		return
	}
	c.Picks.WithLabelValues(kind).Inc()
}

func (c *Collector) Toggled() {
	if c == nil {
		return
	}
	c.ScaleToggles.Inc()
}

// StatesWritten counts rows handed to a sink.
func (c *Collector) StatesWritten(n int, err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.StateWrites.WithLabelValues(result).Add(float64(n))
}
