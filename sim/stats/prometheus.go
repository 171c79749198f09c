package stats

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// percentBuckets covers the 0-100 range used by every *_percent histogram.
var percentBuckets = prometheus.LinearBuckets(0, 10, 11)

// Prometheus implements Collector using Prometheus metrics registered on a
// private registry, so that separate runs in one process never share series.
//
// Thread-safety: NOT thread-safe. The simulators publish from a single goroutine.
type Prometheus struct {
	registry *prometheus.Registry

	counters   map[string]prometheus.Counter
	gauges     map[string]prometheus.Gauge
	histograms map[string]prometheus.Histogram
}

// Compile-time check that Prometheus implements Collector.
var _ Collector = (*Prometheus)(nil)

// NewPrometheus creates a collector backed by a fresh registry.
func NewPrometheus() *Prometheus {
	return &Prometheus{
		registry:   prometheus.NewRegistry(),
		counters:   make(map[string]prometheus.Counter),
		gauges:     make(map[string]prometheus.Gauge),
		histograms: make(map[string]prometheus.Histogram),
	}
}

// Registry exposes the underlying registry for gathering.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// IncCounter increments a counter metric.
func (p *Prometheus) IncCounter(name string, delta int64) {
	counter, ok := p.counters[name]
	if !ok {
		counter = prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: name})
		p.registry.MustRegister(counter)
		p.counters[name] = counter
	}
	counter.Add(float64(delta))
}

// SetGauge sets a gauge metric.
func (p *Prometheus) SetGauge(name string, value int64) {
	gauge, ok := p.gauges[name]
	if !ok {
		gauge = prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: name})
		p.registry.MustRegister(gauge)
		p.gauges[name] = gauge
	}
	gauge.Set(float64(value))
}

// ObserveHistogram records a value in a histogram.
func (p *Prometheus) ObserveHistogram(name string, value float64) {
	histogram, ok := p.histograms[name]
	if !ok {
		histogram = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    name,
			Help:    name,
			Buckets: percentBuckets,
		})
		p.registry.MustRegister(histogram)
		p.histograms[name] = histogram
	}
	histogram.Observe(value)
}

// WriteTextfile dumps every collected metric to path in the Prometheus text
// exposition format.
func (p *Prometheus) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
