package metrics

import (
	"github.com/niksmo/productlist/internal/core/domain"
	"github.com/niksmo/productlist/internal/core/port"
	"github.com/prometheus/client_golang/prometheus"
)

var _ port.LoadObserver = (*LoadMetrics)(nil)

// LoadMetrics exports product list loads to prometheus.
type LoadMetrics struct {
	loads    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	products prometheus.Gauge
}

func NewLoadMetrics(reg prometheus.Registerer) (LoadMetrics, error) {
	m := LoadMetrics{
		loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "productlist_loads_total",
				Help: "Total number of product list loads by source",
			},
			[]string{"source"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "productlist_load_duration_seconds",
				Help:    "Duration of product list loads in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		products: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "productlist_products",
				Help: "Number of products shown after the last load",
			},
		),
	}

	for _, c := range []prometheus.Collector{m.loads, m.duration, m.products} {
		if err := reg.Register(c); err != nil {
			return LoadMetrics{}, err
		}
	}
	return m, nil
}

func (m LoadMetrics) ObserveLoad(res domain.LoadResult) {
	source := string(res.Source)
	m.loads.WithLabelValues(source).Inc()
	m.duration.WithLabelValues(source).Observe(res.Duration.Seconds())

	if res.Source != domain.SourceSuperseded {
		m.products.Set(float64(res.Count))
	}
}
