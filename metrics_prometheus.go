package pixelclust

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusCollector exports run and validation metrics through
// prometheus/client_golang.
type PrometheusCollector struct {
	runs              *prometheus.CounterVec
	runSeconds        *prometheus.HistogramVec
	pointsClustered   *prometheus.CounterVec
	lastClusters      *prometheus.GaugeVec
	validationSeconds *prometheus.HistogramVec
}

// NewPrometheusCollector registers the collector's metrics on reg.
// If reg is nil, prometheus.DefaultRegisterer is used.
func NewPrometheusCollector(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusCollector{
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Clustering runs by algorithm and result.",
		}, []string{"algorithm", "result"}),
		runSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Clustering run duration.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"algorithm"}),
		pointsClustered: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_clustered_total",
			Help:      "Points processed by successful runs.",
		}, []string{"algorithm"}),
		lastClusters: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_cluster_count",
			Help:      "Cluster count of the most recent successful run.",
		}, []string{"algorithm"}),
		validationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "validation_duration_seconds",
			Help:      "Validation index computation duration.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"index"}),
	}
}

// RecordRun implements MetricsCollector.
func (p *PrometheusCollector) RecordRun(algorithm string, points, clusters int, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	p.runs.WithLabelValues(algorithm, result).Inc()
	p.runSeconds.WithLabelValues(algorithm).Observe(duration.Seconds())
	if err != nil {
		return
	}
	p.pointsClustered.WithLabelValues(algorithm).Add(float64(points))
	p.lastClusters.WithLabelValues(algorithm).Set(float64(clusters))
}

// RecordValidation implements MetricsCollector.
func (p *PrometheusCollector) RecordValidation(index string, duration time.Duration) {
	p.validationSeconds.WithLabelValues(index).Observe(duration.Seconds())
}
