package pixelclust

import "github.com/hupe1980/pixelclust/validation"

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	parallelism      int
	seed             *int64
	sampleThreshold  int
}

// Option configures an Engine.
type Option func(*options)

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := pixelclust.NewJSONLogger(zapcore.InfoLevel)
//	eng := pixelclust.New(pixelclust.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &pixelclust.BasicMetricsCollector{}
//	eng := pixelclust.New(pixelclust.WithMetricsCollector(metrics))
//	// ... run ...
//	stats := metrics.GetStats()
//	fmt.Printf("Runs: %d, Avg latency: %dns\n", stats.RunCount, stats.RunAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithParallelism sets the worker count used by configurations with parallel
// enabled, and the number of partitions or sweep steps clustered at once.
// Non-positive values select min(GOMAXPROCS, 8).
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithSeed makes runs reproducible. A seed set on a Config takes precedence.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = &seed
	}
}

// WithSampleThreshold sets the point count above which Evaluate uses the
// sampled silhouette. Default: validation.DefaultSampleThreshold.
func WithSampleThreshold(n int) Option {
	return func(o *options) {
		o.sampleThreshold = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		sampleThreshold:  validation.DefaultSampleThreshold,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.sampleThreshold <= 0 {
		o.sampleThreshold = validation.DefaultSampleThreshold
	}
	return o
}
