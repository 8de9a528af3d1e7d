package pixelclust

import (
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hupe1980/pixelclust/cluster"
	"github.com/hupe1980/pixelclust/validation"
)

// Logger wraps zap.Logger with pixelclust-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*zap.Logger
}

// NewLogger creates a new Logger with the given core.
// If core is nil, uses a console encoder to stderr at info level.
func NewLogger(core zapcore.Core) *Logger {
	if core == nil {
		return NewTextLogger(zapcore.InfoLevel)
	}
	return &Logger{Logger: zap.New(core)}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., zapcore.DebugLevel, zapcore.InfoLevel).
func NewJSONLogger(level zapcore.Level) *Logger {
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	return &Logger{Logger: zap.New(zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level))}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level zapcore.Level) *Logger {
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return &Logger{Logger: zap.New(zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level))}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// WithRunID adds a run_id field to the logger.
func (l *Logger) WithRunID(id uuid.UUID) *Logger {
	return &Logger{Logger: l.With(zap.Stringer("run_id", id))}
}

// WithAlgorithm adds an algorithm field to the logger.
func (l *Logger) WithAlgorithm(name string) *Logger {
	return &Logger{Logger: l.With(zap.String("algorithm", name))}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{Logger: l.With(zap.Int("count", count))}
}

// LogRun logs a clustering run.
func (l *Logger) LogRun(points int, res *cluster.Result, err error) {
	if err != nil {
		l.Error("clustering failed",
			zap.Int("points", points),
			zap.Error(err),
		)
		return
	}
	l.Info("clustering completed",
		zap.String("name", res.Algorithm),
		zap.String("metric", res.Metric),
		zap.Int("points", len(res.Points)),
		zap.Int("clusters", res.Count),
		zap.Int("noise", res.NoiseCount()),
		zap.Int("iterations", res.Iterations),
		zap.Duration("duration", res.Duration),
	)
}

// LogValidation logs computed validation scores.
func (l *Logger) LogValidation(scores validation.Scores, duration time.Duration) {
	l.Debug("validation completed",
		zap.Float64("davies_bouldin", scores.DaviesBouldin),
		zap.Float64("silhouette", scores.Silhouette),
		zap.Bool("sampled", scores.Sampled),
		zap.Duration("duration", duration),
	)
}

// LogPartitionRun logs the clustering of one partition.
func (l *Logger) LogPartitionRun(partition, points int, eps float64, minPts int, res *cluster.Result, err error) {
	if err != nil {
		l.Error("partition clustering failed",
			zap.Int("partition", partition),
			zap.Int("points", points),
			zap.Error(err),
		)
		return
	}
	l.Debug("partition clustering completed",
		zap.Int("partition", partition),
		zap.Int("points", points),
		zap.Float64("eps", eps),
		zap.Int("min_pts", minPts),
		zap.Int("clusters", res.Count),
		zap.Duration("duration", res.Duration),
	)
}

// LogSweep logs a parameter sweep.
func (l *Logger) LogSweep(kind string, steps int, duration time.Duration, err error) {
	if err != nil {
		l.Error("sweep failed",
			zap.String("sweep", kind),
			zap.Int("steps", steps),
			zap.Error(err),
		)
		return
	}
	l.Info("sweep completed",
		zap.String("sweep", kind),
		zap.Int("steps", steps),
		zap.Duration("duration", duration),
	)
}
