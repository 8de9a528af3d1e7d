package pixelclust

import (
	"github.com/hupe1980/pixelclust/cluster"
	"github.com/hupe1980/pixelclust/distance"
	"github.com/hupe1980/pixelclust/model"
)

var (
	// ErrEmptyInput is returned when an operation requires at least one point.
	ErrEmptyInput = model.ErrEmptyInput

	// ErrInvalidConfig is returned for invalid configuration values.
	ErrInvalidConfig = cluster.ErrInvalidConfig

	// ErrUnsupportedLayout is returned when a metric reads a sub-space the points do not carry.
	ErrUnsupportedLayout = cluster.ErrUnsupportedLayout

	// ErrUnknownMetric is returned for an unsupported metric name.
	ErrUnknownMetric = distance.ErrUnknownKind
)

// ConfigError describes an invalid configuration value.
// It matches ErrInvalidConfig with errors.Is.
type ConfigError = cluster.ConfigError
