package cluster

import (
	"errors"
	"fmt"

	"github.com/hupe1980/pixelclust/distance"
	"github.com/hupe1980/pixelclust/model"
)

var (
	// ErrInvalidConfig is returned for invalid algorithm parameters.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnsupportedLayout is returned when a metric reads a sub-space the points do not carry.
	ErrUnsupportedLayout = errors.New("unsupported point layout")
)

// ConfigError describes an invalid parameter.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// LayoutError reports a metric domain that the point layout does not provide.
type LayoutError struct {
	Layout model.Layout
	Domain distance.Domain
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("unsupported point layout: %s metric on %s points", e.Domain, e.Layout)
}

func (e *LayoutError) Unwrap() error { return ErrUnsupportedLayout }
