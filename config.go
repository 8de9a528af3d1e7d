package pixelclust

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/pixelclust/cluster"
	"github.com/hupe1980/pixelclust/distance"
	"github.com/hupe1980/pixelclust/model"
)

// Algorithm kinds accepted by Config.
const (
	AlgorithmKMeans     = "kmeans"
	AlgorithmDBSCAN     = "dbscan"
	AlgorithmDBSCANGrid = "dbscan-grid"
)

// Config selects an algorithm, its parameters and a metric.
//
// Example YAML:
//
//	algorithm: dbscan-grid
//	metric: position
//	eps: 3
//	min_pts: 8
//	parallel: true
type Config struct {
	Algorithm     string  `yaml:"algorithm" json:"algorithm" validate:"required,oneof=kmeans dbscan dbscan-grid"`
	Metric        string  `yaml:"metric" json:"metric" validate:"required,oneof=euclidean cielab cie94 redmean position"`
	K             int     `yaml:"k,omitempty" json:"k,omitempty" validate:"omitempty,gt=0"`
	MaxIterations int     `yaml:"max_iterations,omitempty" json:"max_iterations,omitempty" validate:"omitempty,gt=0"`
	Eps           float64 `yaml:"eps,omitempty" json:"eps,omitempty" validate:"omitempty,gt=0"`
	MinPts        int     `yaml:"min_pts,omitempty" json:"min_pts,omitempty" validate:"omitempty,gt=0"`
	Layout        string  `yaml:"layout,omitempty" json:"layout,omitempty" validate:"omitempty,oneof=position color full"`
	Parallel      bool    `yaml:"parallel,omitempty" json:"parallel,omitempty"`
	Seed          *int64  `yaml:"seed,omitempty" json:"seed,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes and validates a YAML configuration.
// Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: decode config: %v", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and the parameters the selected
// algorithm requires. Errors match ErrInvalidConfig.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}

		// Report the first violation.
		e := verrs[0]
		return &cluster.ConfigError{Field: e.Field(), Value: e.Value(), Reason: reason(e)}
	}

	switch c.Algorithm {
	case AlgorithmKMeans:
		if c.K <= 0 {
			return &cluster.ConfigError{Field: "k", Value: c.K, Reason: "required for kmeans"}
		}
	default:
		if c.Eps <= 0 {
			return &cluster.ConfigError{Field: "eps", Value: c.Eps, Reason: "required for " + c.Algorithm}
		}
		if c.MinPts <= 0 {
			return &cluster.ConfigError{Field: "min_pts", Value: c.MinPts, Reason: "required for " + c.Algorithm}
		}
	}
	return nil
}

func reason(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "oneof":
		return "must be one of " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	default:
		return fmt.Sprintf("validation failed (%s)", e.Tag())
	}
}

// NewMetric returns the configured metric.
func (c Config) NewMetric() (distance.Metric, error) {
	kind, err := distance.ParseKind(c.Metric)
	if err != nil {
		return nil, err
	}
	return distance.Provider(kind)
}

// NewAlgorithm builds the configured algorithm. parallelism applies when
// Parallel is set. seed is used when the Config carries none.
func (c Config) NewAlgorithm(parallelism int, seed *int64) (cluster.Algorithm, error) {
	workers := 1
	if c.Parallel {
		workers = parallelism
	}

	switch c.Algorithm {
	case AlgorithmKMeans:
		if c.Seed != nil {
			seed = c.Seed
		}
		return cluster.NewKMeans(c.K, func(o *cluster.KMeansOptions) {
			if c.MaxIterations > 0 {
				o.MaxIterations = c.MaxIterations
			}
			o.RandomSeed = seed
			o.Parallelism = workers
		})
	case AlgorithmDBSCAN:
		return cluster.NewDBSCAN(c.Eps, c.MinPts, func(o *cluster.DBSCANOptions) {
			o.Parallelism = workers
		})
	case AlgorithmDBSCANGrid:
		layout, err := model.ParseLayout(c.Layout)
		if err != nil {
			return nil, &cluster.ConfigError{Field: "layout", Value: c.Layout, Reason: err.Error()}
		}
		return cluster.NewGridDBSCAN(c.Eps, c.MinPts, func(o *cluster.GridOptions) {
			o.Layout = layout
		})
	default:
		return nil, &cluster.ConfigError{Field: "algorithm", Value: c.Algorithm, Reason: "unknown algorithm"}
	}
}

// IsDensity reports whether the configured algorithm is density based.
func (c Config) IsDensity() bool {
	return c.Algorithm == AlgorithmDBSCAN || c.Algorithm == AlgorithmDBSCANGrid
}
