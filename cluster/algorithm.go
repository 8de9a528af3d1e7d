package cluster

import (
	"math"
	"time"

	"github.com/hupe1980/pixelclust/distance"
	"github.com/hupe1980/pixelclust/model"
)

// Noise is the assignment of points that belong to no cluster.
const Noise = -1

// Labels is the raw output of an algorithm.
type Labels struct {
	// Assignments holds one cluster id in [0, Count) or Noise per input point.
	Assignments []int
	Count       int
	// Iterations is the number of assignment passes (partition clustering only).
	Iterations int
}

// Algorithm is a clustering strategy.
type Algorithm interface {
	Name() string
	Fit(points []model.Point, m distance.Metric) (Labels, error)
}

// Run executes alg over points, timing the call and packaging the Result.
// It either returns a complete Result or an error, never a partial result.
func Run(alg Algorithm, points []model.Point, m distance.Metric) (*Result, error) {
	if alg == nil {
		return nil, &ConfigError{Field: "algorithm", Value: nil, Reason: "must not be nil"}
	}
	if m == nil {
		return nil, &ConfigError{Field: "metric", Value: nil, Reason: "must not be nil"}
	}

	start := time.Now()
	labels, err := alg.Fit(points, m)
	if err != nil {
		return nil, err
	}

	return &Result{
		Assignments: labels.Assignments,
		Count:       labels.Count,
		Iterations:  labels.Iterations,
		Algorithm:   alg.Name(),
		Metric:      m.Name(),
		Duration:    time.Since(start),
		Points:      points,
	}, nil
}

func checkDensityParams(eps float64, minPts int) error {
	if math.IsNaN(eps) || eps <= 0 {
		return &ConfigError{Field: "eps", Value: eps, Reason: "must be positive"}
	}
	if minPts <= 0 {
		return &ConfigError{Field: "minPts", Value: minPts, Reason: "must be positive"}
	}
	return nil
}

func checkFitInput(points []model.Point, m distance.Metric) error {
	if len(points) == 0 {
		return model.ErrEmptyInput
	}
	if m == nil {
		return &ConfigError{Field: "metric", Value: nil, Reason: "must not be nil"}
	}
	if uint64(len(points)) > math.MaxUint32 {
		return &ConfigError{Field: "points", Value: len(points), Reason: "too many points"}
	}
	return nil
}
