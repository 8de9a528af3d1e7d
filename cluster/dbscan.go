package cluster

import (
	"fmt"

	"github.com/hupe1980/pixelclust/distance"
	"github.com/hupe1980/pixelclust/internal/pool"
	"github.com/hupe1980/pixelclust/model"
)

// DBSCANOptions configures the baseline density algorithm.
type DBSCANOptions struct {
	// Parallelism is the number of workers used to precompute neighbour lists.
	// Values <= 1 scan neighbourhoods on demand. Inputs below
	// pool.SequentialThreshold points always run on demand.
	Parallelism int
}

// DefaultDBSCANOptions contains the default options for DBSCAN.
var DefaultDBSCANOptions = DBSCANOptions{
	Parallelism: 1,
}

// DBSCAN is density clustering with a full neighbour scan.
type DBSCAN struct {
	eps    float64
	minPts int
	opts   DBSCANOptions
}

// NewDBSCAN creates a baseline density algorithm.
func NewDBSCAN(eps float64, minPts int, optFns ...func(o *DBSCANOptions)) (*DBSCAN, error) {
	if err := checkDensityParams(eps, minPts); err != nil {
		return nil, err
	}

	opts := DefaultDBSCANOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	return &DBSCAN{eps: eps, minPts: minPts, opts: opts}, nil
}

// Name implements Algorithm.
func (d *DBSCAN) Name() string {
	return fmt.Sprintf("DBSCAN (eps=%g, minPts=%d)", d.eps, d.minPts)
}

// Eps returns the neighbourhood radius.
func (d *DBSCAN) Eps() float64 { return d.eps }

// MinPts returns the core-point threshold.
func (d *DBSCAN) MinPts() int { return d.minPts }

// Fit implements Algorithm.
func (d *DBSCAN) Fit(points []model.Point, m distance.Metric) (Labels, error) {
	if err := checkFitInput(points, m); err != nil {
		return Labels{}, err
	}

	scan := func(i int, dst []int) []int {
		p := points[i]
		for j, q := range points {
			if m.Distance(p, q) <= d.eps {
				dst = append(dst, j)
			}
		}
		return dst
	}

	if d.opts.Parallelism <= 1 || len(points) < pool.SequentialThreshold {
		return expand(len(points), d.minPts, scan), nil
	}

	lists := make([][]int, len(points))
	err := pool.ForEachRange(len(points), d.opts.Parallelism, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			lists[i] = scan(i, nil)
		}
		return nil
	})
	if err != nil {
		return Labels{}, err
	}

	return expand(len(points), d.minPts, func(i int, dst []int) []int {
		return append(dst, lists[i]...)
	}), nil
}
