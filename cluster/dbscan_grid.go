package cluster

import (
	"fmt"
	"math"

	"github.com/hupe1980/pixelclust/distance"
	"github.com/hupe1980/pixelclust/internal/grid"
	"github.com/hupe1980/pixelclust/model"
)

// GridOptions configures the grid-accelerated density algorithm.
type GridOptions struct {
	// Layout declares which sub-spaces the input points carry.
	Layout model.Layout
}

// DefaultGridOptions contains the default options for GridDBSCAN.
var DefaultGridOptions = GridOptions{
	Layout: model.LayoutFull,
}

// GridDBSCAN is density clustering whose neighbour queries go through a
// spatial grid: a 2D plane grid for position metrics, a 3D colour cube for
// colour metrics.
type GridDBSCAN struct {
	eps    float64
	minPts int
	opts   GridOptions
}

// NewGridDBSCAN creates a grid-accelerated density algorithm.
func NewGridDBSCAN(eps float64, minPts int, optFns ...func(o *GridOptions)) (*GridDBSCAN, error) {
	if err := checkDensityParams(eps, minPts); err != nil {
		return nil, err
	}

	opts := DefaultGridOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	return &GridDBSCAN{eps: eps, minPts: minPts, opts: opts}, nil
}

// Name implements Algorithm.
func (d *GridDBSCAN) Name() string {
	return fmt.Sprintf("DBSCAN Grid (eps=%g, minPts=%d)", d.eps, d.minPts)
}

// Eps returns the neighbourhood radius.
func (d *GridDBSCAN) Eps() float64 { return d.eps }

// MinPts returns the core-point threshold.
func (d *GridDBSCAN) MinPts() int { return d.minPts }

// Fit implements Algorithm.
func (d *GridDBSCAN) Fit(points []model.Point, m distance.Metric) (Labels, error) {
	if err := checkFitInput(points, m); err != nil {
		return Labels{}, err
	}

	idx, err := d.Index(points, m)
	if err != nil {
		return Labels{}, err
	}

	return expand(len(points), d.minPts, func(i int, dst []int) []int {
		p := points[i]
		idx.Candidates(i, func(j int) bool {
			if m.Distance(p, points[j]) <= d.eps {
				dst = append(dst, j)
			}
			return true
		})
		return dst
	}), nil
}

// Index builds the grid Fit would use for points under m. The metric's
// domain must be present in the configured layout.
//
// Colour radius bounds assume channels in [0, grid.ColorMax]. If any channel
// lies outside that range the index searches every point.
func (d *GridDBSCAN) Index(points []model.Point, m distance.Metric) (*grid.Index, error) {
	domain := m.Domain()
	if !d.opts.Layout.Has(domain.Layout()) {
		return nil, &LayoutError{Layout: d.opts.Layout, Domain: domain}
	}

	radius := math.Inf(1)
	if b, ok := m.(distance.Bounded); ok && (domain == distance.DomainPosition || channelsInRange(points)) {
		radius = b.Radius(d.eps)
	}

	if domain == distance.DomainPosition {
		return grid.NewPlane(points, radius), nil
	}
	return grid.NewCube(points, radius), nil
}

// channelsInRange reports whether every channel lies in [0, grid.ColorMax].
func channelsInRange(points []model.Point) bool {
	for _, p := range points {
		for _, v := range p.Channels {
			if !(v >= 0 && v <= grid.ColorMax) {
				return false
			}
		}
	}
	return true
}
