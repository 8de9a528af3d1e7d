package centroid

import (
	"fmt"
	"math"

	"github.com/hupe1980/pixelclust/distance"
	"github.com/hupe1980/pixelclust/model"
)

// Mode selects the sub-space a centroid averages.
type Mode int

const (
	// Position averages X and Y and keeps the first member's colour.
	Position Mode = iota
	// Color averages the channels and keeps the first member's position.
	Color
	// Full averages both.
	Full
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Color:
		return "color"
	case Full:
		return "full"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Calculator computes the representative point of a non-empty set.
type Calculator interface {
	Centroid(points []model.Point) (model.Point, error)
}

// Mean is the arithmetic-mean calculator. Averaged coordinates and channels
// are rounded to integers; channels are clamped to [0,255]. The result is
// synthetic (Origin == model.SyntheticOrigin).
type Mean struct {
	Mode Mode
}

// ForDomain returns the calculator matching a metric's domain.
func ForDomain(d distance.Domain) Mean {
	if d == distance.DomainPosition {
		return Mean{Mode: Position}
	}
	return Mean{Mode: Color}
}

// Centroid implements Calculator.
func (m Mean) Centroid(points []model.Point) (model.Point, error) {
	if len(points) == 0 {
		return model.Point{}, model.ErrEmptyInput
	}

	first := points[0]
	c := model.Point{X: first.X, Y: first.Y, Channels: first.Channels, Origin: model.SyntheticOrigin}
	n := float64(len(points))

	if m.Mode == Position || m.Mode == Full {
		var sx, sy float64
		for _, p := range points {
			sx += float64(p.X)
			sy += float64(p.Y)
		}
		c.X = int(math.Round(sx / n))
		c.Y = int(math.Round(sy / n))
	}

	if m.Mode == Color || m.Mode == Full {
		var sum model.Channels
		for _, p := range points {
			for i, v := range p.Channels {
				sum[i] += v
			}
		}
		for i := range sum {
			c.Channels[i] = clamp(math.Round(sum[i] / n))
		}
	}

	return c, nil
}

// Nearest returns the member closest to the mean under Euclidean distance in
// the averaged sub-space. Ties keep the earliest member.
func (m Mean) Nearest(points []model.Point) (model.Point, error) {
	c, err := m.Centroid(points)
	if err != nil {
		return model.Point{}, err
	}

	best := points[0]
	bestDist := m.squared(c, best)
	for _, p := range points[1:] {
		if d := m.squared(c, p); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, nil
}

// Nearest returns the member of points closest to their mean in the given mode.
func Nearest(points []model.Point, mode Mode) (model.Point, error) {
	return Mean{Mode: mode}.Nearest(points)
}

// Medoid selects the member with the smallest total distance to all other
// members under Metric. It never produces synthetic points.
type Medoid struct {
	Metric distance.Metric
}

// Centroid implements Calculator.
func (m Medoid) Centroid(points []model.Point) (model.Point, error) {
	if len(points) == 0 {
		return model.Point{}, model.ErrEmptyInput
	}
	if len(points) == 1 || m.Metric == nil {
		return points[0], nil
	}

	best, bestTotal := 0, math.Inf(1)
	for i, p := range points {
		var total float64
		for j, q := range points {
			if i != j {
				total += m.Metric.Distance(p, q)
			}
		}
		if total < bestTotal {
			best, bestTotal = i, total
		}
	}
	return points[best], nil
}

func (m Mean) squared(a, b model.Point) float64 {
	var d float64
	if m.Mode == Position || m.Mode == Full {
		dx, dy := float64(a.X-b.X), float64(a.Y-b.Y)
		d += dx*dx + dy*dy
	}
	if m.Mode == Color || m.Mode == Full {
		for i := range a.Channels {
			dc := a.Channels[i] - b.Channels[i]
			d += dc * dc
		}
	}
	return d
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(255, v))
}
