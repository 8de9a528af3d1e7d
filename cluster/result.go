package cluster

import (
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/pixelclust/centroid"
	"github.com/hupe1980/pixelclust/model"
)

// Result is a completed clustering run. It references the input points
// without copying them.
type Result struct {
	Assignments []int
	Count       int
	Iterations  int
	Algorithm   string
	Metric      string
	Duration    time.Duration
	Points      []model.Point
}

// DurationMs returns the run duration in milliseconds.
func (r *Result) DurationMs() int64 { return r.Duration.Milliseconds() }

// MemberIndexes returns the indexes of the points assigned to cluster c in input order.
func (r *Result) MemberIndexes(c int) []int {
	var out []int
	for i, a := range r.Assignments {
		if a == c {
			out = append(out, i)
		}
	}
	return out
}

// Members returns the points of cluster c in input order. Pass Noise for noise points.
func (r *Result) Members(c int) []model.Point {
	var out []model.Point
	for i, a := range r.Assignments {
		if a == c {
			out = append(out, r.Points[i])
		}
	}
	return out
}

// Sizes returns the number of points in each cluster.
func (r *Result) Sizes() []int {
	sizes := make([]int, r.Count)
	for _, a := range r.Assignments {
		if a >= 0 && a < r.Count {
			sizes[a]++
		}
	}
	return sizes
}

// NoiseCount returns the number of points assigned to Noise.
func (r *Result) NoiseCount() int {
	n := 0
	for _, a := range r.Assignments {
		if a == Noise {
			n++
		}
	}
	return n
}

// NoiseBitmap returns the set of noise point indexes.
func (r *Result) NoiseBitmap() *roaring.Bitmap {
	bm := roaring.New()
	for i, a := range r.Assignments {
		if a == Noise {
			bm.Add(uint32(i))
		}
	}
	return bm
}

// MeanColor returns the rounded average colour of cluster c.
// It fails with model.ErrEmptyInput for an empty cluster.
func (r *Result) MeanColor(c int) (model.Channels, error) {
	p, err := centroid.Mean{Mode: centroid.Color}.Centroid(r.Members(c))
	if err != nil {
		return model.Channels{}, err
	}
	return p.Channels, nil
}
