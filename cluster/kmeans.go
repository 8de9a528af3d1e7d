package cluster

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/hupe1980/pixelclust/centroid"
	"github.com/hupe1980/pixelclust/distance"
	"github.com/hupe1980/pixelclust/internal/pool"
	"github.com/hupe1980/pixelclust/model"
)

// DefaultMaxIterations is the default iteration cap of KMeans.
const DefaultMaxIterations = 100

// KMeansOptions configures partition clustering.
type KMeansOptions struct {
	// MaxIterations caps the number of assignment passes.
	MaxIterations int
	// Centroid computes cluster representatives. If nil, centroid.ForDomain of
	// the metric's domain is used.
	Centroid centroid.Calculator
	// RandomSeed makes seeding and empty-cluster reseeding reproducible.
	RandomSeed *int64
	// Parallelism is the number of workers for the assignment step.
	Parallelism int
}

// DefaultKMeansOptions contains the default options for KMeans.
var DefaultKMeansOptions = KMeansOptions{
	MaxIterations: DefaultMaxIterations,
	Parallelism:   1,
}

// KMeans is partition clustering with a fixed number of clusters.
type KMeans struct {
	k    int
	opts KMeansOptions
}

// NewKMeans creates a partition algorithm producing k clusters.
func NewKMeans(k int, optFns ...func(o *KMeansOptions)) (*KMeans, error) {
	if k <= 0 {
		return nil, &ConfigError{Field: "k", Value: k, Reason: "must be positive"}
	}

	opts := DefaultKMeansOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.MaxIterations <= 0 {
		return nil, &ConfigError{Field: "maxIterations", Value: opts.MaxIterations, Reason: "must be positive"}
	}

	return &KMeans{k: k, opts: opts}, nil
}

// Name implements Algorithm.
func (km *KMeans) Name() string { return fmt.Sprintf("K-Means (k=%d)", km.k) }

// K returns the number of clusters.
func (km *KMeans) K() int { return km.k }

// Fit implements Algorithm.
//
// Fit fails with ErrInvalidConfig when k exceeds the number of points or the
// number of distinct points.
func (km *KMeans) Fit(points []model.Point, m distance.Metric) (Labels, error) {
	if err := checkFitInput(points, m); err != nil {
		return Labels{}, err
	}

	n := len(points)
	if km.k > n {
		return Labels{}, &ConfigError{Field: "k", Value: km.k, Reason: fmt.Sprintf("exceeds the number of points (%d)", n)}
	}
	if distinct := countDistinct(points, km.k); distinct < km.k {
		return Labels{}, &ConfigError{Field: "k", Value: km.k, Reason: fmt.Sprintf("exceeds the number of distinct points (%d)", distinct)}
	}

	calc := km.opts.Centroid
	if calc == nil {
		calc = centroid.ForDomain(m.Domain())
	}

	rng := km.newRand()

	reps := make([]model.Point, km.k)
	for c, idx := range rng.Perm(n)[:km.k] {
		reps[c] = points[idx]
	}

	prev := make([]int, n)
	for i := range prev {
		prev[i] = -1
	}
	next := make([]int, n)
	members := make([][]model.Point, km.k)

	iterations := 0
	for iterations < km.opts.MaxIterations {
		iterations++

		if err := km.assign(points, reps, next, m); err != nil {
			return Labels{}, err
		}
		if slices.Equal(prev, next) {
			break
		}
		prev, next = next, prev

		for c := range members {
			members[c] = members[c][:0]
		}
		for i, c := range prev {
			members[c] = append(members[c], points[i])
		}

		for c := range reps {
			if len(members[c]) == 0 {
				reps[c] = points[rng.Intn(n)]
				continue
			}
			rep, err := calc.Centroid(members[c])
			if err != nil {
				return Labels{}, err
			}
			reps[c] = rep
		}
	}

	// After a converged pass prev and next are equal; otherwise prev holds the
	// assignment the last representatives were computed from.
	return Labels{Assignments: prev, Count: km.k, Iterations: iterations}, nil
}

// assign writes the nearest representative of every point into out.
// Ties keep the lowest representative index.
func (km *KMeans) assign(points, reps []model.Point, out []int, m distance.Metric) error {
	return pool.ForEachRange(len(points), km.opts.Parallelism, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			p := points[i]
			best, bestDist := 0, m.Distance(p, reps[0])
			for c := 1; c < len(reps); c++ {
				if d := m.Distance(p, reps[c]); d < bestDist {
					best, bestDist = c, d
				}
			}
			out[i] = best
		}
		return nil
	})
}

func (km *KMeans) newRand() *rand.Rand {
	seed := time.Now().UnixNano()
	if km.opts.RandomSeed != nil {
		seed = *km.opts.RandomSeed
	}
	return rand.New(rand.NewSource(seed))
}

type featureKey struct {
	x, y     int
	channels model.Channels
}

// countDistinct counts points with distinct features, stopping once limit is reached.
func countDistinct(points []model.Point, limit int) int {
	seen := make(map[featureKey]struct{}, min(limit, len(points)))
	for _, p := range points {
		seen[featureKey{p.X, p.Y, p.Channels}] = struct{}{}
		if len(seen) >= limit {
			break
		}
	}
	return len(seen)
}
