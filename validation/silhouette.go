package validation

import (
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/pixelclust/cluster"
	"github.com/hupe1980/pixelclust/distance"
	"github.com/hupe1980/pixelclust/internal/pool"
)

const (
	// DefaultSampleSize is the number of points scored by SilhouetteSampled.
	DefaultSampleSize = 500
	// DefaultCompareSize is the number of reference points each sampled point is compared with.
	DefaultCompareSize = 200
)

// SilhouetteOptions configures the exact silhouette computations.
type SilhouetteOptions struct {
	// Workers is the number of goroutines scoring points.
	// Non-positive values select pool.DefaultWorkers.
	Workers int
}

// DefaultSilhouetteOptions contains the default options for Silhouette.
var DefaultSilhouetteOptions = SilhouetteOptions{}

func silhouetteOptions(optFns []func(o *SilhouetteOptions)) SilhouetteOptions {
	opts := DefaultSilhouetteOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}

// Silhouette computes the exact mean silhouette coefficient over all
// non-noise points. It runs in O(n²) metric evaluations spread over
// SilhouetteOptions.Workers goroutines.
func Silhouette(res *cluster.Result, m distance.Metric, optFns ...func(o *SilhouetteOptions)) float64 {
	scores, ok := pointScores(res, m, silhouetteOptions(optFns).Workers)
	if !ok {
		return 0
	}

	var kept []float64
	for i, a := range res.Assignments {
		if a >= 0 {
			kept = append(kept, scores[i])
		}
	}
	if len(kept) == 0 {
		return 0
	}
	return stat.Mean(kept, nil)
}

// SilhouettePerCluster returns the mean silhouette of each cluster.
// Empty clusters score 0.
func SilhouettePerCluster(res *cluster.Result, m distance.Metric, optFns ...func(o *SilhouetteOptions)) []float64 {
	if res == nil {
		return nil
	}
	out := make([]float64, res.Count)

	scores, ok := pointScores(res, m, silhouetteOptions(optFns).Workers)
	if !ok {
		return out
	}

	counts := make([]int, res.Count)
	for i, a := range res.Assignments {
		if a >= 0 {
			out[a] += scores[i]
			counts[a]++
		}
	}
	for c := range out {
		if counts[c] > 0 {
			out[c] /= float64(counts[c])
		}
	}
	return out
}

// SampleOptions bounds the work of SilhouetteSampled.
type SampleOptions struct {
	// Sample is the number of points scored. Defaults to DefaultSampleSize.
	Sample int
	// Compare is the number of reference points. Defaults to DefaultCompareSize.
	Compare int
	// Rand drives the sampling. If nil, a time-seeded source is used.
	Rand *rand.Rand
}

// SilhouetteSampled approximates Silhouette for large inputs.
//
// It scores a uniform random subset of non-noise points drawn without
// replacement, comparing each against a stride-sampled reference subset
// instead of every other point. This is a biased estimator: small clusters
// may be missing from the reference set, and the result is not the exact
// coefficient.
func SilhouetteSampled(res *cluster.Result, m distance.Metric, opts SampleOptions) float64 {
	if res == nil || res.Count <= 1 {
		return 0
	}
	if opts.Sample <= 0 {
		opts.Sample = DefaultSampleSize
	}
	if opts.Compare <= 0 {
		opts.Compare = DefaultCompareSize
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	var candidates []int
	for i, a := range res.Assignments {
		if a >= 0 {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return 0
	}

	sample := candidates
	if len(candidates) > opts.Sample {
		sample = append([]int(nil), candidates...)
		// Partial Fisher-Yates: the first Sample slots are a uniform subset.
		for i := range opts.Sample {
			j := i + rng.Intn(len(sample)-i)
			sample[i], sample[j] = sample[j], sample[i]
		}
		sample = sample[:opts.Sample]
	}

	reference := candidates
	if len(candidates) > opts.Compare {
		stride := len(candidates) / opts.Compare
		offset := rng.Intn(stride)
		reference = make([]int, 0, opts.Compare)
		for i := offset; i < len(candidates) && len(reference) < opts.Compare; i += stride {
			reference = append(reference, candidates[i])
		}
	}

	scores := make([]float64, len(sample))
	sums := make([]float64, res.Count)
	counts := make([]int, res.Count)
	for s, i := range sample {
		clear(sums)
		clear(counts)
		p := res.Points[i]
		for _, j := range reference {
			if j == i {
				continue
			}
			c := res.Assignments[j]
			sums[c] += m.Distance(p, res.Points[j])
			counts[c]++
		}
		scores[s] = silhouetteOf(res.Assignments[i], sums, counts)
	}

	return stat.Mean(scores, nil)
}

// pointScores computes s(i) for every point; noise slots stay 0.
func pointScores(res *cluster.Result, m distance.Metric, workers int) ([]float64, bool) {
	if res == nil || res.Count <= 1 {
		return nil, false
	}

	n := len(res.Assignments)
	scores := make([]float64, n)
	k := res.Count

	_ = pool.ForEachRange(n, pool.Workers(workers), func(lo, hi int) error {
		sums := make([]float64, k)
		counts := make([]int, k)
		for i := lo; i < hi; i++ {
			own := res.Assignments[i]
			if own < 0 {
				continue
			}

			clear(sums)
			clear(counts)
			p := res.Points[i]
			for j, c := range res.Assignments {
				if j == i || c < 0 {
					continue
				}
				sums[c] += m.Distance(p, res.Points[j])
				counts[c]++
			}
			scores[i] = silhouetteOf(own, sums, counts)
		}
		return nil
	})

	return scores, true
}

// silhouetteOf derives s(i) from per-cluster distance sums that exclude i itself.
func silhouetteOf(own int, sums []float64, counts []int) float64 {
	var a float64
	if counts[own] > 0 {
		a = sums[own] / float64(counts[own])
	}

	b := math.Inf(1)
	for c := range sums {
		if c == own || counts[c] == 0 {
			continue
		}
		b = math.Min(b, sums[c]/float64(counts[c]))
	}
	if math.IsInf(b, 1) {
		return 0
	}

	hi := math.Max(a, b)
	if hi == 0 {
		return 0
	}
	return (b - a) / hi
}
