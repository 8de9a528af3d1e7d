package cluster

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pixelclust/centroid"
	"github.com/hupe1980/pixelclust/distance"
	"github.com/hupe1980/pixelclust/model"
	"github.com/hupe1980/pixelclust/testutil"
)

func withSeed(seed int64) func(o *KMeansOptions) {
	return func(o *KMeansOptions) { o.RandomSeed = &seed }
}

func scenarioB() []model.Point {
	rng := testutil.NewRNG(99)
	return testutil.Concat(
		rng.ColorBlob(100, model.Channels{0, 0, 0}, 3),
		rng.ColorBlob(100, model.Channels{255, 255, 255}, 3),
	)
}

func TestKMeans_ScenarioB(t *testing.T) {
	points := scenarioB()

	for _, k := range []distance.Kind{distance.KindEuclidean, distance.KindCIELAB, distance.KindCIE94, distance.KindRedmean} {
		m, err := distance.Provider(k)
		require.NoError(t, err)

		t.Run(k.String(), func(t *testing.T) {
			alg, err := NewKMeans(2, withSeed(1))
			require.NoError(t, err)

			res, err := Run(alg, points, m)
			require.NoError(t, err)

			require.Len(t, res.Assignments, len(points))
			dark, light := res.Assignments[0], res.Assignments[100]
			assert.NotEqual(t, dark, light)
			for i, a := range res.Assignments {
				if i < 100 {
					assert.Equal(t, dark, a)
				} else {
					assert.Equal(t, light, a)
				}
			}
			assert.LessOrEqual(t, res.Iterations, DefaultMaxIterations)
		})
	}
}

func TestKMeans_ScenarioD(t *testing.T) {
	points := testutil.Concat(
		testutil.Repeat(model.NewPoint(1, 1, 5, 5, 5, 0), 10),
		testutil.Repeat(model.NewPoint(2, 2, 9, 9, 9, 0), 10),
	)

	alg, err := NewKMeans(3, withSeed(1))
	require.NoError(t, err)

	_, err = alg.Fit(points, distance.SquaredEuclidean{})
	require.ErrorIs(t, err, ErrInvalidConfig)

	alg, err = NewKMeans(2, withSeed(1))
	require.NoError(t, err)
	labels, err := alg.Fit(points, distance.SquaredEuclidean{})
	require.NoError(t, err)
	assert.Equal(t, 2, labels.Count)
}

func TestKMeans_Config(t *testing.T) {
	_, err := NewKMeans(0)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewKMeans(-1)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewKMeans(2, func(o *KMeansOptions) { o.MaxIterations = 0 })
	assert.ErrorIs(t, err, ErrInvalidConfig)

	alg, err := NewKMeans(5)
	require.NoError(t, err)
	_, err = alg.Fit(scenarioA(), distance.Position{})
	var ce *ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "k", ce.Field)

	_, err = alg.Fit(nil, distance.Position{})
	assert.ErrorIs(t, err, model.ErrEmptyInput)
}

func TestKMeans_Deterministic(t *testing.T) {
	points := testutil.NewRNG(3).Uniform(300, 50, 50)

	a, err := NewKMeans(4, withSeed(11))
	require.NoError(t, err)
	b, err := NewKMeans(4, withSeed(11), func(o *KMeansOptions) { o.Parallelism = 4 })
	require.NoError(t, err)

	la, err := a.Fit(points, distance.Redmean{})
	require.NoError(t, err)
	lb, err := b.Fit(points, distance.Redmean{})
	require.NoError(t, err)

	assert.Equal(t, la, lb)
}

func TestKMeans_IterationCap(t *testing.T) {
	points := testutil.NewRNG(5).Uniform(200, 100, 100)

	alg, err := NewKMeans(6, withSeed(2), func(o *KMeansOptions) { o.MaxIterations = 1 })
	require.NoError(t, err)

	labels, err := alg.Fit(points, distance.Position{})
	require.NoError(t, err)
	assert.Equal(t, 1, labels.Iterations)
	for _, a := range labels.Assignments {
		assert.GreaterOrEqual(t, a, 0)
		assert.Less(t, a, 6)
	}
}

func TestKMeans_PositionBlobs(t *testing.T) {
	rng := testutil.NewRNG(8)
	points := testutil.Concat(rng.Blob(80, 10, 10, 1), rng.Blob(80, 90, 90, 1))

	alg, err := NewKMeans(2, withSeed(4), func(o *KMeansOptions) {
		o.Centroid = centroid.Mean{Mode: centroid.Full}
	})
	require.NoError(t, err)

	res, err := Run(alg, points, distance.Position{})
	require.NoError(t, err)
	assert.Equal(t, []int{80, 80}, sortedSizes(res.Sizes()))
}

func TestKMeansProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)

	properties.Property("every assignment is in [0,k) and iterations respect the cap", prop.ForAll(
		func(seed int64, n, k int) bool {
			if k > n {
				k = n
			}
			points := testutil.NewRNG(seed).Uniform(n, 30, 30)

			alg, err := NewKMeans(k, withSeed(seed), func(o *KMeansOptions) { o.MaxIterations = 20 })
			if err != nil {
				return false
			}
			labels, err := alg.Fit(points, distance.SquaredEuclidean{})
			if err != nil {
				return false
			}
			if len(labels.Assignments) != n || labels.Count != k || labels.Iterations > 20 {
				return false
			}
			for _, a := range labels.Assignments {
				if a < 0 || a >= k {
					return false
				}
			}
			return true
		},
		gen.Int64(),
		gen.IntRange(1, 120),
		gen.IntRange(1, 8),
	))

	properties.TestingRun(t)
}

func sortedSizes(sizes []int) []int {
	out := append([]int(nil), sizes...)
	if len(out) == 2 && out[0] > out[1] {
		out[0], out[1] = out[1], out[0]
	}
	return out
}
