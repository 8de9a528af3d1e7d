package cluster

import (
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pixelclust/distance"
	"github.com/hupe1980/pixelclust/model"
	"github.com/hupe1980/pixelclust/testutil"
)

// checkDensity verifies the density invariants of a labelling.
func checkDensity(points []model.Point, labels Labels, m distance.Metric, eps float64, minPts int) bool {
	n := len(points)
	if len(labels.Assignments) != n {
		return false
	}

	core := make([]bool, n)
	for i := range points {
		count := 0
		for j := range points {
			if m.Distance(points[i], points[j]) <= eps {
				count++
			}
		}
		core[i] = count >= minPts
	}

	for i, a := range labels.Assignments {
		if a < Noise || a >= labels.Count {
			return false
		}

		nearCore := false
		for j := range points {
			if core[j] && m.Distance(points[i], points[j]) <= eps {
				if a == Noise {
					return false
				}
				if labels.Assignments[j] == a {
					nearCore = true
				}
			}
		}
		if a != Noise && !core[i] && !nearCore {
			return false
		}
	}
	return true
}

func TestDBSCAN_NoiseIsProvisional(t *testing.T) {
	// Point 0 is examined first and has too few neighbours, so it is marked
	// noise; the cluster seeded later at point 1 reaches it and claims it.
	points := []model.Point{
		model.NewPoint(0, 0, 0, 0, 0, 0),
		model.NewPoint(2, 0, 0, 0, 0, 1),
		model.NewPoint(3, 0, 0, 0, 0, 2),
		model.NewPoint(4, 0, 0, 0, 0, 3),
	}

	alg, err := NewDBSCAN(2, 3)
	require.NoError(t, err)

	labels, err := alg.Fit(points, distance.Position{})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0}, labels.Assignments)
	assert.Equal(t, 1, labels.Count)
}

func TestDBSCAN_ChainAndThreshold(t *testing.T) {
	// Core points chain along the line; point 4 joins as a border point.
	points := []model.Point{
		model.NewPoint(0, 0, 0, 0, 0, 0),
		model.NewPoint(1, 0, 0, 0, 0, 1),
		model.NewPoint(2, 0, 0, 0, 0, 2),
		model.NewPoint(3, 0, 0, 0, 0, 3),
		model.NewPoint(4, 0, 0, 0, 0, 4),
	}

	alg, err := NewDBSCAN(1, 3)
	require.NoError(t, err)

	labels, err := alg.Fit(points, distance.Position{})
	require.NoError(t, err)
	assert.Equal(t, 1, labels.Count)
	assert.Equal(t, []int{0, 0, 0, 0, 0}, labels.Assignments)

	alg, err = NewDBSCAN(1, 4)
	require.NoError(t, err)
	labels, err = alg.Fit(points, distance.Position{})
	require.NoError(t, err)
	assert.Equal(t, []int{Noise, Noise, Noise, Noise, Noise}, labels.Assignments)
	assert.Zero(t, labels.Count)
}

func TestDBSCAN_Noise(t *testing.T) {
	points := testutil.Concat(
		testutil.NewRNG(1).Blob(40, 10, 10, 1),
		[]model.Point{model.NewPoint(100, 100, 0, 0, 0, 0)},
	)

	alg, err := NewDBSCAN(3, 4)
	require.NoError(t, err)

	res, err := Run(alg, points, distance.Position{})
	require.NoError(t, err)
	assert.Equal(t, Noise, res.Assignments[len(points)-1])
	assert.True(t, res.NoiseBitmap().Contains(uint32(len(points)-1)))
}

func TestDBSCAN_ParallelMatchesSequential(t *testing.T) {
	rng := testutil.NewRNG(42)
	points := testutil.Concat(
		rng.Blob(150, 20, 20, 3),
		rng.Blob(150, 70, 30, 3),
		rng.Uniform(60, 100, 100),
	)

	seq, err := NewDBSCAN(2.5, 5)
	require.NoError(t, err)
	par, err := NewDBSCAN(2.5, 5, func(o *DBSCANOptions) { o.Parallelism = 4 })
	require.NoError(t, err)

	a, err := seq.Fit(points, distance.Position{})
	require.NoError(t, err)
	b, err := par.Fit(points, distance.Position{})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.GreaterOrEqual(t, a.Count, 2)
	assert.True(t, checkDensity(points, a, distance.Position{}, 2.5, 5))
}

func TestGridDBSCAN_MatchesBaseline(t *testing.T) {
	rng := testutil.NewRNG(7)
	positions := testutil.Concat(rng.Blob(120, 15, 15, 2), rng.Blob(120, 40, 15, 2), rng.Uniform(40, 60, 60))
	colors := testutil.Concat(
		rng.ColorBlob(100, model.Channels{20, 20, 20}, 6),
		rng.ColorBlob(100, model.Channels{200, 60, 60}, 6),
		rng.Uniform(30, 64, 64),
	)

	tests := []struct {
		name   string
		points []model.Point
		metric distance.Metric
		eps    float64
		minPts int
	}{
		{"Position", positions, distance.Position{}, 2, 4},
		{"SquaredEuclidean", colors, distance.SquaredEuclidean{}, 150, 4},
		{"Redmean", colors, distance.Redmean{}, 25, 4},
		{"CIELAB", colors, distance.NewCIELAB(), 15, 4},
		{"CIE94", colors, distance.NewCIE94(), 10, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, err := NewDBSCAN(tt.eps, tt.minPts)
			require.NoError(t, err)
			gridded, err := NewGridDBSCAN(tt.eps, tt.minPts)
			require.NoError(t, err)

			a, err := base.Fit(tt.points, tt.metric)
			require.NoError(t, err)
			b, err := gridded.Fit(tt.points, tt.metric)
			require.NoError(t, err)

			assert.Equal(t, a.Assignments, b.Assignments)
			assert.Equal(t, a.Count, b.Count)
			assert.Positive(t, a.Count)
			assert.True(t, checkDensity(tt.points, a, tt.metric, tt.eps, tt.minPts))
		})
	}
}

func TestGridDBSCAN_ChannelsOutOfRange(t *testing.T) {
	points := []model.Point{
		{X: 0, Y: 0, Channels: model.Channels{600, 0, 0}, Origin: 0},
		{X: 1, Y: 0, Channels: model.Channels{600, 0, 100}, Origin: 1},
	}
	m := distance.Redmean{}
	eps := m.Distance(points[0], points[1]) + 0.01

	base, err := NewDBSCAN(eps, 2)
	require.NoError(t, err)
	gridded, err := NewGridDBSCAN(eps, 2)
	require.NoError(t, err)

	a, err := base.Fit(points, m)
	require.NoError(t, err)
	b, err := gridded.Fit(points, m)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 0}, a.Assignments)
	assert.Equal(t, a.Assignments, b.Assignments)

	idx, err := gridded.Index(points, m)
	require.NoError(t, err)
	assert.Equal(t, -1, idx.Reach())

	inRange := []model.Point{
		model.NewPoint(0, 0, 200, 0, 0, 0),
		model.NewPoint(1, 0, 200, 0, 100, 1),
	}
	idx, err = gridded.Index(inRange, m)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, idx.Reach(), 0)

	// Position metrics ignore the channels.
	idx, err = gridded.Index(points, distance.Position{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, idx.Reach(), 0)
}

func TestGridDBSCAN_UnsupportedLayout(t *testing.T) {
	alg, err := NewGridDBSCAN(2, 2, func(o *GridOptions) { o.Layout = model.LayoutColor })
	require.NoError(t, err)

	_, err = alg.Fit(scenarioA(), distance.Position{})
	require.ErrorIs(t, err, ErrUnsupportedLayout)

	var le *LayoutError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, distance.DomainPosition, le.Domain)

	// Colour metrics are fine on colour-only points.
	_, err = alg.Fit(scenarioA(), distance.Redmean{})
	assert.NoError(t, err)

	alg, err = NewGridDBSCAN(2, 2, func(o *GridOptions) { o.Layout = model.LayoutPosition })
	require.NoError(t, err)
	_, err = alg.Fit(scenarioA(), distance.SquaredEuclidean{})
	assert.ErrorIs(t, err, ErrUnsupportedLayout)
}

func TestGridDBSCAN_DeclaredDomainSelectsGrid(t *testing.T) {
	// A custom metric named like a position metric still gets the colour cube.
	m := distance.Custom("Euclidean - Position", distance.DomainColor, distance.SquaredEuclidean{}.Distance)

	alg, err := NewGridDBSCAN(100, 2)
	require.NoError(t, err)

	idx, err := alg.Index(scenarioA(), m)
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Dims())
	assert.Equal(t, -1, idx.Reach())

	idx, err = alg.Index(scenarioA(), distance.Position{})
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Dims())
}

func TestDensityProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 40

	properties := gopter.NewProperties(parameters)

	properties.Property("grid and baseline produce identical partitions on positions", prop.ForAll(
		func(seed int64, n int, eps float64, minPts int) bool {
			rng := rand.New(rand.NewSource(seed))
			points := make([]model.Point, n)
			for i := range points {
				points[i] = model.NewPoint(rng.Intn(40), rng.Intn(40), 0, 0, 0, i)
			}

			base, _ := NewDBSCAN(eps, minPts)
			gridded, _ := NewGridDBSCAN(eps, minPts)
			a, errA := base.Fit(points, distance.Position{})
			b, errB := gridded.Fit(points, distance.Position{})
			if errA != nil || errB != nil {
				return false
			}
			return a.Count == b.Count &&
				assert.ObjectsAreEqual(a.Assignments, b.Assignments) &&
				checkDensity(points, a, distance.Position{}, eps, minPts)
		},
		gen.Int64(),
		gen.IntRange(1, 150),
		gen.Float64Range(0.5, 6),
		gen.IntRange(1, 8),
	))

	properties.Property("grid and baseline produce identical partitions on colours", prop.ForAll(
		func(seed int64, n int, eps float64, minPts int) bool {
			rng := rand.New(rand.NewSource(seed))
			points := make([]model.Point, n)
			for i := range points {
				points[i] = model.NewPoint(0, 0, uint8(rng.Intn(256)), uint8(rng.Intn(64)), uint8(rng.Intn(64)), i)
			}

			for _, m := range []distance.Metric{distance.SquaredEuclidean{}, distance.Redmean{}} {
				e := eps
				if _, ok := m.(distance.SquaredEuclidean); ok {
					e = eps * eps
				}
				base, _ := NewDBSCAN(e, minPts)
				gridded, _ := NewGridDBSCAN(e, minPts)
				a, errA := base.Fit(points, m)
				b, errB := gridded.Fit(points, m)
				if errA != nil || errB != nil {
					return false
				}
				if a.Count != b.Count || !assert.ObjectsAreEqual(a.Assignments, b.Assignments) {
					return false
				}
			}
			return true
		},
		gen.Int64(),
		gen.IntRange(1, 120),
		gen.Float64Range(4, 60),
		gen.IntRange(1, 6),
	))

	properties.TestingRun(t)
}
