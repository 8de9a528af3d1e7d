package testutil

import (
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/pixelclust/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Rand returns an independent *rand.Rand seeded from this RNG.
func (r *RNG) Rand() *rand.Rand {
	r.mu.Lock()
	defer r.mu.Unlock()
	return rand.New(rand.NewSource(r.rand.Int63()))
}

// Blob generates n points with positions normally distributed around (cx, cy)
// and a fixed mid-grey colour.
func (r *RNG) Blob(n, cx, cy int, spread float64) []model.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([]model.Point, n)
	for i := range points {
		x := cx + int(math.Round(r.rand.NormFloat64()*spread))
		y := cy + int(math.Round(r.rand.NormFloat64()*spread))
		points[i] = model.NewPoint(x, y, 128, 128, 128, i)
	}
	return points
}

// ColorBlob generates n points with colours normally distributed around
// center (clamped to [0,255]) at uniform positions in a 64×64 box.
func (r *RNG) ColorBlob(n int, center model.Channels, spread float64) []model.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([]model.Point, n)
	for i := range points {
		var ch model.Channels
		for c := range ch {
			ch[c] = clampChannel(math.Round(center[c] + r.rand.NormFloat64()*spread))
		}
		points[i] = model.Point{X: r.rand.Intn(64), Y: r.rand.Intn(64), Channels: ch, Origin: i}
	}
	return points
}

// Uniform generates n points with uniform positions in a w×h box and uniform colours.
func (r *RNG) Uniform(n, w, h int) []model.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([]model.Point, n)
	for i := range points {
		points[i] = model.NewPoint(r.rand.Intn(w), r.rand.Intn(h),
			uint8(r.rand.Intn(256)), uint8(r.rand.Intn(256)), uint8(r.rand.Intn(256)), i)
	}
	return points
}

// Repeat returns n copies of p with sequential origins.
func Repeat(p model.Point, n int) []model.Point {
	points := make([]model.Point, n)
	for i := range points {
		points[i] = p
		points[i].Origin = i
	}
	return points
}

// Concat joins point sets and renumbers origins sequentially.
func Concat(sets ...[]model.Point) []model.Point {
	var out []model.Point
	for _, set := range sets {
		out = append(out, set...)
	}
	for i := range out {
		out[i].Origin = i
	}
	return out
}

func clampChannel(v float64) float64 {
	return math.Max(0, math.Min(255, v))
}
