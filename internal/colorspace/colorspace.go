// Package colorspace converts sRGB colours to quantized CIELAB coordinates.
//
// The conversion linearizes sRGB (threshold 0.04045, power 2.4), maps linear
// RGB to XYZ with the Bradford-adapted D50 matrix and applies the standard
// XYZ → L*a*b* transform against the D50 white point. L* is reported on a
// 0..255 scale (2.55 × L*), a* and b* in their natural units, all rounded to
// integers.
package colorspace

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/hupe1980/pixelclust/internal/cache"
	"github.com/hupe1980/pixelclust/model"
)

// Lab is a quantized CIELAB triple.
type Lab struct {
	L, A, B int
}

// Sub returns the per-component differences a - b.
func (a Lab) Sub(b Lab) (dl, da, db float64) {
	return float64(a.L - b.L), float64(a.A - b.A), float64(a.B - b.B)
}

// Chroma returns sqrt(a² + b²).
func (a Lab) Chroma() float64 {
	return math.Hypot(float64(a.A), float64(a.B))
}

// sRGB (linear) → XYZ, Bradford-adapted to D50.
var rgbToXYZD50 = [3][3]float64{
	{0.436052025, 0.385081593, 0.143087414},
	{0.222491598, 0.71688606, 0.060621486},
	{0.013929122, 0.097097002, 0.71418547},
}

// FromRGB converts 8-bit sRGB channels (0..255) to quantized Lab.
func FromRGB(r, g, b float64) Lab {
	c := colorful.Color{R: clamp01(r / 255), G: clamp01(g / 255), B: clamp01(b / 255)}
	lr, lg, lb := c.LinearRgb()

	m := &rgbToXYZD50
	x := m[0][0]*lr + m[0][1]*lg + m[0][2]*lb
	y := m[1][0]*lr + m[1][1]*lg + m[1][2]*lb
	z := m[2][0]*lr + m[2][1]*lg + m[2][2]*lb

	// go-colorful reports L in [0,1] and a, b scaled by 1/100.
	l, a, bb := colorful.XyzToLabWhiteRef(x, y, z, colorful.D50)

	return Lab{
		L: int(math.Round(255 * l)),
		A: int(math.Round(100 * a)),
		B: int(math.Round(100 * bb)),
	}
}

// FromChannels converts a point's colour channels to Lab.
func FromChannels(ch model.Channels) Lab {
	return FromRGB(ch[0], ch[1], ch[2])
}

// Pack packs channels into a 24-bit RGB key (channels rounded and clamped).
func Pack(ch model.Channels) uint32 {
	return uint32(toByte(ch[0]))<<16 | uint32(toByte(ch[1]))<<8 | uint32(toByte(ch[2]))
}

// Unpack is the inverse of Pack.
func Unpack(key uint32) (r, g, b float64) {
	return float64(key >> 16 & 0xff), float64(key >> 8 & 0xff), float64(key & 0xff)
}

// DefaultCacheSize bounds the number of memoized conversions per Converter.
const DefaultCacheSize = 1 << 16

// Converter memoizes RGB → Lab conversions. It is safe for concurrent use.
type Converter struct {
	lab *cache.Sharded[Lab]
}

// NewConverter creates a converter caching up to size conversions.
func NewConverter(size int) *Converter {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Converter{lab: cache.NewSharded[Lab](size)}
}

// Lab returns the Lab value of the given channels.
func (c *Converter) Lab(ch model.Channels) Lab {
	return c.lab.GetOrCompute(Pack(ch), func(key uint32) Lab {
		return FromRGB(Unpack(key))
	})
}

// Stats returns cache hit/miss counters.
func (c *Converter) Stats() (hits, misses int64) {
	return c.lab.Stats()
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func toByte(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}
