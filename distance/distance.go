package distance

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/hupe1980/pixelclust/internal/colorspace"
	"github.com/hupe1980/pixelclust/model"
)

// ErrUnknownKind is returned for an unsupported metric kind.
var ErrUnknownKind = errors.New("unknown metric kind")

// Domain is the sub-space a metric reads.
type Domain int

const (
	// DomainPosition metrics read X and Y only.
	DomainPosition Domain = iota
	// DomainColor metrics read the colour channels only.
	DomainColor
)

func (d Domain) String() string {
	switch d {
	case DomainPosition:
		return "position"
	case DomainColor:
		return "color"
	default:
		return fmt.Sprintf("Domain(%d)", int(d))
	}
}

// Layout returns the point layout the domain requires.
func (d Domain) Layout() model.Layout {
	if d == DomainPosition {
		return model.LayoutPosition
	}
	return model.LayoutColor
}

// Metric computes a non-negative, symmetric dissimilarity between two points.
type Metric interface {
	Distance(a, b model.Point) float64
	Name() string
	Domain() Domain
}

// Bounded is implemented by metrics whose eps-ball is contained in a native
// Euclidean ball (plane coordinates or RGB cube) of radius Radius(eps).
// Spatial indexes use it to prune candidates without changing results.
type Bounded interface {
	Radius(eps float64) float64
}

// Func is a function type for distance calculation.
type Func func(a, b model.Point) float64

type funcMetric struct {
	fn     Func
	name   string
	domain Domain
}

func (m funcMetric) Distance(a, b model.Point) float64 { return m.fn(a, b) }
func (m funcMetric) Name() string                      { return m.name }
func (m funcMetric) Domain() Domain                    { return m.domain }

// Custom wraps fn as a Metric with an explicit name and domain.
// fn must be symmetric and non-negative.
func Custom(name string, domain Domain, fn Func) Metric {
	return funcMetric{fn: fn, name: name, domain: domain}
}

// SquaredEuclidean is the sum of squared channel differences. It preserves
// the ordering of true Euclidean distance and skips the square root.
type SquaredEuclidean struct{}

// Distance implements Metric.
func (SquaredEuclidean) Distance(a, b model.Point) float64 {
	var sum float64
	for i := range a.Channels {
		d := a.Channels[i] - b.Channels[i]
		sum += d * d
	}
	return sum
}

func (SquaredEuclidean) Name() string   { return "Euclidean - RGB" }
func (SquaredEuclidean) Domain() Domain { return DomainColor }

// Radius implements Bounded.
func (SquaredEuclidean) Radius(eps float64) float64 { return math.Sqrt(eps) }

// CIELAB is the Euclidean distance between quantized Lab triples.
// The zero value converts without caching; NewCIELAB memoizes conversions.
type CIELAB struct {
	conv *colorspace.Converter
}

// NewCIELAB creates a CIELAB metric with a conversion cache.
func NewCIELAB() *CIELAB {
	return &CIELAB{conv: colorspace.NewConverter(colorspace.DefaultCacheSize)}
}

// Distance implements Metric.
func (m *CIELAB) Distance(a, b model.Point) float64 {
	la, lb := toLab(m.conv, a), toLab(m.conv, b)
	dl, da, db := la.Sub(lb)
	return math.Sqrt(dl*dl + da*da + db*db)
}

func (m *CIELAB) Name() string   { return "CIELAB - RGB" }
func (m *CIELAB) Domain() Domain { return DomainColor }

// CIE94 is the CIE94 colour difference (graphic-arts weights, kL = 1).
//
// The chroma weights SC and SH are taken from the reference colour. To keep
// the metric symmetric the reference is the argument with the larger chroma.
type CIE94 struct {
	conv *colorspace.Converter
}

// NewCIE94 creates a CIE94 metric with a conversion cache.
func NewCIE94() *CIE94 {
	return &CIE94{conv: colorspace.NewConverter(colorspace.DefaultCacheSize)}
}

// Distance implements Metric.
func (m *CIE94) Distance(a, b model.Point) float64 {
	l1, l2 := toLab(m.conv, a), toLab(m.conv, b)
	c1, c2 := l1.Chroma(), l2.Chroma()
	if c2 > c1 {
		l1, l2 = l2, l1
		c1, c2 = c2, c1
	}

	dl, da, db := l1.Sub(l2)
	dc := c1 - c2

	// Rounding can push ΔH² slightly below zero.
	dh2 := da*da + db*db - dc*dc
	dh := 0.0
	if dh2 > 0 {
		dh = math.Sqrt(dh2)
	}

	sc := 1 + 0.045*c1
	sh := 1 + 0.015*c1

	tc := dc / sc
	th := dh / sh
	return math.Sqrt(dl*dl + tc*tc + th*th)
}

func (m *CIE94) Name() string   { return "CIE94 - RGB" }
func (m *CIE94) Domain() Domain { return DomainColor }

// Redmean is the low-cost perceptual RGB distance
// sqrt((2 + r̄/256)ΔR² + 4ΔG² + (2 + (255-r̄)/256)ΔB²) with r̄ = (R1+R2)/2.
type Redmean struct{}

// Distance implements Metric.
func (Redmean) Distance(a, b model.Point) float64 {
	rBar := (a.R() + b.R()) / 2
	dr := a.R() - b.R()
	dg := a.G() - b.G()
	db := a.B() - b.B()

	wr := 2 + rBar/256
	wb := 2 + (255-rBar)/256
	return math.Sqrt(wr*dr*dr + 4*dg*dg + wb*db*db)
}

func (Redmean) Name() string   { return "Redmean - RGB" }
func (Redmean) Domain() Domain { return DomainColor }

// Radius implements Bounded. Every channel weight is at least 2 for channels in [0,255].
func (Redmean) Radius(eps float64) float64 { return eps / math.Sqrt2 }

// Position is the Euclidean distance between pixel positions.
type Position struct{}

// Distance implements Metric.
func (Position) Distance(a, b model.Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

func (Position) Name() string   { return "Euclidean - Position" }
func (Position) Domain() Domain { return DomainPosition }

// Radius implements Bounded.
func (Position) Radius(eps float64) float64 { return eps }

func toLab(conv *colorspace.Converter, p model.Point) colorspace.Lab {
	if conv == nil {
		return colorspace.FromChannels(p.Channels)
	}
	return conv.Lab(p.Channels)
}

// Kind identifies a built-in metric.
type Kind int

const (
	KindEuclidean Kind = iota
	KindCIELAB
	KindCIE94
	KindRedmean
	KindPosition
)

func (k Kind) String() string {
	switch k {
	case KindEuclidean:
		return "euclidean"
	case KindCIELAB:
		return "cielab"
	case KindCIE94:
		return "cie94"
	case KindRedmean:
		return "redmean"
	case KindPosition:
		return "position"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Kinds lists every built-in metric kind.
func Kinds() []Kind {
	return []Kind{KindEuclidean, KindCIELAB, KindCIE94, KindRedmean, KindPosition}
}

// ParseKind parses a metric kind name as produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds() {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Provider returns a fresh metric for the given kind.
func Provider(k Kind) (Metric, error) {
	switch k {
	case KindEuclidean:
		return SquaredEuclidean{}, nil
	case KindCIELAB:
		return NewCIELAB(), nil
	case KindCIE94:
		return NewCIE94(), nil
	case KindRedmean:
		return Redmean{}, nil
	case KindPosition:
		return Position{}, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, k)
	}
}
