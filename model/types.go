package model

import (
	"errors"
	"fmt"
	"strings"
)

// ChannelCount is the number of colour channels carried by a Point.
const ChannelCount = 3

// SyntheticOrigin marks a computed point that has no source pixel.
const SyntheticOrigin = -1

// ErrEmptyInput is returned when an operation requires at least one point.
var ErrEmptyInput = errors.New("empty input")

// Channels holds the colour channel values of a point (R, G, B in [0,255]).
type Channels [ChannelCount]float64

// Point is a feature point: a pixel position plus its colour channels.
// Points are values and are never mutated once created.
type Point struct {
	X, Y     int
	Channels Channels
	// Origin is the index of the source pixel, or SyntheticOrigin.
	Origin int
}

// NewPoint creates a point from integer RGB channels.
func NewPoint(x, y int, r, g, b uint8, origin int) Point {
	return Point{
		X:        x,
		Y:        y,
		Channels: Channels{float64(r), float64(g), float64(b)},
		Origin:   origin,
	}
}

// R returns the red channel.
func (p Point) R() float64 { return p.Channels[0] }

// G returns the green channel.
func (p Point) G() float64 { return p.Channels[1] }

// B returns the blue channel.
func (p Point) B() float64 { return p.Channels[2] }

// IsSynthetic reports whether the point was computed rather than extracted.
func (p Point) IsSynthetic() bool { return p.Origin == SyntheticOrigin }

// String returns a compact representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("Point(%d,%d rgb=%g/%g/%g #%d)", p.X, p.Y, p.Channels[0], p.Channels[1], p.Channels[2], p.Origin)
}

// Layout declares which sub-spaces of a point set carry meaningful data.
type Layout uint8

const (
	// LayoutPosition means X and Y are meaningful.
	LayoutPosition Layout = 1 << iota
	// LayoutColor means Channels are meaningful.
	LayoutColor

	// LayoutFull is the layout of points extracted from an image.
	LayoutFull = LayoutPosition | LayoutColor
)

// Has reports whether l includes every flag in other.
func (l Layout) Has(other Layout) bool {
	return other != 0 && l&other == other
}

func (l Layout) String() string {
	switch l {
	case LayoutPosition:
		return "position"
	case LayoutColor:
		return "color"
	case LayoutFull:
		return "full"
	default:
		return fmt.Sprintf("Layout(%d)", uint8(l))
	}
}

// ParseLayout parses a layout name. The empty string yields LayoutFull.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "full":
		return LayoutFull, nil
	case "position":
		return LayoutPosition, nil
	case "color", "colour":
		return LayoutColor, nil
	default:
		return 0, fmt.Errorf("unknown layout %q", s)
	}
}

// FromPixels builds the point set of a width×height pixel grid in row-major
// order. Point i has Origin i.
func FromPixels(width, height int, rgb func(x, y int) (r, g, b uint8)) []Point {
	if width <= 0 || height <= 0 {
		return nil
	}

	points := make([]Point, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b := rgb(x, y)
			points = append(points, NewPoint(x, y, r, g, b, y*width+x))
		}
	}
	return points
}
