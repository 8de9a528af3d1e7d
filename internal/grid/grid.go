package grid

import (
	"math"

	"github.com/hupe1980/pixelclust/model"
)

const (
	// ColorCellSize is the fixed cell edge of the colour cube grid.
	ColorCellSize = 16

	// ColorMax is the upper bound of every colour channel.
	ColorMax = 255

	denseThreshold  = 0.5
	sparseThreshold = 0.1

	// Slack absorbed by the pre-filter so float rounding never drops a true neighbour.
	radiusSlack = 1e-9
)

type key [3]int

// Index buckets point indexes by cell.
type Index struct {
	dims   int
	cell   int
	origin [3]int
	radius float64
	reach  int // cells per axis to visit, -1 visits every point
	lo, hi key
	keys   []key
	cells  map[key][]int
}

// NewPlane builds a 2D index over point positions.
//
// radius is the largest plane distance at which two points can still be
// neighbours; pass math.Inf(1) when no such bound is known. The cell size
// adapts to the point density n/(w·h) of the bounding box.
func NewPlane(points []model.Point, radius float64) *Index {
	idx := &Index{dims: 2, radius: radius}
	if len(points) == 0 {
		idx.cell = 1
		idx.cells = map[key][]int{}
		return idx
	}

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	w := float64(maxX-minX) + 1
	h := float64(maxY-minY) + 1
	idx.origin = [3]int{minX, minY, 0}
	idx.cell = PlaneCellSize(len(points), w, h, radius)

	idx.build(points, func(p model.Point) key {
		return key{(p.X - minX) / idx.cell, (p.Y - minY) / idx.cell, 0}
	})
	return idx
}

// PlaneCellSize returns the adaptive cell edge for n points spread over a w×h box.
// Dense inputs get smaller cells and sparse inputs larger ones.
func PlaneCellSize(n int, w, h, radius float64) int {
	if math.IsInf(radius, 1) || math.IsNaN(radius) {
		// Unbounded: one cell per axis holds everything.
		return max(1, int(math.Max(w, h)))
	}

	density := float64(n) / (w * h)
	switch {
	case density > denseThreshold:
		return max(1, int(math.Floor(radius/2)))
	case density < sparseThreshold:
		return max(1, int(math.Ceil(2*radius)))
	default:
		return max(1, int(math.Ceil(radius)))
	}
}

// NewCube builds a 3D index over the colour channels with origin 0 and a
// fixed cell edge of ColorCellSize.
//
// radius is the largest RGB Euclidean distance at which two points can still
// be neighbours; pass math.Inf(1) when no such bound is known.
func NewCube(points []model.Point, radius float64) *Index {
	idx := &Index{dims: 3, cell: ColorCellSize, radius: radius}

	idx.build(points, func(p model.Point) key {
		var k key
		for i, v := range p.Channels {
			k[i] = int(math.Floor(v / ColorCellSize))
		}
		return k
	})
	return idx
}

func (idx *Index) build(points []model.Point, cellOf func(model.Point) key) {
	idx.keys = make([]key, len(points))
	idx.cells = make(map[key][]int)

	for i, p := range points {
		k := cellOf(p)
		idx.keys[i] = k
		idx.cells[k] = append(idx.cells[k], i)

		if i == 0 {
			idx.lo, idx.hi = k, k
			continue
		}
		for d := range idx.dims {
			idx.lo[d] = min(idx.lo[d], k[d])
			idx.hi[d] = max(idx.hi[d], k[d])
		}
	}

	if math.IsInf(idx.radius, 1) || math.IsNaN(idx.radius) {
		idx.reach = -1
	} else {
		idx.reach = int(math.Ceil(idx.radius / float64(idx.cell)))
	}
}

// Dims returns 2 for a plane index and 3 for a colour cube.
func (idx *Index) Dims() int { return idx.dims }

// CellSize returns the cell edge length.
func (idx *Index) CellSize() int { return idx.cell }

// Cells returns the number of occupied cells.
func (idx *Index) Cells() int { return len(idx.cells) }

// Reach returns the number of cells visited per axis on each side of the
// query cell, or -1 when every point is a candidate.
func (idx *Index) Reach() int { return idx.reach }

// Candidates calls fn for every indexed point that may lie within the radius
// of point i. Cells whose minimum possible gap to i's cell exceeds the
// radius are skipped. Iteration stops early when fn returns false.
func (idx *Index) Candidates(i int, fn func(j int) bool) {
	if idx.reach < 0 {
		for j := range idx.keys {
			if !fn(j) {
				return
			}
		}
		return
	}

	center := idx.keys[i]

	var from, to key
	for d := range idx.dims {
		from[d] = max(idx.lo[d], center[d]-idx.reach)
		to[d] = min(idx.hi[d], center[d]+idx.reach)
	}

	limit := idx.radius + radiusSlack
	var k key
	for k[0] = from[0]; k[0] <= to[0]; k[0]++ {
		for k[1] = from[1]; k[1] <= to[1]; k[1]++ {
			for k[2] = from[2]; k[2] <= to[2]; k[2]++ {
				if idx.gap(center, k) > limit {
					continue
				}
				for _, j := range idx.cells[k] {
					if !fn(j) {
						return
					}
				}
			}
		}
	}
}

// gap is a lower bound on the distance between any two points of cells a and b.
func (idx *Index) gap(a, b key) float64 {
	var sum float64
	for d := range idx.dims {
		steps := abs(a[d]-b[d]) - 1
		if steps > 0 {
			sum += float64(steps * steps)
		}
	}
	return math.Sqrt(sum) * float64(idx.cell)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
