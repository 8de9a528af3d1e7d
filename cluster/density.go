package cluster

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// unvisited marks a point that has not been examined yet. Noise is provisional
// until the run finishes: a later cluster that reaches a noise point claims it.
const unvisited = -2

// neighborFunc appends the eps-neighbourhood of point i (including i) to dst.
type neighborFunc func(i int, dst []int) []int

// expand runs the density state machine over n points.
func expand(n, minPts int, neighbors neighborFunc) Labels {
	labels := make([]int, n)
	for i := range labels {
		labels[i] = unvisited
	}

	var (
		seeds    []int
		local    []int
		frontier []int
		queued   = roaring.New()
		cluster  = 0
	)

	for i := range n {
		if labels[i] != unvisited {
			continue
		}

		seeds = neighbors(i, seeds[:0])
		if len(seeds) < minPts {
			labels[i] = Noise
			continue
		}

		labels[i] = cluster
		frontier = append(frontier[:0], seeds...)
		queued.Clear()
		for _, j := range seeds {
			queued.Add(uint32(j))
		}

		for head := 0; head < len(frontier); head++ {
			j := frontier[head]
			switch labels[j] {
			case unvisited:
				labels[j] = cluster
				local = neighbors(j, local[:0])
				if len(local) < minPts {
					continue
				}
				for _, q := range local {
					if queued.CheckedAdd(uint32(q)) {
						frontier = append(frontier, q)
					}
				}
			case Noise:
				labels[j] = cluster
			}
		}

		cluster++
	}

	return Labels{Assignments: labels, Count: cluster}
}
