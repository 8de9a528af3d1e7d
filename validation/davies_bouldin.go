package validation

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/pixelclust/centroid"
	"github.com/hupe1980/pixelclust/cluster"
	"github.com/hupe1980/pixelclust/distance"
	"github.com/hupe1980/pixelclust/model"
)

// DaviesBouldin computes the Davies-Bouldin index of res under m.
//
// Centroids average position and colour. A cluster's dispersion is the root
// mean square distance of its members to its centroid. Pairs whose centroids
// coincide are skipped.
//
// Empty clusters do not take part: the result is the mean over non-empty
// clusters only. Implementations that divide by the requested cluster count
// and give empty clusters a zero (black) centroid report different values
// whenever a cluster is empty.
func DaviesBouldin(res *cluster.Result, m distance.Metric) float64 {
	if res == nil || res.Count <= 1 {
		return 0
	}

	members := groupMembers(res)
	calc := centroid.Mean{Mode: centroid.Full}

	var (
		centroids   []model.Point
		dispersions []float64
	)
	for _, pts := range members {
		c, err := calc.Centroid(pts)
		if err != nil {
			continue // empty
		}

		sq := make([]float64, len(pts))
		for i, p := range pts {
			d := m.Distance(p, c)
			sq[i] = d * d
		}
		centroids = append(centroids, c)
		dispersions = append(dispersions, math.Sqrt(stat.Mean(sq, nil)))
	}

	k := len(centroids)
	if k <= 1 {
		return 0
	}

	worst := make([]float64, k)
	ratios := make([]float64, 0, k-1)
	for i := range k {
		ratios = ratios[:0]
		for j := range k {
			if i == j {
				continue
			}
			sep := m.Distance(centroids[i], centroids[j])
			if sep == 0 {
				continue
			}
			ratios = append(ratios, (dispersions[i]+dispersions[j])/sep)
		}
		if len(ratios) > 0 {
			worst[i] = floats.Max(ratios)
		}
	}

	return stat.Mean(worst, nil)
}

// groupMembers splits the points of res by cluster id, preserving input order.
func groupMembers(res *cluster.Result) [][]model.Point {
	members := make([][]model.Point, res.Count)
	for i, a := range res.Assignments {
		if a >= 0 && a < res.Count {
			members[a] = append(members[a], res.Points[i])
		}
	}
	return members
}
