// Package cluster implements the clustering algorithms.
//
// # Algorithms
//
//   - KMeans: iterative reassignment to the nearest representative
//   - DBSCAN: density clustering with a full neighbour scan
//   - GridDBSCAN: density clustering with a spatial grid index
//
// DBSCAN and GridDBSCAN share one expansion state machine and return
// identical assignments for the same input, eps, minPts and metric.
//
// # Usage
//
//	alg, err := cluster.NewDBSCAN(2, 4)
//	res, err := cluster.Run(alg, points, distance.Position{})
//	for c := range res.Count {
//		members := res.Members(c)
//	}
package cluster
