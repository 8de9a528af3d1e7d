// Package pixelclust groups pixel feature points into clusters and scores the
// resulting partitions.
//
// Points carry a position and an RGB colour. A Config selects the algorithm
// (K-means, DBSCAN or grid-accelerated DBSCAN) and the distance metric; the
// Engine runs it, times it, logs it and reports metrics.
//
// # Quick Start
//
//	points := model.FromPixels(w, h, func(x, y int) (r, g, b uint8) { ... })
//
//	eng := pixelclust.New(pixelclust.WithLogger(pixelclust.NewTextLogger(zapcore.InfoLevel)))
//	res, err := eng.Run(points, pixelclust.KMeans(5).CIELAB().Config())
//
//	scores := eng.Evaluate(res, distance.NewCIELAB())
//	fmt.Println(res.Count, scores.DaviesBouldin, scores.Silhouette)
//
// # Density Clustering
//
//	cfg := pixelclust.DBSCAN(3, 8).Grid().Position().Parallel().Config()
//	res, err := eng.Run(points, cfg)
//	noise := res.NoiseBitmap()
//
// # Configuration Files
//
//	cfg, err := pixelclust.LoadConfig("cluster.yaml")
//
// with
//
//	algorithm: dbscan-grid
//	metric: redmean
//	eps: 12
//	min_pts: 6
//
// # Partitioned Runs
//
// RunPartitions clusters each upstream partition (for example one biome label
// per pixel) independently and concurrently, optionally adapting eps and
// minPts to each partition's size and shape.
//
// # Parameter Sweeps
//
//	scores, err := eng.SweepK(points, 2, 10, distance.KindCIELAB)          // Davies-Bouldin per k
//	grid, err := eng.SweepDensity(points, []float64{2, 4}, []int{4, 8}, distance.KindPosition)
package pixelclust
