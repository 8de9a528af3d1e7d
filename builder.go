// This file implements fluent builder APIs for clustering configurations.
// Builders are immutable - each method returns a new builder with the updated configuration.

package pixelclust

import (
	"github.com/hupe1980/pixelclust/distance"
	"github.com/hupe1980/pixelclust/model"
)

// =============================================================================
// K-Means Builder (Immutable)
// =============================================================================

// KMeans creates a partition clustering builder producing k clusters.
// The default metric is squared Euclidean over RGB.
//
// Example:
//
//	cfg := pixelclust.KMeans(8).
//	    CIELAB().
//	    MaxIterations(50).
//	    Seed(42).
//	    Config()
func KMeans(k int) KMeansBuilder {
	return KMeansBuilder{cfg: Config{
		Algorithm: AlgorithmKMeans,
		Metric:    distance.KindEuclidean.String(),
		K:         k,
	}}
}

// KMeansBuilder is an immutable fluent builder for K-means configurations.
type KMeansBuilder struct {
	cfg Config
}

// Euclidean selects squared Euclidean distance over RGB.
func (b KMeansBuilder) Euclidean() KMeansBuilder { return b.Metric(distance.KindEuclidean) }

// CIELAB selects the CIE76 colour difference.
func (b KMeansBuilder) CIELAB() KMeansBuilder { return b.Metric(distance.KindCIELAB) }

// CIE94 selects the CIE94 colour difference.
func (b KMeansBuilder) CIE94() KMeansBuilder { return b.Metric(distance.KindCIE94) }

// Redmean selects the redmean weighted RGB distance.
func (b KMeansBuilder) Redmean() KMeansBuilder { return b.Metric(distance.KindRedmean) }

// Position selects Euclidean distance over pixel coordinates.
func (b KMeansBuilder) Position() KMeansBuilder { return b.Metric(distance.KindPosition) }

// Metric selects the metric by kind.
func (b KMeansBuilder) Metric(kind distance.Kind) KMeansBuilder {
	b.cfg.Metric = kind.String()
	return b
}

// MaxIterations caps the number of assignment passes.
// Default: 100.
func (b KMeansBuilder) MaxIterations(n int) KMeansBuilder {
	b.cfg.MaxIterations = n
	return b
}

// Parallel runs the assignment step on the engine's worker pool.
func (b KMeansBuilder) Parallel() KMeansBuilder {
	b.cfg.Parallel = true
	return b
}

// Seed makes seeding and reseeding reproducible.
func (b KMeansBuilder) Seed(seed int64) KMeansBuilder {
	b.cfg.Seed = &seed
	return b
}

// Config returns the built configuration.
func (b KMeansBuilder) Config() Config {
	return b.cfg
}

// =============================================================================
// DBSCAN Builder (Immutable)
// =============================================================================

// DBSCAN creates a density clustering builder.
// The default is the baseline neighbour search with squared Euclidean over RGB.
//
// Example:
//
//	cfg := pixelclust.DBSCAN(3, 8).
//	    Grid().
//	    Position().
//	    Config()
func DBSCAN(eps float64, minPts int) DBSCANBuilder {
	return DBSCANBuilder{cfg: Config{
		Algorithm: AlgorithmDBSCAN,
		Metric:    distance.KindEuclidean.String(),
		Eps:       eps,
		MinPts:    minPts,
	}}
}

// DBSCANBuilder is an immutable fluent builder for density configurations.
type DBSCANBuilder struct {
	cfg Config
}

// Grid selects the grid-accelerated neighbour search.
func (b DBSCANBuilder) Grid() DBSCANBuilder {
	b.cfg.Algorithm = AlgorithmDBSCANGrid
	return b
}

// Layout declares which sub-spaces the points carry. Only the grid variant checks it.
// Default: model.LayoutFull.
func (b DBSCANBuilder) Layout(l model.Layout) DBSCANBuilder {
	b.cfg.Layout = l.String()
	return b
}

// Euclidean selects squared Euclidean distance over RGB.
func (b DBSCANBuilder) Euclidean() DBSCANBuilder { return b.Metric(distance.KindEuclidean) }

// CIELAB selects the CIE76 colour difference.
func (b DBSCANBuilder) CIELAB() DBSCANBuilder { return b.Metric(distance.KindCIELAB) }

// CIE94 selects the CIE94 colour difference.
func (b DBSCANBuilder) CIE94() DBSCANBuilder { return b.Metric(distance.KindCIE94) }

// Redmean selects the redmean weighted RGB distance.
func (b DBSCANBuilder) Redmean() DBSCANBuilder { return b.Metric(distance.KindRedmean) }

// Position selects Euclidean distance over pixel coordinates.
func (b DBSCANBuilder) Position() DBSCANBuilder { return b.Metric(distance.KindPosition) }

// Metric selects the metric by kind.
func (b DBSCANBuilder) Metric(kind distance.Kind) DBSCANBuilder {
	b.cfg.Metric = kind.String()
	return b
}

// Parallel precomputes neighbour lists on the engine's worker pool.
// It has no effect on the grid variant.
func (b DBSCANBuilder) Parallel() DBSCANBuilder {
	b.cfg.Parallel = true
	return b
}

// Config returns the built configuration.
func (b DBSCANBuilder) Config() Config {
	return b.cfg
}
