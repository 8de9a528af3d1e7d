package pixelclust

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pixelclust/distance"
	"github.com/hupe1980/pixelclust/model"
)

func TestKMeansBuilder(t *testing.T) {
	base := KMeans(4)
	lab := base.CIELAB().MaxIterations(25).Parallel().Seed(9)

	assert.Equal(t, "euclidean", base.Config().Metric)
	assert.False(t, base.Config().Parallel)
	assert.Nil(t, base.Config().Seed)

	cfg := lab.Config()
	assert.Equal(t, AlgorithmKMeans, cfg.Algorithm)
	assert.Equal(t, "cielab", cfg.Metric)
	assert.Equal(t, 4, cfg.K)
	assert.Equal(t, 25, cfg.MaxIterations)
	assert.True(t, cfg.Parallel)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(9), *cfg.Seed)
	require.NoError(t, cfg.Validate())

	reseeded := lab.Seed(10).Config()
	assert.Equal(t, int64(9), *lab.Config().Seed)
	assert.Equal(t, int64(10), *reseeded.Seed)
}

func TestBuilder_Metrics(t *testing.T) {
	tests := []struct {
		kmeans KMeansBuilder
		dbscan DBSCANBuilder
		want   distance.Kind
	}{
		{KMeans(2).Euclidean(), DBSCAN(1, 2).Euclidean(), distance.KindEuclidean},
		{KMeans(2).CIELAB(), DBSCAN(1, 2).CIELAB(), distance.KindCIELAB},
		{KMeans(2).CIE94(), DBSCAN(1, 2).CIE94(), distance.KindCIE94},
		{KMeans(2).Redmean(), DBSCAN(1, 2).Redmean(), distance.KindRedmean},
		{KMeans(2).Position(), DBSCAN(1, 2).Position(), distance.KindPosition},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want.String(), tt.kmeans.Config().Metric)
			assert.Equal(t, tt.want.String(), tt.dbscan.Config().Metric)
			assert.NoError(t, tt.kmeans.Config().Validate())
			assert.NoError(t, tt.dbscan.Config().Validate())
		})
	}
}

func TestDBSCANBuilder(t *testing.T) {
	base := DBSCAN(3, 8)
	grid := base.Grid().Layout(model.LayoutColor).Redmean().Parallel()

	assert.Equal(t, AlgorithmDBSCAN, base.Config().Algorithm)
	assert.Empty(t, base.Config().Layout)

	cfg := grid.Config()
	assert.Equal(t, AlgorithmDBSCANGrid, cfg.Algorithm)
	assert.Equal(t, "color", cfg.Layout)
	assert.Equal(t, "redmean", cfg.Metric)
	assert.Equal(t, 3.0, cfg.Eps)
	assert.Equal(t, 8, cfg.MinPts)
	assert.True(t, cfg.Parallel)
	require.NoError(t, cfg.Validate())
}
