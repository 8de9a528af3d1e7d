package pixelclust

import (
	"context"
	"math"
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hupe1980/pixelclust/cluster"
	"github.com/hupe1980/pixelclust/distance"
	"github.com/hupe1980/pixelclust/internal/pool"
	"github.com/hupe1980/pixelclust/model"
	"github.com/hupe1980/pixelclust/validation"
)

// Engine runs clustering configurations and scores their results.
// An Engine is safe for concurrent use.
type Engine struct {
	logger          *Logger
	metrics         MetricsCollector
	parallelism     int
	seed            *int64
	sampleThreshold int
	limiter         *pool.Limiter
}

// New creates an Engine.
//
// Example:
//
//	eng := pixelclust.New(
//	    pixelclust.WithLogger(pixelclust.NewTextLogger(zapcore.InfoLevel)),
//	    pixelclust.WithParallelism(4),
//	)
func New(optFns ...Option) *Engine {
	o := applyOptions(optFns)
	workers := pool.Workers(o.parallelism)

	return &Engine{
		logger:          o.logger,
		metrics:         o.metricsCollector,
		parallelism:     workers,
		seed:            o.seed,
		sampleThreshold: o.sampleThreshold,
		limiter:         pool.NewLimiter(workers),
	}
}

// Parallelism returns the engine's worker count.
func (e *Engine) Parallelism() int { return e.parallelism }

// Run validates cfg and clusters points with it.
// Configuration errors are returned before any computation starts.
func (e *Engine) Run(points []model.Point, cfg Config) (*cluster.Result, error) {
	return e.run(e.logger, points, cfg)
}

func (e *Engine) run(logger *Logger, points []model.Point, cfg Config) (*cluster.Result, error) {
	log := logger.WithAlgorithm(cfg.Algorithm)
	log.Debug("clustering started",
		zap.String("metric", cfg.Metric),
		zap.Int("points", len(points)),
	)

	res, err := e.cluster(points, cfg, e.parallelism)
	log.LogRun(len(points), res, err)
	return res, err
}

// cluster runs one configuration on up to workers goroutines and records
// metrics without logging. Tasks already holding a limiter slot pass 1.
func (e *Engine) cluster(points []model.Point, cfg Config, workers int) (*cluster.Result, error) {
	start := time.Now()
	res, err := e.fit(points, cfg, workers)
	if err != nil {
		e.metrics.RecordRun(cfg.Algorithm, len(points), 0, time.Since(start), err)
		return nil, err
	}
	e.metrics.RecordRun(cfg.Algorithm, len(points), res.Count, res.Duration, nil)
	return res, nil
}

func (e *Engine) fit(points []model.Point, cfg Config, workers int) (*cluster.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m, err := cfg.NewMetric()
	if err != nil {
		return nil, err
	}

	alg, err := cfg.NewAlgorithm(workers, e.seed)
	if err != nil {
		return nil, err
	}

	return cluster.Run(alg, points, m)
}

// Evaluate computes the validation indexes of res under m. Above the sample
// threshold the silhouette is the sampled approximation.
func (e *Engine) Evaluate(res *cluster.Result, m distance.Metric) validation.Scores {
	if res == nil || m == nil {
		return validation.Scores{}
	}

	var scores validation.Scores
	begin := time.Now()

	start := time.Now()
	scores.DaviesBouldin = validation.DaviesBouldin(res, m)
	e.metrics.RecordValidation("davies_bouldin", time.Since(start))

	start = time.Now()
	scores.Silhouette, scores.Sampled = e.silhouette(res, m, e.parallelism)
	e.metrics.RecordValidation("silhouette", time.Since(start))

	e.logger.LogValidation(scores, time.Since(begin))
	return scores
}

func (e *Engine) silhouette(res *cluster.Result, m distance.Metric, workers int) (float64, bool) {
	if len(res.Points) > e.sampleThreshold {
		return validation.SilhouetteSampled(res, m, validation.SampleOptions{Rand: e.newRand()}), true
	}
	return validation.Silhouette(res, m, func(o *validation.SilhouetteOptions) {
		o.Workers = workers
	}), false
}

func (e *Engine) newRand() *rand.Rand {
	seed := time.Now().UnixNano()
	if e.seed != nil {
		seed = *e.seed
	}
	return rand.New(rand.NewSource(seed))
}

// Report is the outcome of Analyze.
type Report struct {
	RunID  uuid.UUID         `json:"run_id" yaml:"run_id"`
	Config Config            `json:"config" yaml:"config"`
	Result *cluster.Result   `json:"-" yaml:"-"`
	Scores validation.Scores `json:"scores" yaml:"scores"`
	Sizes  []int             `json:"sizes" yaml:"sizes"`
	Noise  int               `json:"noise" yaml:"noise"`
}

// Analyze runs cfg and evaluates the result under the configured metric.
// Every log record of the analysis carries the report's run_id.
func (e *Engine) Analyze(points []model.Point, cfg Config) (*Report, error) {
	id := uuid.New()

	res, err := e.run(e.logger.WithRunID(id), points, cfg)
	if err != nil {
		return nil, err
	}

	m, err := cfg.NewMetric()
	if err != nil {
		return nil, err
	}

	return &Report{
		RunID:  id,
		Config: cfg,
		Result: res,
		Scores: e.Evaluate(res, m),
		Sizes:  res.Sizes(),
		Noise:  res.NoiseCount(),
	}, nil
}

// PartitionResult is the clustering of one upstream partition.
type PartitionResult struct {
	// Partition is the upstream label.
	Partition int
	// Indexes are the positions of the partition's points in the input.
	Indexes []int
	// Eps and MinPts are the density parameters actually used.
	Eps    float64
	MinPts int
	Result *cluster.Result
}

// PartitionReport is the outcome of RunPartitions.
type PartitionReport struct {
	// Partitions are ordered by ascending label.
	Partitions []PartitionResult
	// Assignments maps every input point to a global cluster id. Cluster ids
	// of a partition are offset by the counts of the partitions before it.
	// Noise and unpartitioned points are cluster.Noise.
	Assignments []int
	Count       int
}

// RunPartitions clusters the points of every upstream partition separately,
// running up to the engine's parallelism concurrently. Each partition runs
// on a single goroutine. partition holds one label per point; negative
// labels are left out.
//
// With adaptive set, density parameters are scaled per partition by its size
// and shape.
func (e *Engine) RunPartitions(points []model.Point, partition []int, cfg Config, adaptive bool) (*PartitionReport, error) {
	start := time.Now()

	if len(partition) != len(points) {
		err := &cluster.ConfigError{Field: "partition", Value: len(partition), Reason: "must have one label per point"}
		e.logger.LogSweep("partitions", 0, time.Since(start), err)
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		e.logger.LogSweep("partitions", 0, time.Since(start), err)
		return nil, err
	}

	groups := make(map[int][]int)
	for i, label := range partition {
		if label < 0 {
			continue
		}
		groups[label] = append(groups[label], i)
	}

	labels := make([]int, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	slices.Sort(labels)

	parts := make([]PartitionResult, len(labels))
	tasks := make([]func() error, len(labels))
	for slot, label := range labels {
		tasks[slot] = func() error {
			idx := groups[label]
			sub := make([]model.Point, len(idx))
			for j, i := range idx {
				sub[j] = points[i]
			}

			partCfg := cfg
			if adaptive && cfg.IsDensity() {
				partCfg.Eps, partCfg.MinPts = AdaptiveDensity(sub, cfg.Eps, cfg.MinPts)
			}

			res, err := e.cluster(sub, partCfg, 1)
			e.logger.LogPartitionRun(label, len(sub), partCfg.Eps, partCfg.MinPts, res, err)
			if err != nil {
				return err
			}

			parts[slot] = PartitionResult{
				Partition: label,
				Indexes:   idx,
				Eps:       partCfg.Eps,
				MinPts:    partCfg.MinPts,
				Result:    res,
			}
			return nil
		}
	}

	if err := e.limiter.Run(context.Background(), tasks); err != nil {
		e.logger.LogSweep("partitions", len(tasks), time.Since(start), err)
		return nil, err
	}

	report := &PartitionReport{
		Partitions:  parts,
		Assignments: make([]int, len(points)),
	}
	for i := range report.Assignments {
		report.Assignments[i] = cluster.Noise
	}
	for _, part := range parts {
		for j, i := range part.Indexes {
			if c := part.Result.Assignments[j]; c != cluster.Noise {
				report.Assignments[i] = report.Count + c
			}
		}
		report.Count += part.Result.Count
	}

	e.logger.LogSweep("partitions", len(tasks), time.Since(start), nil)
	return report, nil
}

// AdaptiveDensity scales density parameters to a partition. Large
// partitions get a wider eps and more neighbours, small ones a narrower eps
// and fewer neighbours (never below 3). Mid-sized partitions whose bounding
// box diagonal exceeds twice the square root of their size get eps x 1.2.
func AdaptiveDensity(points []model.Point, eps float64, minPts int) (float64, int) {
	n := len(points)

	switch {
	case n > 100000:
		eps *= 1.5
	case n < 1000:
		eps *= 0.5
	default:
		if diagonal(points)/math.Sqrt(float64(n)) > 2 {
			eps *= 1.2
		}
	}

	switch {
	case n > 50000:
		minPts = int(float64(minPts) * 1.5)
	case n < 2000:
		minPts = max(3, minPts/2)
	}

	return eps, minPts
}

func diagonal(points []model.Point) float64 {
	if len(points) == 0 {
		return 0
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	return math.Hypot(float64(maxX-minX), float64(maxY-minY))
}

// KScore is one step of SweepK.
type KScore struct {
	K             int
	DaviesBouldin float64
	Result        *cluster.Result
}

// SweepK runs K-means for every k in [kMin, kMax] and scores each result
// with the Davies-Bouldin index. Steps run concurrently; results are ordered by k.
func (e *Engine) SweepK(points []model.Point, kMin, kMax int, kind distance.Kind) ([]KScore, error) {
	start := time.Now()

	if kMin <= 0 || kMax < kMin {
		err := &cluster.ConfigError{Field: "k", Value: [2]int{kMin, kMax}, Reason: "range must be positive and ordered"}
		e.logger.LogSweep("k", 0, time.Since(start), err)
		return nil, err
	}

	m, err := distance.Provider(kind)
	if err != nil {
		e.logger.LogSweep("k", 0, time.Since(start), err)
		return nil, err
	}

	out := make([]KScore, kMax-kMin+1)
	tasks := make([]func() error, len(out))
	for slot := range out {
		k := kMin + slot
		tasks[slot] = func() error {
			res, err := e.cluster(points, KMeans(k).Metric(kind).Config(), 1)
			if err != nil {
				return err
			}

			begin := time.Now()
			db := validation.DaviesBouldin(res, m)
			e.metrics.RecordValidation("davies_bouldin", time.Since(begin))

			out[slot] = KScore{K: k, DaviesBouldin: db, Result: res}
			return nil
		}
	}

	err = e.limiter.Run(context.Background(), tasks)
	e.logger.LogSweep("k", len(tasks), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DensityScore is one step of SweepDensity.
type DensityScore struct {
	Eps        float64
	MinPts     int
	Clusters   int
	Noise      int
	Silhouette float64
	Sampled    bool
}

// SweepDensity runs grid DBSCAN for every (eps, minPts) pair and scores each
// result with the silhouette coefficient. Results are ordered by eps, then minPts.
func (e *Engine) SweepDensity(points []model.Point, eps []float64, minPts []int, kind distance.Kind) ([]DensityScore, error) {
	start := time.Now()

	if len(eps) == 0 || len(minPts) == 0 {
		err := &cluster.ConfigError{Field: "sweep", Value: [2]int{len(eps), len(minPts)}, Reason: "eps and minPts must not be empty"}
		e.logger.LogSweep("density", 0, time.Since(start), err)
		return nil, err
	}

	m, err := distance.Provider(kind)
	if err != nil {
		e.logger.LogSweep("density", 0, time.Since(start), err)
		return nil, err
	}

	out := make([]DensityScore, len(eps)*len(minPts))
	tasks := make([]func() error, len(out))
	for i, ep := range eps {
		for j, mp := range minPts {
			slot := i*len(minPts) + j
			tasks[slot] = func() error {
				res, err := e.cluster(points, DBSCAN(ep, mp).Grid().Metric(kind).Config(), 1)
				if err != nil {
					return err
				}

				begin := time.Now()
				s, sampled := e.silhouette(res, m, 1)
				e.metrics.RecordValidation("silhouette", time.Since(begin))

				out[slot] = DensityScore{
					Eps:        ep,
					MinPts:     mp,
					Clusters:   res.Count,
					Noise:      res.NoiseCount(),
					Silhouette: s,
					Sampled:    sampled,
				}
				return nil
			}
		}
	}

	err = e.limiter.Run(context.Background(), tasks)
	e.logger.LogSweep("density", len(tasks), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}
