package validation

// DefaultSampleThreshold is the point count above which callers should prefer
// SilhouetteSampled over the exact coefficient.
const DefaultSampleThreshold = 5000

// Scores bundles the validation indexes of one result.
type Scores struct {
	DaviesBouldin float64 `json:"davies_bouldin" yaml:"davies_bouldin"`
	Silhouette    float64 `json:"silhouette" yaml:"silhouette"`
	// Sampled reports whether Silhouette is the sampled approximation.
	Sampled bool `json:"sampled" yaml:"sampled"`
}
