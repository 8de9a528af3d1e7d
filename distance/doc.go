// Package distance provides the pluggable dissimilarity metrics used by the
// clustering algorithms.
//
// Every Metric declares the sub-space it reads (its Domain) so that callers
// never have to guess it from the display name.
//
// # Supported Metrics
//
//   - KindEuclidean: squared Euclidean RGB distance (ordering only, not a true metric)
//   - KindCIELAB: Euclidean distance between quantized CIELAB (D50) triples
//   - KindCIE94: CIE94 colour difference on the same Lab triples
//   - KindRedmean: red-mean weighted RGB distance
//   - KindPosition: Euclidean distance between pixel positions
//
// # Usage
//
//	m, err := distance.Provider(distance.KindCIE94)
//	d := m.Distance(p, q)
//
// Metrics are symmetric. The triangle inequality is not guaranteed.
package distance
