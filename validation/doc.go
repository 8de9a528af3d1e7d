// Package validation scores the quality of a clustering result.
//
// DaviesBouldin is a separation/compactness ratio (lower is better).
// Silhouette compares cohesion to the nearest other cluster and lies in
// [-1, 1] (higher is better). Both return 0 for results with at most one
// cluster; numeric degeneracies never produce NaN.
package validation
