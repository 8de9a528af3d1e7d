// Package testutil provides testing utilities for pixelclust.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG and generators for synthetic
// point clouds.
//
// # Point Generation
//
//	rng := testutil.NewRNG(seed)
//	blob := rng.Blob(100, 20, 20, 2)                          // positions around (20,20)
//	warm := rng.ColorBlob(100, model.Channels{200, 40, 10}, 5) // colours around a centre
//	noise := rng.Uniform(50, 64, 64)                         // uniform pixels
//
//	points := testutil.Concat(blob, warm, noise)
package testutil
