// Package pool provides the bounded worker pool used for compute-bound fan-out.
//
// Work is either split into contiguous index ranges (no two workers write the
// same slot) or submitted as independent tasks. Every call blocks until all
// workers have joined.
package pool
