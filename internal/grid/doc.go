// Package grid implements a uniform bucket index over the 2D coordinate plane
// or the 3D colour cube.
//
// An Index is built once, single-threaded, and is read-only afterwards, so
// concurrent queries need no locking. Queries return candidates only; the
// caller evaluates the exact metric on them.
package grid
