// Package centroid reduces a set of points to one representative point.
//
// Partition clustering needs to average points generically; a Calculator
// decides which sub-space is averaged and which is copied from a member.
package centroid
