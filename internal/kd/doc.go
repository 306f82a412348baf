// Package kd implements the static k-d tree shared by the planar and spherical
// indexes: median-partition construction and the branch-and-bound traversal.
//
// Nodes live in a single arena slice and link to their children by index.
// The split axis of a node is implied by its depth (depth mod dims) and is
// passed explicitly through the recursion.
//
// A Tree is immutable once Build returns, so any number of goroutines may
// search it concurrently. Collectors (Best, Chain) are per-query state and
// must not be shared.
package kd
