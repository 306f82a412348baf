// Package testutil provides testing utilities for kdtree.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random point sets and for computing
// exact nearest neighbors by linear scan.
//
// # Random Point Generation
//
//	rng := testutil.NewRNG(seed)
//	pts := rng.IntCoords(300, 0, 100000)  // uniform grid coordinates
//	line := rng.IntCoords1D(300, 0, 100000) // all on y = 0
//	geo := rng.LonLats(300)                 // uniform lon/lat
//
// # Exact Search (Ground Truth)
//
//	idx, d, ok := testutil.ExactNearest(vectors, 2, query, bound)
//	top := testutil.ExactTopK(vectors, 2, query, bound, k)
package testutil
