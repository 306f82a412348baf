package benchmark_test

import (
	"github.com/hupe1980/kdtree"
	"github.com/hupe1980/kdtree/testutil"
)

const (
	sizeSmall  = 1_000
	sizeMedium = 10_000
	sizeLarge  = 100_000

	worldSize = 1 << 20
)

var sizes = []int{sizeSmall, sizeMedium, sizeLarge}

// Use deterministic RNG for reproducible benchmarks
func newRNG() *testutil.RNG { return testutil.NewRNG(42) }

func makeIntPoints(rng *testutil.RNG, n int) []kdtree.Point[int32, int] {
	coords := rng.IntCoords(n, 0, worldSize-1)
	points := make([]kdtree.Point[int32, int], n)
	for i, c := range coords {
		points[i] = kdtree.Point[int32, int]{X: c[0], Y: c[1], Value: i}
	}
	return points
}

func makeGeoPoints(rng *testutil.RNG, n int) []kdtree.GeoPoint[int] {
	lonLats := rng.LonLats(n)
	points := make([]kdtree.GeoPoint[int], n)
	for i, ll := range lonLats {
		points[i] = kdtree.GeoPoint[int]{Lon: ll[0], Lat: ll[1], Value: i}
	}
	return points
}

func mustIntTree(points []kdtree.Point[int32, int]) *kdtree.IntTree[int] {
	t, err := kdtree.NewIntTree(points)
	if err != nil {
		panic(err)
	}
	return t
}
