// Package kdtree provides static k-d trees for nearest-neighbor queries.
//
// A tree is built once from a set of points and is immutable afterwards, so
// any number of goroutines may query it concurrently. Queries return the
// single closest point or the k closest points within a maximum radius.
//
// # Tree Flavors
//
//	// Integer grid, coordinates within ±MaxIntCoordinate.
//	t, _ := kdtree.NewIntTree(points)
//	p, _ := t.Nearest(x, y, radius)
//
//	// Float plane.
//	f, _ := kdtree.NewFloatTree(points)
//	ps, _ := f.NearestK(x, y, radius, 8)
//
//	// Bounded map whose left and right borders touch.
//	b, _ := kdtree.NewBoundedIntTree(points, kdtree.Bounds[int32]{MaxX: 1023, MaxY: 1023})
//	p, _ = b.NearestWrapped(x, y, radius)
//
//	// Longitude/latitude on the sphere, searched up to a fixed angle.
//	s, _ := kdtree.NewSphericalTree(places, 5) // degrees
//	g, _ := s.Nearest(lon, lat)
//
// # Distances
//
// Integer trees compute squared distances in int64 and float trees in
// float64. Coordinates are bounded by a ceiling per flavor so that no squared
// distance can overflow; points or queries beyond it are rejected with
// ErrCoordinateOutOfRange. Radii are inclusive. A negative radius matches
// nothing.
//
// Spherical trees embed every point on the unit sphere and compare squared
// chord lengths, which order points exactly like great-circle distance.
//
// # Ties
//
// When several points are equally close, Nearest deterministically returns
// one of them and NearestK orders them deterministically. The choice depends
// only on the input order of the points.
//
// # Observability
//
// Trees accept WithLogger for structured logging via log/slog and
// WithMetricsCollector for build and query metrics. Package
// metrics/prometheus exports these metrics to Prometheus.
package kdtree
