package kdtree

import (
	"fmt"
	"time"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"github.com/hupe1980/kdtree/distance"
	"github.com/hupe1980/kdtree/internal/kd"
)

// SphericalTree is an immutable k-d tree over points on the unit sphere,
// queried by great-circle distance up to a fixed maximum angle.
//
// Points are embedded in three dimensions; the squared chord length between
// two embeddings grows monotonically with their central angle, so the planar
// search applies unchanged. A SphericalTree is safe for concurrent queries.
type SphericalTree[T any] struct {
	core     *kd.Tree[float64, GeoPoint[T]]
	maxAngle s1.Angle
	bound    float64 // squared chord of maxAngle
	obs      observer
}

// NewSphericalTree builds a tree over points given in degrees.
//
// Longitudes must lie within [-180, 180], latitudes within [-90, 90] and
// maxAngleDegrees within [0, 180].
func NewSphericalTree[T any](points []GeoPoint[T], maxAngleDegrees float64, opts ...Option) (*SphericalTree[T], error) {
	s := &SphericalTree[T]{
		obs: newObserver("spherical", applyOptions(opts)),
	}

	start := time.Now()
	err := s.build(points, maxAngleDegrees)

	depth := 0
	if err == nil {
		depth = s.core.Depth()
	}
	s.obs.built(len(points), depth, start, err)

	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SphericalTree[T]) build(points []GeoPoint[T], maxAngleDegrees float64) error {
	if !(maxAngleDegrees >= 0 && maxAngleDegrees <= 180) {
		return fmt.Errorf("%w: got %v", ErrInvalidAngle, maxAngleDegrees)
	}

	items := make([]kd.Item[float64, GeoPoint[T]], len(points))
	for i, p := range points {
		if !validLonLat(p.Lon, p.Lat) {
			return &LonLatError{Lon: p.Lon, Lat: p.Lat}
		}
		items[i] = kd.Item[float64, GeoPoint[T]]{Coords: distance.Embed(p.Lon, p.Lat), Point: p}
	}

	core, err := kd.Build(items, distance.MetricSpherical.Dims())
	if err != nil {
		return translateError(err)
	}
	s.core = core
	s.maxAngle = s1.Angle(maxAngleDegrees) * s1.Degree
	s.bound = distance.ChordBound(maxAngleDegrees)
	return nil
}

// Len returns the number of stored points.
func (s *SphericalTree[T]) Len() int { return s.core.Len() }

// Depth returns the height of the tree.
func (s *SphericalTree[T]) Depth() int { return s.core.Depth() }

// MaxAngle returns the largest central angle a result may have.
func (s *SphericalTree[T]) MaxAngle() s1.Angle { return s.maxAngle }

// Walk visits every stored point in pre-order together with its depth and
// split axis of the embedding. Returning false stops the walk.
func (s *SphericalTree[T]) Walk(fn func(p GeoPoint[T], depth, axis int) bool) {
	s.core.Walk(fn)
}

// Nearest returns the point closest to (lon, lat) within MaxAngle, or nil if
// there is none.
func (s *SphericalTree[T]) Nearest(lon, lat float64) (*GeoPoint[T], error) {
	start := s.obs.begin()
	p, err := s.nearest(lon, lat)
	s.obs.searched(1, found(p), start, err)
	return p, err
}

func (s *SphericalTree[T]) nearest(lon, lat float64) (*GeoPoint[T], error) {
	if !validLonLat(lon, lat) {
		return nil, &LonLatError{Lon: lon, Lat: lat}
	}
	q := distance.Embed(lon, lat)
	p, _, ok := s.core.Nearest(&q, s.bound)
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// NearestK returns up to k points closest to (lon, lat) within MaxAngle,
// closest first.
func (s *SphericalTree[T]) NearestK(lon, lat float64, k int) ([]GeoPoint[T], error) {
	start := s.obs.begin()
	res, err := s.nearestK(lon, lat, k)
	s.obs.searched(k, len(res), start, err)
	return res, err
}

func (s *SphericalTree[T]) nearestK(lon, lat float64, k int) ([]GeoPoint[T], error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}
	if !validLonLat(lon, lat) {
		return nil, &LonLatError{Lon: lon, Lat: lat}
	}

	q := distance.Embed(lon, lat)
	cands := s.core.NearestK(&q, s.bound, k)
	out := make([]GeoPoint[T], len(cands))
	for i, c := range cands {
		out[i] = s.core.Point(c.Node)
	}
	return out, nil
}

// AngleTo returns the great-circle angle between p and (lon, lat).
func (p GeoPoint[T]) AngleTo(lon, lat float64) s1.Angle {
	return s2.LatLngFromDegrees(p.Lat, p.Lon).Distance(s2.LatLngFromDegrees(lat, lon))
}
