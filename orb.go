package kdtree

import "github.com/paulmach/orb"

// PointFromOrb converts an orb point to a float point.
func PointFromOrb[T any](p orb.Point, value T) Point[float64, T] {
	return Point[float64, T]{X: p.X(), Y: p.Y(), Value: value}
}

// GeoPointFromOrb converts an orb point, read as (lon, lat), to a GeoPoint.
func GeoPointFromOrb[T any](p orb.Point, value T) GeoPoint[T] {
	return GeoPoint[T]{Lon: p.Lon(), Lat: p.Lat(), Value: value}
}

// Orb returns p as an orb point.
func (p GeoPoint[T]) Orb() orb.Point { return orb.Point{p.Lon, p.Lat} }

// BoundsFromOrb converts an orb bound to float bounds.
func BoundsFromOrb(b orb.Bound) Bounds[float64] {
	return Bounds[float64]{MinX: b.Min.X(), MinY: b.Min.Y(), MaxX: b.Max.X(), MaxY: b.Max.Y()}
}

// Orb returns b as an orb bound.
func (b Bounds[C]) Orb() orb.Bound {
	return orb.Bound{
		Min: orb.Point{float64(b.MinX), float64(b.MinY)},
		Max: orb.Point{float64(b.MaxX), float64(b.MaxY)},
	}
}
