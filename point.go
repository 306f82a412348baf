package kdtree

import "math"

// Coordinate is the set of planar coordinate types.
type Coordinate interface {
	~int32 | ~float64
}

const (
	// MaxIntCoordinate is the largest coordinate magnitude accepted by
	// unbounded integer trees.
	MaxIntCoordinate int32 = 1_000_000_000

	// MaxBoundedIntCoordinate is the largest bound magnitude accepted by
	// bounded integer trees. It leaves headroom for wrapped queries mirrored
	// past a border.
	MaxBoundedIntCoordinate int32 = 590_000_000
)

// MaxFloatCoordinate is the largest coordinate magnitude accepted by float
// trees. Squared distances between any two admissible coordinates, including
// wrapped queries, stay finite.
var MaxFloatCoordinate = math.Sqrt(math.MaxFloat64) / 1.81 / 2

// Point is a planar point carrying a caller-defined value.
type Point[C Coordinate, T any] struct {
	X, Y  C
	Value T
}

// GeoPoint is a point on the sphere in degrees carrying a caller-defined value.
type GeoPoint[T any] struct {
	Lon, Lat float64
	Value    T
}

// Bounds is an axis-aligned rectangle, inclusive on all sides.
type Bounds[C Coordinate] struct {
	MinX, MinY, MaxX, MaxY C
}

// Contains reports whether (x, y) lies inside b. NaN is never contained.
func (b Bounds[C]) Contains(x, y C) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Width returns MaxX - MinX.
func (b Bounds[C]) Width() C { return b.MaxX - b.MinX }

// Height returns MaxY - MinY.
func (b Bounds[C]) Height() C { return b.MaxY - b.MinY }

func (b Bounds[C]) float() Bounds[float64] {
	return Bounds[float64]{
		MinX: float64(b.MinX),
		MinY: float64(b.MinY),
		MaxX: float64(b.MaxX),
		MaxY: float64(b.MaxY),
	}
}

// validate checks ordering first, then the ceiling.
func (b Bounds[C]) validate(ceiling C) error {
	if !(b.MinX < b.MaxX) || !(b.MinY < b.MaxY) {
		f := b.float()
		return &BoundsError{MinX: f.MinX, MinY: f.MinY, MaxX: f.MaxX, MaxY: f.MaxY}
	}
	limit := square(ceiling)
	if !limit.Contains(b.MinX, b.MinY) {
		return coordinateError(b.MinX, b.MinY, limit)
	}
	if !limit.Contains(b.MaxX, b.MaxY) {
		return coordinateError(b.MaxX, b.MaxY, limit)
	}
	return nil
}

func square[C Coordinate](ceiling C) Bounds[C] {
	return Bounds[C]{MinX: -ceiling, MinY: -ceiling, MaxX: ceiling, MaxY: ceiling}
}

func coordinateError[C Coordinate](x, y C, area Bounds[C]) error {
	return &CoordinateError{X: float64(x), Y: float64(y), Area: area.float()}
}

func validLonLat(lon, lat float64) bool {
	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}
