package kdtree

import (
	"errors"
	"fmt"

	"github.com/hupe1980/kdtree/internal/kd"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrInvalidBounds is returned when a bounding rectangle is not ordered min < max.
	ErrInvalidBounds = errors.New("invalid bounds")

	// ErrCoordinateOutOfRange is returned when a coordinate lies outside the
	// tree's area or beyond the ceiling for overflow-free distance math.
	ErrCoordinateOutOfRange = errors.New("coordinate out of range")

	// ErrInvalidAngle is returned when the maximum angular distance is outside [0, 180].
	ErrInvalidAngle = errors.New("max angle must be within [0, 180] degrees")

	// ErrInvalidLonLat is returned when a longitude is outside [-180, 180] or a
	// latitude outside [-90, 90].
	ErrInvalidLonLat = errors.New("invalid longitude/latitude")

	// ErrTooManyPoints is returned when the point count exceeds the tree capacity.
	ErrTooManyPoints = errors.New("too many points")
)

// BoundsError describes a bounding rectangle that is not ordered.
//
// It matches ErrInvalidBounds via errors.Is.
type BoundsError struct {
	MinX, MinY, MaxX, MaxY float64
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("invalid bounds: x [%v, %v], y [%v, %v] must satisfy min < max",
		e.MinX, e.MaxX, e.MinY, e.MaxY)
}

func (e *BoundsError) Unwrap() error { return ErrInvalidBounds }

// CoordinateError describes a coordinate outside the permitted area.
//
// It matches ErrCoordinateOutOfRange via errors.Is.
type CoordinateError struct {
	X, Y float64
	Area Bounds[float64]
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("coordinate out of range: (%v, %v) outside x [%v, %v], y [%v, %v]",
		e.X, e.Y, e.Area.MinX, e.Area.MaxX, e.Area.MinY, e.Area.MaxY)
}

func (e *CoordinateError) Unwrap() error { return ErrCoordinateOutOfRange }

// LonLatError describes a longitude/latitude pair outside the valid ranges.
//
// It matches ErrInvalidLonLat via errors.Is.
type LonLatError struct {
	Lon, Lat float64
}

func (e *LonLatError) Error() string {
	return fmt.Sprintf("invalid longitude/latitude: (%v, %v) outside [-180, 180] x [-90, 90]", e.Lon, e.Lat)
}

func (e *LonLatError) Unwrap() error { return ErrInvalidLonLat }

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, kd.ErrTooManyPoints) {
		return fmt.Errorf("%w: %w", ErrTooManyPoints, err)
	}
	return err
}
