package distance

import "fmt"

// MaxDims is the largest supported dimensionality (the sphere embedding).
const MaxDims = 3

// Number is the arithmetic domain for stored coordinates and squared distances.
//
// 32-bit integer coordinates are widened to int64 before they reach the tree,
// so the difference of two coordinates and its square never overflow.
type Number interface {
	~int64 | ~float64
}

// Vector is a fixed-size coordinate. Only the first dims entries are meaningful.
type Vector[N Number] [MaxDims]N

// SquaredL2 calculates the squared Euclidean distance over the first dims axes.
func SquaredL2[N Number](a, b *Vector[N], dims int) N {
	var sum N
	for i := 0; i < dims; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// Metric identifies the geometry a tree is built over.
type Metric int

const (
	// MetricPlanar is Euclidean distance in the plane (2 dimensions).
	MetricPlanar Metric = iota
	// MetricSpherical is chord distance between points embedded on the unit
	// sphere (3 dimensions).
	MetricSpherical
)

// String returns the name of the metric.
func (m Metric) String() string {
	switch m {
	case MetricPlanar:
		return "Planar"
	case MetricSpherical:
		return "Spherical"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Dims returns the embedding dimensionality of the metric.
func (m Metric) Dims() int {
	if m == MetricSpherical {
		return 3
	}
	return 2
}
