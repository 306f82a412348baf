package kdtree

import (
	"fmt"
	"time"

	"github.com/hupe1980/kdtree/distance"
	"github.com/hupe1980/kdtree/internal/kd"
)

// Tree is an immutable planar k-d tree.
//
// C is the coordinate type of stored points, S the type squared distances are
// computed in. A Tree is safe for concurrent queries.
type Tree[C Coordinate, S distance.Number, T any] struct {
	core  *kd.Tree[S, Point[C, T]]
	limit Bounds[C] // admissible query area
	obs   observer
}

// IntTree is a tree over int32 coordinates with int64 distance arithmetic.
type IntTree[T any] = Tree[int32, int64, T]

// FloatTree is a tree over float64 coordinates.
type FloatTree[T any] = Tree[float64, float64, T]

// NewIntTree builds a tree over integer points.
//
// Every coordinate must lie within ±MaxIntCoordinate. The points slice is
// copied and never reordered.
func NewIntTree[T any](points []Point[int32, T], opts ...Option) (*IntTree[T], error) {
	return newTree[int32, int64]("int", points, nil, MaxIntCoordinate, applyOptions(opts))
}

// NewFloatTree builds a tree over float points.
//
// Every coordinate must be finite and within ±MaxFloatCoordinate. The points
// slice is copied and never reordered.
func NewFloatTree[T any](points []Point[float64, T], opts ...Option) (*FloatTree[T], error) {
	return newTree[float64, float64]("float", points, nil, MaxFloatCoordinate, applyOptions(opts))
}

// newTree builds a tree whose points must lie inside bounds, or inside the
// ceiling square when bounds is nil. Queries are always checked against the
// ceiling square.
func newTree[C Coordinate, S distance.Number, T any](kind string, points []Point[C, T], bounds *Bounds[C], ceiling C, o options) (*Tree[C, S, T], error) {
	t := &Tree[C, S, T]{
		limit: square(ceiling),
		obs:   newObserver(kind, o),
	}

	start := time.Now()
	err := t.build(points, bounds, ceiling)

	depth := 0
	if err == nil {
		depth = t.core.Depth()
	}
	t.obs.built(len(points), depth, start, err)

	if err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tree[C, S, T]) build(points []Point[C, T], bounds *Bounds[C], ceiling C) error {
	area := t.limit
	if bounds != nil {
		if err := bounds.validate(ceiling); err != nil {
			return err
		}
		area = *bounds
	}

	items := make([]kd.Item[S, Point[C, T]], len(points))
	for i, p := range points {
		if !area.Contains(p.X, p.Y) {
			return coordinateError(p.X, p.Y, area)
		}
		items[i] = kd.Item[S, Point[C, T]]{Coords: planar[S](p.X, p.Y), Point: p}
	}

	core, err := kd.Build(items, distance.MetricPlanar.Dims())
	if err != nil {
		return translateError(err)
	}
	t.core = core
	return nil
}

// Len returns the number of stored points.
func (t *Tree[C, S, T]) Len() int { return t.core.Len() }

// Depth returns the height of the tree.
func (t *Tree[C, S, T]) Depth() int { return t.core.Depth() }

// Walk visits every stored point in pre-order together with its depth and
// split axis (0 = X, 1 = Y). Returning false stops the walk.
func (t *Tree[C, S, T]) Walk(fn func(p Point[C, T], depth, axis int) bool) {
	t.core.Walk(fn)
}

// Nearest returns the point closest to (x, y) within maxRadius (inclusive),
// or nil if there is none. Among equidistant points the result is one of them,
// deterministically.
func (t *Tree[C, S, T]) Nearest(x, y, maxRadius C) (*Point[C, T], error) {
	start := t.obs.begin()
	p, err := t.nearest(x, y, maxRadius)
	t.obs.searched(1, found(p), start, err)
	return p, err
}

func (t *Tree[C, S, T]) nearest(x, y, maxRadius C) (*Point[C, T], error) {
	if !t.limit.Contains(x, y) {
		return nil, coordinateError(x, y, t.limit)
	}
	bound, ok := radiusBound[S](maxRadius)
	if !ok {
		return nil, nil
	}

	q := planar[S](x, y)
	p, _, ok := t.core.Nearest(&q, bound)
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// NearestK returns up to k points closest to (x, y) within maxRadius
// (inclusive), closest first. The result is empty when nothing is in range.
func (t *Tree[C, S, T]) NearestK(x, y, maxRadius C, k int) ([]Point[C, T], error) {
	start := t.obs.begin()
	res, err := t.nearestK(x, y, maxRadius, k)
	t.obs.searched(k, len(res), start, err)
	return res, err
}

func (t *Tree[C, S, T]) nearestK(x, y, maxRadius C, k int) ([]Point[C, T], error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}
	if !t.limit.Contains(x, y) {
		return nil, coordinateError(x, y, t.limit)
	}
	bound, ok := radiusBound[S](maxRadius)
	if !ok {
		return []Point[C, T]{}, nil
	}

	q := planar[S](x, y)
	return t.points(t.core.NearestK(&q, bound, k)), nil
}

func (t *Tree[C, S, T]) points(cands []kd.Candidate[S]) []Point[C, T] {
	out := make([]Point[C, T], len(cands))
	for i, c := range cands {
		out[i] = t.core.Point(c.Node)
	}
	return out
}

func planar[S distance.Number, C Coordinate](x, y C) distance.Vector[S] {
	return distance.Vector[S]{S(x), S(y)}
}

// radiusBound squares r in the distance type. A negative or NaN radius
// contains nothing.
func radiusBound[S distance.Number, C Coordinate](r C) (S, bool) {
	if !(r >= 0) {
		return 0, false
	}
	s := S(r)
	return s * s, true
}

func found[P any](p *P) int {
	if p == nil {
		return 0
	}
	return 1
}
