package kdtree

import (
	"fmt"

	"github.com/hupe1980/kdtree/distance"
	"github.com/hupe1980/kdtree/internal/kd"
)

// BoundedTree is a planar tree over a rectangular map whose left and right
// borders are adjacent, as on a cylindrical world map.
//
// The embedded Tree answers ordinary queries; NearestWrapped and
// NearestKWrapped also consider distances measured across the border.
type BoundedTree[C Coordinate, S distance.Number, T any] struct {
	*Tree[C, S, T]
	bounds Bounds[C]
	wrap   Bounds[C] // admissible wrapped query area
	step   S
}

// BoundedIntTree is a bounded tree over an integer grid. MinX and MaxX are
// distinct cells one step apart across the border.
type BoundedIntTree[T any] = BoundedTree[int32, int64, T]

// BoundedFloatTree is a bounded tree over a continuous map. MinX and MaxX
// denote the same meridian.
type BoundedFloatTree[T any] = BoundedTree[float64, float64, T]

// NewBoundedIntTree builds a tree over integer points inside bounds.
//
// bounds must be ordered and within ±MaxBoundedIntCoordinate.
func NewBoundedIntTree[T any](points []Point[int32, T], bounds Bounds[int32], opts ...Option) (*BoundedIntTree[T], error) {
	return newBoundedTree[int32, int64]("bounded-int", points, bounds, MaxBoundedIntCoordinate, 1, applyOptions(opts))
}

// NewBoundedFloatTree builds a tree over float points inside bounds.
//
// bounds must be ordered and within ±MaxFloatCoordinate.
func NewBoundedFloatTree[T any](points []Point[float64, T], bounds Bounds[float64], opts ...Option) (*BoundedFloatTree[T], error) {
	return newBoundedTree[float64, float64]("bounded-float", points, bounds, MaxFloatCoordinate, 0, applyOptions(opts))
}

func newBoundedTree[C Coordinate, S distance.Number, T any](kind string, points []Point[C, T], bounds Bounds[C], ceiling C, step S, o options) (*BoundedTree[C, S, T], error) {
	t, err := newTree[C, S](kind, points, &bounds, ceiling, o)
	if err != nil {
		return nil, err
	}
	return &BoundedTree[C, S, T]{
		Tree:   t,
		bounds: bounds,
		wrap:   Bounds[C]{MinX: bounds.MinX, MinY: -ceiling, MaxX: bounds.MaxX, MaxY: ceiling},
		step:   step,
	}, nil
}

// Bounds returns the map rectangle.
func (b *BoundedTree[C, S, T]) Bounds() Bounds[C] { return b.bounds }

// NearestWrapped is like Nearest but also measures distances across the
// left/right border. x must lie within [MinX, MaxX].
func (b *BoundedTree[C, S, T]) NearestWrapped(x, y, maxRadius C) (*Point[C, T], error) {
	start := b.obs.begin()
	p, err := b.nearestWrapped(x, y, maxRadius)
	b.obs.searched(1, found(p), start, err)
	return p, err
}

func (b *BoundedTree[C, S, T]) nearestWrapped(x, y, maxRadius C) (*Point[C, T], error) {
	if !b.wrap.Contains(x, y) {
		return nil, coordinateError(x, y, b.wrap)
	}
	bound, ok := radiusBound[S](maxRadius)
	if !ok {
		return nil, nil
	}

	q := planar[S](x, y)
	best := kd.NewBest(bound)
	b.core.Search(&q, best)
	b.across(&q, best)

	n, _, ok := best.Result()
	if !ok {
		return nil, nil
	}
	p := b.core.Point(n)
	return &p, nil
}

// NearestKWrapped is like NearestK but also measures distances across the
// left/right border. A point reachable both directly and across the border is
// reported once, at its nearer distance. x must lie within [MinX, MaxX].
func (b *BoundedTree[C, S, T]) NearestKWrapped(x, y, maxRadius C, k int) ([]Point[C, T], error) {
	start := b.obs.begin()
	res, err := b.nearestKWrapped(x, y, maxRadius, k)
	b.obs.searched(k, len(res), start, err)
	return res, err
}

func (b *BoundedTree[C, S, T]) nearestKWrapped(x, y, maxRadius C, k int) ([]Point[C, T], error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}
	if !b.wrap.Contains(x, y) {
		return nil, coordinateError(x, y, b.wrap)
	}
	bound, ok := radiusBound[S](maxRadius)
	if !ok || b.Len() == 0 {
		return []Point[C, T]{}, nil
	}

	q := planar[S](x, y)
	chain := kd.NewChain(min(k, b.Len()), bound)
	b.core.Search(&q, chain)
	b.across(&q, chain.Distinct())

	return b.points(chain.Ascending()), nil
}

// across repeats the search from the mirror image of q beyond the nearer
// border, unless every point across it is farther than the current bound.
// A point across the border is at least the border distance plus step away.
func (b *BoundedTree[C, S, T]) across(q *distance.Vector[S], c kd.Collector[S]) {
	bound := c.Bound()
	minX, maxX := S(b.bounds.MinX), S(b.bounds.MaxX)
	x := q[0]
	mirror := *q
	if minX+maxX > 2*x {
		dl := x - minX
		if d := dl + b.step; d*d > bound {
			return
		}
		mirror[0] = maxX + dl + b.step
	} else {
		dr := maxX - x
		if d := dr + b.step; d*d > bound {
			return
		}
		mirror[0] = minX - dr - b.step
	}
	b.core.Search(&mirror, c)
}
