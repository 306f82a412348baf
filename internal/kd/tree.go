package kd

import (
	"errors"

	"github.com/hupe1980/kdtree/distance"
)

// none marks a missing child or an empty collector slot.
const none int32 = -1

var (
	// ErrInvalidDimensions is returned when dims is outside [1, distance.MaxDims].
	ErrInvalidDimensions = errors.New("kd: invalid number of dimensions")

	// ErrTooManyPoints is returned when the point count does not fit the arena index.
	ErrTooManyPoints = errors.New("kd: too many points")
)

// Item is a build input: the coordinate in the tree's arithmetic domain and
// the caller's point, which is handed back by searches.
type Item[N distance.Number, P any] struct {
	Coords distance.Vector[N]
	Point  P
}

type node[N distance.Number, P any] struct {
	coords  distance.Vector[N]
	point   P
	smaller int32
	bigger  int32
}

// Tree is an immutable k-d tree over points of type P.
type Tree[N distance.Number, P any] struct {
	nodes []node[N, P]
	dims  int
	depth int
}

// Len returns the number of stored points.
func (t *Tree[N, P]) Len() int { return len(t.nodes) }

// Dims returns the dimensionality of the tree.
func (t *Tree[N, P]) Dims() int { return t.dims }

// Depth returns the height of the tree (0 when empty, 1 for a single point).
func (t *Tree[N, P]) Depth() int { return t.depth }

// Point returns the payload stored at node n.
func (t *Tree[N, P]) Point(n int32) P { return t.nodes[n].point }

// Coords returns the coordinate stored at node n.
func (t *Tree[N, P]) Coords(n int32) distance.Vector[N] { return t.nodes[n].coords }

// Walk visits the stored points in pre-order with their depth and split axis.
// Returning false from fn stops the walk.
func (t *Tree[N, P]) Walk(fn func(p P, depth, axis int) bool) {
	if len(t.nodes) == 0 {
		return
	}
	t.walk(0, 0, fn)
}

func (t *Tree[N, P]) walk(n int32, depth int, fn func(p P, depth, axis int) bool) bool {
	nd := &t.nodes[n]
	if !fn(nd.point, depth, depth%t.dims) {
		return false
	}
	if nd.smaller != none && !t.walk(nd.smaller, depth+1, fn) {
		return false
	}
	if nd.bigger != none && !t.walk(nd.bigger, depth+1, fn) {
		return false
	}
	return true
}
