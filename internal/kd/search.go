package kd

import "github.com/hupe1980/kdtree/distance"

// Collector accumulates candidates during a traversal.
type Collector[N distance.Number] interface {
	// Bound returns the squared distance a candidate must not exceed.
	Bound() N
	// Offer records node n at squared distance d, where d <= Bound().
	Offer(d N, n int32)
}

// Search runs the branch-and-bound traversal for query q, feeding c.
//
// Collectors may be reused across calls: the wrap-around adapter runs a second
// traversal with the bound left by the first.
func (t *Tree[N, P]) Search(q *distance.Vector[N], c Collector[N]) {
	if len(t.nodes) == 0 {
		return
	}
	t.search(0, 0, q, c)
}

// search visits the near child first, then the node itself and the far child
// only while the splitting hyperplane is still within the collector's bound.
func (t *Tree[N, P]) search(n int32, axis int, q *distance.Vector[N], c Collector[N]) {
	nd := &t.nodes[n]
	diff := q[axis] - nd.coords[axis]
	near, far := nd.smaller, nd.bigger
	if diff >= 0 {
		near, far = far, near
	}

	next := axis + 1
	if next == t.dims {
		next = 0
	}
	if near != none {
		t.search(near, next, q, c)
	}

	plane := diff * diff
	if plane > c.Bound() {
		return
	}
	if d := distance.SquaredL2(q, &nd.coords, t.dims); d <= c.Bound() {
		c.Offer(d, n)
	}
	if far != none {
		t.search(far, next, q, c)
	}
}

// Best keeps the single closest candidate.
//
// Exact ties replace the current best, so among equidistant points the one
// visited last wins.
type Best[N distance.Number] struct {
	dist N
	node int32
}

// NewBest returns an empty Best accepting candidates up to bound.
func NewBest[N distance.Number](bound N) *Best[N] {
	return &Best[N]{dist: bound, node: none}
}

// Bound implements Collector.
func (b *Best[N]) Bound() N { return b.dist }

// Offer implements Collector.
func (b *Best[N]) Offer(d N, n int32) {
	b.dist = d
	b.node = n
}

// Result returns the best node and its squared distance.
func (b *Best[N]) Result() (int32, N, bool) {
	return b.node, b.dist, b.node != none
}

// Nearest returns the closest point within the squared bound.
func (t *Tree[N, P]) Nearest(q *distance.Vector[N], bound N) (P, N, bool) {
	best := Best[N]{dist: bound, node: none}
	t.Search(q, &best)
	if best.node == none {
		var zero P
		return zero, bound, false
	}
	return t.nodes[best.node].point, best.dist, true
}
