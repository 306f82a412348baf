package kd

import "github.com/hupe1980/kdtree/distance"

type slot[N distance.Number] struct {
	dist N
	node int32
	next int32
}

// Chain keeps the k closest candidates in a singly linked list of
// pre-allocated slots, ordered from the farthest (head) to the closest.
//
// Every slot starts empty at the query bound, so the head distance is the
// pruning bound from the start. Inserting splices the head slot into place,
// which is O(k) in the worst case and never allocates.
type Chain[N distance.Number] struct {
	slots []slot[N]
	head  int32
}

// NewChain returns a chain of k empty slots at the given squared bound.
// k must be positive.
func NewChain[N distance.Number](k int, bound N) *Chain[N] {
	c := &Chain[N]{slots: make([]slot[N], k)}
	for i := range c.slots {
		c.slots[i] = slot[N]{dist: bound, node: none, next: int32(i + 1)}
	}
	c.slots[k-1].next = none
	return c
}

// Bound implements Collector. It is the distance of the farthest kept candidate.
func (c *Chain[N]) Bound() N { return c.slots[c.head].dist }

// Offer implements Collector.
//
// The head slot is evicted and reused for the new candidate. It is moved
// behind the last slot that is at least as far as d; among equal distances
// the newcomer ends up closer to the tail, i.e. earlier in the result.
func (c *Chain[N]) Offer(d N, n int32) {
	s := c.slots
	head := c.head
	farther, newHead := head, head
	for s[farther].next != none && d <= s[s[farther].next].dist {
		farther = s[farther].next
		newHead = s[head].next
	}
	s[head].dist = d
	s[head].node = n
	// When farther == head this is a no-op relink.
	tail := s[farther].next
	s[farther].next = head
	s[head].next = tail
	c.head = newHead
}

// Distinct returns a Collector over c that holds every node at most once.
// A node offered again moves its own slot when the new distance is smaller
// and is ignored otherwise, so no other candidate is evicted for it.
func (c *Chain[N]) Distinct() Collector[N] { return distinct[N]{c} }

type distinct[N distance.Number] struct {
	c *Chain[N]
}

func (u distinct[N]) Bound() N { return u.c.Bound() }

func (u distinct[N]) Offer(d N, n int32) {
	c := u.c
	s := c.slots
	prev := none
	for i := c.head; i != none; prev, i = i, s[i].next {
		if s[i].node != n {
			continue
		}
		if d >= s[i].dist {
			return
		}
		c.unlink(prev, i)
		c.insert(i, d)
		return
	}
	c.Offer(d, n)
}

func (c *Chain[N]) unlink(prev, i int32) {
	if prev == none {
		c.head = c.slots[i].next
	} else {
		c.slots[prev].next = c.slots[i].next
	}
	c.slots[i].next = none
}

// insert links slot i at distance d behind the last slot at least as far,
// following the same tie order as Offer.
func (c *Chain[N]) insert(i int32, d N) {
	s := c.slots
	s[i].dist = d
	if c.head == none || d > s[c.head].dist {
		s[i].next = c.head
		c.head = i
		return
	}
	cur := c.head
	for s[cur].next != none && d <= s[s[cur].next].dist {
		cur = s[cur].next
	}
	s[i].next = s[cur].next
	s[cur].next = i
}

// Candidate is a kept node with its squared distance.
type Candidate[N distance.Number] struct {
	Node     int32
	Distance N
}

// Ascending drops the still-empty slots and returns the candidates closest
// first. The result is empty, not nil, when nothing was found.
func (c *Chain[N]) Ascending() []Candidate[N] {
	cur := c.head
	for cur != none && c.slots[cur].node == none {
		cur = c.slots[cur].next
	}
	n := 0
	for i := cur; i != none; i = c.slots[i].next {
		n++
	}
	out := make([]Candidate[N], n)
	for i := cur; i != none; i = c.slots[i].next {
		n--
		out[n] = Candidate[N]{Node: c.slots[i].node, Distance: c.slots[i].dist}
	}
	return out
}

// NearestK returns up to k closest points within the squared bound, closest first.
func (t *Tree[N, P]) NearestK(q *distance.Vector[N], bound N, k int) []Candidate[N] {
	if k > len(t.nodes) {
		k = len(t.nodes)
	}
	if k <= 0 {
		return []Candidate[N]{}
	}
	c := NewChain(k, bound)
	t.Search(q, c)
	return c.Ascending()
}
