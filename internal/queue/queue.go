// Package queue provides a value-based binary heap keyed by squared distance.
package queue

import "github.com/hupe1980/kdtree/distance"

// PriorityQueueItem represents an item in the priority queue.
type PriorityQueueItem[N distance.Number] struct {
	Node     uint32 // Node is the value of the item, typically a point index.
	Distance N      // Distance is the priority of the item in the queue.
}

// PriorityQueue is a binary heap of PriorityQueueItems.
// Storage is value-based for cache locality and zero per-item allocations.
type PriorityQueue[N distance.Number] struct {
	isMaxHeap bool
	items     []PriorityQueueItem[N]
}

// NewMin initializes a new priority queue with minimum priority.
func NewMin[N distance.Number](capacity int) *PriorityQueue[N] {
	return &PriorityQueue[N]{
		isMaxHeap: false,
		items:     make([]PriorityQueueItem[N], 0, capacity),
	}
}

// NewMax initializes a new priority queue with maximum priority.
func NewMax[N distance.Number](capacity int) *PriorityQueue[N] {
	return &PriorityQueue[N]{
		isMaxHeap: true,
		items:     make([]PriorityQueueItem[N], 0, capacity),
	}
}

// Len returns the number of elements in the priority queue.
func (pq *PriorityQueue[N]) Len() int { return len(pq.items) }

// TopItem returns the top element of the heap.
func (pq *PriorityQueue[N]) TopItem() (PriorityQueueItem[N], bool) {
	if len(pq.items) == 0 {
		return PriorityQueueItem[N]{}, false
	}
	return pq.items[0], true
}

// PushItem inserts an item while maintaining the heap invariant.
func (pq *PriorityQueue[N]) PushItem(item PriorityQueueItem[N]) {
	pq.items = append(pq.items, item)
	pq.siftUp(len(pq.items) - 1)
}

// PopItem removes and returns the top element while maintaining the heap invariant.
func (pq *PriorityQueue[N]) PopItem() (PriorityQueueItem[N], bool) {
	n := len(pq.items)
	if n == 0 {
		return PriorityQueueItem[N]{}, false
	}
	root := pq.items[0]
	last := pq.items[n-1]
	pq.items = pq.items[:n-1]
	if n-1 > 0 {
		pq.items[0] = last
		pq.siftDown(0)
	}
	return root, true
}

// Reset clears the priority queue for reuse.
func (pq *PriorityQueue[N]) Reset() {
	pq.items = pq.items[:0]
}

func (pq *PriorityQueue[N]) less(i, j int) bool {
	if pq.isMaxHeap {
		return pq.items[i].Distance > pq.items[j].Distance
	}
	return pq.items[i].Distance < pq.items[j].Distance
}

func (pq *PriorityQueue[N]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !pq.less(i, p) {
			return
		}
		pq.items[i], pq.items[p] = pq.items[p], pq.items[i]
		i = p
	}
}

func (pq *PriorityQueue[N]) siftDown(i int) {
	n := len(pq.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		r := l + 1
		if r < n && pq.less(r, l) {
			best = r
		}
		if !pq.less(best, i) {
			return
		}
		pq.items[i], pq.items[best] = pq.items[best], pq.items[i]
		i = best
	}
}
