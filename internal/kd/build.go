package kd

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/hupe1980/kdtree/distance"
	"github.com/hupe1980/kdtree/internal/conv"
)

// Build partitions items into a balanced tree. items is reordered in place.
//
// Each level stably sorts its slice by the level's axis, so construction is
// O(n log^2 n) and deterministic for a given input order.
func Build[N distance.Number, P any](items []Item[N, P], dims int) (*Tree[N, P], error) {
	if dims < 1 || dims > distance.MaxDims {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDimensions, dims)
	}
	if _, err := conv.IntToInt32(len(items)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTooManyPoints, err)
	}

	b := &builder[N, P]{
		tree: &Tree[N, P]{
			nodes: make([]node[N, P], 0, len(items)),
			dims:  dims,
		},
	}
	b.partition(items, 0, 0)
	return b.tree, nil
}

type builder[N distance.Number, P any] struct {
	tree *Tree[N, P]
}

func (b *builder[N, P]) partition(items []Item[N, P], axis, depth int) int32 {
	if len(items) == 0 {
		return none
	}
	if depth+1 > b.tree.depth {
		b.tree.depth = depth + 1
	}

	slices.SortStableFunc(items, func(x, y Item[N, P]) int {
		return cmp.Compare(x.Coords[axis], y.Coords[axis])
	})

	pivot := len(items) >> 1
	if len(items)&1 == 0 {
		// Alternate between the lower and upper median of even slices so
		// repeated even splits on alternating axes stay balanced.
		pivot -= depth & 1
	}
	// Everything tying the pivot on this axis belongs to the bigger branch.
	value := items[pivot].Coords[axis]
	for pivot > 0 && items[pivot-1].Coords[axis] == value {
		pivot--
	}

	idx := int32(len(b.tree.nodes))
	b.tree.nodes = append(b.tree.nodes, node[N, P]{
		coords:  items[pivot].Coords,
		point:   items[pivot].Point,
		smaller: none,
		bigger:  none,
	})

	next := axis + 1
	if next == b.tree.dims {
		next = 0
	}
	smaller := b.partition(items[:pivot], next, depth+1)
	bigger := b.partition(items[pivot+1:], next, depth+1)

	nd := &b.tree.nodes[idx]
	nd.smaller = smaller
	nd.bigger = bigger
	return idx
}
