package kdtree

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	gonumkd "gonum.org/v1/gonum/spatial/kdtree"

	"github.com/hupe1980/kdtree/distance"
	"github.com/hupe1980/kdtree/testutil"
)

func intPoints(coords [][2]int32) []Point[int32, int] {
	points := make([]Point[int32, int], len(coords))
	for i, c := range coords {
		points[i] = Point[int32, int]{X: c[0], Y: c[1], Value: i}
	}
	return points
}

func floatPoints(coords [][2]float64) []Point[float64, int] {
	points := make([]Point[float64, int], len(coords))
	for i, c := range coords {
		points[i] = Point[float64, int]{X: c[0], Y: c[1], Value: i}
	}
	return points
}

func intVectors(coords [][2]int32) []distance.Vector[int64] {
	vs := make([]distance.Vector[int64], len(coords))
	for i, c := range coords {
		vs[i] = distance.Vector[int64]{int64(c[0]), int64(c[1])}
	}
	return vs
}

func sqDist[C Coordinate, T any](p Point[C, T], x, y C) float64 {
	dx := float64(p.X) - float64(x)
	dy := float64(p.Y) - float64(y)
	return dx*dx + dy*dy
}

func TestIntTree(t *testing.T) {
	rng := testutil.NewRNG(4711)
	coords := rng.IntCoords(500, -50000, 50000)
	tree, err := NewIntTree(intPoints(coords))
	require.NoError(t, err)
	require.Equal(t, len(coords), tree.Len())

	t.Run("MatchesExactScan", func(t *testing.T) {
		vs := intVectors(coords)
		for _, qc := range rng.IntCoords(1000, -60000, 60000) {
			q := distance.Vector[int64]{int64(qc[0]), int64(qc[1])}
			for _, radius := range []int32{0, 1000, 10000, math.MaxInt32} {
				r := int64(radius)
				_, want, ok := testutil.ExactNearest(vs, 2, q, r*r)

				p, err := tree.Nearest(qc[0], qc[1], radius)
				require.NoError(t, err)
				if !ok {
					assert.Nil(t, p, "query %v radius %d", qc, radius)
					continue
				}
				require.NotNil(t, p, "query %v radius %d", qc, radius)
				assert.Equal(t, float64(want), sqDist(*p, qc[0], qc[1]))
			}
		}
	})

	t.Run("NearestKMatchesExactScan", func(t *testing.T) {
		vs := intVectors(coords)
		for _, qc := range rng.IntCoords(200, -60000, 60000) {
			q := distance.Vector[int64]{int64(qc[0]), int64(qc[1])}
			for _, k := range []int{1, 5, 32} {
				const radius = 20000
				want := testutil.ExactTopK(vs, 2, q, radius*radius, k)
				got, err := tree.NearestK(qc[0], qc[1], radius, k)
				require.NoError(t, err)
				require.Len(t, got, len(want), "query %v k %d", qc, k)
				assert.Equal(t, min(k, testutil.CountWithin(vs, 2, q, radius*radius)), len(got))
				for i := range got {
					assert.Equal(t, float64(want[i].Distance), sqDist(got[i], qc[0], qc[1]))
				}
			}
		}
	})

	t.Run("MatchesGonum", func(t *testing.T) {
		gps := make(gonumkd.Points, len(coords))
		for i, c := range coords {
			gps[i] = gonumkd.Point{float64(c[0]), float64(c[1])}
		}
		oracle := gonumkd.New(gps, false)

		for _, qc := range rng.IntCoords(500, -60000, 60000) {
			q := gonumkd.Point{float64(qc[0]), float64(qc[1])}
			_, want := oracle.Nearest(q)
			p, err := tree.Nearest(qc[0], qc[1], math.MaxInt32)
			require.NoError(t, err)
			require.NotNil(t, p)
			assert.Equal(t, want, sqDist(*p, qc[0], qc[1]))

			keeper := gonumkd.NewNKeeper(10)
			oracle.NearestSet(keeper, q)
			var wantK []float64
			for _, cd := range keeper.Heap {
				if cd.Comparable != nil {
					wantK = append(wantK, cd.Dist)
				}
			}
			slices.Sort(wantK)

			ps, err := tree.NearestK(qc[0], qc[1], math.MaxInt32, 10)
			require.NoError(t, err)
			gotK := make([]float64, len(ps))
			for i, p := range ps {
				gotK[i] = sqDist(p, qc[0], qc[1])
			}
			assert.Equal(t, wantK, gotK)
		}
	})

	t.Run("SelfLookup", func(t *testing.T) {
		for _, c := range coords {
			p, err := tree.Nearest(c[0], c[1], 0)
			require.NoError(t, err)
			require.NotNil(t, p)
			assert.Equal(t, c[0], p.X)
			assert.Equal(t, c[1], p.Y)
		}
	})

	t.Run("KOrdering", func(t *testing.T) {
		ps, err := tree.NearestK(0, 0, 30000, 50)
		require.NoError(t, err)
		require.NotEmpty(t, ps)
		assert.True(t, slices.IsSortedFunc(ps, func(a, b Point[int32, int]) int {
			da, db := sqDist(a, 0, 0), sqDist(b, 0, 0)
			switch {
			case da < db:
				return -1
			case da > db:
				return 1
			}
			return 0
		}))
	})

	t.Run("KLargerThanTree", func(t *testing.T) {
		ps, err := tree.NearestK(0, 0, math.MaxInt32, 10*len(coords))
		require.NoError(t, err)
		assert.Len(t, ps, len(coords))
	})

	t.Run("Walk", func(t *testing.T) {
		seen := 0
		maxDepth := 0
		tree.Walk(func(p Point[int32, int], depth, axis int) bool {
			seen++
			maxDepth = max(maxDepth, depth)
			assert.Equal(t, depth%2, axis)
			return true
		})
		assert.Equal(t, tree.Len(), seen)
		assert.Equal(t, tree.Depth(), maxDepth+1)
	})
}

func TestIntTreeEdgeCases(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		tree, err := NewIntTree[string](nil)
		require.NoError(t, err)
		assert.Equal(t, 0, tree.Len())
		assert.Equal(t, 0, tree.Depth())

		p, err := tree.Nearest(0, 0, 100)
		require.NoError(t, err)
		assert.Nil(t, p)

		ps, err := tree.NearestK(0, 0, 100, 3)
		require.NoError(t, err)
		assert.NotNil(t, ps)
		assert.Empty(t, ps)
	})

	t.Run("RadiusInclusive", func(t *testing.T) {
		tree, err := NewIntTree([]Point[int32, string]{{X: 3, Y: 4, Value: "a"}})
		require.NoError(t, err)

		p, err := tree.Nearest(0, 0, 5)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "a", p.Value)

		p, err = tree.Nearest(0, 0, 4)
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("NegativeRadius", func(t *testing.T) {
		tree, err := NewIntTree([]Point[int32, string]{{X: 0, Y: 0, Value: "a"}})
		require.NoError(t, err)

		p, err := tree.Nearest(0, 0, -1)
		require.NoError(t, err)
		assert.Nil(t, p)

		ps, err := tree.NearestK(0, 0, -1, 1)
		require.NoError(t, err)
		assert.NotNil(t, ps)
		assert.Empty(t, ps)
	})

	t.Run("InvalidK", func(t *testing.T) {
		tree, err := NewIntTree([]Point[int32, string]{{X: 0, Y: 0}})
		require.NoError(t, err)
		for _, k := range []int{0, -3} {
			_, err := tree.NearestK(0, 0, 10, k)
			assert.ErrorIs(t, err, ErrInvalidK)
		}
	})

	t.Run("CoordinateOutOfRange", func(t *testing.T) {
		_, err := NewIntTree([]Point[int32, string]{{X: 0, Y: 0}, {X: MaxIntCoordinate + 1, Y: 0}})
		require.ErrorIs(t, err, ErrCoordinateOutOfRange)

		var ce *CoordinateError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, float64(MaxIntCoordinate+1), ce.X)
		assert.Equal(t, float64(MaxIntCoordinate), ce.Area.MaxX)

		_, err = NewIntTree([]Point[int32, string]{{X: 0, Y: math.MinInt32}})
		assert.ErrorIs(t, err, ErrCoordinateOutOfRange)

		tree, err := NewIntTree([]Point[int32, string]{{X: 0, Y: 0}})
		require.NoError(t, err)
		_, err = tree.Nearest(math.MaxInt32, 0, 1)
		assert.ErrorIs(t, err, ErrCoordinateOutOfRange)
		_, err = tree.NearestK(0, -MaxIntCoordinate-1, 1, 1)
		assert.ErrorIs(t, err, ErrCoordinateOutOfRange)
	})

	t.Run("CeilingDoesNotOverflow", func(t *testing.T) {
		tree, err := NewIntTree([]Point[int32, string]{
			{X: -MaxIntCoordinate, Y: -MaxIntCoordinate, Value: "sw"},
			{X: MaxIntCoordinate, Y: MaxIntCoordinate, Value: "ne"},
		})
		require.NoError(t, err)

		p, err := tree.Nearest(-MaxIntCoordinate, -MaxIntCoordinate, math.MaxInt32)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "sw", p.Value)

		p, err = tree.Nearest(MaxIntCoordinate, MaxIntCoordinate-1, math.MaxInt32)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "ne", p.Value)

		ps, err := tree.NearestK(MaxIntCoordinate, -MaxIntCoordinate, math.MaxInt32, 2)
		require.NoError(t, err)
		assert.Len(t, ps, 2)
	})

	t.Run("DuplicateHeavy", func(t *testing.T) {
		rng := testutil.NewRNG(7)
		coords := rng.DuplicateIntCoords(400, 5, 0, 100)
		tree, err := NewIntTree(intPoints(coords))
		require.NoError(t, err)

		vs := intVectors(coords)
		for _, c := range coords[:20] {
			q := distance.Vector[int64]{int64(c[0]), int64(c[1])}
			ps, err := tree.NearestK(c[0], c[1], 0, len(coords))
			require.NoError(t, err)
			assert.Len(t, ps, testutil.CountWithin(vs, 2, q, 0))
		}
	})

	t.Run("InputNotReordered", func(t *testing.T) {
		points := intPoints(testutil.NewRNG(3).IntCoords(100, 0, 1000))
		before := slices.Clone(points)
		_, err := NewIntTree(points)
		require.NoError(t, err)
		assert.Equal(t, before, points)
	})
}

func TestFloatTree(t *testing.T) {
	rng := testutil.NewRNG(99)
	coords := rng.FloatCoords(400, -1000, 1000)
	tree, err := NewFloatTree(floatPoints(coords))
	require.NoError(t, err)

	vs := make([]distance.Vector[float64], len(coords))
	for i, c := range coords {
		vs[i] = distance.Vector[float64]{c[0], c[1]}
	}

	t.Run("MatchesExactScan", func(t *testing.T) {
		for _, qc := range rng.FloatCoords(1000, -1200, 1200) {
			q := distance.Vector[float64]{qc[0], qc[1]}
			_, want, ok := testutil.ExactNearest(vs, 2, q, 100*100)
			p, err := tree.Nearest(qc[0], qc[1], 100)
			require.NoError(t, err)
			if !ok {
				assert.Nil(t, p)
				continue
			}
			require.NotNil(t, p)
			assert.Equal(t, want, distance.SquaredL2(&q, &vs[p.Value], 2))

			top := testutil.ExactTopK(vs, 2, q, math.Inf(1), 7)
			ps, err := tree.NearestK(qc[0], qc[1], math.Inf(1), 7)
			require.NoError(t, err)
			require.Len(t, ps, len(top))
			for i := range ps {
				assert.Equal(t, top[i].Distance, distance.SquaredL2(&q, &vs[ps[i].Value], 2))
			}
		}
	})

	t.Run("NaNRadiusMatchesNothing", func(t *testing.T) {
		p, err := tree.Nearest(0, 0, math.NaN())
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("RejectsNonFinite", func(t *testing.T) {
		for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 2 * MaxFloatCoordinate} {
			_, err := NewFloatTree([]Point[float64, int]{{X: bad, Y: 0}})
			assert.ErrorIs(t, err, ErrCoordinateOutOfRange, "x=%v", bad)

			_, err = tree.Nearest(0, bad, 1)
			assert.ErrorIs(t, err, ErrCoordinateOutOfRange, "y=%v", bad)
		}
	})

	t.Run("CeilingDoesNotOverflow", func(t *testing.T) {
		m := MaxFloatCoordinate
		corner, err := NewFloatTree([]Point[float64, string]{
			{X: -m, Y: -m, Value: "sw"},
			{X: m, Y: m, Value: "ne"},
		})
		require.NoError(t, err)

		p, err := corner.Nearest(m, -m, math.Inf(1))
		require.NoError(t, err)
		require.NotNil(t, p)

		ps, err := corner.NearestK(-m, -m, math.Inf(1), 2)
		require.NoError(t, err)
		require.Len(t, ps, 2)
		assert.Equal(t, "sw", ps[0].Value)
		assert.Equal(t, "ne", ps[1].Value)
	})
}

func TestConcurrentQueries(t *testing.T) {
	rng := testutil.NewRNG(2024)
	tree, err := NewIntTree(intPoints(rng.IntCoords(2000, 0, 100000)))
	require.NoError(t, err)

	queries := rng.IntCoords(500, 0, 100000)
	want := make([][]Point[int32, int], len(queries))
	for i, q := range queries {
		want[i], err = tree.NearestK(q[0], q[1], 5000, 8)
		require.NoError(t, err)
	}

	var g errgroup.Group
	for w := 0; w < 8; w++ {
		g.Go(func() error {
			for i, q := range queries {
				got, err := tree.NearestK(q[0], q[1], 5000, 8)
				if err != nil {
					return err
				}
				if !slices.Equal(want[i], got) {
					return errors.New("concurrent query diverged")
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
