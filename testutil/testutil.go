package testutil

import (
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/kdtree/distance"
	"github.com/hupe1980/kdtree/internal/queue"
)

// SearchResult represents an exact search result.
type SearchResult[N distance.Number] struct {
	ID       int
	Distance N
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Int32Range returns a pseudo-random number in [lo, hi].
func (r *RNG) Int32Range(lo, hi int32) int32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.int32RangeLocked(lo, hi)
}

func (r *RNG) int32RangeLocked(lo, hi int32) int32 {
	return lo + int32(r.rand.Int63n(int64(hi)-int64(lo)+1))
}

// IntCoords generates num points with both coordinates uniform in [lo, hi].
func (r *RNG) IntCoords(num int, lo, hi int32) [][2]int32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	coords := make([][2]int32, num)
	for i := range coords {
		coords[i] = [2]int32{r.int32RangeLocked(lo, hi), r.int32RangeLocked(lo, hi)}
	}
	return coords
}

// IntCoords1D generates num points on the line y = 0 with x uniform in [lo, hi].
// Every point ties on the y axis, which stresses the duplicate handling of
// the builder on every other level.
func (r *RNG) IntCoords1D(num int, lo, hi int32) [][2]int32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	coords := make([][2]int32, num)
	for i := range coords {
		coords[i] = [2]int32{r.int32RangeLocked(lo, hi), 0}
	}
	return coords
}

// DuplicateIntCoords generates num points whose x coordinate is drawn from only
// distinct different values, with y uniform in [lo, hi].
func (r *RNG) DuplicateIntCoords(num, distinct int, lo, hi int32) [][2]int32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	xs := make([]int32, distinct)
	for i := range xs {
		xs[i] = r.int32RangeLocked(lo, hi)
	}
	coords := make([][2]int32, num)
	for i := range coords {
		coords[i] = [2]int32{xs[r.rand.Intn(distinct)], r.int32RangeLocked(lo, hi)}
	}
	return coords
}

// FloatCoords generates num points with both coordinates uniform in [lo, hi).
func (r *RNG) FloatCoords(num int, lo, hi float64) [][2]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := hi - lo
	coords := make([][2]float64, num)
	for i := range coords {
		coords[i] = [2]float64{lo + r.rand.Float64()*span, lo + r.rand.Float64()*span}
	}
	return coords
}

// LonLats generates num (longitude, latitude) pairs uniform in
// [-180, 180) x [-90, 90).
func (r *RNG) LonLats(num int) [][2]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	coords := make([][2]float64, num)
	for i := range coords {
		coords[i] = [2]float64{r.rand.Float64()*360 - 180, r.rand.Float64()*180 - 90}
	}
	return coords
}

// ExactNearest scans points linearly and returns the index and squared
// distance of the closest point within bound (inclusive).
func ExactNearest[N distance.Number](points []distance.Vector[N], dims int, q distance.Vector[N], bound N) (int, N, bool) {
	best := -1
	for i := range points {
		if d := distance.SquaredL2(&q, &points[i], dims); d <= bound {
			bound = d
			best = i
		}
	}
	return best, bound, best >= 0
}

// ExactTopK scans points linearly and returns up to k points within bound,
// closest first.
func ExactTopK[N distance.Number](points []distance.Vector[N], dims int, q distance.Vector[N], bound N, k int) []SearchResult[N] {
	pq := queue.NewMax[N](k + 1)
	for i := range points {
		d := distance.SquaredL2(&q, &points[i], dims)
		if d > bound {
			continue
		}
		pq.PushItem(queue.PriorityQueueItem[N]{Node: uint32(i), Distance: d})
		if pq.Len() > k {
			pq.PopItem()
		}
	}

	results := make([]SearchResult[N], pq.Len())
	for i := len(results) - 1; i >= 0; i-- {
		item, _ := pq.PopItem()
		results[i] = SearchResult[N]{ID: int(item.Node), Distance: item.Distance}
	}
	return results
}

// CountWithin returns how many points lie within bound of q.
func CountWithin[N distance.Number](points []distance.Vector[N], dims int, q distance.Vector[N], bound N) int {
	n := 0
	for i := range points {
		if distance.SquaredL2(&q, &points[i], dims) <= bound {
			n++
		}
	}
	return n
}

// Haversine returns the great-circle angle in radians between two
// longitude/latitude pairs given in degrees.
func Haversine(lon1, lat1, lon2, lat2 float64) float64 {
	const rad = math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Pow(math.Sin(dLon/2), 2)
	return 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
