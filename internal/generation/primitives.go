package generation

import (
	"github.com/zyedidia/generic/mapset"
)

// Rect fills a rectangular area with a cell state
func (g *Grid) Rect(b Bounds, c Cell) {
	for y := b.MinY; y <= b.MaxY; y++ {
		for x := b.MinX; x <= b.MaxX; x++ {
			g.Set(Point{x, y}, c)
		}
	}
}

// RectIs checks that every cell of a rectangle is in bounds and holds the given state
func (g *Grid) RectIs(b Bounds, c Cell) bool {
	for y := b.MinY; y <= b.MaxY; y++ {
		for x := b.MinX; x <= b.MaxX; x++ {
			p := Point{x, y}
			if !g.InBounds(p) || g.Get(p) != c {
				return false
			}
		}
	}
	return true
}

// Reachable returns every walkable cell connected to start by orthogonal steps
func (g *Grid) Reachable(start Point) mapset.Set[Point] {
	reachable := mapset.New[Point]()
	queue := []Point{start}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		if reachable.Has(p) || !g.IsWalkable(p) {
			continue
		}
		reachable.Put(p)

		for _, adj := range p.Adjacent() {
			if !reachable.Has(adj) {
				queue = append(queue, adj)
			}
		}
	}

	return reachable
}

// circleOffsets lists the (dx, dy) offsets with dx²+dy² ≤ r², row by row
func circleOffsets(r int) []Point {
	offsets := make([]Point, 0, (2*r+1)*(2*r+1))
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				offsets = append(offsets, Point{dx, dy})
			}
		}
	}
	return offsets
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func manhattanDist(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// ---- Seeded RNG ----

// RNG is a simple seeded random number generator (LCG)
type RNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed
func NewRNG(seed uint64) *RNG {
	return &RNG{state: seed}
}

// Uint64 returns a pseudo-random uint64
func (r *RNG) Uint64() uint64 {
	// LCG parameters from Numerical Recipes
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Float64 returns a pseudo-random float64 in [0, 1)
func (r *RNG) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

// Intn returns a pseudo-random int in [0, n)
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	// high bits; the low bits of an LCG cycle with a short period
	return int((r.Uint64() >> 33) % uint64(n))
}

// IntRange returns a pseudo-random int in [min, max]
func (r *RNG) IntRange(min, max int) int {
	if min >= max {
		return min
	}
	return min + r.Intn(max-min+1)
}

// choose returns a random element of a non-empty slice
func choose[T any](r *RNG, items []T) T {
	return items[r.Intn(len(items))]
}
