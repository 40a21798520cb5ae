package generation

// RoomType is the semantic tag of a lair cell
type RoomType string

const (
	Unassigned   RoomType = ""
	ThroneRoom   RoomType = "Throne Room"
	Entrance     RoomType = "Entrance"
	Bathroom     RoomType = "Bathroom"
	SleepingArea RoomType = "Sleeping Area"
	TortureRoom  RoomType = "Torture Room"
	GuardRoom    RoomType = "Guard Room"
	TreasureRoom RoomType = "Treasure Room"
	Kitchen      RoomType = "Kitchen"
)

// MinLairSize is the smallest lair with a cell at distance 3 from the throne
const MinLairSize = 3

// RoomTypeSpec caps how many cells of a type a lair may hold
type RoomTypeSpec struct {
	Type RoomType `json:"type" yaml:"type"`
	Cap  int      `json:"cap" yaml:"cap"`
}

// DefaultRoomTypes returns the standard lair room types. Order matters: it is
// the candidate order the fill step chooses from.
func DefaultRoomTypes() []RoomTypeSpec {
	return []RoomTypeSpec{
		{ThroneRoom, 1},
		{Entrance, 1},
		{Bathroom, 1},
		{SleepingArea, 1},
		{TortureRoom, 1},
		{GuardRoom, 3},
		{TreasureRoom, 2},
		{Kitchen, 1},
	}
}

// Lair is a square grid where every cell carries one room type
type Lair struct {
	Size   int
	Cells  [][]RoomType
	Forced [][]bool // Guard Rooms assigned by the empty-candidate fallback
	Counts map[RoomType]int

	Throne       Point
	Entrances    []Point
	SleepingArea Point
	Bathroom     Point
}

// At returns the room type at a position
func (l *Lair) At(p Point) RoomType {
	if !l.inBounds(p) {
		return Unassigned
	}
	return l.Cells[p.Y][p.X]
}

// ForcedCount returns how many cells fell back to Guard Room
func (l *Lair) ForcedCount() int {
	n := 0
	for _, row := range l.Forced {
		for _, f := range row {
			if f {
				n++
			}
		}
	}
	return n
}

// NeighborHas reports whether any orthogonal neighbor of p holds one of types
func (l *Lair) NeighborHas(p Point, types ...RoomType) bool {
	for _, adj := range p.Adjacent() {
		t := l.At(adj)
		if t == Unassigned {
			continue
		}
		for _, want := range types {
			if t == want {
				return true
			}
		}
	}
	return false
}

func (l *Lair) inBounds(p Point) bool {
	return p.X >= 0 && p.X < l.Size && p.Y >= 0 && p.Y < l.Size
}

func (l *Lair) assign(p Point, t RoomType) {
	l.Cells[p.Y][p.X] = t
	l.Counts[t]++
}

// LairGenerator fills a lair grid under the narrative placement rules
type LairGenerator struct {
	rng   *RNG
	specs []RoomTypeSpec
	caps  map[RoomType]int
	lair  *Lair
}

// NewLairGenerator creates a generator drawing from rng. A nil specs slice
// uses DefaultRoomTypes.
func NewLairGenerator(rng *RNG, specs []RoomTypeSpec) *LairGenerator {
	if specs == nil {
		specs = DefaultRoomTypes()
	}
	caps := make(map[RoomType]int, len(specs))
	for _, s := range specs {
		caps[s.Type] = s.Cap
	}
	return &LairGenerator{rng: rng, specs: specs, caps: caps}
}

// Generate produces a fully assigned n×n lair
func (lg *LairGenerator) Generate(n int) (*Lair, error) {
	if n < 1 {
		return nil, infeasible("lair size %d must be positive", n)
	}

	// 1. Empty grid
	lg.initLair(n)

	// 2. Fixed anchors
	if err := lg.placeAnchors(); err != nil {
		return nil, err
	}

	// 3. Fill the rest row by row
	lg.fill()

	return lg.lair, nil
}

func (lg *LairGenerator) initLair(n int) {
	cells := make([][]RoomType, n)
	forced := make([][]bool, n)
	for y := 0; y < n; y++ {
		cells[y] = make([]RoomType, n)
		forced[y] = make([]bool, n)
	}
	lg.lair = &Lair{
		Size:   n,
		Cells:  cells,
		Forced: forced,
		Counts: make(map[RoomType]int),
	}
}

func (lg *LairGenerator) placeAnchors() error {
	l := lg.lair
	n := l.Size

	// Throne Room sits in the corner farthest from the origin
	l.Throne = Point{n - 1, n - 1}
	l.assign(l.Throne, ThroneRoom)

	// Entrance keeps its distance from the throne
	far := make([]Point, 0)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			p := Point{x, y}
			if p.Manhattan(l.Throne) >= 3 {
				far = append(far, p)
			}
		}
	}
	if len(far) == 0 {
		return infeasible("no lair cell is at distance >= 3 from the Throne Room in a %dx%d lair", n, n)
	}
	first := choose(lg.rng, far)
	l.assign(first, Entrance)
	l.Entrances = append(l.Entrances, first)

	// Sleeping Area directly above or left of the throne
	sleeping := lg.free([]Point{l.Throne.Add(0, -1), l.Throne.Add(-1, 0)})
	if len(sleeping) == 0 {
		return infeasible("no cell above or left of the Throne Room for the Sleeping Area")
	}
	l.SleepingArea = choose(lg.rng, sleeping)
	l.assign(l.SleepingArea, SleepingArea)

	// Bathroom next to the Sleeping Area
	bath := lg.free(l.SleepingArea.Adjacent())
	if len(bath) == 0 {
		return infeasible("no free cell next to the Sleeping Area for the Bathroom")
	}
	l.Bathroom = choose(lg.rng, bath)
	l.assign(l.Bathroom, Bathroom)

	// Second entrance somewhere on the perimeter. It is placed over the
	// type cap on purpose: lairs have a front and a back door.
	border := make([]Point, 0, 4*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if x == 0 || y == 0 || x == n-1 || y == n-1 {
				border = append(border, Point{x, y})
			}
		}
	}
	if border = lg.free(border); len(border) > 0 {
		second := choose(lg.rng, border)
		l.assign(second, Entrance)
		l.Entrances = append(l.Entrances, second)
	}

	return nil
}

// free keeps the in-bounds, still unassigned points
func (lg *LairGenerator) free(points []Point) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if lg.lair.inBounds(p) && lg.lair.At(p) == Unassigned {
			out = append(out, p)
		}
	}
	return out
}

func (lg *LairGenerator) fill() {
	l := lg.lair
	for y := 0; y < l.Size; y++ {
		for x := 0; x < l.Size; x++ {
			p := Point{x, y}
			if l.At(p) != Unassigned {
				continue
			}

			valid := lg.candidates(p)
			if len(valid) == 0 {
				l.assign(p, GuardRoom)
				l.Forced[y][x] = true
				continue
			}
			l.assign(p, choose(lg.rng, valid))
		}
	}
}

// candidates returns the types allowed at p, in RoomTypeSpec order
func (lg *LairGenerator) candidates(p Point) []RoomType {
	valid := make([]RoomType, 0, len(lg.specs))
	for _, s := range lg.specs {
		if lg.lair.Counts[s.Type] >= lg.caps[s.Type] {
			continue
		}
		if !lg.allowed(p, s.Type) {
			continue
		}
		valid = append(valid, s.Type)
	}
	return valid
}

func (lg *LairGenerator) allowed(p Point, t RoomType) bool {
	l := lg.lair
	switch t {
	case GuardRoom:
		return l.NeighborHas(p, Entrance, ThroneRoom)
	case Kitchen:
		return l.NeighborHas(p, SleepingArea) && !l.NeighborHas(p, Entrance)
	}
	return true
}
