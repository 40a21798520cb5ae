package generation

// Point represents a 2D coordinate
type Point struct {
	X, Y int
}

// Add returns a new point offset by dx, dy
func (p Point) Add(dx, dy int) Point {
	return Point{p.X + dx, p.Y + dy}
}

// Adjacent returns the 4 cardinal neighbors
func (p Point) Adjacent() []Point {
	return []Point{
		{p.X, p.Y - 1}, // N
		{p.X + 1, p.Y}, // E
		{p.X, p.Y + 1}, // S
		{p.X - 1, p.Y}, // W
	}
}

// Manhattan returns the grid distance between two points
func (p Point) Manhattan(o Point) int {
	return manhattanDist(p, o)
}

// Bounds represents a rectangular region, inclusive on both ends
type Bounds struct {
	MinX, MinY, MaxX, MaxY int
}

// Contains checks if a point is within bounds
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Cell is the state of one occupancy grid square
type Cell int8

const (
	Unoccupied Cell = iota
	RoomFloor
	Corridor
)

func (c Cell) String() string {
	switch c {
	case RoomFloor:
		return "floor"
	case Corridor:
		return "corridor"
	}
	return "unoccupied"
}

// Walkable reports whether a cell can be crossed on foot
func (c Cell) Walkable() bool {
	return c == RoomFloor || c == Corridor
}

// Grid is the occupancy grid rooms and corridors are carved into
type Grid struct {
	Width, Height int
	Cells         [][]Cell
}

// NewGrid creates a new grid with every cell unoccupied
func NewGrid(width, height int) *Grid {
	cells := make([][]Cell, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]Cell, width)
	}
	return &Grid{Width: width, Height: height, Cells: cells}
}

// InBounds checks if a point is within the grid
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Set sets a cell at a position; out of bounds writes are ignored
func (g *Grid) Set(p Point, c Cell) {
	if g.InBounds(p) {
		g.Cells[p.Y][p.X] = c
	}
}

// Get returns the cell at a position, Unoccupied when out of bounds
func (g *Grid) Get(p Point) Cell {
	if g.InBounds(p) {
		return g.Cells[p.Y][p.X]
	}
	return Unoccupied
}

// IsWalkable checks if a position is room floor or corridor
func (g *Grid) IsWalkable(p Point) bool {
	return g.InBounds(p) && g.Cells[p.Y][p.X].Walkable()
}

// Count returns how many cells hold the given state
func (g *Grid) Count(c Cell) int {
	n := 0
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Cells[y][x] == c {
				n++
			}
		}
	}
	return n
}

// Shape selects the footprint of a spatial room
type Shape string

const (
	ShapeAny       Shape = ""
	ShapeRectangle Shape = "rectangle"
	ShapeCircle    Shape = "circle"
)

// Valid reports whether the shape is one the placer understands
func (s Shape) Valid() bool {
	return s == ShapeAny || s == ShapeRectangle || s == ShapeCircle
}

// Room is a placed spatial room. X, Y, Width and Height describe its bounding
// box; circles are recorded by the square that encloses them.
type Room struct {
	X, Y          int
	Width, Height int
	Shape         Shape
	Caption       string

	// Lair is the room-type layout attached to rooms carrying the lair label
	Lair *Lair

	radius int
}

// Center returns origin + (width/2, height/2)
func (r *Room) Center() Point {
	return Point{r.X + r.Width/2, r.Y + r.Height/2}
}

// Bounds returns the inclusive bounding box of the room
func (r *Room) Bounds() Bounds {
	return Bounds{r.X, r.Y, r.X + r.Width - 1, r.Y + r.Height - 1}
}

// Captioned reports whether the room carries a label
func (r *Room) Captioned() bool {
	return r.Caption != ""
}

// Cells returns the floor cells the room occupies
func (r *Room) Cells() []Point {
	cells := make([]Point, 0, r.Width*r.Height)
	if r.Shape == ShapeCircle {
		c := r.Center()
		for _, off := range circleOffsets(r.radius) {
			cells = append(cells, c.Add(off.X, off.Y))
		}
		return cells
	}
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			cells = append(cells, Point{x, y})
		}
	}
	return cells
}

// Cluster is an ordered group of rooms chained together by corridors
type Cluster []*Room

// First returns the first room of the cluster, or nil when empty
func (c Cluster) First() *Room {
	if len(c) == 0 {
		return nil
	}
	return c[0]
}

// Last returns the last room of the cluster, or nil when empty
func (c Cluster) Last() *Room {
	if len(c) == 0 {
		return nil
	}
	return c[len(c)-1]
}
