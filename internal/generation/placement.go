package generation

const (
	minRectSide  = 3
	maxRectSide  = 6
	minRadius    = 2
	maxRadius    = 4
	DefaultTries = 1000
)

// PlaceRoom carves a room of the given shape into the grid. ShapeAny picks
// rectangle or circle uniformly. Each attempt redraws size and position; when
// all attempts collide the result is nil, false and the grid is untouched.
func PlaceRoom(g *Grid, rng *RNG, shape Shape, attempts int) (*Room, bool) {
	if shape == ShapeAny {
		if rng.Intn(2) == 0 {
			shape = ShapeRectangle
		} else {
			shape = ShapeCircle
		}
	}

	for i := 0; i < attempts; i++ {
		var room *Room
		switch shape {
		case ShapeCircle:
			room = tryCircle(g, rng)
		default:
			room = tryRect(g, rng)
		}
		if room != nil {
			return room, true
		}
	}
	return nil, false
}

func tryRect(g *Grid, rng *RNG) *Room {
	w := rng.IntRange(minRectSide, maxRectSide)
	h := rng.IntRange(minRectSide, maxRectSide)
	if w > g.Width || h > g.Height {
		return nil
	}
	x := rng.IntRange(0, g.Width-w)
	y := rng.IntRange(0, g.Height-h)

	b := Bounds{x, y, x + w - 1, y + h - 1}
	if !g.RectIs(b, Unoccupied) {
		return nil
	}
	g.Rect(b, RoomFloor)

	return &Room{X: x, Y: y, Width: w, Height: h, Shape: ShapeRectangle}
}

func tryCircle(g *Grid, rng *RNG) *Room {
	r := rng.IntRange(minRadius, maxRadius)
	if 2*r+1 > g.Width || 2*r+1 > g.Height {
		return nil
	}
	center := Point{
		rng.IntRange(r, g.Width-r-1),
		rng.IntRange(r, g.Height-r-1),
	}

	offsets := circleOffsets(r)
	for _, off := range offsets {
		p := center.Add(off.X, off.Y)
		// a cell past the edge rejects the circle instead of clipping it
		if !g.InBounds(p) || g.Get(p) != Unoccupied {
			return nil
		}
	}
	for _, off := range offsets {
		g.Set(center.Add(off.X, off.Y), RoomFloor)
	}

	return &Room{
		X:      center.X - r,
		Y:      center.Y - r,
		Width:  2*r + 1,
		Height: 2*r + 1,
		Shape:  ShapeCircle,
		radius: r,
	}
}
