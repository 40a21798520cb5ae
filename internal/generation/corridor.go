package generation

// Connect carves an orthogonal corridor from the center of a to the center of
// b, closing the x gap first and then the y gap. Room floor is left as it is;
// only unoccupied cells become corridor. The walked path is returned,
// endpoints included.
func Connect(g *Grid, a, b *Room) []Point {
	return carve(g, a.Center(), b.Center())
}

func carve(g *Grid, from, to Point) []Point {
	path := make([]Point, 0, manhattanDist(from, to)+1)
	p := from

	for {
		path = append(path, p)
		if g.Get(p) != RoomFloor {
			g.Set(p, Corridor)
		}
		if p == to {
			break
		}

		switch {
		case p.X < to.X:
			p.X++
		case p.X > to.X:
			p.X--
		case p.Y < to.Y:
			p.Y++
		default:
			p.Y--
		}
	}

	return path
}
