package generation

import (
	"errors"
	"reflect"
	"testing"
)

func plainConfig(seed uint64) *DungeonConfig {
	return &DungeonConfig{
		Seed:              seed,
		Width:             30,
		Height:            30,
		PlacementAttempts: DefaultTries,
		ClusterAttempts:   10,
	}
}

func assertNoOverlap(t *testing.T, d *Dungeon) {
	t.Helper()
	owner := make(map[Point]*Room)
	for _, r := range d.Rooms() {
		for _, p := range r.Cells() {
			if other, taken := owner[p]; taken {
				t.Fatalf("rooms at (%d,%d) and (%d,%d) share cell %v", r.X, r.Y, other.X, other.Y, p)
			}
			owner[p] = r
			if !d.Grid.InBounds(p) {
				t.Fatalf("room at (%d,%d) leaves the grid at %v", r.X, r.Y, p)
			}
		}
	}
}

func assertConnected(t *testing.T, d *Dungeon) {
	t.Helper()
	rooms := d.Rooms()
	if len(rooms) == 0 {
		return
	}
	for _, from := range rooms {
		reachable := d.Grid.Reachable(from.Center())
		for _, to := range rooms {
			if !reachable.Has(to.Center()) {
				t.Fatalf("room center %v cannot reach %v", from.Center(), to.Center())
			}
		}
	}
}

func TestTwoRoomCluster(t *testing.T) {
	cfg := plainConfig(5)
	cfg.Clusters = []ClusterSpec{{
		Labels:  []string{"Treasure", "Puzzle"},
		Shapes:  []Shape{ShapeRectangle, ShapeRectangle},
		Chances: []float64{1.0, 1.0},
	}}

	d, err := NewDungeonGenerator(cfg).Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Clusters) != 1 || len(d.Clusters[0]) != 2 {
		t.Fatalf("expected one cluster of 2 rooms, got %v", d.Clusters)
	}
	if d.Clusters[0][0].Caption != "Treasure" || d.Clusters[0][1].Caption != "Puzzle" {
		t.Errorf("expected captions Treasure, Puzzle; got %q, %q", d.Clusters[0][0].Caption, d.Clusters[0][1].Caption)
	}
	if len(d.Links.Edges) != 1 {
		t.Errorf("expected exactly one corridor, got %d", len(d.Links.Edges))
	}

	assertNoOverlap(t, d)
	assertConnected(t, d)

	for _, p := range d.Links.Edges[0].Path {
		if !d.Grid.IsWalkable(p) {
			t.Errorf("corridor gap at %v", p)
		}
	}
}

func TestDefaultPresetInvariants(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		cfg := DefaultPreset()
		cfg.Seed = seed
		cfg.ClusterAttempts = 20

		d, err := NewDungeonGenerator(&cfg).Generate()
		if err != nil {
			t.Fatalf("seed %d: unexpected error: %v", seed, err)
		}

		assertNoOverlap(t, d)
		assertConnected(t, d)

		for _, r := range d.Rooms() {
			if r.Caption == "Boss" {
				if r.Lair == nil || r.Lair.Size != 4 {
					t.Errorf("seed %d: Boss room at (%d,%d) has no 4x4 lair", seed, r.X, r.Y)
				}
			} else if r.Lair != nil {
				t.Errorf("seed %d: %q room got a lair", seed, r.Caption)
			}
		}
	}
}

func TestLabelConservation(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		cfg := DefaultPreset()
		cfg.Seed = seed
		cfg.ClusterAttempts = 20

		d, err := NewDungeonGenerator(&cfg).Generate()
		if err != nil {
			t.Fatalf("seed %d: unexpected error: %v", seed, err)
		}

		captioned := 0
		total := 0
		for _, r := range d.Rooms() {
			total++
			if r.Captioned() {
				captioned++
			}
		}

		b := d.Backfill
		uncaptionedBefore := total - b.CaptionedBefore
		if want := min(len(d.UnusedLabels), uncaptionedBefore); b.Reassigned != want {
			t.Errorf("seed %d: reassigned %d, expected min(%d unused, %d uncaptioned)", seed, b.Reassigned, len(d.UnusedLabels), uncaptionedBefore)
		}
		left := uncaptionedBefore - b.Reassigned
		if want := min(len(cfg.FallbackLabels), left); b.FallbackAssigned != want {
			t.Errorf("seed %d: fallback assigned %d, expected %d", seed, b.FallbackAssigned, want)
		}
		if captioned != b.CaptionedAfter || captioned != b.CaptionedBefore+b.Reassigned+b.FallbackAssigned {
			t.Errorf("seed %d: %d captioned rooms, report says %+v", seed, captioned, b)
		}
		if total-captioned != b.StillUncaptioned {
			t.Errorf("seed %d: %d uncaptioned rooms, report says %d", seed, total-captioned, b.StillUncaptioned)
		}
	}
}

func TestUnusedGuaranteedLabelReassigned(t *testing.T) {
	cfg := &DungeonConfig{
		Seed:   3,
		Width:  4,
		Height: 4,
		Clusters: []ClusterSpec{{
			Labels:  []string{"Trap", "Trap"},
			Shapes:  []Shape{ShapeRectangle, ShapeRectangle},
			Chances: []float64{0, 0},
		}},
		// circles need 5x5, so the Boss can never be placed here
		Guaranteed:        []GuaranteedSpec{{Label: "Boss", Shape: ShapeCircle}},
		FallbackLabels:    []string{"Monster"},
		PlacementAttempts: 10,
		ClusterAttempts:   10,
		LairLabel:         "Boss",
		LairSize:          4,
	}

	d, err := NewDungeonGenerator(cfg).Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Guaranteed) != 0 {
		t.Fatalf("expected the Boss circle to fail on a 4x4 grid")
	}
	if !reflect.DeepEqual(d.UnusedLabels, []string{"Boss"}) {
		t.Fatalf("expected Boss to be unused, got %v", d.UnusedLabels)
	}
	if len(d.Clusters[0]) != 1 {
		t.Fatalf("expected exactly one 3x3-ish room to fit, got %d", len(d.Clusters[0]))
	}

	room := d.Clusters[0][0]
	if room.Caption != "Boss" {
		t.Errorf("expected the uncaptioned room to inherit Boss, got %q", room.Caption)
	}
	if room.Lair == nil {
		t.Errorf("expected the reassigned Boss room to get a lair")
	}
	if d.Backfill.Reassigned != 1 || d.Backfill.FallbackAssigned != 0 {
		t.Errorf("unexpected backfill report %+v", d.Backfill)
	}
}

func TestFallbackPoolExhausted(t *testing.T) {
	cfg := plainConfig(8)
	cfg.Clusters = []ClusterSpec{{
		Labels:  []string{"A", "B", "C"},
		Shapes:  []Shape{ShapeRectangle, ShapeRectangle, ShapeRectangle},
		Chances: []float64{0, 0, 0},
	}}
	cfg.FallbackLabels = []string{"Monster"}

	d, err := NewDungeonGenerator(cfg).Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := d.Clusters[0]
	if len(c) != 3 {
		t.Fatalf("expected 3 rooms, got %d", len(c))
	}
	if c[0].Caption != "Monster" || c[1].Captioned() || c[2].Captioned() {
		t.Errorf("expected only the first room to get Monster, got %q %q %q", c[0].Caption, c[1].Caption, c[2].Caption)
	}
	if d.Backfill.StillUncaptioned != 2 {
		t.Errorf("expected 2 rooms left uncaptioned, got %d", d.Backfill.StillUncaptioned)
	}
}

func TestGuaranteedConnectToNearest(t *testing.T) {
	cfg := plainConfig(21)
	cfg.Clusters = []ClusterSpec{
		{Labels: []string{"A", "B"}, Shapes: []Shape{ShapeRectangle, ShapeCircle}},
		{Labels: []string{"C"}, Shapes: []Shape{ShapeAny}},
	}
	cfg.Guaranteed = []GuaranteedSpec{{Label: "Entrance", Shape: ShapeRectangle}}

	d, err := NewDungeonGenerator(cfg).Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Guaranteed) != 1 {
		t.Fatalf("expected the Entrance to be placed")
	}

	g := d.Guaranteed[0]
	gid, _ := d.Links.NodeID(g)
	neighbors := d.Links.Adjacent[gid]
	if len(neighbors) != 1 {
		t.Fatalf("expected one link from the guaranteed room, got %v", neighbors)
	}
	linked := d.Links.Nodes[neighbors[0]].Room

	clustered := make([]*Room, 0)
	for _, c := range d.Clusters {
		clustered = append(clustered, c...)
	}
	if want := nearestRoom(g, clustered); linked != want {
		t.Errorf("guaranteed room linked to (%d,%d), nearest is (%d,%d)", linked.X, linked.Y, want.X, want.Y)
	}
	assertConnected(t, d)
}

func TestGuaranteedOnly(t *testing.T) {
	cfg := plainConfig(4)
	cfg.Guaranteed = []GuaranteedSpec{
		{Label: "Boss", Shape: ShapeCircle},
		{Label: "Entrance", Shape: ShapeRectangle},
		{Label: "Vault", Shape: ShapeAny},
	}

	d, err := NewDungeonGenerator(cfg).Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Guaranteed) != 3 {
		t.Fatalf("expected 3 guaranteed rooms, got %d", len(d.Guaranteed))
	}
	if len(d.UnusedLabels) != 0 {
		t.Errorf("expected no unused labels, got %v", d.UnusedLabels)
	}
	assertConnected(t, d)
}

func TestNearestRoomTieBreak(t *testing.T) {
	src := &Room{X: 9, Y: 9, Width: 3, Height: 3}    // center (10,10)
	left := &Room{X: 4, Y: 9, Width: 3, Height: 3}   // center (5,10)
	right := &Room{X: 14, Y: 9, Width: 3, Height: 3} // center (15,10)
	far := &Room{X: 25, Y: 25, Width: 3, Height: 3}  // center (26,26)

	if got := nearestRoom(src, []*Room{far, left, right}); got != left {
		t.Errorf("expected the first of two equidistant rooms")
	}
	if got := nearestRoom(src, []*Room{far, right, left}); got != right {
		t.Errorf("expected the first of two equidistant rooms")
	}
	if got := nearestRoom(src, nil); got != nil {
		t.Errorf("expected nil for no candidates")
	}
}

func TestConfigurationMismatch(t *testing.T) {
	cases := map[string]ClusterSpec{
		"shapes":  {Labels: []string{"A", "B"}, Shapes: []Shape{ShapeRectangle}},
		"chances": {Labels: []string{"A"}, Shapes: []Shape{ShapeRectangle}, Chances: []float64{0.5, 0.5}},
		"shape":   {Labels: []string{"A"}, Shapes: []Shape{"triangle"}},
	}
	for name, spec := range cases {
		cfg := plainConfig(1)
		cfg.Clusters = []ClusterSpec{spec}
		gen := NewDungeonGenerator(cfg)
		_, err := gen.Generate()
		if !errors.Is(err, ErrConfigurationMismatch) {
			t.Errorf("%s: expected ErrConfigurationMismatch, got %v", name, err)
		}
		if gen.grid != nil {
			t.Errorf("%s: grid built before the config was rejected", name)
		}
	}
}

func TestLairSizeRejectedUpFront(t *testing.T) {
	for _, size := range []int{0, 1, 2} {
		cfg := DefaultPreset()
		cfg.LairSize = size
		gen := NewDungeonGenerator(&cfg)
		_, err := gen.Generate()
		if !errors.Is(err, ErrConfigurationMismatch) {
			t.Errorf("size %d: expected ErrConfigurationMismatch, got %v", size, err)
		}
		if gen.grid != nil {
			t.Errorf("size %d: grid built before the config was rejected", size)
		}
	}

	cfg := DefaultPreset()
	cfg.LairSize = MinLairSize
	if err := cfg.Validate(); err != nil {
		t.Errorf("size %d should be accepted, got %v", MinLairSize, err)
	}
}

func TestDungeonDeterministic(t *testing.T) {
	p := DefaultPalette()
	run := func() *DungeonDefinition {
		cfg := DefaultPreset()
		cfg.Seed = 1234
		cfg.ClusterAttempts = 20
		d, err := NewDungeonGenerator(&cfg).Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return d.Definition(p)
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed produced different dungeons")
	}

	cfg := DefaultPreset()
	cfg.Seed = 4321
	cfg.ClusterAttempts = 20
	other, err := NewDungeonGenerator(&cfg).Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reflect.DeepEqual(a.Tiles, other.Definition(p).Tiles) {
		t.Errorf("different seeds produced identical grids")
	}
}

func TestDefinitionRows(t *testing.T) {
	cfg := plainConfig(2)
	cfg.Clusters = []ClusterSpec{{Labels: []string{"A", "B"}, Shapes: []Shape{ShapeRectangle, ShapeRectangle}}}
	d, err := NewDungeonGenerator(cfg).Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	def := d.Definition(DefaultPalette())
	if len(def.Tiles) != 30 {
		t.Fatalf("expected 30 rows, got %d", len(def.Tiles))
	}
	floor := 0
	for _, row := range def.Tiles {
		if len(row) != 30 {
			t.Fatalf("expected rows of 30 glyphs, got %d", len(row))
		}
		for _, ch := range row {
			if ch == '.' {
				floor++
			}
		}
	}
	if floor != d.Grid.Count(RoomFloor) {
		t.Errorf("expected %d floor glyphs, got %d", d.Grid.Count(RoomFloor), floor)
	}

	if len(def.Links) != len(d.Links.Edges) || len(def.Links) == 0 {
		t.Fatalf("expected %d links, got %d", len(d.Links.Edges), len(def.Links))
	}
	for i, link := range def.Links {
		from, to := d.Links.Nodes[link.From], d.Links.Nodes[link.To]
		if from == nil || to == nil {
			t.Fatalf("link %d names unknown rooms %s -> %s", i, link.From, link.To)
		}
		if want := from.Room.Center().Manhattan(to.Room.Center()); link.Length != want {
			t.Errorf("link %s -> %s: expected length %d, got %d", link.From, link.To, want, link.Length)
		}
		// the carved path walks every step between the two centers
		if got := len(d.Links.Edges[i].Path); got != link.Length+1 {
			t.Errorf("link %s -> %s: expected %d path cells, got %d", link.From, link.To, link.Length+1, got)
		}
	}
}
