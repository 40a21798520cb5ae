package generation

// Palette defines the glyphs used when a grid is exported as text rows
type Palette struct {
	// Occupancy
	Empty    string
	Floor    string
	Corridor string

	// Lair room types
	Lair map[RoomType]string
}

// DefaultPalette returns the standard glyph palette
func DefaultPalette() *Palette {
	return &Palette{
		Empty:    "#",
		Floor:    ".",
		Corridor: "+",
		Lair: map[RoomType]string{
			ThroneRoom:   "T",
			Entrance:     "E",
			Bathroom:     "B",
			SleepingArea: "S",
			TortureRoom:  "X",
			GuardRoom:    "G",
			TreasureRoom: "$",
			Kitchen:      "K",
			Unassigned:   " ",
		},
	}
}

// Glyph returns the glyph of an occupancy cell
func (p *Palette) Glyph(c Cell) string {
	switch c {
	case RoomFloor:
		return p.Floor
	case Corridor:
		return p.Corridor
	}
	return p.Empty
}

// ClusterSpec describes one narrative group of rooms. Labels, Shapes and
// Chances are parallel; an empty Chances means every caption is kept.
type ClusterSpec struct {
	Labels  []string  `json:"labels" yaml:"labels"`
	Shapes  []Shape   `json:"shapes" yaml:"shapes"`
	Chances []float64 `json:"chances,omitempty" yaml:"chances,omitempty"`
}

// Len returns the number of rooms the cluster asks for
func (c ClusterSpec) Len() int {
	return len(c.Labels)
}

// Chance returns the caption probability of the i-th room
func (c ClusterSpec) Chance(i int) float64 {
	if len(c.Chances) == 0 {
		return 1.0
	}
	return c.Chances[i]
}

// GuaranteedSpec is a room whose label must appear in the finished map
type GuaranteedSpec struct {
	Label string `json:"label" yaml:"label"`
	Shape Shape  `json:"shape" yaml:"shape"`
}

// DungeonConfig holds everything the spatial generator consumes
type DungeonConfig struct {
	Seed uint64 `json:"seed" yaml:"seed"`

	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`

	Clusters       []ClusterSpec    `json:"clusters" yaml:"clusters"`
	Guaranteed     []GuaranteedSpec `json:"guaranteed" yaml:"guaranteed"`
	FallbackLabels []string         `json:"fallback_labels" yaml:"fallback_labels"`

	// Budgets: tries per placement call, and placement calls per cluster room
	PlacementAttempts int `json:"placement_attempts" yaml:"placement_attempts"`
	ClusterAttempts   int `json:"cluster_attempts" yaml:"cluster_attempts"`

	// Rooms captioned LairLabel get a LairSize×LairSize lair layout
	LairLabel string         `json:"lair_label,omitempty" yaml:"lair_label,omitempty"`
	LairSize  int            `json:"lair_size,omitempty" yaml:"lair_size,omitempty"`
	LairTypes []RoomTypeSpec `json:"lair_types,omitempty" yaml:"lair_types,omitempty"`
}

// Validate rejects malformed configurations before any placement work
func (c *DungeonConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return mismatch("grid must be at least 1x1, got %dx%d", c.Width, c.Height)
	}
	if c.PlacementAttempts <= 0 || c.ClusterAttempts <= 0 {
		return mismatch("attempt budgets must be positive")
	}

	for i, cl := range c.Clusters {
		if len(cl.Shapes) != len(cl.Labels) {
			return mismatch("cluster %d has %d labels but %d shapes", i, len(cl.Labels), len(cl.Shapes))
		}
		if len(cl.Chances) != 0 && len(cl.Chances) != len(cl.Labels) {
			return mismatch("cluster %d has %d labels but %d caption chances", i, len(cl.Labels), len(cl.Chances))
		}
		for _, s := range cl.Shapes {
			if !s.Valid() {
				return mismatch("cluster %d has unknown shape %q", i, s)
			}
		}
	}

	for i, g := range c.Guaranteed {
		if g.Label == "" {
			return mismatch("guaranteed room %d has no label", i)
		}
		if !g.Shape.Valid() {
			return mismatch("guaranteed room %d has unknown shape %q", i, g.Shape)
		}
	}

	if c.LairLabel != "" && c.LairSize < MinLairSize {
		return mismatch("lair size must be at least %d when a lair label is set, got %d", MinLairSize, c.LairSize)
	}

	return nil
}

// DefaultPreset returns the classic dungeon: five clusters on a 30×30 grid
// with a Boss and an Entrance that must appear somewhere.
func DefaultPreset() DungeonConfig {
	return DungeonConfig{
		Width:  30,
		Height: 30,
		Clusters: []ClusterSpec{
			{Labels: []string{"Treasure", "Puzzle"}, Shapes: []Shape{ShapeRectangle, ShapeRectangle}, Chances: []float64{0.6, 1.0}},
			{Labels: []string{"Treasure", "Strong Monsters"}, Shapes: []Shape{ShapeRectangle, ShapeCircle}, Chances: []float64{0.2, 0.6}},
			{Labels: []string{"Trap"}, Shapes: []Shape{ShapeRectangle}, Chances: []float64{0.7}},
			{Labels: []string{"Boss", "Treasure"}, Shapes: []Shape{ShapeRectangle, ShapeCircle}, Chances: []float64{0.8, 0.6}},
			{Labels: []string{"NPC"}, Shapes: []Shape{ShapeRectangle}, Chances: []float64{0.7}},
		},
		Guaranteed: []GuaranteedSpec{
			{Label: "Boss", Shape: ShapeCircle},
			{Label: "Entrance", Shape: ShapeRectangle},
		},
		FallbackLabels:    []string{"Monster", "Treasure", "Secret Boss"},
		PlacementAttempts: DefaultTries,
		ClusterAttempts:   DefaultTries,
		LairLabel:         "Boss",
		LairSize:          4,
	}
}
