package generation

import "strings"

// DungeonDefinition is the output - matches the JSON format
type DungeonDefinition struct {
	Seed         uint64         `json:"seed" yaml:"seed"`
	Width        int            `json:"width" yaml:"width"`
	Height       int            `json:"height" yaml:"height"`
	Tiles        []string       `json:"tiles" yaml:"tiles"`
	Clusters     [][]RoomDef    `json:"clusters" yaml:"clusters"`
	Guaranteed   []RoomDef      `json:"guaranteed" yaml:"guaranteed"`
	Links        []LinkDef      `json:"links" yaml:"links"`
	UnusedLabels []string       `json:"unused_labels" yaml:"unused_labels"`
	Backfill     BackfillReport `json:"backfill" yaml:"backfill"`
}

// LinkDef is one corridor between two rooms, named by node ID
type LinkDef struct {
	From   string `json:"from" yaml:"from"`
	To     string `json:"to" yaml:"to"`
	Length int    `json:"length" yaml:"length"`
}

// RoomDef matches the JSON room format
type RoomDef struct {
	X       int      `json:"x" yaml:"x"`
	Y       int      `json:"y" yaml:"y"`
	Width   int      `json:"width" yaml:"width"`
	Height  int      `json:"height" yaml:"height"`
	Shape   Shape    `json:"shape" yaml:"shape"`
	Caption string   `json:"caption,omitempty" yaml:"caption,omitempty"`
	Lair    *LairDef `json:"lair,omitempty" yaml:"lair,omitempty"`
}

// LairDef matches the JSON lair format
type LairDef struct {
	Size   int              `json:"size" yaml:"size"`
	Cells  [][]RoomType     `json:"cells" yaml:"cells"`
	Tiles  []string         `json:"tiles" yaml:"tiles"`
	Counts map[RoomType]int `json:"counts" yaml:"counts"`
	Forced int              `json:"forced_guard_rooms" yaml:"forced_guard_rooms"`
}

// Rows exports the grid as one glyph string per row
func (g *Grid) Rows(p *Palette) []string {
	rows := make([]string, g.Height)
	var sb strings.Builder
	for y := 0; y < g.Height; y++ {
		sb.Reset()
		for x := 0; x < g.Width; x++ {
			sb.WriteString(p.Glyph(g.Cells[y][x]))
		}
		rows[y] = sb.String()
	}
	return rows
}

// Rows exports the lair as one glyph string per row
func (l *Lair) Rows(p *Palette) []string {
	rows := make([]string, l.Size)
	var sb strings.Builder
	for y := 0; y < l.Size; y++ {
		sb.Reset()
		for x := 0; x < l.Size; x++ {
			sb.WriteString(p.Lair[l.Cells[y][x]])
		}
		rows[y] = sb.String()
	}
	return rows
}

// Definition converts the dungeon into its output format
func (d *Dungeon) Definition(p *Palette) *DungeonDefinition {
	clusters := make([][]RoomDef, len(d.Clusters))
	for i, c := range d.Clusters {
		clusters[i] = make([]RoomDef, len(c))
		for j, r := range c {
			clusters[i][j] = r.Definition(p)
		}
	}

	guaranteed := make([]RoomDef, len(d.Guaranteed))
	for i, r := range d.Guaranteed {
		guaranteed[i] = r.Definition(p)
	}

	links := make([]LinkDef, len(d.Links.Edges))
	for i, e := range d.Links.Edges {
		links[i] = LinkDef{From: e.From, To: e.To, Length: e.Weight}
	}

	return &DungeonDefinition{
		Seed:         d.Seed,
		Width:        d.Grid.Width,
		Height:       d.Grid.Height,
		Tiles:        d.Grid.Rows(p),
		Clusters:     clusters,
		Guaranteed:   guaranteed,
		Links:        links,
		UnusedLabels: d.UnusedLabels,
		Backfill:     d.Backfill,
	}
}

// Definition converts a room into its output format
func (r *Room) Definition(p *Palette) RoomDef {
	def := RoomDef{
		X:       r.X,
		Y:       r.Y,
		Width:   r.Width,
		Height:  r.Height,
		Shape:   r.Shape,
		Caption: r.Caption,
	}
	if r.Lair != nil {
		def.Lair = r.Lair.Definition(p)
	}
	return def
}

// Definition converts a lair into its output format
func (l *Lair) Definition(p *Palette) *LairDef {
	cells := make([][]RoomType, l.Size)
	for y := range l.Cells {
		cells[y] = append([]RoomType(nil), l.Cells[y]...)
	}
	counts := make(map[RoomType]int, len(l.Counts))
	for t, n := range l.Counts {
		counts[t] = n
	}
	return &LairDef{
		Size:   l.Size,
		Cells:  cells,
		Tiles:  l.Rows(p),
		Counts: counts,
		Forced: l.ForcedCount(),
	}
}
