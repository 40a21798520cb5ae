package generation

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// Dungeon is the finished spatial map. The grid is read-only once returned.
type Dungeon struct {
	Seed       uint64
	Grid       *Grid
	Clusters   []Cluster
	Guaranteed []*Room
	Links      *Graph

	// UnusedLabels are guaranteed labels no placed room carried before backfill
	UnusedLabels []string
	Backfill     BackfillReport
}

// Rooms returns every placed room: cluster rooms in order, then guaranteed rooms
func (d *Dungeon) Rooms() []*Room {
	rooms := make([]*Room, 0)
	for _, c := range d.Clusters {
		rooms = append(rooms, c...)
	}
	return append(rooms, d.Guaranteed...)
}

// BackfillReport counts what the label backfill did
type BackfillReport struct {
	CaptionedBefore  int `json:"captioned_before" yaml:"captioned_before"`
	Reassigned       int `json:"reassigned" yaml:"reassigned"`               // unused guaranteed labels placed
	FallbackAssigned int `json:"fallback_assigned" yaml:"fallback_assigned"` // fallback pool labels placed
	CaptionedAfter   int `json:"captioned_after" yaml:"captioned_after"`
	StillUncaptioned int `json:"still_uncaptioned" yaml:"still_uncaptioned"`
}

// DungeonGenerator builds a dungeon from a configuration
type DungeonGenerator struct {
	config *DungeonConfig
	grid   *Grid
	graph  *Graph
	rng    *RNG

	clusters    []Cluster
	guaranteed  []*Room
	unused      []string
	uncaptioned []*Room
	report      BackfillReport
}

// NewDungeonGenerator creates a generator for the given config
func NewDungeonGenerator(config *DungeonConfig) *DungeonGenerator {
	return &DungeonGenerator{
		config:     config,
		rng:        NewRNG(config.Seed),
		clusters:   make([]Cluster, 0, len(config.Clusters)),
		guaranteed: make([]*Room, 0, len(config.Guaranteed)),
	}
}

// Generate produces the dungeon
func (dg *DungeonGenerator) Generate() (*Dungeon, error) {
	// 0. Reject bad configs before touching the grid
	if err := dg.config.Validate(); err != nil {
		return nil, err
	}

	// 1. Empty grid and link graph
	dg.grid = NewGrid(dg.config.Width, dg.config.Height)
	dg.graph = NewGraph()

	// 2. Guaranteed rooms claim their space first
	dg.placeGuaranteed()

	// 3. Build and chain each cluster
	for i, spec := range dg.config.Clusters {
		if err := dg.buildCluster(i, spec); err != nil {
			return nil, fmt.Errorf("building cluster %d: %w", i, err)
		}
	}

	// 4. Stitch clusters into one backbone
	if err := dg.stitchClusters(); err != nil {
		return nil, fmt.Errorf("stitching clusters: %w", err)
	}

	// 5. Hook guaranteed rooms onto their nearest clustered room
	if err := dg.connectGuaranteed(); err != nil {
		return nil, fmt.Errorf("connecting guaranteed rooms: %w", err)
	}

	// 6. Hand leftover labels to uncaptioned rooms
	dg.backfillLabels()

	// 7. Lay out lairs for rooms carrying the lair label
	if err := dg.attachLairs(); err != nil {
		return nil, fmt.Errorf("attaching lairs: %w", err)
	}

	d := dg.buildOutput()

	// 8. Every room center must be reachable from every other
	if err := validateConnectivity(d); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return d, nil
}

func (dg *DungeonGenerator) placeGuaranteed() {
	for i, spec := range dg.config.Guaranteed {
		room, ok := PlaceRoom(dg.grid, dg.rng, spec.Shape, dg.config.PlacementAttempts)
		if !ok {
			continue
		}
		room.Caption = spec.Label
		dg.guaranteed = append(dg.guaranteed, room)
		dg.graph.AddNode(&Node{
			ID:   fmt.Sprintf("guaranteed_%d", i),
			Type: NodeGuaranteed,
			Room: room,
		})
	}
}

func (dg *DungeonGenerator) buildCluster(index int, spec ClusterSpec) error {
	cluster := make(Cluster, 0, spec.Len())

	for i := 0; i < spec.Len(); i++ {
		room := dg.placeClusterRoom(spec.Shapes[i])
		if room == nil {
			// out of room on the grid; the cluster simply ends up shorter
			continue
		}

		if dg.rng.Float64() < spec.Chance(i) {
			room.Caption = spec.Labels[i]
		}

		dg.graph.AddNode(&Node{
			ID:   fmt.Sprintf("cluster_%d_room_%d", index, i),
			Type: NodeClustered,
			Room: room,
		})

		if prev := cluster.Last(); prev != nil {
			if err := dg.link(prev, room); err != nil {
				return err
			}
		}
		cluster = append(cluster, room)
	}

	dg.clusters = append(dg.clusters, cluster)
	return nil
}

func (dg *DungeonGenerator) placeClusterRoom(shape Shape) *Room {
	for attempt := 0; attempt < dg.config.ClusterAttempts; attempt++ {
		if room, ok := PlaceRoom(dg.grid, dg.rng, shape, dg.config.PlacementAttempts); ok {
			return room
		}
	}
	return nil
}

func (dg *DungeonGenerator) stitchClusters() error {
	var prev Cluster
	for _, c := range dg.clusters {
		if len(c) == 0 {
			continue
		}
		if prev != nil {
			if err := dg.link(prev.Last(), c.First()); err != nil {
				return err
			}
		}
		prev = c
	}
	return nil
}

func (dg *DungeonGenerator) connectGuaranteed() error {
	clustered := make([]*Room, 0)
	for _, c := range dg.clusters {
		clustered = append(clustered, c...)
	}

	for i, g := range dg.guaranteed {
		target := nearestRoom(g, clustered)
		if target == nil {
			// no cluster survived; keep the guaranteed rooms joined to each other
			if i == 0 {
				continue
			}
			target = dg.guaranteed[i-1]
		}
		if err := dg.link(g, target); err != nil {
			return err
		}
	}
	return nil
}

func (dg *DungeonGenerator) link(a, b *Room) error {
	path := Connect(dg.grid, a, b)
	return dg.graph.AddEdge(a, b, path)
}

// nearestRoom returns the room whose center is closest to src by squared
// Euclidean distance; the first one wins ties.
func nearestRoom(src *Room, rooms []*Room) *Room {
	var nearest *Room
	best := -1
	sc := src.Center()

	for _, r := range rooms {
		c := r.Center()
		dx, dy := sc.X-c.X, sc.Y-c.Y
		d := dx*dx + dy*dy
		if best < 0 || d < best {
			best = d
			nearest = r
		}
	}
	return nearest
}

func (dg *DungeonGenerator) backfillLabels() {
	carried := mapset.New[string]()
	for _, c := range dg.clusters {
		for _, r := range c {
			if r.Captioned() {
				carried.Put(r.Caption)
				dg.report.CaptionedBefore++
			} else {
				dg.uncaptioned = append(dg.uncaptioned, r)
			}
		}
	}
	for _, g := range dg.guaranteed {
		carried.Put(g.Caption)
		dg.report.CaptionedBefore++
	}

	dg.unused = make([]string, 0)
	for _, spec := range dg.config.Guaranteed {
		if !carried.Has(spec.Label) {
			carried.Put(spec.Label)
			dg.unused = append(dg.unused, spec.Label)
		}
	}

	// Guaranteed labels first: they must show up somewhere
	queue := dg.uncaptioned
	n := min(len(dg.unused), len(queue))
	for i := 0; i < n; i++ {
		queue[i].Caption = dg.unused[i]
	}
	dg.report.Reassigned = n
	queue = queue[n:]

	// Then the fallback pool, in order, one label per room
	m := min(len(dg.config.FallbackLabels), len(queue))
	for i := 0; i < m; i++ {
		queue[i].Caption = dg.config.FallbackLabels[i]
	}
	dg.report.FallbackAssigned = m

	dg.report.CaptionedAfter = dg.report.CaptionedBefore + n + m
	dg.report.StillUncaptioned = len(queue) - m
}

func (dg *DungeonGenerator) attachLairs() error {
	if dg.config.LairLabel == "" {
		return nil
	}

	lg := NewLairGenerator(dg.rng, dg.config.LairTypes)
	for _, c := range dg.clusters {
		for _, r := range c {
			if err := dg.attachLair(lg, r); err != nil {
				return err
			}
		}
	}
	for _, r := range dg.guaranteed {
		if err := dg.attachLair(lg, r); err != nil {
			return err
		}
	}
	return nil
}

func (dg *DungeonGenerator) attachLair(lg *LairGenerator, r *Room) error {
	if r.Caption != dg.config.LairLabel {
		return nil
	}
	lair, err := lg.Generate(dg.config.LairSize)
	if err != nil {
		return fmt.Errorf("room at (%d,%d): %w", r.X, r.Y, err)
	}
	r.Lair = lair
	return nil
}

func (dg *DungeonGenerator) buildOutput() *Dungeon {
	return &Dungeon{
		Seed:         dg.config.Seed,
		Grid:         dg.grid,
		Clusters:     dg.clusters,
		Guaranteed:   dg.guaranteed,
		Links:        dg.graph,
		UnusedLabels: dg.unused,
		Backfill:     dg.report,
	}
}

func validateConnectivity(d *Dungeon) error {
	rooms := d.Rooms()
	if len(rooms) == 0 {
		return nil
	}

	start, _ := d.Links.NodeID(rooms[0])
	if !d.Links.IsConnected(start) {
		return fmt.Errorf("rooms not linked to %s: %v", start, d.Links.FindUnreachable(start))
	}

	reachable := d.Grid.Reachable(rooms[0].Center())
	for _, r := range rooms[1:] {
		if !reachable.Has(r.Center()) {
			id, _ := d.Links.NodeID(r)
			return fmt.Errorf("room %s at (%d,%d) is not reachable on the grid", id, r.X, r.Y)
		}
	}
	return nil
}
