package generation

import "fmt"

// NodeType identifies what kind of room a node stands for
type NodeType int

const (
	NodeClustered  NodeType = iota // Room produced by a cluster spec
	NodeGuaranteed                 // Room produced by a guaranteed spec
)

// Node is a room in the connection graph
type Node struct {
	ID   string
	Type NodeType
	Room *Room
}

// Edge is a corridor between two rooms
type Edge struct {
	From, To string  // Node IDs
	Weight   int     // Manhattan distance between centers
	Path     []Point // Cells walked by the corridor
}

// Graph records which rooms were joined by corridors
type Graph struct {
	Nodes map[string]*Node
	Edges []*Edge

	// Adjacency list for quick lookups
	Adjacent map[string][]string

	ids map[*Room]string
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{
		Nodes:    make(map[string]*Node),
		Edges:    make([]*Edge, 0),
		Adjacent: make(map[string][]string),
		ids:      make(map[*Room]string),
	}
}

// AddNode adds a node to the graph
func (g *Graph) AddNode(n *Node) {
	g.Nodes[n.ID] = n
	if n.Room != nil {
		g.ids[n.Room] = n.ID
	}
	if g.Adjacent[n.ID] == nil {
		g.Adjacent[n.ID] = make([]string, 0)
	}
}

// NodeID returns the ID registered for a room
func (g *Graph) NodeID(r *Room) (string, bool) {
	id, ok := g.ids[r]
	return id, ok
}

// AddEdge adds an edge between two rooms already in the graph
func (g *Graph) AddEdge(a, b *Room, path []Point) error {
	fromID, ok := g.ids[a]
	if !ok {
		return fmt.Errorf("room at (%d,%d) not in graph", a.X, a.Y)
	}
	toID, ok := g.ids[b]
	if !ok {
		return fmt.Errorf("room at (%d,%d) not in graph", b.X, b.Y)
	}

	g.Edges = append(g.Edges, &Edge{
		From:   fromID,
		To:     toID,
		Weight: manhattanDist(a.Center(), b.Center()),
		Path:   path,
	})
	g.Adjacent[fromID] = append(g.Adjacent[fromID], toID)
	g.Adjacent[toID] = append(g.Adjacent[toID], fromID)

	return nil
}

// IsConnected checks if all nodes are reachable from a starting node using BFS
func (g *Graph) IsConnected(startID string) bool {
	if len(g.Nodes) == 0 {
		return true
	}
	return len(g.visit(startID)) == len(g.Nodes)
}

// FindUnreachable returns nodes not reachable from the start node
func (g *Graph) FindUnreachable(startID string) []string {
	visited := g.visit(startID)

	unreachable := make([]string, 0)
	for id := range g.Nodes {
		if !visited[id] {
			unreachable = append(unreachable, id)
		}
	}
	return unreachable
}

func (g *Graph) visit(startID string) map[string]bool {
	visited := make(map[string]bool)
	queue := []string{startID}
	visited[startID] = true

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, neighborID := range g.Adjacent[current] {
			if !visited[neighborID] {
				visited[neighborID] = true
				queue = append(queue, neighborID)
			}
		}
	}

	return visited
}
