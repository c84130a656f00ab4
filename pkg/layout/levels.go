package layout

import (
	"sort"

	"github.com/matcluck/drawgen/pkg/descriptor"
)

// =============================================================================
// Level Assignment - Dependency Levels Over a (Possibly Cyclic) Edge Graph
// =============================================================================

// levelGraph assigns a dependency level to every node of an arbitrary edge
// graph, including cyclic ones.
//
// The assignment runs in two phases. Phase 1 is a breadth-first traversal
// from the root set (nodes with no incoming edge, or the first declared
// node when every node has one) that records a visitation index and an
// initial level per node; first discovery wins, and nodes unreachable from
// any root get level 0 appended after the traversal. Phase 2 iterates
// level[target] = max(level[target], level[source]+1) over all edges to a
// fixed point, skipping back-edges, where the target was visited before
// the source. Excluding back-edges is what keeps cycles from pushing levels
// forever.
type levelGraph struct {
	children map[string][]string
	parents  map[string][]string
	// valid edges (both endpoints declared), in descriptor order
	edges [][2]string

	level map[string]int
	visit map[string]int
}

// newLevelGraph builds adjacency maps from the declared nodes and edges.
// Edges referencing unknown node IDs are skipped here; they are a rendering
// concern, not a layout error.
func newLevelGraph(nodes []descriptor.Node, edges []descriptor.Edge) *levelGraph {
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}

	g := &levelGraph{
		children: make(map[string][]string),
		parents:  make(map[string][]string),
		level:    make(map[string]int, len(nodes)),
		visit:    make(map[string]int, len(nodes)),
	}
	for _, e := range edges {
		if !known[e.From] || !known[e.To] {
			continue
		}
		g.children[e.From] = append(g.children[e.From], e.To)
		g.parents[e.To] = append(g.parents[e.To], e.From)
		g.edges = append(g.edges, [2]string{e.From, e.To})
	}
	return g
}

// roots returns the nodes with no incoming edge, in declared order. A pure
// cycle has none; the first declared node then serves as the root.
func (g *levelGraph) roots(ids []string) []string {
	var roots []string
	for _, id := range ids {
		if len(g.parents[id]) == 0 {
			roots = append(roots, id)
		}
	}
	if len(roots) == 0 && len(ids) > 0 {
		roots = []string{ids[0]}
	}
	return roots
}

// assign runs both phases over the declared node IDs.
func (g *levelGraph) assign(ids []string) {
	// Phase 1: BFS from the roots.
	type item struct {
		id  string
		lvl int
	}
	order := 0
	queue := make([]item, 0, len(ids))
	for _, r := range g.roots(ids) {
		queue = append(queue, item{r, 0})
	}
	for len(queue) > 0 {
		head := queue[0]
		queue = queue[1:]
		if _, seen := g.visit[head.id]; seen {
			continue
		}
		g.visit[head.id] = order
		order++
		g.level[head.id] = head.lvl
		for _, child := range g.children[head.id] {
			queue = append(queue, item{child, head.lvl + 1})
		}
	}

	// Disconnected nodes: level 0, appended to the traversal order.
	for _, id := range ids {
		if _, seen := g.visit[id]; !seen {
			g.visit[id] = order
			order++
			g.level[id] = 0
		}
	}

	// Phase 2: push levels along forward/cross edges until stable.
	// Back-edges (target visited before source) are excluded, so a cycle
	// cannot propagate level increases around itself.
	for changed := true; changed; {
		changed = false
		for _, e := range g.edges {
			from, to := e[0], e[1]
			if g.visit[to] < g.visit[from] {
				continue
			}
			if g.level[to] <= g.level[from] {
				g.level[to] = g.level[from] + 1
				changed = true
			}
		}
	}
}

// byLevel buckets node IDs per level, each bucket sorted by declaration
// order. Returns the buckets and the maximum level.
func (g *levelGraph) byLevel(declIndex map[string]int) (map[int][]string, int) {
	buckets := make(map[int][]string)
	maxLevel := 0
	for id, lvl := range g.level {
		buckets[lvl] = append(buckets[lvl], id)
		if lvl > maxLevel {
			maxLevel = lvl
		}
	}
	for lvl := range buckets {
		ids := buckets[lvl]
		sort.SliceStable(ids, func(i, j int) bool {
			return declIndex[ids[i]] < declIndex[ids[j]]
		})
	}
	return buckets, maxLevel
}

// =============================================================================
// Branching Strategy
// =============================================================================

// Branching computes dependency levels over the edge graph and lays each
// level out as a centred horizontal row. Levels stack top to bottom with a
// vertical gap of the level's tallest node plus the minimum edge gap.
// "hierarchical" is an alias for this strategy.
func Branching(nodes []descriptor.Node, edges []descriptor.Edge, opts Options) map[string]Point {
	if len(nodes) == 0 {
		return map[string]Point{}
	}

	ids := make([]string, len(nodes))
	declIndex := make(map[string]int, len(nodes))
	nodeMap := make(map[string]descriptor.Node, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
		declIndex[n.ID] = i
		nodeMap[n.ID] = n
	}

	g := newLevelGraph(nodes, edges)
	g.assign(ids)
	buckets, maxLevel := g.byLevel(declIndex)

	pos := make(map[string]Point, len(nodes))
	y := opts.ContentTop
	for lvl := 0; lvl <= maxLevel; lvl++ {
		levelIDs := buckets[lvl]
		if len(levelIDs) == 0 {
			y += opts.Spacing.VGap
			continue
		}
		row := make([]descriptor.Node, len(levelIDs))
		for i, id := range levelIDs {
			row[i] = nodeMap[id]
		}
		maxH := opts.placeRow(pos, row, y)
		y += maxH + opts.Spacing.MinEdgeGap
	}
	return pos
}
