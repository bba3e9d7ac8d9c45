// Package layout supplies the coordinate primitive the render pipeline
// delegates to. The algorithm is deliberately simple: deterministic ring
// seeding by layer plus a few spring/repulsion iterations per frame, so
// identical graphs always settle into identical positions.
package layout

import (
	"hash/fnv"
	"math"

	"traceplay/internal/model"
)

// Position is a normalized 2D coordinate in [0,1] x [0,1].
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Layout yields node screen coordinates at render time. Implementations
// converge over successive Step calls; a node may be unplaced for a frame
// or two after being added, and callers must skip drawing it then.
type Layout interface {
	// Position returns the current coordinate for a node key.
	// ok is false while the node is still pending placement.
	Position(key string) (pos Position, ok bool)

	// Step advances convergence by one iteration.
	Step()
}

// Force is a spring-embedder layout over the aggregated graph.
type Force struct {
	nodes   []model.GraphNode
	edges   []model.GraphEdge
	pos     map[string]Position
	pending []model.GraphNode // added but not yet placed
}

// NewForce seeds a layout for the given graph. All nodes start pending;
// the first Step places them.
func NewForce(graph model.Graph) *Force {
	f := &Force{pos: make(map[string]Position, len(graph.Nodes))}
	f.nodes = append(f.nodes, graph.Nodes...)
	f.edges = append(f.edges, graph.Edges...)
	f.pending = append(f.pending, graph.Nodes...)
	return f
}

func (f *Force) Position(key string) (Position, bool) {
	p, ok := f.pos[key]
	return p, ok
}

// Step places pending nodes on their layer ring, then runs one iteration of
// edge attraction and pairwise repulsion.
func (f *Force) Step() {
	for _, n := range f.pending {
		f.pos[n.Key] = seedPosition(n)
	}
	f.pending = f.pending[:0]

	if len(f.nodes) < 2 {
		return
	}

	const (
		springLength = 0.22
		springK      = 0.06
		repulseK     = 0.012
		maxMove      = 0.04
	)

	force := make(map[string][2]float64, len(f.nodes))

	// Repulsion between every pair.
	for i := 0; i < len(f.nodes); i++ {
		for j := i + 1; j < len(f.nodes); j++ {
			a, b := f.nodes[i].Key, f.nodes[j].Key
			pa, pb := f.pos[a], f.pos[b]
			dx, dy := pa.X-pb.X, pa.Y-pb.Y
			d2 := dx*dx + dy*dy
			if d2 < 1e-6 {
				// Coincident nodes: nudge apart deterministically.
				dx, dy, d2 = 1e-3*float64(i+1), 1e-3*float64(j+1), 1e-6
			}
			push := repulseK / d2
			d := math.Sqrt(d2)
			fa, fb := force[a], force[b]
			fa[0] += push * dx / d
			fa[1] += push * dy / d
			fb[0] -= push * dx / d
			fb[1] -= push * dy / d
			force[a], force[b] = fa, fb
		}
	}

	// Spring attraction along edges.
	for _, e := range f.edges {
		pa, aok := f.pos[e.Source]
		pb, bok := f.pos[e.Target]
		if !aok || !bok {
			continue
		}
		dx, dy := pb.X-pa.X, pb.Y-pa.Y
		d := math.Hypot(dx, dy)
		if d < 1e-6 {
			continue
		}
		pull := springK * (d - springLength)
		fa, fb := force[e.Source], force[e.Target]
		fa[0] += pull * dx / d
		fa[1] += pull * dy / d
		fb[0] -= pull * dx / d
		fb[1] -= pull * dy / d
		force[e.Source], force[e.Target] = fa, fb
	}

	for _, n := range f.nodes {
		fv := force[n.Key]
		dx := clampMove(fv[0], maxMove)
		dy := clampMove(fv[1], maxMove)
		p := f.pos[n.Key]
		f.pos[n.Key] = Position{
			X: clamp01(p.X + dx),
			Y: clamp01(p.Y + dy),
		}
	}
}

// seedPosition places a node on a ring whose radius grows with its layer,
// at an angle hashed from its key. Stable across runs for the same graph.
func seedPosition(n model.GraphNode) Position {
	h := fnv.New64a()
	h.Write([]byte(n.Key))
	angle := 2 * math.Pi * float64(h.Sum64()%3600) / 3600

	radius := 0.18 + 0.11*float64(n.Layer)
	if radius > 0.46 {
		radius = 0.46
	}
	return Position{
		X: clamp01(0.5 + radius*math.Cos(angle)),
		Y: clamp01(0.5 + radius*math.Sin(angle)),
	}
}

func clampMove(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0.04 {
		return 0.04
	}
	if v > 0.96 {
		return 0.96
	}
	return v
}
