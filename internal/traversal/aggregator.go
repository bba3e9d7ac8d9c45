package traversal

import (
	"traceplay/internal/model"
)

// PairingPolicy decides how a record's relationship list is matched against
// its visited-node list when building edges.
type PairingPolicy int

const (
	// PairPositional aligns relationship i with the edge between visited
	// node i and i+1. Missing labels fall back to the generic relation.
	PairPositional PairingPolicy = iota

	// PairAllPairs connects every ordered pair of visited nodes within a
	// record, all edges carrying the record's first relationship label.
	PairAllPairs
)

// Options configures the aggregation. The zero value is the default policy.
type Options struct {
	Pairing PairingPolicy
}

// Aggregator compresses an ordered list of traversal records into a single
// deduplicated graph annotated with when each entity was first seen.
type Aggregator struct {
	opts Options
}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

func NewAggregatorWithOptions(opts Options) *Aggregator {
	return &Aggregator{opts: opts}
}

// Aggregate iterates records in order and produces the canonical graph.
// It has no fallible branch: sparse or malformed input degrades to
// placeholder values or an empty graph, never an error.
func (a *Aggregator) Aggregate(records []model.TraversalRecord) model.Graph {
	graph := model.Graph{
		Nodes:      []model.GraphNode{},
		Edges:      []model.GraphEdge{},
		TotalSteps: len(records),
	}
	if len(records) == 0 {
		return graph
	}

	graph.StepEvents = make([][]string, len(records))

	seenNodes := make(map[string]bool)
	seenEdges := make(map[string]bool)

	for step, rec := range records {
		violation := rec.DeriveViolation()

		// Nodes: first occurrence wins, later occurrences leave the
		// entity untouched (introducedAtStep never moves).
		keys := make([]string, 0, len(rec.Visited))
		for _, v := range rec.Visited {
			label, typ := defaultDescriptor(v)
			key := model.NodeKey(typ, label)
			keys = append(keys, key)

			if seenNodes[key] {
				continue
			}
			seenNodes[key] = true
			graph.Nodes = append(graph.Nodes, model.GraphNode{
				Key:              key,
				Label:            label,
				Type:             typ,
				Layer:            clampLayer(rec.Layer),
				Violation:        violation || v.Violation,
				IntroducedAtStep: step,
			})
			graph.StepEvents[step] = append(graph.StepEvents[step], key)
		}

		for _, pair := range a.pairEdges(keys, rec.Relationships) {
			edgeKey := model.EdgeKey(pair.source, pair.target, pair.label)
			if seenEdges[edgeKey] {
				continue
			}
			seenEdges[edgeKey] = true
			graph.Edges = append(graph.Edges, model.GraphEdge{
				Key:              edgeKey,
				Source:           pair.source,
				Target:           pair.target,
				Label:            pair.label,
				IntroducedAtStep: step,
			})
			graph.StepEvents[step] = append(graph.StepEvents[step], edgeKey)
		}
	}

	return graph
}

type edgePair struct {
	source, target, label string
}

// pairEdges applies the configured pairing policy to one record's node keys.
// A record with a single visited node contributes no edges.
func (a *Aggregator) pairEdges(keys []string, relations []string) []edgePair {
	if len(keys) < 2 {
		return nil
	}

	label := func(i int) string {
		if i < len(relations) && relations[i] != "" {
			return relations[i]
		}
		return model.PlaceholderRelation
	}

	var pairs []edgePair
	switch a.opts.Pairing {
	case PairAllPairs:
		// All edges in the record share the first relationship label.
		l := label(0)
		for i := 0; i < len(keys); i++ {
			for j := i + 1; j < len(keys); j++ {
				if keys[i] == keys[j] {
					continue // self loop from a repeated descriptor
				}
				pairs = append(pairs, edgePair{keys[i], keys[j], l})
			}
		}
	default: // PairPositional
		for i := 0; i+1 < len(keys); i++ {
			if keys[i] == keys[i+1] {
				continue
			}
			pairs = append(pairs, edgePair{keys[i], keys[i+1], label(i)})
		}
	}
	return pairs
}

// defaultDescriptor substitutes placeholders for missing fields so that a
// partially-populated descriptor can never break the transform.
func defaultDescriptor(v model.VisitedNode) (label, typ string) {
	label = v.Label
	if label == "" {
		label = model.PlaceholderLabel
	}
	typ = v.Type
	if typ == "" {
		typ = model.PlaceholderType
	}
	return label, typ
}

func clampLayer(layer int) int {
	if layer < 0 {
		return 0
	}
	return layer
}
