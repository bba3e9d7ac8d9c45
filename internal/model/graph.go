package model

import "fmt"

// Status classifies a node or edge relative to a query step index. It is
// derived, never stored on the entity itself.
type Status string

const (
	StatusInactive Status = "inactive" // introduced after the query step
	StatusActive   Status = "active"   // introduced exactly at the query step
	StatusVisited  Status = "visited"  // introduced before the query step
)

// NodeKey derives the stable identity of a node from its (defaulted)
// descriptor. Re-running the aggregator on identical input must yield
// identical keys.
func NodeKey(nodeType, label string) string {
	return nodeType + "/" + label
}

// EdgeKey derives the stable identity of an edge. Source/target order
// matters, and distinct relationship labels between the same pair are
// distinct edges.
func EdgeKey(source, target, label string) string {
	return fmt.Sprintf("%s->%s:%s", source, target, label)
}

// GraphNode is a deduplicated node in the aggregated traversal graph.
type GraphNode struct {
	Key              string `json:"key"`
	Label            string `json:"label"`
	Type             string `json:"type"`
	Layer            int    `json:"layer"`
	Violation        bool   `json:"violation,omitempty"`
	IntroducedAtStep int    `json:"introducedAtStep"`
}

// GraphEdge connects two nodes visited consecutively within a record.
type GraphEdge struct {
	Key              string `json:"key"`
	Source           string `json:"source"`
	Target           string `json:"target"`
	Label            string `json:"label"`
	IntroducedAtStep int    `json:"introducedAtStep"`
}

// Graph is the canonical output of the aggregator: unique nodes and edges in
// first-seen order, plus a per-step index of which keys each step introduced.
type Graph struct {
	Nodes      []GraphNode `json:"nodes"`
	Edges      []GraphEdge `json:"edges"`
	TotalSteps int         `json:"totalSteps"`

	// StepEvents[i] lists the node/edge keys first seen at record i.
	StepEvents [][]string `json:"stepEvents,omitempty"`
}

// Empty reports whether there is nothing to draw.
func (g Graph) Empty() bool {
	return len(g.Nodes) == 0
}

// NodeByKey does a linear scan; graphs here are small (tens of nodes).
func (g Graph) NodeByKey(key string) (GraphNode, bool) {
	for _, n := range g.Nodes {
		if n.Key == key {
			return n, true
		}
	}
	return GraphNode{}, false
}
