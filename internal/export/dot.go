// Package export writes the aggregated graph in interchange formats.
package export

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"

	"traceplay/internal/model"
)

// DOT renders the aggregated graph as Graphviz source. Layers become
// clusters, violation nodes get the alert fill, and every edge carries its
// relationship label plus the step it was introduced at.
func DOT(graph model.Graph) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("traversal"); err != nil {
		return "", fmt.Errorf("dot export: %w", err)
	}
	if err := g.SetDir(true); err != nil {
		return "", fmt.Errorf("dot export: %w", err)
	}
	_ = g.AddAttr("traversal", "rankdir", "LR")

	// gographviz node names must be valid DOT identifiers, so nodes are
	// addressed by index and the real label goes in the attribute.
	ids := make(map[string]string, len(graph.Nodes))
	clusters := make(map[int]bool)
	for i, n := range graph.Nodes {
		id := fmt.Sprintf("n%d", i)
		ids[n.Key] = id

		attrs := map[string]string{
			"label": strconv.Quote(fmt.Sprintf("%s\\n%s (step %d)", n.Label, n.Type, n.IntroducedAtStep+1)),
			"shape": "ellipse",
		}
		if n.Violation {
			attrs["style"] = "filled"
			attrs["fillcolor"] = strconv.Quote("#e03131")
			attrs["fontcolor"] = "white"
		}

		cluster := fmt.Sprintf("cluster_layer_%d", n.Layer)
		if !clusters[n.Layer] {
			clusters[n.Layer] = true
			if err := g.AddSubGraph("traversal", cluster, map[string]string{
				"label": strconv.Quote(fmt.Sprintf("layer %d", n.Layer)),
				"style": "dotted",
			}); err != nil {
				return "", fmt.Errorf("dot export: %w", err)
			}
		}
		if err := g.AddNode(cluster, id, attrs); err != nil {
			return "", fmt.Errorf("dot export: %w", err)
		}
	}

	for _, e := range graph.Edges {
		src, sok := ids[e.Source]
		dst, dok := ids[e.Target]
		if !sok || !dok {
			continue
		}
		label := e.Label
		if label == model.PlaceholderRelation {
			label = ""
		}
		if err := g.AddEdge(src, dst, true, map[string]string{
			"label":    strconv.Quote(fmt.Sprintf("%s [%d]", label, e.IntroducedAtStep+1)),
			"fontsize": "10",
		}); err != nil {
			return "", fmt.Errorf("dot export: %w", err)
		}
	}

	return g.String(), nil
}
