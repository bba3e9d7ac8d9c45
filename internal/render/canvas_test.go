package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traceplay/internal/layout"
	"traceplay/internal/model"
	"traceplay/internal/traversal"
)

func testGraph() model.Graph {
	return traversal.NewAggregator().Aggregate([]model.TraversalRecord{
		{
			Layer:         1,
			Operation:     "expand",
			Visited:       []model.VisitedNode{{Label: "A", Type: "T"}, {Label: "B", Type: "T"}},
			Relationships: []string{"KNOWS"},
		},
	})
}

func TestFrameEmptyGraphRendersBlank(t *testing.T) {
	graph := traversal.NewAggregator().Aggregate(nil)
	lay := layout.NewForce(graph)

	out := Frame(graph, traversal.Resolve(graph, 0), lay, "", false, 0, 40, 10, DefaultPalette())

	for _, line := range strings.Split(out, "\n") {
		assert.Equal(t, "", strings.TrimSpace(line))
	}
}

func TestFrameSkipsUnplacedNodes(t *testing.T) {
	graph := testGraph()
	lay := layout.NewForce(graph)
	// No layout.Step() yet: every node is still pending placement, so the
	// frame draws nothing rather than faulting.
	out := Frame(graph, traversal.Resolve(graph, 0), lay, "", false, 0, 40, 10, DefaultPalette())
	assert.NotContains(t, out, "A")
	assert.NotContains(t, out, "●")
}

func TestFrameDrawsPlacedNodesAndLabels(t *testing.T) {
	graph := testGraph()
	lay := layout.NewForce(graph)
	lay.Step()

	out := Frame(graph, traversal.Resolve(graph, 0), lay, "", false, 0, 60, 20, DefaultPalette())
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "B")
}

func TestFrameDeterministicForSameClockSample(t *testing.T) {
	graph := testGraph()
	lay := layout.NewForce(graph)
	lay.Step()

	state := traversal.Resolve(graph, 0)
	first := Frame(graph, state, lay, "", false, 1.5, 60, 20, DefaultPalette())
	second := Frame(graph, state, lay, "", false, 1.5, 60, 20, DefaultPalette())
	assert.Equal(t, first, second)
}

func TestBresenhamEndpoints(t *testing.T) {
	pts := bresenham(0, 0, 5, 3)
	require.NotEmpty(t, pts)
	assert.Equal(t, [2]int{0, 0}, pts[0])
	assert.Equal(t, [2]int{5, 3}, pts[len(pts)-1])

	// Degenerate single-point line.
	pts = bresenham(2, 2, 2, 2)
	assert.Equal(t, [][2]int{{2, 2}}, pts)
}

func TestCanvasClipsOutOfBounds(t *testing.T) {
	c := NewCanvas(4, 4)
	c.set(-1, 0, cell{r: 'x'})
	c.set(0, -1, cell{r: 'x'})
	c.set(9, 9, cell{r: 'x'})
	for _, ce := range c.cells {
		assert.Zero(t, ce.r)
	}
}

func TestWriteLabelFitsAtRightEdge(t *testing.T) {
	c := NewCanvas(10, 3)
	c.writeLabel(8, 1, "hello", "255", "236")

	out := c.String()
	assert.Contains(t, out, "hello")
}
