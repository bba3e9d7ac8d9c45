package render

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"traceplay/internal/layout"
	"traceplay/internal/model"
)

// dashPeriod is the length of the marching-dash cycle in cells.
const dashPeriod = 4

// cell is one character cell of the drawing surface.
type cell struct {
	r     rune
	color string
	bold  bool
	faint bool
	bg    string
}

// Canvas is a fixed-size cell grid the pipeline draws into. It is rebuilt
// from scratch every frame; there is no retained state between draws.
type Canvas struct {
	w, h  int
	cells []cell
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Canvas{w: w, h: h, cells: make([]cell, w*h)}
}

func (c *Canvas) set(x, y int, ce cell) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = ce
}

func (c *Canvas) at(x, y int) cell {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return cell{}
	}
	return c.cells[y*c.w+x]
}

// String renders the grid with lipgloss styling per cell.
func (c *Canvas) String() string {
	var sb strings.Builder
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			ce := c.cells[y*c.w+x]
			if ce.r == 0 {
				sb.WriteRune(' ')
				continue
			}
			style := lipgloss.NewStyle()
			if ce.color != "" {
				style = style.Foreground(lipgloss.Color(ce.color))
			}
			if ce.bg != "" {
				style = style.Background(lipgloss.Color(ce.bg))
			}
			if ce.bold {
				style = style.Bold(true)
			}
			if ce.faint {
				style = style.Faint(true)
			}
			sb.WriteString(style.Render(string(ce.r)))
		}
		if y < c.h-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Frame draws one complete frame of the playback view. now is the render
// clock sample for this frame; it drives pulses and dashes only. Entities
// the layout hasn't placed yet are skipped, never an error.
func Frame(graph model.Graph, state map[string]model.Status, lay layout.Layout, hoverKey string, zoomedIn bool, now float64, w, h int, pal Palette) string {
	canvas := NewCanvas(w, h)
	if graph.Empty() {
		return canvas.String()
	}

	toCell := func(p layout.Position) (int, int) {
		return int(math.Round(p.X * float64(w-1))), int(math.Round(p.Y * float64(h-1)))
	}

	// Edges first so nodes draw over the line endpoints. Inactive strokes
	// at the bottom, active on top.
	edges := append([]model.GraphEdge(nil), graph.Edges...)
	sort.SliceStable(edges, func(i, j int) bool {
		return statusRank(state[edges[i].Key]) < statusRank(state[edges[j].Key])
	})
	for _, e := range edges {
		src, sok := lay.Position(e.Source)
		dst, dok := lay.Position(e.Target)
		if !sok || !dok {
			continue // layout hasn't converged for this edge yet
		}
		vis := EdgeParams(state[e.Key], e.Key == hoverKey, zoomedIn, now, pal)
		x0, y0 := toCell(src)
		x1, y1 := toCell(dst)
		canvas.drawEdge(x0, y0, x1, y1, e, vis)
	}

	nodes := append([]model.GraphNode(nil), graph.Nodes...)
	sort.SliceStable(nodes, func(i, j int) bool {
		return statusRank(state[nodes[i].Key]) < statusRank(state[nodes[j].Key])
	})
	for _, n := range nodes {
		pos, ok := lay.Position(n.Key)
		if !ok {
			continue
		}
		vis := NodeParams(n, state[n.Key], n.Key == hoverKey, zoomedIn, now, pal)
		x, y := toCell(pos)
		canvas.drawNode(x, y, n, vis, pal)
	}

	return canvas.String()
}

func statusRank(s model.Status) int {
	switch s {
	case model.StatusActive:
		return 2
	case model.StatusVisited:
		return 1
	}
	return 0
}

// drawEdge draws a Bresenham line with optional marching dashes and an
// arrowhead at the target end.
func (c *Canvas) drawEdge(x0, y0, x1, y1 int, e model.GraphEdge, vis EdgeVisual) {
	pts := bresenham(x0, y0, x1, y1)
	if len(pts) < 2 {
		return
	}

	lineRune := edgeRune(x0, y0, x1, y1)
	for i, p := range pts[1 : len(pts)-1] {
		if vis.Dashed {
			// Marching dashes: the offset shifts the visible segments
			// each frame, so motion flows from source to target.
			if (i+vis.DashOffset)%dashPeriod >= dashPeriod/2 {
				continue
			}
		}
		// Don't stomp node glyphs already drawn at this cell.
		if existing := c.at(p[0], p[1]); existing.bold && existing.r != 0 && existing.r != lineRune {
			continue
		}
		c.set(p[0], p[1], cell{r: lineRune, color: vis.Color, faint: vis.Opacity < 0.5})
	}

	// Arrowhead one cell before the target.
	tip := pts[len(pts)-2]
	c.set(tip[0], tip[1], cell{r: arrowRune(x1-x0, y1-y0), color: vis.Color, bold: vis.Width > 1})

	if vis.ShowLabel && e.Label != model.PlaceholderRelation {
		mid := pts[len(pts)/2]
		c.writeLabel(mid[0]+1, mid[1], e.Label, vis.Color, "")
	}
}

// drawNode draws the node glyph, its pulse halo, and the label plate.
func (c *Canvas) drawNode(x, y int, n model.GraphNode, vis NodeVisual, pal Palette) {
	glyph := nodeRune(vis.Radius)
	if n.Violation {
		glyph = []rune(model.IconViolation)[0]
	}
	c.set(x, y, cell{r: glyph, color: vis.Color, bold: vis.Bold, faint: vis.Opacity < 0.5})

	// Pulse halo: purely cosmetic, keyed off the render clock via vis.Glow.
	if vis.Glow > 0.55 {
		halo := '░'
		if vis.Glow > 0.85 {
			halo = '▒'
		}
		for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			hx, hy := x+d[0], y+d[1]
			if c.at(hx, hy).r == 0 {
				c.set(hx, hy, cell{r: halo, color: vis.Color, faint: true})
			}
		}
	}

	if vis.ShowLabel {
		c.writeLabel(x+2, y, n.Label, pal.Label, pal.Plate)
	}
}

// writeLabel writes text with a background plate sized to its measured
// width, clipped at the canvas edge. The plate guarantees legibility over
// whatever the line routines already drew.
func (c *Canvas) writeLabel(x, y int, text, fg, bg string) {
	width := runewidth.StringWidth(text)
	if x+width >= c.w {
		x = c.w - width - 1
		if x < 0 {
			x = 0
		}
	}
	col := x
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if col >= c.w {
			break
		}
		c.set(col, y, cell{r: r, color: fg, bg: bg})
		col += rw
	}
}

// bresenham returns all integer cells on the line, endpoints included.
func bresenham(x0, y0, x1, y1 int) [][2]int {
	var pts [][2]int
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	x, y := x0, y0
	for {
		pts = append(pts, [2]int{x, y})
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
	return pts
}

// edgeRune picks a line character by the dominant direction.
func edgeRune(x0, y0, x1, y1 int) rune {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	switch {
	case dy == 0 || dx > 3*dy:
		return '─'
	case dx == 0 || dy > 3*dx:
		return '│'
	case (x1-x0 > 0) == (y1-y0 > 0):
		return '╲'
	default:
		return '╱'
	}
}

// arrowRune picks an arrowhead by the dominant direction of travel.
func arrowRune(dx, dy int) rune {
	if abs(dx) >= abs(dy) {
		if dx >= 0 {
			return '▸'
		}
		return '◂'
	}
	if dy >= 0 {
		return '▾'
	}
	return '▴'
}

// nodeRune maps the computed radius to a glyph size.
func nodeRune(radius float64) rune {
	switch {
	case radius >= 1.4:
		return '◉'
	case radius >= 0.9:
		return '●'
	default:
		return '·'
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
