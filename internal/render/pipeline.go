// Package render turns (graph, per-entity status, layout positions, render
// clock) into drawn frames. The discrete step clock never appears here:
// everything time-based is cosmetic and driven by the wall-clock sample the
// caller passes in, so two renders of the same step may differ in pixels but
// never in model state.
package render

import (
	"math"
	"time"

	"traceplay/internal/model"
)

// Seconds converts the frame's single render-clock sample to the float
// seconds every pulse and dash computation consumes. Sampling happens once
// per frame; the value is passed down explicitly, never read ad hoc.
func Seconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// Palette maps status to colors. ANSI-256 color strings, lipgloss-ready.
type Palette struct {
	Active    string
	Visited   string
	Inactive  string
	Violation string
	Label     string
	Plate     string // label plate background
}

// DefaultPalette matches the rest of the UI chrome.
func DefaultPalette() Palette {
	return Palette{
		Active:    "205", // pink
		Visited:   "81",  // cyan
		Inactive:  "240", // grey
		Violation: "196", // alert red
		Label:     "255",
		Plate:     "236",
	}
}

// Tunables for the cosmetic layer.
const (
	baseRadius      = 1.0
	activeScale     = 1.5
	visitedScale    = 1.0
	inactiveScale   = 0.55
	hoverBoost      = 1.3 // multiplicative, independent of status
	pulsePeriodSec  = 1.2
	dashCellsPerSec = 8.0
)

// NodeVisual is everything the canvas needs to draw one node.
type NodeVisual struct {
	Radius    float64
	Color     string
	Opacity   float64 // 0..1, mapped to dimmer colors on the terminal
	Glow      float64 // 0..1 pulse magnitude, active nodes only
	ShowLabel bool
	Bold      bool
}

// EdgeVisual is everything the canvas needs to draw one edge.
type EdgeVisual struct {
	Color      string
	Width      float64
	Dashed     bool
	DashOffset int // marching phase, from the render clock only
	Opacity    float64
	ShowLabel  bool // relationship badge at the midpoint
}

// NodeParams computes the visual parameters for one node.
// Size and opacity order strictly: active > visited > inactive. Hover adds a
// fixed boost on top. The glow is a sinusoid of wall-clock seconds only.
func NodeParams(n model.GraphNode, status model.Status, hovered, zoomedIn bool, now float64, pal Palette) NodeVisual {
	v := NodeVisual{Color: pal.Visited}

	switch status {
	case model.StatusActive:
		v.Radius = baseRadius * activeScale
		v.Opacity = 1.0
		v.Color = pal.Active
		v.Glow = pulse(now)
		v.Bold = true
	case model.StatusVisited:
		v.Radius = baseRadius * visitedScale
		v.Opacity = 0.8
		v.Color = pal.Visited
	default: // inactive
		v.Radius = baseRadius * inactiveScale
		v.Opacity = 0.35
		v.Color = pal.Inactive
	}

	if hovered {
		v.Radius *= hoverBoost
		v.Opacity = math.Min(1.0, v.Opacity*hoverBoost)
		v.Bold = true
	}

	// Violations override the status palette, never the geometry.
	if n.Violation {
		v.Color = pal.Violation
	}

	v.ShowLabel = status != model.StatusInactive || hovered || zoomedIn
	return v
}

// EdgeParams computes the visual parameters for one edge. Only active edges
// animate; visited and inactive edges are solid, static strokes.
func EdgeParams(status model.Status, hovered, zoomedIn bool, now float64, pal Palette) EdgeVisual {
	v := EdgeVisual{Color: pal.Visited}

	switch status {
	case model.StatusActive:
		v.Width = 1.5
		v.Opacity = 1.0
		v.Color = pal.Active
		v.Dashed = true
		v.DashOffset = int(now*dashCellsPerSec) % dashPeriod
	case model.StatusVisited:
		v.Width = 1.0
		v.Opacity = 0.7
	default:
		v.Width = 0.5
		v.Opacity = 0.3
		v.Color = pal.Inactive
	}

	if hovered {
		v.Width *= hoverBoost
		v.Opacity = math.Min(1.0, v.Opacity*hoverBoost)
	}

	v.ShowLabel = status == model.StatusActive || (zoomedIn && status != model.StatusInactive)
	return v
}

// pulse is the shared sinusoid for glow effects: 0..1 over pulsePeriodSec.
func pulse(now float64) float64 {
	return 0.5 + 0.5*math.Sin(2*math.Pi*now/pulsePeriodSec)
}
