package tui

import (
	"traceplay/internal/layout"
	"traceplay/internal/model"
	"traceplay/internal/playback"
	"traceplay/internal/render"
	"traceplay/internal/traversal"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	Records []model.TraversalRecord
	Graph   model.Graph
	Err     error

	// Playback: the controller owns the step index, the TUI only reads it.
	Controller *playback.Controller
	steps      chan stepMsg

	// Render clock + layout. Now is sampled once per frame tick and passed
	// down into every cosmetic computation.
	Layout  *layout.Force
	Now     float64
	Palette render.Palette

	// UI State
	WindowSize tea.WindowSizeMsg
	HoverIdx   int // index into Graph.Nodes, -1 = nothing hovered
	ZoomedIn   bool
	ShowInfo   bool
	ShowHelp   bool

	InfoViewport viewport.Model
}

// InitialModel aggregates the records and wires up playback.
func InitialModel(records []model.TraversalRecord) AppModel {
	graph := traversal.NewAggregator().Aggregate(records)

	m := AppModel{
		Records:    records,
		Graph:      graph,
		Controller: playback.New(graph.TotalSteps),
		steps:      make(chan stepMsg, 16),
		Layout:     layout.NewForce(graph),
		Palette:    render.DefaultPalette(),
		HoverIdx:   -1,
		ShowInfo:   true,
	}

	// Bridge the controller's timer goroutine into the tea loop. Sends are
	// non-blocking: a dropped message just coalesces with the next frame,
	// since the view reads the index straight off the controller.
	m.Controller.OnStep(func(index int, playing bool) {
		select {
		case m.steps <- stepMsg{Index: index, Playing: playing}:
		default:
		}
	})

	return m
}
