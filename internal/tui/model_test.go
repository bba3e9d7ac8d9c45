package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traceplay/internal/traversal"
)

func newTestModel(t *testing.T) AppModel {
	t.Helper()
	m := InitialModel(traversal.DemoRecords())
	t.Cleanup(m.Controller.Close)

	sized, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 32})
	return sized.(AppModel)
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSpaceTogglesPlayback(t *testing.T) {
	m := newTestModel(t)
	require.False(t, m.Controller.Playing())

	next, _ := m.Update(key(" "))
	m = next.(AppModel)
	assert.True(t, m.Controller.Playing())

	next, _ = m.Update(key(" "))
	m = next.(AppModel)
	assert.False(t, m.Controller.Playing())
	assert.False(t, m.Controller.Pending())
}

func TestArrowKeysStep(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(key("right"))
	m = next.(AppModel)
	assert.Equal(t, 1, m.Controller.Index())

	next, _ = m.Update(key("left"))
	m = next.(AppModel)
	assert.Equal(t, 0, m.Controller.Index())

	// Stepping past either end clamps.
	next, _ = m.Update(key("left"))
	m = next.(AppModel)
	assert.Equal(t, 0, m.Controller.Index())

	next, _ = m.Update(key("G"))
	m = next.(AppModel)
	assert.Equal(t, m.Graph.TotalSteps-1, m.Controller.Index())
}

func TestHoverCyclesThroughNodesAndOff(t *testing.T) {
	m := newTestModel(t)
	require.Equal(t, -1, m.HoverIdx)

	for i := 0; i < len(m.Graph.Nodes); i++ {
		next, _ := m.Update(key("tab"))
		m = next.(AppModel)
		assert.Equal(t, i, m.HoverIdx)
	}

	// One more wraps back to "nothing hovered".
	next, _ := m.Update(key("tab"))
	m = next.(AppModel)
	assert.Equal(t, -1, m.HoverIdx)
}

func TestFrameMsgAdvancesRenderClockOnly(t *testing.T) {
	m := newTestModel(t)
	idx := m.Controller.Index()

	next, cmd := m.Update(frameMsg(time.Now()))
	m = next.(AppModel)

	assert.NotZero(t, m.Now)
	assert.Equal(t, idx, m.Controller.Index(), "render clock must not touch the step clock")
	assert.NotNil(t, cmd, "frame tick must reschedule itself")
}

func TestViewShowsStepMetadata(t *testing.T) {
	m := newTestModel(t)
	// Layout needs a frame before anything is placed.
	next, _ := m.Update(frameMsg(time.Now()))
	m = next.(AppModel)

	out := m.View()
	assert.Contains(t, out, "step 1/")
	assert.Contains(t, out, "Resolve entity")
}

func TestViewEmptyGraph(t *testing.T) {
	m := InitialModel(nil)
	t.Cleanup(m.Controller.Close)
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = sized.(AppModel)

	out := m.View()
	assert.Contains(t, out, "No traversal steps to display.")
	assert.False(t, strings.Contains(out, "step 1/"))
}
