package tui

import (
	"time"

	"traceplay/internal/playback"
	"traceplay/internal/render"

	tea "github.com/charmbracelet/bubbletea"
)

// frameMsg carries one render-clock sample. ~12fps is plenty for pulses and
// marching dashes without hammering the terminal.
type frameMsg time.Time

// stepMsg is forwarded from the playback controller's timer goroutine.
type stepMsg struct {
	Index   int
	Playing bool
}

const frameInterval = 80 * time.Millisecond

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// waitForStep blocks on the controller bridge channel.
func waitForStep(ch chan stepMsg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(frameTick(), waitForStep(m.steps))
}

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.InfoViewport.Width = msg.Width / 3
		m.InfoViewport.Height = msg.Height - 6
		return m, nil

	case frameMsg:
		// The render clock advances; the step clock is untouched here.
		m.Now = render.Seconds(time.Time(msg))
		m.Layout.Step()
		return m, frameTick()

	case stepMsg:
		// Nothing to copy: the view reads the controller directly. The
		// message only exists to force a redraw on autoplay advances.
		return m, waitForStep(m.steps)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	idx := m.Controller.Index()

	switch msg.String() {
	case "ctrl+c", "q":
		m.Controller.Close()
		return m, tea.Quit

	case "esc":
		if m.ShowHelp {
			m.ShowHelp = false
			return m, nil
		}
		if m.HoverIdx >= 0 {
			m.HoverIdx = -1
			return m, nil
		}

	case " ":
		if m.Controller.Playing() {
			m.Controller.Pause()
		} else {
			m.Controller.Play()
		}

	case "right", "l":
		m.Controller.StepTo(idx + 1)
	case "left", "h":
		m.Controller.StepTo(idx - 1)
	case "home", "g":
		m.Controller.StepTo(0)
	case "end", "G":
		m.Controller.StepTo(m.Graph.TotalSteps - 1)

	case "1":
		m.Controller.SetSpeed(playback.SpeedSlow)
	case "2":
		m.Controller.SetSpeed(playback.SpeedNormal)
	case "3":
		m.Controller.SetSpeed(playback.SpeedFast)
	case "0":
		m.Controller.SetSpeed(playback.SpeedOff)

	case "tab", "j":
		m.HoverIdx = m.cycleHover(+1)
	case "shift+tab", "k":
		m.HoverIdx = m.cycleHover(-1)

	case "z":
		m.ZoomedIn = !m.ZoomedIn
	case "d":
		m.ShowInfo = !m.ShowInfo
	case "?":
		m.ShowHelp = !m.ShowHelp
	}

	return m, nil
}

// cycleHover moves the hover cursor through the node list, wrapping, with -1
// (no hover) as an extra stop so the boost can be turned off.
func (m AppModel) cycleHover(dir int) int {
	n := len(m.Graph.Nodes)
	if n == 0 {
		return -1
	}
	next := m.HoverIdx + dir
	if next >= n {
		return -1
	}
	if next < -1 {
		return n - 1
	}
	return next
}
