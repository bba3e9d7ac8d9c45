package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"traceplay/internal/model"
	"traceplay/internal/render"
	"traceplay/internal/traversal"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	alertStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	transportStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	borderColor = lipgloss.Color("63")
)

func (m AppModel) View() string {
	if m.Err != nil {
		return fmt.Sprintf("\n  Error: %v\n", m.Err)
	}

	width := m.WindowSize.Width
	height := m.WindowSize.Height
	if width < 20 || height < 10 {
		return "Window too small"
	}

	if m.Graph.Empty() {
		// Degenerate input: render nothing, never crash.
		return lipgloss.Place(width, height,
			lipgloss.Center, lipgloss.Center,
			dimStyle.Render("No traversal steps to display."),
		)
	}

	netWidth := width - 6
	if netWidth < 20 {
		netWidth = 20
	}

	leftWidth := netWidth
	rightWidth := 0
	if m.ShowInfo {
		rightWidth = netWidth / 3
		if rightWidth < 24 {
			rightWidth = 24
		}
		leftWidth = netWidth - rightWidth
	}

	boxHeight := height - 5
	if boxHeight < 6 {
		boxHeight = 6
	}
	interiorHeight := boxHeight - 2

	// Model state for this frame. The step index comes from the controller;
	// Now came from the last frame tick and only touches cosmetics.
	idx := m.Controller.Index()
	state := traversal.Resolve(m.Graph, idx)

	hoverKey := ""
	if m.HoverIdx >= 0 && m.HoverIdx < len(m.Graph.Nodes) {
		hoverKey = m.Graph.Nodes[m.HoverIdx].Key
	}

	canvas := render.Frame(m.Graph, state, m.Layout, hoverKey, m.ZoomedIn,
		m.Now, leftWidth-2, interiorHeight, m.Palette)

	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Render(canvas)

	mainView := left
	if m.ShowInfo {
		right := lipgloss.NewStyle().
			Width(rightWidth).
			Height(interiorHeight).
			Border(lipgloss.NormalBorder()).
			BorderForeground(borderColor).
			Render(m.renderInfoPanel(idx, rightWidth))
		mainView = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	header := titleStyle.Render("traceplay") + "  " + m.renderTransport(idx)
	footer := dimStyle.Render("Space: Play/Pause • ←/→: Step • 1/2/3: Speed • 0: Off • Tab: Hover • z: Zoom • d: Info • ?: Help • q: Quit")

	full := header + "\n" + mainView + "\n" + footer
	if m.ShowHelp {
		return m.renderHelpDialog()
	}
	return full
}

// renderTransport shows the step position and play state, like a tape deck.
func (m AppModel) renderTransport(idx int) string {
	icon := model.IconPlay
	if !m.Controller.Playing() {
		icon = model.IconPause
	}
	return transportStyle.Render(fmt.Sprintf("%s step %d/%d  speed: %s",
		icon, idx+1, m.Graph.TotalSteps, m.Controller.CurrentSpeed()))
}

// renderInfoPanel builds the companion panel: current step metadata plus a
// tooltip for the hovered node.
func (m AppModel) renderInfoPanel(idx, width int) string {
	var sb strings.Builder
	sb.WriteString(panelTitleStyle.Render("Step Details"))
	sb.WriteString("\n")

	if idx >= 0 && idx < len(m.Records) {
		rec := m.Records[idx]
		sb.WriteString(fmt.Sprintf("\nOperation:  %s", rec.Operation))
		sb.WriteString(fmt.Sprintf("\nLayer:      %d", rec.Layer))
		if rec.Result != "" {
			sb.WriteString(fmt.Sprintf("\nResult:     %s", rec.Result))
		}
		if rec.QueryPattern != "" {
			sb.WriteString(fmt.Sprintf("\nPattern:    %s", rec.QueryPattern))
		}
		if rec.PathText != "" {
			sb.WriteString(fmt.Sprintf("\nPath:       %s", rec.PathText))
		}
		if rec.Violation {
			sb.WriteString("\n\n" + alertStyle.Render(model.IconViolation+" Rule violation at this step"))
		}
	}

	if m.HoverIdx >= 0 && m.HoverIdx < len(m.Graph.Nodes) {
		n := m.Graph.Nodes[m.HoverIdx]
		sb.WriteString("\n\n" + panelTitleStyle.Render("Hovered Node"))
		sb.WriteString(fmt.Sprintf("\nLabel:      %s", n.Label))
		sb.WriteString(fmt.Sprintf("\nType:       %s", n.Type))
		sb.WriteString(fmt.Sprintf("\nLayer:      %d", n.Layer))
		sb.WriteString(fmt.Sprintf("\nFirst seen: step %d", n.IntroducedAtStep+1))
		if n.Violation {
			sb.WriteString("\n" + alertStyle.Render("Flagged: "+model.IconViolation))
		}
	}

	sb.WriteString("\n\n" + panelTitleStyle.Render("Legend"))
	sb.WriteString("\n" + model.IconNodeActive + " active   " + model.IconNodeVisited + " visited")
	sb.WriteString("\n" + model.IconNodeInactive + " pending  " + alertStyle.Render(model.IconViolation) + " violation")

	// Truncate lines to the panel width so lipgloss doesn't wrap.
	lines := strings.Split(sb.String(), "\n")
	for i, line := range lines {
		if lipgloss.Width(line) > width-2 {
			lines[i] = truncateANSI(line, width-5) + "..."
		}
	}
	return strings.Join(lines, "\n")
}

// truncateANSI cuts plain lines; styled lines are left alone (they are the
// short headings, which never overflow).
func truncateANSI(line string, max int) string {
	if strings.Contains(line, "\x1b") {
		return line
	}
	if len(line) <= max {
		return line
	}
	return line[:max]
}

func (m AppModel) renderHelpDialog() string {
	w, h := m.WindowSize.Width, m.WindowSize.Height

	helpWidth := w * 70 / 100
	if helpWidth < 40 {
		helpWidth = 40
	}
	if helpWidth > w-4 {
		helpWidth = w - 4
	}

	content := strings.Join([]string{
		titleStyle.Render("traceplay help"),
		"",
		"Playback",
		"  space      play / pause autoplay",
		"  ← / →      step backward / forward",
		"  g / G      jump to first / last step",
		"  1 / 2 / 3  slow / normal / fast autoplay",
		"  0          autoplay off (pauses)",
		"",
		"View",
		"  tab / j    hover next node",
		"  shift+tab / k  hover previous node",
		"  z          toggle zoom (shows pending labels)",
		"  d          toggle the details panel",
		"",
		"  ? closes this help, q quits.",
	}, "\n")

	dialog := lipgloss.NewStyle().
		Width(helpWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Render(content)

	return lipgloss.Place(w, h,
		lipgloss.Center, lipgloss.Center,
		dialog,
	)
}
