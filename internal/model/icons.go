package model

// Centralized icons for the UI components
// Using simple single-width characters for consistent terminal rendering
const (
	IconNodeActive   = "◉" // node introduced at the current step
	IconNodeVisited  = "●" // node already revealed
	IconNodeInactive = "·" // node not yet revealed
	IconViolation    = "✗" // rule failure marker
	IconPlay         = "▶"
	IconPause        = "‖"
	IconStepFirst    = "⇤"
	IconStepLast     = "⇥"
)
