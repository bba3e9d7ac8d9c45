package traversal

import "traceplay/internal/model"

// StepState maps every node and edge key to its status at one step index.
type StepState map[string]model.Status

// Resolve computes the visibility status of every entity relative to step i.
// Pure function of its inputs: safe to call on every index change, including
// rapid scrubbing, with no hidden state.
func Resolve(graph model.Graph, i int) StepState {
	state := make(StepState, len(graph.Nodes)+len(graph.Edges))
	for _, n := range graph.Nodes {
		state[n.Key] = statusAt(n.IntroducedAtStep, i)
	}
	for _, e := range graph.Edges {
		state[e.Key] = statusAt(e.IntroducedAtStep, i)
	}
	return state
}

func statusAt(introduced, i int) model.Status {
	switch {
	case introduced > i:
		return model.StatusInactive
	case introduced == i:
		return model.StatusActive
	default:
		return model.StatusVisited
	}
}

// ClampStep forces an externally supplied index into [0, totalSteps-1].
// A degenerate graph (zero steps) clamps to 0.
func ClampStep(i, totalSteps int) int {
	if totalSteps <= 0 || i < 0 {
		return 0
	}
	if i >= totalSteps {
		return totalSteps - 1
	}
	return i
}
