package model

import "strings"

// Placeholder values substituted at the loader boundary when the upstream
// record omits a field. The aggregator never sees an empty label or type.
const (
	PlaceholderLabel    = "(unnamed)"
	PlaceholderType     = "Unknown"
	PlaceholderRelation = "RELATED_TO"
)

// VisitedNode is one node descriptor inside a traversal record, in the
// order the upstream reasoner consulted them.
type VisitedNode struct {
	Label     string `json:"label"`
	Type      string `json:"type"`
	Violation bool   `json:"violation,omitempty"`
}

// TraversalRecord is a single reasoning step produced upstream. Records are
// immutable once loaded and always consumed in the order given.
type TraversalRecord struct {
	Layer         int           `json:"layer"`                   // reasoning tier (small positive int)
	Operation     string        `json:"operation"`               // free-text label of the step
	Visited       []VisitedNode `json:"visited_nodes"`           // nodes consulted, in order
	Relationships []string      `json:"relationships,omitempty"` // relation types traversed, in order
	Result        string        `json:"result,omitempty"`        // optional result summary
	QueryPattern  string        `json:"query_pattern,omitempty"` // optional query pattern
	PathText      string        `json:"path,omitempty"`          // optional human-readable path
	Violation     bool          `json:"is_violation,omitempty"`  // rule failure at this step
}

// DeriveViolation reports whether the record's operation or result text
// denotes a rule failure. Used when the upstream payload doesn't set the
// explicit flag.
func (r TraversalRecord) DeriveViolation() bool {
	if r.Violation {
		return true
	}
	op := strings.ToLower(r.Operation)
	res := strings.ToLower(r.Result)
	for _, marker := range []string{"violation", "violated", "failed", "failure"} {
		if strings.Contains(op, marker) || strings.Contains(res, marker) {
			return true
		}
	}
	return false
}
