package traversal

import "traceplay/internal/model"

// DemoRecords returns a small built-in trace so the viewer can run without
// an input file. It mimics a rule-checking traversal: an entity lookup, two
// expansion hops, and a constraint check that fails.
func DemoRecords() []model.TraversalRecord {
	records := []model.TraversalRecord{
		{
			Layer:     1,
			Operation: "Resolve entity",
			Visited: []model.VisitedNode{
				{Label: "Order #4812", Type: "Order"},
			},
			Result:       "matched 1 entity",
			QueryPattern: "(o:Order {id: $id})",
		},
		{
			Layer:     1,
			Operation: "Expand ownership",
			Visited: []model.VisitedNode{
				{Label: "Order #4812", Type: "Order"},
				{Label: "Acme GmbH", Type: "Customer"},
			},
			Relationships: []string{"PLACED_BY"},
			Result:        "1 relation",
			PathText:      "Order #4812 -PLACED_BY-> Acme GmbH",
		},
		{
			Layer:     2,
			Operation: "Expand jurisdiction",
			Visited: []model.VisitedNode{
				{Label: "Acme GmbH", Type: "Customer"},
				{Label: "Germany", Type: "Region"},
			},
			Relationships: []string{"REGISTERED_IN"},
			Result:        "1 relation",
		},
		{
			Layer:     2,
			Operation: "Expand shipping route",
			Visited: []model.VisitedNode{
				{Label: "Order #4812", Type: "Order"},
				{Label: "Warehouse OST-3", Type: "Facility"},
				{Label: "Germany", Type: "Region"},
			},
			Relationships: []string{"SHIPS_FROM", "LOCATED_IN"},
			PathText:      "Order #4812 -SHIPS_FROM-> Warehouse OST-3 -LOCATED_IN-> Germany",
		},
		{
			Layer:     3,
			Operation: "Check export constraint",
			Visited: []model.VisitedNode{
				{Label: "Order #4812", Type: "Order"},
				{Label: "Dual-Use Restriction", Type: "Rule", Violation: true},
			},
			Relationships: []string{"SUBJECT_TO"},
			Result:        "constraint violated: missing export licence",
			QueryPattern:  "(o:Order)-[:SUBJECT_TO]->(r:Rule)",
		},
		{
			Layer:     3,
			Operation: "Collect remediation",
			Visited: []model.VisitedNode{
				{Label: "Dual-Use Restriction", Type: "Rule", Violation: true},
				{Label: "Licence Application", Type: "Action"},
			},
			Relationships: []string{"REMEDIATED_BY"},
			Result:        "1 suggested action",
		},
	}

	for i := range records {
		records[i] = Normalize(records[i])
	}
	return records
}
