package traversal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traceplay/internal/model"
)

func TestParseRecordsBareArray(t *testing.T) {
	payload := `[
		{"layer": 1, "operation": "resolve", "visited_nodes": [{"label": "A", "type": "Entity"}]},
		{"layer": 2, "operation": "expand", "visited_nodes": [{"label": "A", "type": "Entity"}, {"label": "B", "type": "Entity"}], "relationships": ["KNOWS"]}
	]`

	records, err := ParseRecords(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "resolve", records[0].Operation)
	assert.Equal(t, []string{"KNOWS"}, records[1].Relationships)
}

func TestParseRecordsEnvelope(t *testing.T) {
	payload := `{"steps": [{"operation": "resolve", "visited_nodes": []}]}`

	records, err := ParseRecords(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestParseRecordsInvalid(t *testing.T) {
	_, err := ParseRecords(strings.NewReader("not json"))
	assert.Error(t, err)
}

func TestNormalizeDefaults(t *testing.T) {
	rec := Normalize(model.TraversalRecord{Layer: -2})

	assert.NotNil(t, rec.Visited)
	assert.NotNil(t, rec.Relationships)
	assert.Equal(t, 0, rec.Layer)
	assert.NotEmpty(t, rec.Operation)
}

func TestNormalizeDerivesViolation(t *testing.T) {
	rec := Normalize(model.TraversalRecord{Operation: "check", Result: "rule violated: X"})
	assert.True(t, rec.Violation)

	rec = Normalize(model.TraversalRecord{Operation: "check", Result: "ok"})
	assert.False(t, rec.Violation)
}

func TestDemoRecordsAreWellFormed(t *testing.T) {
	records := DemoRecords()
	require.NotEmpty(t, records)

	graph := NewAggregator().Aggregate(records)
	assert.Equal(t, len(records), graph.TotalSteps)
	assert.NotEmpty(t, graph.Nodes)
	assert.NotEmpty(t, graph.Edges)

	// The demo must exercise the violation path.
	var violation bool
	for _, n := range graph.Nodes {
		violation = violation || n.Violation
	}
	assert.True(t, violation)
}
