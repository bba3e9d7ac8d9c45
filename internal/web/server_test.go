package web

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traceplay/internal/model"
	"traceplay/internal/traversal"
)

func testServer() *Server {
	return NewServer([]model.TraversalRecord{
		{Layer: 1, Operation: "resolve", Visited: []model.VisitedNode{{Label: "A", Type: "T"}}},
		{Layer: 1, Operation: "expand", Visited: []model.VisitedNode{{Label: "A", Type: "T"}, {Label: "B", Type: "T"}}, Relationships: []string{"KNOWS"}},
	})
}

func TestHandleGraph(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	s.handleGraph(rec, httptest.NewRequest("GET", "/api/graph", nil))

	require.Equal(t, 200, rec.Code)

	var graph model.Graph
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &graph))
	assert.Equal(t, 2, graph.TotalSteps)
	assert.Len(t, graph.Nodes, 2)
	assert.Len(t, graph.Edges, 1)
}

func TestHandleStateClampsStep(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	s.handleState(rec, httptest.NewRequest("GET", "/api/state?step=99", nil))

	require.Equal(t, 200, rec.Code)

	var resp struct {
		Step     int                 `json:"step"`
		Statuses traversal.StepState `json:"statuses"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Step)
	assert.Equal(t, model.StatusVisited, resp.Statuses[model.NodeKey("T", "A")])
	assert.Equal(t, model.StatusActive, resp.Statuses[model.NodeKey("T", "B")])
}

func TestHandleStateRejectsGarbage(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	s.handleState(rec, httptest.NewRequest("GET", "/api/state?step=banana", nil))
	assert.Equal(t, 400, rec.Code)
}

func TestHandleRecords(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	s.handleRecords(rec, httptest.NewRequest("GET", "/api/records", nil))

	require.Equal(t, 200, rec.Code)

	var metas []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &metas))
	require.Len(t, metas, 2)
	assert.Equal(t, "resolve", metas[0]["operation"])
}
