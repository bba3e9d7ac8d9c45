package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"strconv"

	"traceplay/internal/model"
	"traceplay/internal/traversal"
)

//go:embed static/*
var staticFS embed.FS

// Server exposes the aggregated graph over JSON for the browser player.
// Playback runs client-side; the server holds no per-session state.
type Server struct {
	records []model.TraversalRecord
	graph   model.Graph
}

func NewServer(records []model.TraversalRecord) *Server {
	return &Server{
		records: records,
		graph:   traversal.NewAggregator().Aggregate(records),
	}
}

// Start serves the player until the process exits.
func (s *Server) Start(port int) error {
	mux := http.NewServeMux()

	subFS, _ := fs.Sub(staticFS, "static")
	mux.Handle("/", http.FileServer(http.FS(subFS)))

	mux.HandleFunc("/api/graph", s.handleGraph)
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/api/records", s.handleRecords)
	mux.HandleFunc("/api/version", s.handleVersion)

	addr := fmt.Sprintf(":%d", port)
	fmt.Printf("Starting traceplay web server at http://localhost:%d\n", port)
	fmt.Printf("Go to http://localhost:%d in your browser.\n", port)

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
	return nil
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.graph)
}

// handleState resolves per-entity status for ?step=i. Out-of-range indices
// are clamped silently, per the viewer's error policy.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	step := 0
	if v := r.URL.Query().Get("step"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid step index", 400)
			return
		}
		step = parsed
	}
	step = traversal.ClampStep(step, s.graph.TotalSteps)

	response := struct {
		Step     int                 `json:"step"`
		Statuses traversal.StepState `json:"statuses"`
	}{
		Step:     step,
		Statuses: traversal.Resolve(s.graph, step),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// handleRecords returns the step metadata list for the info panel.
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	type stepMeta struct {
		Index        int    `json:"index"`
		Operation    string `json:"operation"`
		Layer        int    `json:"layer"`
		Result       string `json:"result,omitempty"`
		QueryPattern string `json:"queryPattern,omitempty"`
		PathText     string `json:"path,omitempty"`
		Violation    bool   `json:"violation"`
	}

	metas := make([]stepMeta, len(s.records))
	for i, rec := range s.records {
		metas[i] = stepMeta{
			Index:        i,
			Operation:    rec.Operation,
			Layer:        rec.Layer,
			Result:       rec.Result,
			QueryPattern: rec.QueryPattern,
			PathText:     rec.PathText,
			Violation:    rec.Violation,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metas)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"version": model.Version})
}
