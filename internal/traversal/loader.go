package traversal

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"traceplay/internal/model"
)

// LoadRecords reads an ordered JSON array of traversal records from a file,
// or from stdin when path is "-".
func LoadRecords(path string) ([]model.TraversalRecord, error) {
	if path == "-" {
		return ParseRecords(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace file: %w", err)
	}
	defer f.Close()
	return ParseRecords(f)
}

// ParseRecords decodes the upstream payload and applies boundary defaulting,
// so nothing downstream ever sees a nil list or an unset violation flag.
// The payload may be a bare array or wrapped in {"steps": [...]}.
func ParseRecords(r io.Reader) ([]model.TraversalRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading trace input: %w", err)
	}

	var records []model.TraversalRecord
	if err := json.Unmarshal(data, &records); err != nil {
		// Some producers wrap the list in an envelope.
		var wrapped struct {
			Steps []model.TraversalRecord `json:"steps"`
		}
		if err2 := json.Unmarshal(data, &wrapped); err2 != nil {
			return nil, fmt.Errorf("decoding trace records: %w", err)
		}
		records = wrapped.Steps
	}

	for i := range records {
		records[i] = Normalize(records[i])
	}
	return records, nil
}

// Normalize is the explicit defaulting pass the aggregator relies on.
func Normalize(rec model.TraversalRecord) model.TraversalRecord {
	if rec.Visited == nil {
		rec.Visited = []model.VisitedNode{}
	}
	if rec.Relationships == nil {
		rec.Relationships = []string{}
	}
	if rec.Layer < 0 {
		rec.Layer = 0
	}
	if rec.Operation == "" {
		rec.Operation = "(unlabelled step)"
	}
	rec.Violation = rec.DeriveViolation()
	return rec
}
