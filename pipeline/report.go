package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// RunReport summarizes one pipeline run. It is persisted as JSON next to
// the feed so the API server can expose the last run's outcome.
type RunReport struct {
	RunID     uuid.UUID `json:"run_id"`
	Source    string    `json:"source"`
	Strategy  string    `json:"strategy,omitempty"` // extraction layer that produced the items
	StartedAt time.Time `json:"started_at"`
	Duration  string    `json:"duration"`
	Extracted int       `json:"extracted"`
	New       int       `json:"new"`
	Enriched  int       `json:"enriched"`
	Error     string    `json:"error,omitempty"`
}

// WriteReport persists the report at path. A report write failure is logged
// rather than failing the run -- the feed output is the deliverable.
func WriteReport(path string, report *RunReport) {
	if path == "" {
		return
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to marshal run report: %v\n", err)
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to write run report: %v\n", err)
	}
}
