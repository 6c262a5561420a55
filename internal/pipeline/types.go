package pipeline

import "time"

// RunStatus represents the lifecycle state for a scrape run.
type RunStatus string

const (
	RunStatusQueued    RunStatus = "queued"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// RunSpec describes the work to be performed by the runner.
type RunSpec struct {
	Seasons    []string `json:"seasons"`
	SeasonType string   `json:"season_type"`
	DryRun     bool     `json:"dry_run"`
}

// Summary is the outcome of one pipeline run.
type Summary struct {
	RunID            string    `json:"run_id"`
	Seasons          []string  `json:"seasons"`
	SeasonType       string    `json:"season_type"`
	Status           RunStatus `json:"status"`
	RecordsExtracted int       `json:"records_extracted"`
	RecordsLoaded    int       `json:"records_loaded"`
	StartedAt        time.Time `json:"started_at"`
	CompletedAt      time.Time `json:"completed_at"`
	Error            string    `json:"error,omitempty"`
}

// Reporter receives lifecycle callbacks from the runner.
type Reporter interface {
	OnRunStart(spec RunSpec)
	OnStage(stage string, message string)
	OnRunComplete(summary Summary)
	OnRunError(err error)
}

// Event is a progress notification fanned out to live listeners.
type Event struct {
	Type      string    `json:"type"`
	RunID     string    `json:"run_id,omitempty"`
	Stage     string    `json:"stage,omitempty"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
