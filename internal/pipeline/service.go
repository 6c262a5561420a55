package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// ErrRunInProgress is returned when a trigger arrives while a run is active.
// The browser session cannot be shared, so runs are strictly serialized.
var ErrRunInProgress = fmt.Errorf("a scrape run is already in progress")

// StatusSummary is returned to API callers.
type StatusSummary struct {
	Active  *Summary  `json:"active_run,omitempty"`
	History []Summary `json:"recent_runs,omitempty"`
}

// Service owns run execution: it serializes runs, persists their history,
// and fans progress events out to listeners.
type Service struct {
	runner *Runner
	repo   *RunRepository

	mu        sync.Mutex
	active    *Summary
	listeners []func(Event)
}

// NewService creates a pipeline service. repo may be nil when no database
// is available (dry-run tooling).
func NewService(runner *Runner, repo *RunRepository) *Service {
	return &Service{
		runner: runner,
		repo:   repo,
	}
}

// AddListener registers a progress-event listener. Listeners must not block.
func (s *Service) AddListener(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// TriggerRun starts a run in the background and returns its ID. Returns
// ErrRunInProgress while another run is active.
func (s *Service) TriggerRun(ctx context.Context, spec RunSpec) (string, error) {
	s.mu.Lock()
	if s.active != nil {
		s.mu.Unlock()
		return "", ErrRunInProgress
	}

	runID := newRunID()
	s.active = &Summary{
		RunID:      runID,
		Seasons:    spec.Seasons,
		SeasonType: spec.SeasonType,
		Status:     RunStatusQueued,
		StartedAt:  time.Now(),
	}
	s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.Create(ctx, runID, spec); err != nil {
			log.Printf("⚠️  Failed to persist run %s: %v", runID, err)
		}
	}

	go s.execute(runID, spec)
	return runID, nil
}

// Execute runs the spec synchronously. Used by one-shot tooling and the
// scheduler; the same serialization rules apply.
func (s *Service) Execute(ctx context.Context, spec RunSpec, reporter Reporter) (Summary, error) {
	s.mu.Lock()
	if s.active != nil {
		s.mu.Unlock()
		return Summary{}, ErrRunInProgress
	}
	runID := newRunID()
	s.active = &Summary{RunID: runID, Status: RunStatusQueued}
	s.mu.Unlock()

	defer s.clearActive()

	if s.repo != nil {
		if err := s.repo.Create(ctx, runID, spec); err != nil {
			log.Printf("⚠️  Failed to persist run %s: %v", runID, err)
		}
		if err := s.repo.MarkRunning(ctx, runID); err != nil {
			log.Printf("⚠️  Failed to mark run %s running: %v", runID, err)
		}
	}

	summary, err := s.runner.Run(ctx, runID, spec, s.fanOut(reporter, runID))

	if s.repo != nil {
		if ferr := s.repo.Finish(context.Background(), summary); ferr != nil {
			log.Printf("⚠️  Failed to record run %s outcome: %v", runID, ferr)
		}
	}
	return summary, err
}

// Status reports the active run and recent history.
func (s *Service) Status(ctx context.Context) (StatusSummary, error) {
	s.mu.Lock()
	var active *Summary
	if s.active != nil {
		cpy := *s.active
		active = &cpy
	}
	s.mu.Unlock()

	status := StatusSummary{Active: active}

	if s.repo != nil {
		runs, err := s.repo.GetRecent(ctx, 10)
		if err != nil {
			return status, err
		}
		for _, run := range runs {
			status.History = append(status.History, Summary{
				RunID:         run.RunID,
				Status:        RunStatus(run.Status),
				SeasonType:    run.SeasonType,
				RecordsLoaded: run.RecordsTotal,
				Error:         run.LastError.String,
				StartedAt:     run.StartedAt.Time,
				CompletedAt:   run.CompletedAt.Time,
			})
		}
	}
	return status, nil
}

func (s *Service) execute(runID string, spec RunSpec) {
	ctx := context.Background()
	defer s.clearActive()

	s.mu.Lock()
	s.active.Status = RunStatusRunning
	s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.MarkRunning(ctx, runID); err != nil {
			log.Printf("⚠️  Failed to mark run %s running: %v", runID, err)
		}
	}

	summary, err := s.runner.Run(ctx, runID, spec, s.fanOut(nil, runID))
	if err != nil {
		log.Printf("❌ Run %s failed: %v", runID, err)
	}

	if s.repo != nil {
		if ferr := s.repo.Finish(ctx, summary); ferr != nil {
			log.Printf("⚠️  Failed to record run %s outcome: %v", runID, ferr)
		}
	}
}

func (s *Service) clearActive() {
	s.mu.Lock()
	s.active = nil
	s.mu.Unlock()
}

func (s *Service) emit(event Event) {
	event.Timestamp = time.Now()

	s.mu.Lock()
	listeners := make([]func(Event), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(event)
	}
}

// fanOut wraps an optional inner reporter with event emission to listeners.
func (s *Service) fanOut(inner Reporter, runID string) Reporter {
	return &fanOutReporter{service: s, inner: inner, runID: runID}
}

type fanOutReporter struct {
	service *Service
	inner   Reporter
	runID   string
}

func (r *fanOutReporter) OnRunStart(spec RunSpec) {
	r.service.emit(Event{Type: "run_started", RunID: r.runID,
		Message: fmt.Sprintf("Run started for %d season(s)", len(spec.Seasons))})
	if r.inner != nil {
		r.inner.OnRunStart(spec)
	}
}

func (r *fanOutReporter) OnStage(stage, message string) {
	r.service.emit(Event{Type: "stage", RunID: r.runID, Stage: stage, Message: message})
	if r.inner != nil {
		r.inner.OnStage(stage, message)
	}
}

func (r *fanOutReporter) OnRunComplete(summary Summary) {
	r.service.emit(Event{Type: "run_completed", RunID: r.runID,
		Message: fmt.Sprintf("Run completed: %d records loaded", summary.RecordsLoaded)})
	if r.inner != nil {
		r.inner.OnRunComplete(summary)
	}
}

func (r *fanOutReporter) OnRunError(err error) {
	r.service.emit(Event{Type: "run_failed", RunID: r.runID, Message: err.Error()})
	if r.inner != nil {
		r.inner.OnRunError(err)
	}
}

func newRunID() string {
	now := time.Now().UTC()
	return fmt.Sprintf("run_%s_%06d", now.Format("20060102_150405"), now.Nanosecond()/1000)
}
