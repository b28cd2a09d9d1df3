package sim

import (
	"context"
	"errors"
	"sync"

	"github.com/Pain0430/lead-network-toxicology/internal/kinetics"
)

// Sweeper runs a batch of independent scenarios against one shared,
// read-only model and aggregates their outcomes keyed by scenario ID.
// One scenario's numerical failure never aborts its siblings; results are
// identical regardless of scheduling order.
type Sweeper struct {
	model *kinetics.Model
	cfg   RunConfig
}

func NewSweeper(model *kinetics.Model, cfg RunConfig) *Sweeper {
	return &Sweeper{model: model, cfg: cfg}
}

// Run executes every scenario and returns the aggregated SweepResult.
// Configuration problems (invalid time span or grid, bad overrides,
// duplicate scenario IDs) are detected before any integration starts and
// abort the whole sweep with no partial results. Cancellation via ctx marks
// still-running scenarios Cancelled, distinct from numerical failure.
func (s *Sweeper) Run(ctx context.Context, scens []Scenario) (*SweepResult, error) {
	if len(scens) == 0 {
		return nil, configf("sweep", "no scenarios")
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(scens))
	for _, sc := range scens {
		if sc.ID == "" {
			return nil, configf("sweep", "scenario with empty ID")
		}
		if seen[sc.ID] {
			return nil, configf("sweep", "duplicate scenario ID %q", sc.ID)
		}
		seen[sc.ID] = true
		if _, _, err := sc.resolve(s.model); err != nil {
			return nil, err
		}
	}

	workers := s.cfg.Workers
	if workers <= 0 || workers > len(scens) {
		workers = len(scens)
	}
	sem := make(chan struct{}, workers)

	outcomes := make([]*Outcome, len(scens))
	var wg sync.WaitGroup
	for i := range scens {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			outcomes[idx] = RunOne(ctx, s.model, s.cfg, scens[idx])
		}(i)
	}
	wg.Wait()

	result := &SweepResult{
		Model:    s.model.Name(),
		Outcomes: make(map[string]*Outcome, len(scens)),
	}
	for _, o := range outcomes {
		result.Outcomes[o.Scenario.ID] = o
	}
	return result, nil
}

// RunOne integrates a single scenario and classifies the result. It is the
// unit of work the Sweeper fans out, exported so callers driving scenarios
// one at a time (live views) share the same outcome classification.
func RunOne(ctx context.Context, model *kinetics.Model, cfg RunConfig, sc Scenario) *Outcome {
	out := &Outcome{Scenario: sc}

	if err := ctx.Err(); err != nil {
		out.Status = StatusCancelled
		out.Reason = "sweep cancelled before start: " + err.Error()
		return out
	}

	runner := NewRunner(model, cfg)
	series, err := runner.Run(ctx, sc)
	out.Stats = runner.Stats()

	switch {
	case err == nil:
		out.Status = StatusCompleted
		out.Series = series
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		out.Status = StatusCancelled
		out.Reason = "sweep cancelled: " + err.Error()
	default:
		out.Status = StatusFailed
		out.Reason = err.Error()
	}
	return out
}
