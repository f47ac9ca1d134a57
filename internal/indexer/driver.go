package indexer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State is the lifecycle state of the driver's most recent pass.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCommitted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCommitted:
		return "committed"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Runner is one metric pipeline as seen by the driver.
type Runner interface {
	Name() string
	Run(ctx context.Context, minHeight, maxHeight int64) (int, error)
}

// PassRequest is the input of one pass.
type PassRequest struct {
	GenesisHeight int64
	CurrentHeight int64
}

// PassResult describes a finished (or rejected) pass.
type PassResult struct {
	RunID           string
	State           State
	FromHeight      int64
	ToHeight        int64
	EntitiesWritten int
	Duration        time.Duration
}

// Driver runs passes: read checkpoint, run every pipeline over [checkpoint, current],
// then advance the checkpoint to current. The checkpoint moves only when every pipeline
// succeeds. Entities written by a failed pass stay in place and are overwritten by the
// retry, which recomputes the same buckets.
type Driver struct {
	name       string
	checkpoint *CheckpointTracker
	pipelines  []Runner

	mu    sync.Mutex // serializes passes
	state State
	nowFn func() time.Time
}

func NewDriver(name string, checkpoint *CheckpointTracker, pipelines []Runner) *Driver {
	return &Driver{
		name:       name,
		checkpoint: checkpoint,
		pipelines:  pipelines,
		state:      StateIdle,
		nowFn:      time.Now,
	}
}

// State returns the state of the last pass. It blocks while a pass is running.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// RunPass performs exactly one pass. Concurrent callers are serialized.
func (d *Driver) RunPass(ctx context.Context, req PassRequest) (PassResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	started := d.nowFn()
	result := PassResult{
		RunID:    uuid.NewString(),
		State:    d.state,
		ToHeight: req.CurrentHeight,
	}

	cp, err := d.checkpoint.Get(ctx, req.GenesisHeight)
	if err != nil {
		return d.fail(result, started, err)
	}
	result.FromHeight = cp.Height

	if req.CurrentHeight < cp.Height {
		slog.Warn("[Driver] Rejected pass with current height below checkpoint",
			"indexer", d.name,
			"run_id", result.RunID,
			"checkpoint", cp.Height,
			"current", req.CurrentHeight,
		)
		return result, fmt.Errorf("%w: current %d < checkpoint %d", ErrInvalidWindow, req.CurrentHeight, cp.Height)
	}

	d.state = StateRunning
	slog.Info("[Driver] Starting pass",
		"indexer", d.name,
		"run_id", result.RunID,
		"from_height", cp.Height,
		"to_height", req.CurrentHeight,
		"pipelines", len(d.pipelines),
	)

	for _, p := range d.pipelines {
		n, err := p.Run(ctx, cp.Height, req.CurrentHeight)
		result.EntitiesWritten += n
		EntitiesWritten.WithLabelValues(d.name, p.Name()).Add(float64(n))
		if err != nil {
			PipelineErrors.WithLabelValues(d.name, p.Name()).Inc()
			return d.fail(result, started, fmt.Errorf("pipeline %s: %w", p.Name(), err))
		}
	}

	if err := d.checkpoint.Set(ctx, Checkpoint{Height: req.CurrentHeight}); err != nil {
		return d.fail(result, started, err)
	}

	d.state = StateCommitted
	result.State = StateCommitted
	result.Duration = d.nowFn().Sub(started)

	PassesTotal.WithLabelValues(d.name, StateCommitted.String()).Inc()
	PassDuration.WithLabelValues(d.name).Observe(result.Duration.Seconds())
	CheckpointHeight.WithLabelValues(d.name).Set(float64(req.CurrentHeight))

	slog.Info("[Driver] Pass committed",
		"indexer", d.name,
		"run_id", result.RunID,
		"checkpoint", fmt.Sprintf("%d -> %d", cp.Height, req.CurrentHeight),
		"entities_written", result.EntitiesWritten,
		"duration", result.Duration,
	)
	return result, nil
}

func (d *Driver) fail(result PassResult, started time.Time, err error) (PassResult, error) {
	d.state = StateFailed
	result.State = StateFailed
	result.Duration = d.nowFn().Sub(started)

	PassesTotal.WithLabelValues(d.name, StateFailed.String()).Inc()
	PassDuration.WithLabelValues(d.name).Observe(result.Duration.Seconds())

	slog.Error("[Driver] Pass failed, checkpoint not advanced",
		"indexer", d.name,
		"run_id", result.RunID,
		"from_height", result.FromHeight,
		"to_height", result.ToHeight,
		"entities_written", result.EntitiesWritten,
		"error", err,
	)
	return result, err
}
