package indexer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/warp-lab/warp-indexer/internal/core/storage"
)

// SchedulerOptions controls how passes are triggered.
type SchedulerOptions struct {
	Interval      time.Duration
	GenesisHeight int64
	Confirmations int64 // blocks behind the tip left unprocessed
}

func (o SchedulerOptions) normalized() SchedulerOptions {
	n := o
	if n.Interval <= 0 {
		n.Interval = time.Minute
	}
	if n.Confirmations < 0 {
		n.Confirmations = 0
	}
	return n
}

// PassRunner is the driver as seen by the scheduler.
type PassRunner interface {
	RunPass(ctx context.Context, req PassRequest) (PassResult, error)
}

// Scheduler invokes one pass per tick with the current height taken from the event log tip.
// Passes never overlap: the next tick waits for the running pass to return.
type Scheduler struct {
	name   string
	driver PassRunner
	tip    storage.TipSource
	opts   SchedulerOptions
}

func NewScheduler(name string, driver PassRunner, tip storage.TipSource, opts SchedulerOptions) *Scheduler {
	return &Scheduler{
		name:   name,
		driver: driver,
		tip:    tip,
		opts:   opts.normalized(),
	}
}

// Start runs a pass immediately and then on every tick until ctx is cancelled.
// Failed passes are logged and retried on the next tick.
func (s *Scheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	slog.Info("[Scheduler] Starting indexer scheduler",
		"indexer", s.name,
		"interval", s.opts.Interval,
		"genesis_height", s.opts.GenesisHeight,
		"confirmations", s.opts.Confirmations,
	)

	s.tick(ctx)

	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
		case <-ctx.Done():
			slog.Info("[Scheduler] Stopping (context cancelled)", "indexer", s.name)
			return nil
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	SchedulerTicksTotal.WithLabelValues(s.name).Inc()

	if _, err := s.RunOnce(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		slog.Error("[Scheduler] Pass failed, will retry on next tick",
			"indexer", s.name,
			"error", err,
		)
	}
}

// RunOnce resolves the current height and performs a single pass.
func (s *Scheduler) RunOnce(ctx context.Context) (PassResult, error) {
	current, err := s.CurrentHeight(ctx)
	if err != nil {
		return PassResult{}, err
	}
	return s.driver.RunPass(ctx, PassRequest{
		GenesisHeight: s.opts.GenesisHeight,
		CurrentHeight: current,
	})
}

// CurrentHeight is the tip height minus confirmations, never below genesis.
func (s *Scheduler) CurrentHeight(ctx context.Context) (int64, error) {
	tip, err := s.tip.TipHeight(ctx)
	if err != nil {
		return 0, fmt.Errorf("resolve tip height: %w", err)
	}
	current := tip - s.opts.Confirmations
	if current < s.opts.GenesisHeight {
		current = s.opts.GenesisHeight
	}
	return current, nil
}
