package indexer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pass and pipeline counters, partitioned by indexer name.

var (
	// Driver
	PassesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "warp",
		Subsystem: "indexer",
		Name:      "passes_total",
		Help:      "Total passes by terminal state",
	}, []string{"indexer", "state"})

	PassDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "warp",
		Subsystem: "indexer",
		Name:      "pass_duration_seconds",
		Help:      "Pass duration from checkpoint read to checkpoint commit",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"indexer"})

	CheckpointHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "warp",
		Subsystem: "indexer",
		Name:      "checkpoint_height",
		Help:      "Last committed checkpoint height",
	}, []string{"indexer"})

	// Pipelines
	EntitiesWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "warp",
		Subsystem: "pipeline",
		Name:      "entities_written_total",
		Help:      "Total metric entities upserted (hourly and cascaded)",
	}, []string{"indexer", "metric"})

	PipelineErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "warp",
		Subsystem: "pipeline",
		Name:      "errors_total",
		Help:      "Total pipeline failures",
	}, []string{"indexer", "metric"})

	// Scheduler
	SchedulerTicksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "warp",
		Subsystem: "scheduler",
		Name:      "ticks_total",
		Help:      "Total scheduler ticks",
	}, []string{"indexer"})
)
