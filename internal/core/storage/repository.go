package storage

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	v1 "github.com/warp-lab/warp-indexer/internal/api/v1"
)

var (
	// ErrSourceUnavailable wraps any failure to fetch events. A pass that hits it aborts.
	ErrSourceUnavailable = errors.New("event source unavailable")

	// ErrStoreWrite wraps a failed metric upsert.
	ErrStoreWrite = errors.New("metric store write failed")

	// ErrStoreRead wraps a failed metric range query.
	ErrStoreRead = errors.New("metric store read failed")

	// ErrCheckpoint wraps a failed checkpoint read or write.
	ErrCheckpoint = errors.New("checkpoint store failed")
)

// MetricEntity is one stored bucket of a metric.
// (MetricKey, BucketStart) is unique; writing it again overwrites Value.
type MetricEntity struct {
	MetricKey   string          `json:"metric_key"`
	BucketStart int64           `json:"bucket_start"`
	Value       decimal.Decimal `json:"value"`
}

// EventSource exposes the upstream event log by partition key and block height.
type EventSource interface {
	// FetchRange returns the events of partitionKey with minHeight <= height <= maxHeight,
	// ordered by height ascending. An empty result is valid.
	FetchRange(ctx context.Context, partitionKey string, minHeight, maxHeight int64) ([]*v1.Event, error)
}

// HourRangeSource is implemented by event sources that can also scan by event time.
// The selector uses it to recompute hour buckets that straddle two passes.
type HourRangeSource interface {
	// FetchTimeRange returns the events of partitionKey with start <= timestamp <= end
	// and height <= maxHeight, ordered by height ascending.
	FetchTimeRange(ctx context.Context, partitionKey string, start, end, maxHeight int64) ([]*v1.Event, error)
}

// TipSource reports the highest height the event source has observed.
type TipSource interface {
	TipHeight(ctx context.Context) (int64, error)
}

// MetricStore is the partitioned key-value store holding metric entities.
// It must provide read-after-write consistency: a QueryRange issued after Put
// returned must observe the written entities.
type MetricStore interface {
	// Put upserts entities. Writing the same entities twice leaves the same state.
	Put(ctx context.Context, entities []MetricEntity) error

	// QueryRange returns the entities of metricKey with
	// startBucket <= bucket_start <= endBucket, ordered by bucket_start ASC.
	QueryRange(ctx context.Context, metricKey string, startBucket, endBucket int64) ([]MetricEntity, error)
}

// CheckpointStore persists the last processed height per indexer.
type CheckpointStore interface {
	// Get returns the stored height. found is false when nothing was stored yet.
	Get(ctx context.Context, name string) (height int64, found bool, err error)

	// Set overwrites the stored height unconditionally.
	Set(ctx context.Context, name string, height int64) error
}
