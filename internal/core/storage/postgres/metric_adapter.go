package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp-lab/warp-indexer/internal/core/storage"
)

// MetricAdapter implements storage.MetricStore on the analytics table.
// Each Put runs in one transaction: a batch is either fully visible or not at all,
// and a committed Put is visible to every later QueryRange.
type MetricAdapter struct {
	db    *sql.DB
	nowFn func() time.Time
}

// NewMetricAdapter creates a MetricAdapter sharing the given connection.
func NewMetricAdapter(db *sql.DB) *MetricAdapter {
	return &MetricAdapter{
		db: db,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Put upserts every entity, overwriting the value of existing buckets.
func (a *MetricAdapter) Put(ctx context.Context, entities []storage.MetricEntity) error {
	if len(entities) == 0 {
		return nil
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %w", storage.ErrStoreWrite, err)
	}
	defer tx.Rollback() //nolint:errcheck

	upsertStmt, err := tx.PrepareContext(ctx, queryUpsertMetric)
	if err != nil {
		return fmt.Errorf("%w: prepare upsert: %w", storage.ErrStoreWrite, err)
	}
	defer upsertStmt.Close()

	now := a.nowFn()
	for _, e := range entities {
		if _, err := upsertStmt.ExecContext(ctx, e.MetricKey, e.BucketStart, e.Value, now); err != nil {
			return fmt.Errorf("%w: upsert %s@%d: %w", storage.ErrStoreWrite, e.MetricKey, e.BucketStart, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", storage.ErrStoreWrite, err)
	}

	slog.Debug("[MetricAdapter] Upserted", "entities", len(entities), "metric_key", entities[0].MetricKey)
	return nil
}

// QueryRange returns the entities of metricKey with startBucket <= bucket_start <= endBucket.
func (a *MetricAdapter) QueryRange(ctx context.Context, metricKey string, startBucket, endBucket int64) ([]storage.MetricEntity, error) {
	rows, err := a.db.QueryContext(ctx, queryRangeMetrics, metricKey, startBucket, endBucket)
	if err != nil {
		return nil, fmt.Errorf("%w: query %s [%d, %d]: %w", storage.ErrStoreRead, metricKey, startBucket, endBucket, err)
	}
	defer rows.Close()

	var results []storage.MetricEntity
	for rows.Next() {
		var e storage.MetricEntity
		var valueStr string

		if err := rows.Scan(&e.MetricKey, &e.BucketStart, &valueStr); err != nil {
			return nil, fmt.Errorf("%w: scan row: %w", storage.ErrStoreRead, err)
		}

		value, err := decimal.NewFromString(valueStr)
		if err != nil {
			return nil, fmt.Errorf("%w: parse value %q: %w", storage.ErrStoreRead, valueStr, err)
		}
		e.Value = value

		results = append(results, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate rows: %w", storage.ErrStoreRead, err)
	}

	return results, nil
}

// CheckpointAdapter implements storage.CheckpointStore on the indexer_state table.
type CheckpointAdapter struct {
	db    *sql.DB
	nowFn func() time.Time
}

// NewCheckpointAdapter creates a CheckpointAdapter sharing the given connection.
func NewCheckpointAdapter(db *sql.DB) *CheckpointAdapter {
	return &CheckpointAdapter{
		db: db,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Get returns the stored height for name; found is false when no row exists yet.
func (a *CheckpointAdapter) Get(ctx context.Context, name string) (int64, bool, error) {
	var height int64
	err := a.db.QueryRowContext(ctx, queryReadCheckpoint, name).Scan(&height)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%w: read %s: %w", storage.ErrCheckpoint, name, err)
	}
	return height, true, nil
}

// Set overwrites the stored height for name.
func (a *CheckpointAdapter) Set(ctx context.Context, name string, height int64) error {
	if _, err := a.db.ExecContext(ctx, queryWriteCheckpoint, name, height, a.nowFn()); err != nil {
		return fmt.Errorf("%w: write %s=%d: %w", storage.ErrCheckpoint, name, height, err)
	}
	return nil
}

var (
	_ storage.EventSource     = (*Adapter)(nil)
	_ storage.HourRangeSource = (*Adapter)(nil)
	_ storage.TipSource       = (*Adapter)(nil)
	_ storage.MetricStore     = (*MetricAdapter)(nil)
	_ storage.CheckpointStore = (*CheckpointAdapter)(nil)
)
