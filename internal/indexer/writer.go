package indexer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/warp-lab/warp-indexer/internal/core/aggregation"
	"github.com/warp-lab/warp-indexer/internal/core/storage"
)

// Writer is the only write path into the metric store.
type Writer struct {
	store storage.MetricStore
}

func NewWriter(store storage.MetricStore) *Writer {
	return &Writer{store: store}
}

// Save upserts one entity per aggregate under metricKey and returns how many were written.
// Saving the same aggregates twice leaves the store unchanged.
func (w *Writer) Save(ctx context.Context, metricKey string, aggs []aggregation.Aggregate) (int, error) {
	if len(aggs) == 0 {
		return 0, nil
	}

	entities := make([]storage.MetricEntity, 0, len(aggs))
	for _, a := range aggs {
		entities = append(entities, storage.MetricEntity{
			MetricKey:   metricKey,
			BucketStart: a.BucketStart,
			Value:       a.Value,
		})
		slog.Info("[Indexer] Save",
			"timestamp", a.BucketStart,
			"type", metricKey,
			"total", a.Value.String(),
		)
	}

	if err := w.store.Put(ctx, entities); err != nil {
		return 0, wrapSentinel(storage.ErrStoreWrite, fmt.Sprintf("save %s", metricKey), err)
	}
	return len(entities), nil
}
