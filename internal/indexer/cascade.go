package indexer

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp-lab/warp-indexer/internal/core/aggregation"
	"github.com/warp-lab/warp-indexer/internal/core/storage"
)

// Cascader rolls finer stored entities up into coarser buckets.
type Cascader struct {
	store  storage.MetricStore
	writer *Writer
}

func NewCascader(store storage.MetricStore, writer *Writer) *Cascader {
	return &Cascader{store: store, writer: writer}
}

// CascadeUp recomputes every bucket of granularity g that contains one of timestamps.
// Each bucket's value is the decimal sum of the `from` entities inside it, read back
// from the store, and is written to `to` even when zero. Timestamps sharing a bucket
// produce a single write.
func (c *Cascader) CascadeUp(ctx context.Context, from, to string, timestamps []int64, g aggregation.Granularity) (int, error) {
	ranges := aggregation.GroupBuckets(timestamps, g)
	if len(ranges) == 0 {
		return 0, nil
	}

	out := make([]aggregation.Aggregate, 0, len(ranges))
	for _, r := range ranges {
		entities, err := c.store.QueryRange(ctx, from, r.Start, r.End)
		if err != nil {
			return 0, wrapSentinel(storage.ErrStoreRead, fmt.Sprintf("cascade %s [%d, %d]", from, r.Start, r.End), err)
		}

		sum := decimal.Zero
		for _, e := range entities {
			sum = sum.Add(e.Value)
		}
		out = append(out, aggregation.Aggregate{BucketStart: r.Start, Value: sum})
	}

	return c.writer.Save(ctx, to, out)
}
