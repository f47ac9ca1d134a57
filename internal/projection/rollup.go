package projection

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp-lab/warp-indexer/internal/core/aggregation"
	"github.com/warp-lab/warp-indexer/internal/core/storage"
)

// toValues converts stored entities into response buckets with explicit bounds.
func toValues(entities []storage.MetricEntity, g aggregation.Granularity) []MetricValue {
	values := make([]MetricValue, 0, len(entities))
	for _, e := range entities {
		values = append(values, MetricValue{
			BucketStart: time.Unix(e.BucketStart, 0).UTC(),
			BucketEnd:   time.Unix(aggregation.BucketEnd(e.BucketStart, g), 0).UTC(),
			Value:       e.Value,
		})
	}
	return values
}

// sumValues adds every bucket; all stored metrics are additive.
func sumValues(values []MetricValue) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v.Value)
	}
	return total
}
