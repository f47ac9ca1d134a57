package projection

import (
	"time"

	"github.com/shopspring/decimal"
)

// MetricQueryRequest represents the query parameters for fetching one metric series.
type MetricQueryRequest struct {
	Metric     string
	Resolution string // hourly | daily | monthly; default hourly
	Start      time.Time
	End        time.Time
}

// MetricValue is one stored bucket in the response.
type MetricValue struct {
	BucketStart time.Time       `json:"bucket_start"`
	BucketEnd   time.Time       `json:"bucket_end"`
	Value       decimal.Decimal `json:"value"`
}

// MetricQueryResponse represents the response for a metric query.
// Buckets absent from Values have no stored entity and read as zero.
type MetricQueryResponse struct {
	Metric     string          `json:"metric"`
	Key        string          `json:"key"`
	Kind       string          `json:"kind"`
	Resolution string          `json:"resolution"`
	Start      time.Time       `json:"start"`
	End        time.Time       `json:"end"`
	Total      decimal.Decimal `json:"total"`
	Values     []MetricValue   `json:"values"`
}

// MetricDescriptor describes one configured metric.
type MetricDescriptor struct {
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	Keys        []string `json:"keys"`
	Fingerprint string   `json:"fingerprint"`
}

// CheckpointResponse reports the indexer's committed height.
type CheckpointResponse struct {
	Indexer   string `json:"indexer"`
	Height    int64  `json:"height"`
	Committed bool   `json:"committed"` // false while only genesis is known
}
