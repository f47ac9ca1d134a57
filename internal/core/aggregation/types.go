package aggregation

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Aggregate is one bucket of a reduced event sequence.
// BucketStart is unix seconds, already truncated to the bucket boundary.
type Aggregate struct {
	BucketStart int64
	Value       decimal.Decimal
}

// Timestamps returns the bucket starts of aggs in order.
func Timestamps(aggs []Aggregate) []int64 {
	out := make([]int64, 0, len(aggs))
	for _, a := range aggs {
		out = append(out, a.BucketStart)
	}
	return out
}

// MergeByBucket combines aggregate sequences by adding values that share a bucket start.
// A bucket present in only some inputs counts as zero in the others. The result is
// ordered by BucketStart ascending.
func MergeByBucket(sets ...[]Aggregate) []Aggregate {
	sums := make(map[int64]decimal.Decimal)
	for _, set := range sets {
		for _, a := range set {
			if cur, ok := sums[a.BucketStart]; ok {
				sums[a.BucketStart] = cur.Add(a.Value)
				continue
			}
			sums[a.BucketStart] = a.Value
		}
	}

	out := make([]Aggregate, 0, len(sums))
	for start, value := range sums {
		out = append(out, Aggregate{BucketStart: start, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BucketStart < out[j].BucketStart })
	return out
}
