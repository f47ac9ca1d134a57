package indexer

import (
	"context"
	"fmt"
	"sort"

	v1 "github.com/warp-lab/warp-indexer/internal/api/v1"
	"github.com/warp-lab/warp-indexer/internal/core/aggregation"
	"github.com/warp-lab/warp-indexer/internal/core/storage"
)

// Selector groups events of a height window into hour buckets and reduces each bucket.
type Selector struct {
	source storage.EventSource
	hours  storage.HourRangeSource
}

// NewSelector returns a Selector over source. When completeBuckets is set and source
// also implements storage.HourRangeSource, every touched hour is recomputed from all of
// its events up to the window's max height. Without this an hour that straddles two
// passes is overwritten with only the later pass's share of events.
func NewSelector(source storage.EventSource, completeBuckets bool) *Selector {
	s := &Selector{source: source}
	if completeBuckets {
		if hr, ok := source.(storage.HourRangeSource); ok {
			s.hours = hr
		}
	}
	return s
}

// CompletesBuckets reports whether touched hours are recomputed in full.
func (s *Selector) CompletesBuckets() bool {
	return s.hours != nil
}

// SelectHourlyCounts counts events per hour bucket over [minHeight, maxHeight].
func (s *Selector) SelectHourlyCounts(ctx context.Context, partitionKey string, minHeight, maxHeight int64) ([]aggregation.Aggregate, error) {
	return s.SelectHourlyReduce(ctx, partitionKey, minHeight, maxHeight, aggregation.Count)
}

// SelectHourlyReduce applies reduce to the events of each hour bucket over
// [minHeight, maxHeight]. Buckets are ordered by start; hours without events are absent.
func (s *Selector) SelectHourlyReduce(
	ctx context.Context,
	partitionKey string,
	minHeight, maxHeight int64,
	reduce aggregation.Reducer,
) ([]aggregation.Aggregate, error) {
	events, err := s.source.FetchRange(ctx, partitionKey, minHeight, maxHeight)
	if err != nil {
		return nil, wrapSentinel(storage.ErrSourceUnavailable, fmt.Sprintf("select %s", partitionKey), err)
	}

	starts, buckets := groupByHour(events)

	if s.hours != nil {
		for _, start := range starts {
			full, err := s.fetchHour(ctx, partitionKey, start, maxHeight)
			if err != nil {
				return nil, err
			}
			buckets[start] = full
		}
	}

	out := make([]aggregation.Aggregate, 0, len(starts))
	for _, start := range starts {
		out = append(out, aggregation.Aggregate{
			BucketStart: start,
			Value:       reduce(buckets[start]),
		})
	}
	return out, nil
}

// TouchedHours returns the sorted hour starts holding events of partitionKey
// in [minHeight, maxHeight].
func (s *Selector) TouchedHours(ctx context.Context, partitionKey string, minHeight, maxHeight int64) ([]int64, error) {
	events, err := s.source.FetchRange(ctx, partitionKey, minHeight, maxHeight)
	if err != nil {
		return nil, wrapSentinel(storage.ErrSourceUnavailable, fmt.Sprintf("select %s", partitionKey), err)
	}
	starts, _ := groupByHour(events)
	return starts, nil
}

// SelectHours reduces, for each hour start in hours, every event of partitionKey in that
// hour with height <= maxHeight. Every requested hour is returned; an hour without events
// reduces over an empty slice. It requires bucket completion.
func (s *Selector) SelectHours(
	ctx context.Context,
	partitionKey string,
	hours []int64,
	maxHeight int64,
	reduce aggregation.Reducer,
) ([]aggregation.Aggregate, error) {
	if s.hours == nil {
		return nil, fmt.Errorf("select %s hours: event source does not support time range scans", partitionKey)
	}
	if reduce == nil {
		reduce = aggregation.Count
	}

	out := make([]aggregation.Aggregate, 0, len(hours))
	for _, start := range hours {
		events, err := s.fetchHour(ctx, partitionKey, start, maxHeight)
		if err != nil {
			return nil, err
		}
		out = append(out, aggregation.Aggregate{
			BucketStart: start,
			Value:       reduce(events),
		})
	}
	return out, nil
}

func (s *Selector) fetchHour(ctx context.Context, partitionKey string, start, maxHeight int64) ([]*v1.Event, error) {
	end := aggregation.BucketEnd(start, aggregation.Hour)
	events, err := s.hours.FetchTimeRange(ctx, partitionKey, start, end, maxHeight)
	if err != nil {
		return nil, wrapSentinel(storage.ErrSourceUnavailable, fmt.Sprintf("complete %s hour %d", partitionKey, start), err)
	}
	return events, nil
}

func groupByHour(events []*v1.Event) ([]int64, map[int64][]*v1.Event) {
	buckets := make(map[int64][]*v1.Event)
	for _, evt := range events {
		start := aggregation.BucketStart(evt.Timestamp, aggregation.Hour)
		buckets[start] = append(buckets[start], evt)
	}

	starts := make([]int64, 0, len(buckets))
	for start := range buckets {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })
	return starts, buckets
}
