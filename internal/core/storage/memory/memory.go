package memory

import (
	"context"
	"sort"
	"sync"

	v1 "github.com/warp-lab/warp-indexer/internal/api/v1"
	"github.com/warp-lab/warp-indexer/internal/core/storage"
)

// EventLog is an in-memory storage.EventSource.
// Used by tests that run passes against a fixed event set.
type EventLog struct {
	mu     sync.RWMutex
	events map[string][]*v1.Event
}

// NewEventLog creates an event log holding the given events.
func NewEventLog(events ...*v1.Event) *EventLog {
	l := &EventLog{events: make(map[string][]*v1.Event)}
	l.Append(events...)
	return l
}

// Append adds events, keeping each partition ordered by height.
func (l *EventLog) Append(events ...*v1.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	touched := make(map[string]struct{})
	for _, evt := range events {
		clone := *evt
		l.events[evt.PartitionKey] = append(l.events[evt.PartitionKey], &clone)
		touched[evt.PartitionKey] = struct{}{}
	}
	for key := range touched {
		partition := l.events[key]
		sort.SliceStable(partition, func(i, j int) bool { return partition[i].Height < partition[j].Height })
	}
}

func (l *EventLog) FetchRange(_ context.Context, partitionKey string, minHeight, maxHeight int64) ([]*v1.Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []*v1.Event
	for _, evt := range l.events[partitionKey] {
		if evt.Height < minHeight || evt.Height > maxHeight {
			continue
		}
		clone := *evt
		out = append(out, &clone)
	}
	return out, nil
}

func (l *EventLog) FetchTimeRange(_ context.Context, partitionKey string, start, end, maxHeight int64) ([]*v1.Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []*v1.Event
	for _, evt := range l.events[partitionKey] {
		if evt.Height > maxHeight || evt.Timestamp < start || evt.Timestamp > end {
			continue
		}
		clone := *evt
		out = append(out, &clone)
	}
	return out, nil
}

// TipHeight returns the highest height across all partitions, or 0 when empty.
func (l *EventLog) TipHeight(_ context.Context) (int64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var tip int64
	for _, partition := range l.events {
		if n := len(partition); n > 0 && partition[n-1].Height > tip {
			tip = partition[n-1].Height
		}
	}
	return tip, nil
}

type entityKey struct {
	metricKey   string
	bucketStart int64
}

// MetricStore is an in-memory storage.MetricStore with upsert semantics.
type MetricStore struct {
	mu       sync.RWMutex
	entities map[entityKey]storage.MetricEntity
}

// NewMetricStore creates an empty metric store.
func NewMetricStore() *MetricStore {
	return &MetricStore{entities: make(map[entityKey]storage.MetricEntity)}
}

func (s *MetricStore) Put(_ context.Context, entities []storage.MetricEntity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range entities {
		s.entities[entityKey{metricKey: e.MetricKey, bucketStart: e.BucketStart}] = e
	}
	return nil
}

func (s *MetricStore) QueryRange(_ context.Context, metricKey string, startBucket, endBucket int64) ([]storage.MetricEntity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []storage.MetricEntity
	for k, e := range s.entities {
		if k.metricKey != metricKey || k.bucketStart < startBucket || k.bucketStart > endBucket {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BucketStart < out[j].BucketStart })
	return out, nil
}

// Snapshot returns every stored entity ordered by metric key then bucket start.
func (s *MetricStore) Snapshot() []storage.MetricEntity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]storage.MetricEntity, 0, len(s.entities))
	for _, e := range s.entities {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MetricKey != out[j].MetricKey {
			return out[i].MetricKey < out[j].MetricKey
		}
		return out[i].BucketStart < out[j].BucketStart
	})
	return out
}

// CheckpointStore is an in-memory storage.CheckpointStore.
type CheckpointStore struct {
	mu      sync.RWMutex
	heights map[string]int64
}

// NewCheckpointStore creates an empty checkpoint store.
func NewCheckpointStore() *CheckpointStore {
	return &CheckpointStore{heights: make(map[string]int64)}
}

func (s *CheckpointStore) Get(_ context.Context, name string) (int64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.heights[name]
	return h, ok, nil
}

func (s *CheckpointStore) Set(_ context.Context, name string, height int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.heights[name] = height
	return nil
}

var (
	_ storage.EventSource     = (*EventLog)(nil)
	_ storage.HourRangeSource = (*EventLog)(nil)
	_ storage.TipSource       = (*EventLog)(nil)
	_ storage.MetricStore     = (*MetricStore)(nil)
	_ storage.CheckpointStore = (*CheckpointStore)(nil)
)
