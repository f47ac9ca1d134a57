package indexer

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	v1 "github.com/warp-lab/warp-indexer/internal/api/v1"
	"github.com/warp-lab/warp-indexer/internal/core/metric"
	"github.com/warp-lab/warp-indexer/internal/core/storage"
	"github.com/warp-lab/warp-indexer/internal/core/storage/memory"
)

const testNamespace = "warp"

func unix(t *testing.T, value string) int64 {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts.Unix()
}

func newEvent(action string, height, timestamp int64, payload map[string]interface{}) *v1.Event {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	return &v1.Event{
		PartitionKey: metric.ControllerPartition(action),
		Height:       height,
		Timestamp:    timestamp,
		Payload:      payload,
	}
}

// storedValues returns bucket start -> decimal string for one metric key.
func storedValues(t *testing.T, store storage.MetricStore, key string) map[int64]string {
	t.Helper()
	entities, err := store.QueryRange(context.Background(), key, math.MinInt64, math.MaxInt64)
	require.NoError(t, err)

	out := make(map[int64]string, len(entities))
	for _, e := range entities {
		out[e.BucketStart] = e.Value.String()
	}
	return out
}

// harness wires the full indexer over in-memory stores.
type harness struct {
	events      *memory.EventLog
	metrics     *flakyMetricStore
	checkpoints *memory.CheckpointStore
	driver      *Driver
}

func newHarness(t *testing.T, completeBuckets bool, events ...*v1.Event) *harness {
	t.Helper()

	h := &harness{
		events:      memory.NewEventLog(events...),
		metrics:     &flakyMetricStore{MetricStore: memory.NewMetricStore()},
		checkpoints: memory.NewCheckpointStore(),
	}

	writer := NewWriter(h.metrics)
	pipelines, err := NewPipelines(
		testNamespace,
		metric.DefaultDefinitions(),
		NewSelector(h.events, completeBuckets),
		writer,
		NewCascader(h.metrics, writer),
	)
	require.NoError(t, err)

	h.driver = NewDriver("analytics", NewCheckpointTracker(h.checkpoints, "analytics"), Runners(pipelines))
	return h
}

func (h *harness) checkpoint(t *testing.T) (int64, bool) {
	t.Helper()
	height, found, err := h.checkpoints.Get(context.Background(), "analytics")
	require.NoError(t, err)
	return height, found
}

var errInjected = errors.New("injected write failure")

// flakyMetricStore fails every Put that touches failKey.
type flakyMetricStore struct {
	*memory.MetricStore

	mu      sync.Mutex
	failKey string
}

func (s *flakyMetricStore) failOn(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failKey = key
}

func (s *flakyMetricStore) Put(ctx context.Context, entities []storage.MetricEntity) error {
	s.mu.Lock()
	failKey := s.failKey
	s.mu.Unlock()

	for _, e := range entities {
		if failKey != "" && e.MetricKey == failKey {
			return errInjected
		}
	}
	return s.MetricStore.Put(ctx, entities)
}

// heightOnlySource hides the HourRangeSource capability of the wrapped log.
type heightOnlySource struct {
	log *memory.EventLog
}

func (s heightOnlySource) FetchRange(ctx context.Context, partitionKey string, minHeight, maxHeight int64) ([]*v1.Event, error) {
	return s.log.FetchRange(ctx, partitionKey, minHeight, maxHeight)
}
