package indexer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	v1 "github.com/warp-lab/warp-indexer/internal/api/v1"
	"github.com/warp-lab/warp-indexer/internal/core/aggregation"
	"github.com/warp-lab/warp-indexer/internal/core/storage"
	storagemocks "github.com/warp-lab/warp-indexer/internal/mocks/storage"
)

func TestDriver_CreateJobScenario(t *testing.T) {
	h := newHarness(t, true,
		newEvent("create_job", 100, 3600, nil),
		newEvent("create_job", 101, 3650, nil),
		newEvent("execute_reply", 102, 7200, map[string]interface{}{"sub_action": "recur_job"}),
	)

	result, err := h.driver.RunPass(context.Background(), PassRequest{GenesisHeight: 50, CurrentHeight: 200})
	require.NoError(t, err)

	assert.Equal(t, StateCommitted, result.State)
	assert.Equal(t, int64(50), result.FromHeight)
	assert.Equal(t, int64(200), result.ToHeight)
	assert.Equal(t, 4, result.EntitiesWritten)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, StateCommitted, h.driver.State())

	assert.Equal(t, map[int64]string{3600: "2", 7200: "1"}, storedValues(t, h.metrics, "warp:create_job_count:hourly"))
	assert.Equal(t, map[int64]string{0: "3"}, storedValues(t, h.metrics, "warp:create_job_count:daily"))

	height, found := h.checkpoint(t)
	require.True(t, found)
	assert.Equal(t, int64(200), height)
}

func TestDriver_IdempotentOverSameWindow(t *testing.T) {
	h := newHarness(t, true, mixedEvents(t)...)

	_, err := h.driver.RunPass(context.Background(), PassRequest{GenesisHeight: 0, CurrentHeight: 1000})
	require.NoError(t, err)
	first := h.metrics.Snapshot()

	// rewind and replay the exact same window
	require.NoError(t, h.checkpoints.Set(context.Background(), "analytics", 0))
	_, err = h.driver.RunPass(context.Background(), PassRequest{GenesisHeight: 0, CurrentHeight: 1000})
	require.NoError(t, err)

	assert.Equal(t, snapshotStrings(first), snapshotStrings(h.metrics.Snapshot()))
}

func TestDriver_CascadeConsistency(t *testing.T) {
	h := newHarness(t, true, mixedEvents(t)...)

	// process in several passes so buckets get revisited
	for _, current := range []int64{120, 250, 400, 1000} {
		_, err := h.driver.RunPass(context.Background(), PassRequest{GenesisHeight: 0, CurrentHeight: current})
		require.NoError(t, err)
	}

	for _, name := range []string{"create_job_count", "execute_job_count", "update_job_count", "prioritize_job_count", "reward_amount"} {
		hourly := storedValues(t, h.metrics, fmt.Sprintf("warp:%s:hourly", name))
		daily := storedValues(t, h.metrics, fmt.Sprintf("warp:%s:daily", name))
		monthly := storedValues(t, h.metrics, fmt.Sprintf("warp:%s:monthly", name))

		assertRollsUp(t, name, hourly, daily, aggregation.Day)
		assertRollsUp(t, name, daily, monthly, aggregation.Month)
	}

	assert.Equal(t, map[int64]string{
		unix(t, "2024-01-31T23:00:00Z"): "2",
		unix(t, "2024-02-01T00:00:00Z"): "1",
		unix(t, "2024-02-29T12:00:00Z"): "1",
		unix(t, "2024-12-31T23:00:00Z"): "1",
		unix(t, "2025-01-01T00:00:00Z"): "1",
	}, storedValues(t, h.metrics, "warp:execute_job_count:hourly"))

	assert.Equal(t, map[int64]string{
		unix(t, "2024-01-01T00:00:00Z"): "2",
		unix(t, "2024-02-01T00:00:00Z"): "2",
		unix(t, "2024-12-01T00:00:00Z"): "1",
		unix(t, "2025-01-01T00:00:00Z"): "1",
	}, storedValues(t, h.metrics, "warp:execute_job_count:monthly"))

	assert.Equal(t, map[int64]string{
		unix(t, "2024-01-01T00:00:00Z"): "1.5",
		unix(t, "2024-02-01T00:00:00Z"): "100000000000000000000000.25",
		unix(t, "2024-12-01T00:00:00Z"): "0",
		unix(t, "2025-01-01T00:00:00Z"): "0.000001",
	}, storedValues(t, h.metrics, "warp:reward_amount:monthly"))
}

func TestDriver_StraddledHourAcrossPasses(t *testing.T) {
	h := newHarness(t, true,
		newEvent("execute_job", 10, 3600, nil),
		newEvent("execute_job", 20, 3700, nil),
	)

	_, err := h.driver.RunPass(context.Background(), PassRequest{GenesisHeight: 0, CurrentHeight: 15})
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{3600: "1"}, storedValues(t, h.metrics, "warp:execute_job_count:hourly"))

	_, err = h.driver.RunPass(context.Background(), PassRequest{GenesisHeight: 0, CurrentHeight: 25})
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{3600: "2"}, storedValues(t, h.metrics, "warp:execute_job_count:hourly"))
	assert.Equal(t, map[int64]string{0: "2"}, storedValues(t, h.metrics, "warp:execute_job_count:daily"))
}

func TestDriver_StraddledCompositeHourAcrossPasses(t *testing.T) {
	h := newHarness(t, true,
		newEvent("execute_reply", 10, 3600, map[string]interface{}{"sub_action": "recur_job"}),
		newEvent("create_job", 20, 3700, nil),
	)

	_, err := h.driver.RunPass(context.Background(), PassRequest{GenesisHeight: 0, CurrentHeight: 15})
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{3600: "1"}, storedValues(t, h.metrics, "warp:create_job_count:hourly"))

	_, err = h.driver.RunPass(context.Background(), PassRequest{GenesisHeight: 0, CurrentHeight: 25})
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{3600: "2"}, storedValues(t, h.metrics, "warp:create_job_count:hourly"))
	assert.Equal(t, map[int64]string{0: "2"}, storedValues(t, h.metrics, "warp:create_job_count:daily"))
	assert.Equal(t, map[int64]string{0: "2"}, storedValues(t, h.metrics, "warp:create_job_count:monthly"))
}

func TestDriver_SplitPassesMatchSinglePass(t *testing.T) {
	events := append(mixedEvents(t), interleavedEvents(t)...)

	single := newHarness(t, true, events...)
	_, err := single.driver.RunPass(context.Background(), PassRequest{GenesisHeight: 0, CurrentHeight: 1000})
	require.NoError(t, err)
	want := snapshotStrings(single.metrics.Snapshot())

	schedules := map[string][]int64{
		"every height":   heightsUpTo(1000, 1),
		"every 7":        heightsUpTo(1000, 7),
		"uneven":         {101, 106, 118, 230, 503, 504, 521, 1000},
		"straddle heavy": {500, 502, 506, 511, 513, 1000},
	}
	for name, currents := range schedules {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, true, events...)
			for _, current := range currents {
				_, err := h.driver.RunPass(context.Background(), PassRequest{GenesisHeight: 0, CurrentHeight: current})
				require.NoError(t, err)
			}
			assert.Equal(t, want, snapshotStrings(h.metrics.Snapshot()))
		})
	}
}

func TestDriver_FailureLeavesCheckpoint(t *testing.T) {
	h := newHarness(t, true, mixedEvents(t)...)
	h.metrics.failOn("warp:update_job_count:hourly")

	result, err := h.driver.RunPass(context.Background(), PassRequest{GenesisHeight: 0, CurrentHeight: 1000})
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrStoreWrite)
	assert.ErrorIs(t, err, errInjected)
	assert.ErrorContains(t, err, "pipeline update_job_count")
	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, StateFailed, h.driver.State())

	_, found := h.checkpoint(t)
	assert.False(t, found, "checkpoint must not be written by a failed pass")

	// earlier pipelines' writes stay, later pipelines never ran
	assert.NotEmpty(t, storedValues(t, h.metrics, "warp:execute_job_count:monthly"))
	assert.Empty(t, storedValues(t, h.metrics, "warp:prioritize_job_count:hourly"))
	assert.Empty(t, storedValues(t, h.metrics, "warp:reward_amount:hourly"))

	// retry after the store recovers converges to the same state as a clean run
	h.metrics.failOn("")
	result, err = h.driver.RunPass(context.Background(), PassRequest{GenesisHeight: 0, CurrentHeight: 1000})
	require.NoError(t, err)
	assert.Equal(t, StateCommitted, result.State)

	clean := newHarness(t, true, mixedEvents(t)...)
	_, err = clean.driver.RunPass(context.Background(), PassRequest{GenesisHeight: 0, CurrentHeight: 1000})
	require.NoError(t, err)
	assert.Equal(t, snapshotStrings(clean.metrics.Snapshot()), snapshotStrings(h.metrics.Snapshot()))

	height, found := h.checkpoint(t)
	require.True(t, found)
	assert.Equal(t, int64(1000), height)
}

func TestDriver_RejectsWindowBelowCheckpoint(t *testing.T) {
	h := newHarness(t, true)
	require.NoError(t, h.checkpoints.Set(context.Background(), "analytics", 500))

	result, err := h.driver.RunPass(context.Background(), PassRequest{GenesisHeight: 0, CurrentHeight: 499})
	require.ErrorIs(t, err, ErrInvalidWindow)
	assert.Equal(t, StateIdle, result.State)
	assert.Equal(t, StateIdle, h.driver.State())

	height, _ := h.checkpoint(t)
	assert.Equal(t, int64(500), height)
	assert.Empty(t, h.metrics.Snapshot())
}

func TestDriver_CheckpointReadFailure(t *testing.T) {
	checkpoints := storagemocks.NewCheckpointStore(t)
	checkpoints.EXPECT().
		Get(mock.Anything, "analytics").
		Return(int64(0), false, errors.New("connection reset"))

	runner := &fakeRunner{name: "never"}
	driver := NewDriver("analytics", NewCheckpointTracker(checkpoints, "analytics"), []Runner{runner})

	result, err := driver.RunPass(context.Background(), PassRequest{GenesisHeight: 0, CurrentHeight: 10})
	require.ErrorIs(t, err, storage.ErrCheckpoint)
	assert.Equal(t, StateFailed, result.State)
	assert.Zero(t, runner.calls)
}

func TestDriver_CheckpointWriteFailure(t *testing.T) {
	checkpoints := storagemocks.NewCheckpointStore(t)
	checkpoints.EXPECT().
		Get(mock.Anything, "analytics").
		Return(int64(40), true, nil)
	checkpoints.EXPECT().
		Set(mock.Anything, "analytics", int64(90)).
		Return(errors.New("conflict"))

	runner := &fakeRunner{name: "ok", written: 3}
	driver := NewDriver("analytics", NewCheckpointTracker(checkpoints, "analytics"), []Runner{runner})

	result, err := driver.RunPass(context.Background(), PassRequest{GenesisHeight: 0, CurrentHeight: 90})
	require.ErrorIs(t, err, storage.ErrCheckpoint)
	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, 3, result.EntitiesWritten)
	assert.Equal(t, [][2]int64{{40, 90}}, runner.windows)
}

func TestDriver_RunsPipelinesInOrderAndStopsOnError(t *testing.T) {
	h := newHarness(t, true)

	var order []string
	first := &fakeRunner{name: "first", order: &order}
	second := &fakeRunner{name: "second", order: &order, err: errors.New("boom")}
	third := &fakeRunner{name: "third", order: &order}

	driver := NewDriver("analytics", NewCheckpointTracker(h.checkpoints, "analytics"), []Runner{first, second, third})
	driver.nowFn = fixedClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Second)

	result, err := driver.RunPass(context.Background(), PassRequest{GenesisHeight: 7, CurrentHeight: 9})
	require.Error(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, time.Second, result.Duration)
	assert.Equal(t, int64(7), result.FromHeight)
}

func TestDriver_EqualHeightsIsValidWindow(t *testing.T) {
	h := newHarness(t, true, newEvent("execute_job", 500, 3600, nil))
	require.NoError(t, h.checkpoints.Set(context.Background(), "analytics", 500))

	result, err := h.driver.RunPass(context.Background(), PassRequest{GenesisHeight: 0, CurrentHeight: 500})
	require.NoError(t, err)
	assert.Equal(t, StateCommitted, result.State)
	assert.Equal(t, map[int64]string{3600: "1"}, storedValues(t, h.metrics, "warp:execute_job_count:hourly"))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "committed", StateCommitted.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "state(9)", State(9).String())
}

// mixedEvents spans day, month, leap-day and year boundaries across all partitions.
func mixedEvents(t *testing.T) []*v1.Event {
	t.Helper()
	reward := func(v string) map[string]interface{} {
		return map[string]interface{}{"job_reward": v}
	}
	reply := func(sub string) map[string]interface{} {
		return map[string]interface{}{"sub_action": sub}
	}

	return []*v1.Event{
		newEvent("create_job", 105, unix(t, "2024-01-31T22:10:00Z"), nil),
		newEvent("execute_reply", 106, unix(t, "2024-01-31T22:20:00Z"), reply("recur_job")),
		newEvent("execute_reply", 107, unix(t, "2024-01-31T22:30:00Z"), reply("execute")),
		newEvent("execute_job", 100, unix(t, "2024-01-31T23:00:00Z"), reward("1")),
		newEvent("update_job", 115, unix(t, "2024-01-31T23:30:00Z"), nil),
		newEvent("execute_job", 125, unix(t, "2024-01-31T23:59:59Z"), reward("0.5")),
		newEvent("execute_job", 200, unix(t, "2024-02-01T00:00:00Z"), reward("100000000000000000000000")),
		newEvent("update_job", 260, unix(t, "2024-02-10T08:00:00Z"), nil),
		newEvent("execute_job", 300, unix(t, "2024-02-29T12:30:00Z"), reward("0.25")),
		newEvent("create_job", 310, unix(t, "2024-02-29T12:45:00Z"), nil),
		newEvent("prioritize_job", 410, unix(t, "2024-12-31T01:00:00Z"), nil),
		newEvent("execute_job", 420, unix(t, "2024-12-31T23:59:59Z"), nil),
		newEvent("execute_job", 900, unix(t, "2025-01-01T00:00:00Z"), reward("0.000001")),
		newEvent("execute_reply", 950, unix(t, "2025-01-01T05:00:00Z"), reply("recur_job")),
	}
}

// interleavedEvents alternates the two create_job_count sources inside shared hours,
// so split passes touch each hour through one source at a time.
func interleavedEvents(t *testing.T) []*v1.Event {
	t.Helper()
	reply := map[string]interface{}{"sub_action": "recur_job"}
	hour := unix(t, "2024-03-15T10:00:00Z")

	return []*v1.Event{
		newEvent("execute_reply", 500, hour+60, reply),
		newEvent("create_job", 502, hour+120, nil),
		newEvent("execute_reply", 505, hour+3599, reply),
		newEvent("create_job", 509, hour+3600, nil),
		newEvent("execute_reply", 510, hour+3700, map[string]interface{}{"sub_action": "execute"}),
		newEvent("create_job", 512, hour+600, nil),
		newEvent("execute_reply", 520, hour+3900, reply),
		newEvent("execute_job", 503, hour+30, map[string]interface{}{"job_reward": "2.5"}),
		newEvent("execute_job", 508, hour+40, map[string]interface{}{"job_reward": "0.5"}),
	}
}

func heightsUpTo(last, step int64) []int64 {
	var out []int64
	for h := step; h < last; h += step {
		out = append(out, h)
	}
	return append(out, last)
}

// assertRollsUp checks every coarse bucket equals the exact sum of the fine buckets inside it.
func assertRollsUp(t *testing.T, metricName string, fine, coarse map[int64]string, g aggregation.Granularity) {
	t.Helper()

	sums := make(map[int64]decimal.Decimal)
	for start, value := range fine {
		bucket := aggregation.BucketStart(start, g)
		sums[bucket] = sums[bucket].Add(decimal.RequireFromString(value))
	}

	require.Len(t, coarse, len(sums), "%s %s buckets", metricName, g)
	for bucket, want := range sums {
		got, ok := coarse[bucket]
		require.True(t, ok, "%s: missing %s bucket %d", metricName, g, bucket)
		assert.True(t, want.Equal(decimal.RequireFromString(got)),
			"%s %s bucket %d: got %s want %s", metricName, g, bucket, got, want)
	}
}

func snapshotStrings(entities []storage.MetricEntity) []string {
	out := make([]string, 0, len(entities))
	for _, e := range entities {
		out = append(out, fmt.Sprintf("%s|%d|%s", e.MetricKey, e.BucketStart, e.Value.String()))
	}
	return out
}

type fakeRunner struct {
	name    string
	written int
	err     error
	order   *[]string
	calls   int
	windows [][2]int64
}

func (r *fakeRunner) Name() string { return r.name }

func (r *fakeRunner) Run(_ context.Context, minHeight, maxHeight int64) (int, error) {
	r.calls++
	r.windows = append(r.windows, [2]int64{minHeight, maxHeight})
	if r.order != nil {
		*r.order = append(*r.order, r.name)
	}
	return r.written, r.err
}

// fixedClock returns start, then advances by step on every call.
func fixedClock(start time.Time, step time.Duration) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(step)
		return now
	}
}
