package projection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/warp-lab/warp-indexer/internal/core/aggregation"
	"github.com/warp-lab/warp-indexer/internal/core/metric"
	"github.com/warp-lab/warp-indexer/internal/core/storage"
)

// maxQuerySpan bounds hourly queries; daily and monthly series are small enough to be unbounded.
const maxQuerySpan = 93 * 24 * time.Hour

var (
	// ErrInvalidQuery marks request validation errors that should return HTTP 400.
	ErrInvalidQuery = errors.New("invalid metric query")

	// ErrUnknownMetric marks queries for metrics that are not configured (HTTP 404).
	ErrUnknownMetric = errors.New("unknown metric")
)

// Service implements the read-only query layer over stored metric entities.
type Service struct {
	store       storage.MetricStore
	checkpoints storage.CheckpointStore
	defs        []metric.Definition
	byName      map[string]metric.Definition
	namespace   string
	indexerName string
	genesis     int64
}

// NewService creates a new query service for the metrics of one namespace.
func NewService(
	store storage.MetricStore,
	checkpoints storage.CheckpointStore,
	defs []metric.Definition,
	namespace string,
	indexerName string,
	genesis int64,
) *Service {
	byName := make(map[string]metric.Definition, len(defs))
	for _, d := range defs {
		byName[d.Name] = d
	}

	return &Service{
		store:       store,
		checkpoints: checkpoints,
		defs:        defs,
		byName:      byName,
		namespace:   namespace,
		indexerName: indexerName,
		genesis:     genesis,
	}
}

// QueryMetric returns the stored buckets of one metric whose start lies in [Start, End].
// Start is aligned down to its bucket so a partially covered first bucket is included.
func (s *Service) QueryMetric(ctx context.Context, req MetricQueryRequest) (*MetricQueryResponse, error) {
	req, g, err := s.normalizeAndValidate(req)
	if err != nil {
		return nil, err
	}

	def, ok := s.byName[req.Metric]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMetric, req.Metric)
	}

	key := metric.Key(s.namespace, def.Name, g)
	from := aggregation.BucketStart(req.Start.Unix(), g)

	entities, err := s.store.QueryRange(ctx, key, from, req.End.Unix())
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", key, err)
	}

	values := toValues(entities, g)

	return &MetricQueryResponse{
		Metric:     def.Name,
		Key:        key,
		Kind:       string(def.Kind),
		Resolution: g.Resolution(),
		Start:      time.Unix(from, 0).UTC(),
		End:        req.End,
		Total:      sumValues(values),
		Values:     values,
	}, nil
}

// ListMetrics describes every configured metric in processing order.
func (s *Service) ListMetrics() []MetricDescriptor {
	out := make([]MetricDescriptor, 0, len(s.defs))
	for _, d := range s.defs {
		out = append(out, MetricDescriptor{
			Name: d.Name,
			Kind: string(d.Kind),
			Keys: []string{
				metric.Key(s.namespace, d.Name, aggregation.Hour),
				metric.Key(s.namespace, d.Name, aggregation.Day),
				metric.Key(s.namespace, d.Name, aggregation.Month),
			},
			Fingerprint: d.Fingerprint,
		})
	}
	return out
}

// Checkpoint reports the committed height, or genesis when no pass has committed yet.
func (s *Service) Checkpoint(ctx context.Context) (*CheckpointResponse, error) {
	height, found, err := s.checkpoints.Get(ctx, s.indexerName)
	if err != nil {
		return nil, fmt.Errorf("read checkpoint: %w", err)
	}
	if !found {
		height = s.genesis
	}
	return &CheckpointResponse{
		Indexer:   s.indexerName,
		Height:    height,
		Committed: found,
	}, nil
}

func (s *Service) normalizeAndValidate(req MetricQueryRequest) (MetricQueryRequest, aggregation.Granularity, error) {
	if req.Resolution == "" {
		req.Resolution = aggregation.ResolutionHourly
	}
	if req.Metric == "" {
		return req, 0, invalidQueryf("metric is required")
	}

	g, err := aggregation.ParseResolution(req.Resolution)
	if err != nil {
		return req, 0, invalidQueryf("%v", err)
	}

	req.Start = req.Start.UTC()
	req.End = req.End.UTC()
	if req.End.Before(req.Start) {
		return req, 0, invalidQueryf("end time must not be before start time")
	}
	if g == aggregation.Hour && req.End.Sub(req.Start) > maxQuerySpan {
		return req, 0, invalidQueryf("hourly queries are limited to %s", maxQuerySpan)
	}

	return req, g, nil
}

func invalidQueryf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}
