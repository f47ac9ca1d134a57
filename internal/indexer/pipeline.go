package indexer

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/warp-lab/warp-indexer/internal/core/aggregation"
	"github.com/warp-lab/warp-indexer/internal/core/metric"
)

// Pipeline derives one metric over a height window: select hourly buckets, save them,
// then cascade hourly into daily and daily into monthly.
type Pipeline struct {
	namespace  string
	def        metric.Definition
	selections []metric.Selection
	selector   *Selector
	writer     *Writer
	cascader   *Cascader
}

// NewPipeline compiles def into its hourly selections.
func NewPipeline(namespace string, def metric.Definition, selector *Selector, writer *Writer, cascader *Cascader) (*Pipeline, error) {
	selections, err := def.Selections()
	if err != nil {
		return nil, err
	}
	if len(selections) == 0 {
		return nil, fmt.Errorf("metric %q: no sources", def.Name)
	}
	return &Pipeline{
		namespace:  namespace,
		def:        def,
		selections: selections,
		selector:   selector,
		writer:     writer,
		cascader:   cascader,
	}, nil
}

// NewPipelines builds one pipeline per definition, preserving order.
func NewPipelines(namespace string, defs []metric.Definition, selector *Selector, writer *Writer, cascader *Cascader) ([]*Pipeline, error) {
	out := make([]*Pipeline, 0, len(defs))
	for _, def := range defs {
		p, err := NewPipeline(namespace, def, selector, writer, cascader)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (p *Pipeline) Name() string {
	return p.def.Name
}

// Key returns the stored key of this metric at granularity g.
func (p *Pipeline) Key(g aggregation.Granularity) string {
	return metric.Key(p.namespace, p.def.Name, g)
}

// Run processes [minHeight, maxHeight] and returns the number of entities written.
func (p *Pipeline) Run(ctx context.Context, minHeight, maxHeight int64) (int, error) {
	hourly, err := p.selectHourly(ctx, minHeight, maxHeight)
	if err != nil {
		return 0, err
	}

	hourlyKey := p.Key(aggregation.Hour)
	dailyKey := p.Key(aggregation.Day)
	monthlyKey := p.Key(aggregation.Month)

	written, err := p.writer.Save(ctx, hourlyKey, hourly)
	if err != nil {
		return written, err
	}

	timestamps := aggregation.Timestamps(hourly)

	n, err := p.cascader.CascadeUp(ctx, hourlyKey, dailyKey, timestamps, aggregation.Day)
	written += n
	if err != nil {
		return written, err
	}

	n, err = p.cascader.CascadeUp(ctx, dailyKey, monthlyKey, timestamps, aggregation.Month)
	written += n
	if err != nil {
		return written, err
	}

	slog.Debug("[Pipeline] Metric updated",
		"metric", p.def.Name,
		"kind", p.def.Kind,
		"hourly_buckets", len(hourly),
		"entities_written", written,
	)
	return written, nil
}

// selectHourly runs every selection over the window and merges them by bucket start.
func (p *Pipeline) selectHourly(ctx context.Context, minHeight, maxHeight int64) ([]aggregation.Aggregate, error) {
	if len(p.selections) > 1 && p.selector.CompletesBuckets() {
		return p.selectCompleteHours(ctx, minHeight, maxHeight)
	}

	sets := make([][]aggregation.Aggregate, 0, len(p.selections))
	for _, sel := range p.selections {
		var (
			aggs []aggregation.Aggregate
			err  error
		)
		if sel.Reduce == nil {
			aggs, err = p.selector.SelectHourlyCounts(ctx, sel.PartitionKey, minHeight, maxHeight)
		} else {
			aggs, err = p.selector.SelectHourlyReduce(ctx, sel.PartitionKey, minHeight, maxHeight, sel.Reduce)
		}
		if err != nil {
			return nil, err
		}
		sets = append(sets, aggs)
	}

	if len(sets) == 1 {
		return sets[0], nil
	}
	return aggregation.MergeByBucket(sets...), nil
}

// selectCompleteHours recomputes every source of the metric for every hour any source
// touched in the window, so an hour stored by an earlier pass keeps the share of the
// sources that have no events in this one.
func (p *Pipeline) selectCompleteHours(ctx context.Context, minHeight, maxHeight int64) ([]aggregation.Aggregate, error) {
	touched := make(map[int64]struct{})
	for _, sel := range p.selections {
		hours, err := p.selector.TouchedHours(ctx, sel.PartitionKey, minHeight, maxHeight)
		if err != nil {
			return nil, err
		}
		for _, h := range hours {
			touched[h] = struct{}{}
		}
	}
	if len(touched) == 0 {
		return nil, nil
	}

	hours := make([]int64, 0, len(touched))
	for h := range touched {
		hours = append(hours, h)
	}
	sort.Slice(hours, func(i, j int) bool { return hours[i] < hours[j] })

	sets := make([][]aggregation.Aggregate, 0, len(p.selections))
	for _, sel := range p.selections {
		aggs, err := p.selector.SelectHours(ctx, sel.PartitionKey, hours, maxHeight, sel.Reduce)
		if err != nil {
			return nil, err
		}
		sets = append(sets, aggs)
	}
	return aggregation.MergeByBucket(sets...), nil
}

// Runners adapts pipelines for NewDriver.
func Runners(pipelines []*Pipeline) []Runner {
	out := make([]Runner, 0, len(pipelines))
	for _, p := range pipelines {
		out = append(out, p)
	}
	return out
}
