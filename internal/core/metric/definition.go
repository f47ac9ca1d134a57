package metric

import (
	"fmt"
	"strings"

	"github.com/warp-lab/warp-indexer/internal/core/aggregation"
)

// Kind tags the variant of a metric definition.
type Kind string

const (
	// KindCount counts the events of one partition per hour.
	KindCount = Kind(aggregation.OpCount)
	// KindSum adds a decimal payload field over one partition per hour.
	KindSum = Kind(aggregation.OpSum)
	// KindComposite adds the per-hour counts of several partitions, each optionally filtered.
	KindComposite Kind = "composite"
)

// Filter keeps events whose payload field equals a string value.
type Filter struct {
	Field  string `yaml:"field"`
	Equals string `yaml:"equals"`
}

// Source is one partition of the event log a metric reads from.
type Source struct {
	PartitionKey string  `yaml:"partition_key"`
	Filter       *Filter `yaml:"filter,omitempty"`
}

// Definition describes how one metric is derived from the event log.
// Definitions are loaded from YAML or taken from DefaultDefinitions and fingerprinted
// so operators can tell which revision produced stored values.
type Definition struct {
	Name        string
	Kind        Kind
	Sources     []Source
	Field       string // payload field for KindSum
	Fingerprint string
}

// Selection is one hourly selection the pipeline performs for a definition.
// Reduce is nil when the selection is a plain per-event count.
type Selection struct {
	PartitionKey string
	Reduce       aggregation.Reducer
}

// Selections returns the hourly selections whose bucket-keyed merge yields the metric.
// The definition is validated first.
func (d Definition) Selections() ([]Selection, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	switch d.Kind {
	case KindCount:
		src := d.Sources[0]
		if src.Filter == nil {
			return []Selection{{PartitionKey: src.PartitionKey}}, nil
		}
		return []Selection{{PartitionKey: src.PartitionKey, Reduce: filteredCount(src.Filter)}}, nil
	case KindSum:
		return []Selection{{PartitionKey: d.Sources[0].PartitionKey, Reduce: aggregation.SumField(d.Field)}}, nil
	case KindComposite:
		out := make([]Selection, 0, len(d.Sources))
		for _, src := range d.Sources {
			sel := Selection{PartitionKey: src.PartitionKey}
			if src.Filter != nil {
				sel.Reduce = filteredCount(src.Filter)
			}
			out = append(out, sel)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("metric %q: unsupported kind %q", d.Name, d.Kind)
	}
}

// Validate checks the shape each kind requires.
func (d Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("metric name must not be empty")
	}
	if strings.Contains(d.Name, ":") {
		return fmt.Errorf("metric %q: name must not contain ':'", d.Name)
	}
	for i, src := range d.Sources {
		if src.PartitionKey == "" {
			return fmt.Errorf("metric %q: source %d has empty partition_key", d.Name, i)
		}
		if src.Filter != nil && src.Filter.Field == "" {
			return fmt.Errorf("metric %q: source %d filter has empty field", d.Name, i)
		}
	}

	switch d.Kind {
	case KindCount:
		if len(d.Sources) != 1 {
			return fmt.Errorf("metric %q: count needs exactly one source, got %d", d.Name, len(d.Sources))
		}
	case KindSum:
		if len(d.Sources) != 1 {
			return fmt.Errorf("metric %q: sum needs exactly one source, got %d", d.Name, len(d.Sources))
		}
		if d.Sources[0].Filter != nil {
			return fmt.Errorf("metric %q: sum sources do not support filters", d.Name)
		}
		if d.Field == "" {
			return fmt.Errorf("metric %q: sum needs a field", d.Name)
		}
	case KindComposite:
		if len(d.Sources) < 2 {
			return fmt.Errorf("metric %q: composite needs at least two sources, got %d", d.Name, len(d.Sources))
		}
	default:
		return fmt.Errorf("metric %q: unsupported kind %q", d.Name, d.Kind)
	}
	return nil
}

func filteredCount(f *Filter) aggregation.Reducer {
	return aggregation.CountWhere(aggregation.FieldEquals(f.Field, f.Equals))
}

// Key builds the stored metric key, e.g. "warp:execute_job_count:hourly".
func Key(namespace, name string, g aggregation.Granularity) string {
	return namespace + ":" + name + ":" + g.Resolution()
}
