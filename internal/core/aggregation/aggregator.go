package aggregation

import (
	"github.com/shopspring/decimal"
	v1 "github.com/warp-lab/warp-indexer/internal/api/v1"
)

// Supported hourly operators. Only additive operators are allowed because daily and
// monthly values are derived by summing finer buckets.
const (
	OpCount = "count"
	OpSum   = "sum"
)

// Aggregator defines the fold semantics of an operator over one event value.
type Aggregator interface {
	// Initial returns the aggregate after the first event of a bucket.
	Initial(incoming decimal.Decimal) decimal.Decimal

	// Apply folds an incoming value into an existing aggregate.
	Apply(current, incoming decimal.Decimal) decimal.Decimal
}

// Operators is the registry of all supported aggregation operators.
var Operators = map[string]Aggregator{
	OpCount: countAgg{},
	OpSum:   sumAgg{},
}

// countAgg increments by 1 per event. The incoming value is ignored.
type countAgg struct{}

func (countAgg) Initial(_ decimal.Decimal) decimal.Decimal    { return decimal.NewFromInt(1) }
func (countAgg) Apply(cur, _ decimal.Decimal) decimal.Decimal { return cur.Add(decimal.NewFromInt(1)) }

// sumAgg accumulates the sum of incoming values.
type sumAgg struct{}

func (sumAgg) Initial(v decimal.Decimal) decimal.Decimal      { return v }
func (sumAgg) Apply(cur, inc decimal.Decimal) decimal.Decimal { return cur.Add(inc) }

// Reducer collapses the events of one bucket into a value.
type Reducer func(events []*v1.Event) decimal.Decimal

// Predicate selects the events a reducer folds over.
type Predicate func(evt *v1.Event) bool

// Fold builds a Reducer from an operator. field names the payload value handed to the
// operator (ignored by count); missing fields contribute zero. A nil predicate keeps
// every event. A bucket where no event is kept reduces to zero.
func Fold(agg Aggregator, field string, keep Predicate) Reducer {
	return func(events []*v1.Event) decimal.Decimal {
		value := decimal.Zero
		initialized := false
		for _, evt := range events {
			if keep != nil && !keep(evt) {
				continue
			}
			incoming := ExtractDecimal(evt.Payload, field)
			if !initialized {
				value = agg.Initial(incoming)
				initialized = true
				continue
			}
			value = agg.Apply(value, incoming)
		}
		return value
	}
}

// Count is the pure counter: one per event in the bucket.
func Count(events []*v1.Event) decimal.Decimal {
	return decimal.NewFromInt(int64(len(events)))
}

// SumField sums a payload field with exact decimal addition, starting from zero.
func SumField(field string) Reducer {
	return Fold(Operators[OpSum], field, nil)
}

// FieldEquals matches events whose payload field has the given string value.
func FieldEquals(field, value string) Predicate {
	return func(evt *v1.Event) bool {
		return ExtractString(evt.Payload, field) == value
	}
}

// CountWhere counts the events matching keep.
func CountWhere(keep Predicate) Reducer {
	return Fold(Operators[OpCount], "", keep)
}
