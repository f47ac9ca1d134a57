package aggregation

import (
	"fmt"
	"time"
)

// Granularity is the width of a time bucket. The set is closed: every switch over
// a Granularity handles Hour, Day and Month and rejects anything else.
type Granularity int

const (
	Hour Granularity = iota + 1
	Day
	Month
)

// Resolution labels used as the last segment of a metric key.
const (
	ResolutionHourly  = "hourly"
	ResolutionDaily   = "daily"
	ResolutionMonthly = "monthly"
)

// ParseResolution maps a metric key resolution label to its granularity.
func ParseResolution(s string) (Granularity, error) {
	switch s {
	case ResolutionHourly:
		return Hour, nil
	case ResolutionDaily:
		return Day, nil
	case ResolutionMonthly:
		return Month, nil
	default:
		return 0, fmt.Errorf("invalid resolution %q (must be hourly, daily or monthly)", s)
	}
}

// Resolution returns the metric key label for g.
func (g Granularity) Resolution() string {
	switch g {
	case Hour:
		return ResolutionHourly
	case Day:
		return ResolutionDaily
	case Month:
		return ResolutionMonthly
	default:
		panic(fmt.Sprintf("aggregation: unknown granularity %d", int(g)))
	}
}

func (g Granularity) String() string {
	switch g {
	case Hour:
		return "hour"
	case Day:
		return "day"
	case Month:
		return "month"
	default:
		return fmt.Sprintf("granularity(%d)", int(g))
	}
}

// BucketFor truncates a timestamp to the start of its g bucket in UTC.
// Example: BucketFor(2024-03-31T23:59:59Z, Month) → 2024-03-01T00:00:00Z
func BucketFor(t time.Time, g Granularity) time.Time {
	t = t.UTC()
	switch g {
	case Hour:
		return t.Truncate(time.Hour)
	case Day:
		year, month, day := t.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	case Month:
		year, month, _ := t.Date()
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	default:
		panic(fmt.Sprintf("aggregation: unknown granularity %d", int(g)))
	}
}

// BucketStart is BucketFor over unix seconds.
func BucketStart(ts int64, g Granularity) int64 {
	return BucketFor(time.Unix(ts, 0), g).Unix()
}

// BucketEnd returns the last second that still belongs to the bucket starting at start.
// Day buckets end at start+86399; month buckets end one second before the next month.
func BucketEnd(start int64, g Granularity) int64 {
	t := time.Unix(start, 0).UTC()
	switch g {
	case Hour:
		return t.Add(time.Hour).Unix() - 1
	case Day:
		return t.AddDate(0, 0, 1).Unix() - 1
	case Month:
		return t.AddDate(0, 1, 0).Unix() - 1
	default:
		panic(fmt.Sprintf("aggregation: unknown granularity %d", int(g)))
	}
}

// BucketRange is an inclusive [Start, End] interval in unix seconds.
type BucketRange struct {
	Start int64
	End   int64
}

// GroupBuckets maps timestamps onto g buckets. Timestamps falling in the same bucket
// collapse to one range. Ranges are returned in order of first appearance.
func GroupBuckets(timestamps []int64, g Granularity) []BucketRange {
	seen := make(map[int64]struct{}, len(timestamps))
	ranges := make([]BucketRange, 0, len(timestamps))
	for _, ts := range timestamps {
		start := BucketStart(ts, g)
		if _, ok := seen[start]; ok {
			continue
		}
		seen[start] = struct{}{}
		ranges = append(ranges, BucketRange{Start: start, End: BucketEnd(start, g)})
	}
	return ranges
}
