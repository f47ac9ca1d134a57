package postgres

// SQL queries for the event source, the analytics table and the indexer checkpoint.

const (
	// queryFetchEventsByHeight returns one partition's events in an inclusive height window.
	queryFetchEventsByHeight = `
		SELECT partition_key, height, event_timestamp, payload
		FROM events
		WHERE partition_key = $1
		  AND height >= $2
		  AND height <= $3
		ORDER BY height ASC, event_index ASC
	`

	// queryFetchEventsByTime returns one partition's events in an inclusive timestamp window,
	// bounded above by height so a pass never reads past its own window.
	queryFetchEventsByTime = `
		SELECT partition_key, height, event_timestamp, payload
		FROM events
		WHERE partition_key = $1
		  AND event_timestamp >= $2
		  AND event_timestamp <= $3
		  AND height <= $4
		ORDER BY height ASC, event_index ASC
	`

	// queryTipHeight returns the highest observed height, 0 on an empty log.
	queryTipHeight = `SELECT COALESCE(MAX(height), 0) FROM events`

	// queryUpsertMetric overwrites the value of an existing (metric_key, bucket_start).
	// Overwrite, not accumulate: replaying a window must reproduce the same row.
	queryUpsertMetric = `
		INSERT INTO analytics (metric_key, bucket_start, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (metric_key, bucket_start)
		DO UPDATE SET
			value      = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`

	// queryRangeMetrics is an inclusive BETWEEN on the sort key.
	queryRangeMetrics = `
		SELECT metric_key, bucket_start, value
		FROM analytics
		WHERE metric_key = $1
		  AND bucket_start BETWEEN $2 AND $3
		ORDER BY bucket_start ASC
	`

	queryReadCheckpoint = `SELECT height FROM indexer_state WHERE name = $1`

	queryWriteCheckpoint = `
		INSERT INTO indexer_state (name, height, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name)
		DO UPDATE SET
			height     = EXCLUDED.height,
			updated_at = EXCLUDED.updated_at
	`
)
