package postgres

import (
	"fmt"

	v1 "github.com/warp-lab/warp-indexer/internal/api/v1"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanEventRow scans a database row into an Event.
// The JSONB payload is decoded with json.Number so amounts keep full precision.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanEventRow(row scanner) (*v1.Event, error) {
	var evt v1.Event
	var payloadJSON []byte

	err := row.Scan(
		&evt.PartitionKey,
		&evt.Height,
		&evt.Timestamp,
		&payloadJSON,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan event row: %w", err)
	}

	payload, err := v1.DecodePayload(payloadJSON)
	if err != nil {
		return nil, fmt.Errorf("event %s@%d: %w", evt.PartitionKey, evt.Height, err)
	}
	evt.Payload = payload

	return &evt, nil
}
